package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files under one directory and serves them from a URL
// prefix. Paths that resolve outside the directory are rejected.
type LocalStorage struct {
	root    string
	baseURL string
}

// NewLocalStorage creates dir if needed. A baseURL without a trailing
// slash gets one.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: local storage directory is required", ErrInvalidConfig)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("file: resolve %q: %w", dir, err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("file: create %q: %w", root, err)
	}
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{root: root, baseURL: baseURL}, nil
}

// Put replaces any existing file. A partial write is removed.
func (s *LocalStorage) Put(ctx context.Context, p string, data []byte, contentType string) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	abs, rel, err := s.resolve(p)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, fmt.Errorf("file: create dir for %q: %w", rel, err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		_ = os.Remove(abs)
		return nil, fmt.Errorf("file: write %q: %w", rel, err)
	}

	return &File{
		Filename:     filepath.Base(abs),
		Size:         int64(len(data)),
		MIMEType:     DetectMIMEType(data, contentType),
		Extension:    filepath.Ext(abs),
		AbsolutePath: abs,
		RelativePath: rel,
		URL:          s.URL(rel),
	}, nil
}

// Delete removes one file and refuses directories.
func (s *LocalStorage) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, rel, err := s.resolve(p)
	if err != nil {
		return err
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrFileNotFound, rel)
	case err != nil:
		return fmt.Errorf("file: stat %q: %w", rel, err)
	case info.IsDir():
		return fmt.Errorf("%w: %s", ErrIsDirectory, rel)
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("file: remove %q: %w", rel, err)
	}
	return nil
}

func (s *LocalStorage) Exists(ctx context.Context, p string) bool {
	if ctx.Err() != nil {
		return false
	}
	abs, _, err := s.resolve(p)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}

// URL leaves rooted paths untouched.
func (s *LocalStorage) URL(p string) string {
	p = filepath.ToSlash(filepath.Clean(p))
	if strings.HasPrefix(p, "/") {
		return p
	}
	return s.baseURL + p
}

// Handler serves stored files; mount it at BaseURL.
func (s *LocalStorage) Handler() http.Handler {
	return http.StripPrefix(strings.TrimSuffix(s.baseURL, "/"), http.FileServer(http.Dir(s.root)))
}

func (s *LocalStorage) BaseURL() string { return s.baseURL }

// resolve returns the absolute path for p and its slash-separated form
// relative to the root.
func (s *LocalStorage) resolve(p string) (abs, rel string, err error) {
	abs = filepath.Join(s.root, filepath.Clean("/"+p))
	rel, err = filepath.Rel(s.root, abs)
	if err != nil || rel == "." || hasDotDot(p) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return abs, filepath.ToSlash(rel), nil
}
