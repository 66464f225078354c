package file

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// File represents stored file metadata.
type File struct {
	Filename     string
	Size         int64
	MIMEType     string
	Extension    string
	AbsolutePath string // Empty for remote backends
	RelativePath string
	URL          string
}

// Storage is a blob store for uploaded files.
type Storage interface {
	// Put stores data under path, replacing any existing object.
	Put(ctx context.Context, path string, data []byte, contentType string) (*File, error)
	// Delete removes a single file.
	Delete(ctx context.Context, path string) error
	// Exists checks if a file exists.
	Exists(ctx context.Context, path string) bool
	// URL returns the public URL for a file.
	URL(path string) string
}

const defaultMIMEType = "application/octet-stream"

var imageMIMETypes = map[string]bool{
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/bmp":     true,
	"image/tiff":    true,
	"image/heic":    true,
	"image/heif":    true,
	"image/avif":    true,
}

// DetectMIMEType sniffs the content type from the first 512 bytes.
// When sniffing only yields a generic type, the declared type is used instead.
func DetectMIMEType(data []byte, declared string) string {
	detected := http.DetectContentType(data)
	if mediaType, _, ok := strings.Cut(detected, ";"); ok {
		detected = mediaType
	}

	generic := detected == defaultMIMEType || detected == "text/plain"
	if generic && declared != "" {
		return declared
	}
	return detected
}

// IsImage reports whether data looks like an image, falling back to the extension
// for formats http.DetectContentType does not know.
func IsImage(data []byte, filename string) bool {
	if imageMIMETypes[DetectMIMEType(data, "")] {
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".svg", ".tiff", ".tif", ".heic", ".heif", ".avif":
		return true
	}
	return false
}

// ValidateSize checks if size is within the allowed limit.
// A non-positive maxBytes disables the check.
func ValidateSize(size, maxBytes int64) error {
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", size, maxBytes, ErrFileTooLarge)
	}
	return nil
}

// ValidateMIMEType checks the sniffed type of data against the allowed list.
// Pass no types to allow all MIME types.
func ValidateMIMEType(data []byte, allowedTypes ...string) error {
	if len(allowedTypes) == 0 {
		return nil
	}

	mimeType := DetectMIMEType(data, "")
	if slices.Contains(allowedTypes, mimeType) {
		return nil
	}

	return fmt.Errorf("MIME type %s not in allowed types %v: %w", mimeType, allowedTypes, ErrMIMETypeNotAllowed)
}

// SanitizeFilename removes any path components and dangerous characters from a filename
// to prevent path traversal attacks and other security issues.
// Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
//	safe = file.SanitizeFilename("C:\\Windows\\file.txt") // Returns "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectName returns a sanitized filename that is also safe inside a URL path.
// Runs of other characters collapse to a single underscore.
func ObjectName(filename string) string {
	return unsafeKeyChars.ReplaceAllString(SanitizeFilename(filename), "_")
}

// cleanKey strips a leading slash and rejects empty keys and ".." segments.
// Dots inside a name such as "cam..1.jpg" are fine.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(filepath.ToSlash(key), "/")
	if key == "" || hasDotDot(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return key, nil
}

func hasDotDot(p string) bool {
	return slices.Contains(strings.Split(filepath.ToSlash(p), "/"), "..")
}
