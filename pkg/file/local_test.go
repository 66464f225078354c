package file_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyetechsecurities/webforms/pkg/file"
)

func newLocal(t *testing.T) (*file.LocalStorage, string) {
	t.Helper()
	dir := t.TempDir()
	storage, err := file.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	return storage, dir
}

func TestNewLocalStorage(t *testing.T) {
	t.Parallel()

	t.Run("creates base dir", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "nested", "uploads")
		storage, err := file.NewLocalStorage(dir, "/uploads/")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/", storage.BaseURL())
		assert.DirExists(t, dir)
	})

	t.Run("empty dir", func(t *testing.T) {
		t.Parallel()
		_, err := file.NewLocalStorage("", "/uploads/")
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
	})
}

func TestLocalStorage_Put(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes file", func(t *testing.T) {
		t.Parallel()
		storage, dir := newLocal(t)

		stored, err := storage.Put(ctx, "issues/1700000000000-camera.png", pngHeader, "")
		require.NoError(t, err)

		assert.Equal(t, "1700000000000-camera.png", stored.Filename)
		assert.Equal(t, int64(len(pngHeader)), stored.Size)
		assert.Equal(t, "image/png", stored.MIMEType)
		assert.Equal(t, ".png", stored.Extension)
		assert.Equal(t, "issues/1700000000000-camera.png", stored.RelativePath)
		assert.Equal(t, "/uploads/issues/1700000000000-camera.png", stored.URL)

		content, err := os.ReadFile(filepath.Join(dir, "issues", "1700000000000-camera.png"))
		require.NoError(t, err)
		assert.Equal(t, pngHeader, content)
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		storage, _ := newLocal(t)
		_, err := storage.Put(ctx, "../../escape.txt", []byte("x"), "")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
	})

	t.Run("double dots inside a name", func(t *testing.T) {
		t.Parallel()
		storage, _ := newLocal(t)
		stored, err := storage.Put(ctx, "issues/cam..1.jpg", jpegHeader, "")
		require.NoError(t, err)
		assert.Equal(t, "issues/cam..1.jpg", stored.RelativePath)
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()
		storage, _ := newLocal(t)
		_, err := storage.Put(ctx, "issues/empty.txt", nil, "")
		assert.ErrorIs(t, err, file.ErrEmptyFile)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		storage, _ := newLocal(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := storage.Put(cctx, "issues/a.txt", []byte("x"), "")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalStorage_DeleteAndExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage, _ := newLocal(t)

	_, err := storage.Put(ctx, "issues/a.txt", []byte("hello"), "text/plain")
	require.NoError(t, err)

	assert.True(t, storage.Exists(ctx, "issues/a.txt"))
	assert.False(t, storage.Exists(ctx, "issues/missing.txt"))
	assert.False(t, storage.Exists(ctx, "../outside"))

	assert.ErrorIs(t, storage.Delete(ctx, "issues"), file.ErrIsDirectory)
	require.NoError(t, storage.Delete(ctx, "issues/a.txt"))
	assert.False(t, storage.Exists(ctx, "issues/a.txt"))
	assert.ErrorIs(t, storage.Delete(ctx, "issues/a.txt"), file.ErrFileNotFound)
}

func TestLocalStorage_URL(t *testing.T) {
	t.Parallel()
	storage, _ := newLocal(t)

	assert.Equal(t, "/uploads/issues/a.png", storage.URL("issues/a.png"))
	assert.Equal(t, "/uploads/issues/a.png", storage.URL("issues/./a.png"))
	assert.Equal(t, "/absolute/a.png", storage.URL("/absolute/a.png"))
}

func TestLocalStorage_Handler(t *testing.T) {
	t.Parallel()
	storage, _ := newLocal(t)

	_, err := storage.Put(context.Background(), "issues/a.txt", []byte("stored bytes"), "text/plain")
	require.NoError(t, err)

	srv := httptest.NewServer(storage.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/uploads/issues/a.txt")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNew(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("local", func(t *testing.T) {
		t.Parallel()
		storage, err := file.New(ctx, file.Config{Driver: file.DriverLocal, LocalDir: t.TempDir(), LocalBaseURL: "/uploads/"})
		require.NoError(t, err)
		assert.IsType(t, &file.LocalStorage{}, storage)
	})

	t.Run("s3 with client", func(t *testing.T) {
		t.Parallel()
		storage, err := file.New(ctx, file.Config{
			Driver: file.DriverS3,
			S3:     file.S3Config{Bucket: "eyetech-uploads", Region: "ap-south-1"},
		}, file.WithS3Client(new(MockS3Client)))
		require.NoError(t, err)
		assert.IsType(t, &file.S3Storage{}, storage)
	})

	t.Run("s3 invalid config", func(t *testing.T) {
		t.Parallel()
		storage, err := file.New(ctx, file.Config{Driver: file.DriverS3})
		assert.ErrorIs(t, err, file.ErrInvalidConfig)
		assert.Nil(t, storage)
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()
		_, err := file.New(ctx, file.Config{Driver: "ftp"})
		assert.ErrorIs(t, err, file.ErrUnknownDriver)
	})
}
