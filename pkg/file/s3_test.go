package file_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eyetechsecurities/webforms/pkg/file"
)

// MockS3Client is a mock implementation of the S3Client interface
type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func (m *MockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.HeadObjectOutput), args.Error(1)
}

func (m *MockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.DeleteObjectOutput), args.Error(1)
}

func newS3(t *testing.T, client *MockS3Client, cfg file.S3Config, opts ...file.S3Option) *file.S3Storage {
	t.Helper()
	if cfg.Bucket == "" {
		cfg.Bucket = "eyetech-uploads"
	}
	if cfg.Region == "" {
		cfg.Region = "ap-south-1"
	}
	storage, err := file.NewS3Storage(context.Background(), cfg, append([]file.S3Option{file.WithS3Client(client)}, opts...)...)
	require.NoError(t, err)
	return storage
}

func TestNewS3Storage(t *testing.T) {
	t.Parallel()

	t.Run("valid config builds real client", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:      "test-bucket",
			Region:      "us-east-1",
			AccessKeyID: "test-key",
			SecretKey:   "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, storage)
	})

	t.Run("custom endpoint", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{
			Bucket:         "test-bucket",
			Region:         "us-east-1",
			Endpoint:       "http://localhost:9000",
			ForcePathStyle: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9000/test-bucket/a.png", storage.URL("a.png"))
	})

	t.Run("missing bucket", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{Region: "us-east-1"})
		assert.True(t, errors.Is(err, file.ErrInvalidConfig))
		assert.Nil(t, storage)
	})

	t.Run("missing region", func(t *testing.T) {
		t.Parallel()
		storage, err := file.NewS3Storage(context.Background(), file.S3Config{Bucket: "test-bucket"})
		assert.True(t, errors.Is(err, file.ErrInvalidConfig))
		assert.Nil(t, storage)
	})
}

func TestS3Storage_Put(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("uploads with sniffed type", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			body, ok := in.Body.(*bytes.Reader)
			return ok && body.Len() == len(pngHeader) &&
				aws.ToString(in.Bucket) == "eyetech-uploads" &&
				aws.ToString(in.Key) == "issues/17-camera.png" &&
				aws.ToString(in.ContentType) == "image/png" &&
				aws.ToInt64(in.ContentLength) == int64(len(pngHeader)) &&
				in.ACL == ""
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		storage := newS3(t, client, file.S3Config{})
		stored, err := storage.Put(ctx, "/issues/17-camera.png", pngHeader, "application/octet-stream")
		require.NoError(t, err)

		assert.Equal(t, "17-camera.png", stored.Filename)
		assert.Equal(t, "issues/17-camera.png", stored.RelativePath)
		assert.Equal(t, "https://eyetech-uploads.s3.ap-south-1.amazonaws.com/issues/17-camera.png", stored.URL)
		assert.Empty(t, stored.AbsolutePath)
		client.AssertExpectations(t)
	})

	t.Run("public read acl", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return in.ACL == types.ObjectCannedACLPublicRead
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		storage := newS3(t, client, file.S3Config{PublicRead: true, BaseURL: "https://cdn.eyetechsecurities.in"})
		stored, err := storage.Put(ctx, "issues/a.jpg", jpegHeader, "")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.eyetechsecurities.in/issues/a.jpg", stored.URL)
		client.AssertExpectations(t)
	})

	t.Run("invalid key never reaches s3", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		storage := newS3(t, client, file.S3Config{})

		_, err := storage.Put(ctx, "issues/../../etc/passwd", []byte("x"), "")
		assert.ErrorIs(t, err, file.ErrInvalidPath)
		_, err = storage.Put(ctx, "issues/empty.bin", nil, "")
		assert.ErrorIs(t, err, file.ErrEmptyFile)
		client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestS3Storage_DeleteAndExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("delete existing", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
			return aws.ToString(in.Key) == "issues/a.png"
		}), mock.Anything).Return(&s3.DeleteObjectOutput{}, nil)

		storage := newS3(t, client, file.S3Config{})
		require.NoError(t, storage.Delete(ctx, "issues/a.png"))
		assert.True(t, storage.Exists(ctx, "issues/a.png"))
		client.AssertExpectations(t)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{
			Message: aws.String("The specified key does not exist"),
		})

		storage := newS3(t, client, file.S3Config{})
		assert.ErrorIs(t, storage.Delete(ctx, "nonexistent.txt"), file.ErrFileNotFound)
		assert.False(t, storage.Exists(ctx, "nonexistent.txt"))
		client.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestS3Storage_ErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"}, file.ErrAccessDenied},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, file.ErrServiceUnavailable},
		{"request timeout", &smithy.GenericAPIError{Code: "RequestTimeout"}, file.ErrRequestTimeout},
		{"no such bucket", &types.NoSuchBucket{Message: aws.String("nope")}, file.ErrBucketNotFound},
		{"deadline", context.DeadlineExceeded, file.ErrOperationTimeout},
		{"canceled", context.Canceled, file.ErrOperationCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := new(MockS3Client)
			client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			storage := newS3(t, client, file.S3Config{})
			_, err := storage.Put(context.Background(), "issues/a.txt", []byte("content"), "text/plain")
			assert.ErrorIs(t, err, tt.expected)
		})
	}

	t.Run("unknown api error keeps code", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &smithy.GenericAPIError{Code: "EntityTooLarge"})

		storage := newS3(t, client, file.S3Config{})
		_, err := storage.Put(context.Background(), "issues/a.txt", []byte("content"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code: EntityTooLarge")
	})

	t.Run("upload timeout applies deadline", func(t *testing.T) {
		t.Parallel()
		client := new(MockS3Client)
		client.On("PutObject", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		}), mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded)

		storage := newS3(t, client, file.S3Config{}, file.WithS3UploadTimeout(time.Second))
		_, err := storage.Put(context.Background(), "issues/a.txt", []byte("content"), "")
		assert.ErrorIs(t, err, file.ErrOperationTimeout)
		client.AssertExpectations(t)
	})
}
