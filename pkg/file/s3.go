package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of *s3.Client that S3Storage calls.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config is read with the STORAGE_S3_ prefix. Endpoint and ForcePathStyle
// target S3-compatible services such as MinIO.
type S3Config struct {
	Bucket         string `env:"BUCKET"`
	Region         string `env:"REGION" envDefault:"ap-south-1"`
	AccessKeyID    string `env:"ACCESS_KEY_ID"`
	SecretKey      string `env:"SECRET_KEY"`
	Endpoint       string `env:"ENDPOINT"`
	BaseURL        string `env:"BASE_URL"`
	ForcePathStyle bool   `env:"FORCE_PATH_STYLE"`
	PublicRead     bool   `env:"PUBLIC_READ"`
}

// publicBase is where uploaded objects can be fetched from.
func (c S3Config) publicBase() string {
	base := c.BaseURL
	switch {
	case base != "":
	case c.Endpoint != "":
		base = strings.TrimSuffix(c.Endpoint, "/") + "/" + c.Bucket
	default:
		base = "https://" + c.Bucket + ".s3." + c.Region + ".amazonaws.com"
	}
	return strings.TrimSuffix(base, "/") + "/"
}

// S3Option customizes NewS3Storage.
type S3Option func(*S3Storage)

// WithS3Client skips AWS config loading and uses client as is.
func WithS3Client(client S3Client) S3Option {
	return func(s *S3Storage) { s.client = client }
}

// WithS3UploadTimeout bounds each Put. Zero leaves the caller's deadline.
func WithS3UploadTimeout(d time.Duration) S3Option {
	return func(s *S3Storage) { s.uploadTimeout = d }
}

// S3Storage stores objects in one bucket. Safe for concurrent use.
type S3Storage struct {
	client        S3Client
	bucket        string
	baseURL       string
	publicRead    bool
	uploadTimeout time.Duration
}

// NewS3Storage loads the default AWS credential chain unless static keys are
// configured or WithS3Client supplies a client.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: s3 bucket and region are required", ErrInvalidConfig)
	}

	s := &S3Storage{
		bucket:     cfg.Bucket,
		baseURL:    cfg.publicBase(),
		publicRead: cfg.PublicRead,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client != nil {
		return s, nil
	}

	load := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		load = append(load, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, load...)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %w", ErrInvalidConfig, err)
	}
	s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})
	return s, nil
}

var s3Codes = map[string]error{
	"NoSuchKey":          ErrFileNotFound,
	"NotFound":           ErrFileNotFound,
	"NoSuchBucket":       ErrBucketNotFound,
	"AccessDenied":       ErrAccessDenied,
	"RequestTimeout":     ErrRequestTimeout,
	"SlowDown":           ErrServiceUnavailable,
	"ServiceUnavailable": ErrServiceUnavailable,
}

// classify maps SDK and context errors onto the package sentinels, keeping
// the original error in the chain.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: s3 %s: %w", ErrOperationTimeout, op, err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: s3 %s: %w", ErrOperationCanceled, op, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if sentinel, ok := s3Codes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%w: s3 %s: %w", sentinel, op, err)
		}
		return fmt.Errorf("s3 %s (code: %s): %w", op, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("s3 %s: %w", op, err)
}

func (s *S3Storage) Put(ctx context.Context, p string, data []byte, contentType string) (*File, error) {
	key, err := cleanKey(p)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	mimeType := DetectMIMEType(data, contentType)
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(mimeType),
	}
	if s.publicRead {
		in.ACL = types.ObjectCannedACLPublicRead
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return nil, classify("put", err)
	}

	return &File{
		Filename:     path.Base(key),
		Size:         int64(len(data)),
		MIMEType:     mimeType,
		Extension:    path.Ext(key),
		RelativePath: key,
		URL:          s.URL(key),
	}, nil
}

// Delete reports ErrFileNotFound for a missing key; S3 itself would not.
func (s *S3Storage) Delete(ctx context.Context, p string) error {
	key, err := cleanKey(p)
	if err != nil {
		return err
	}
	if _, err := s.head(ctx, key); err != nil {
		return classify("head", err)
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
	if err != nil {
		return classify("delete", err)
	}
	return nil
}

func (s *S3Storage) Exists(ctx context.Context, p string) bool {
	key, err := cleanKey(p)
	if err != nil {
		return false
	}
	_, err = s.head(ctx, key)
	return err == nil
}

func (s *S3Storage) head(ctx context.Context, key string) (*s3.HeadObjectOutput, error) {
	return s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(key)})
}

func (s *S3Storage) URL(p string) string {
	return s.baseURL + strings.TrimPrefix(p, "/")
}
