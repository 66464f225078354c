package file

import (
	"context"
	"fmt"
	"time"
)

// Storage drivers.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures the storage backend.
type Config struct {
	Driver        string        `env:"STORAGE_DRIVER" envDefault:"local"`
	LocalDir      string        `env:"STORAGE_LOCAL_DIR" envDefault:"./tmp/uploads"`
	LocalBaseURL  string        `env:"STORAGE_LOCAL_BASE_URL" envDefault:"/uploads/"`
	UploadTimeout time.Duration `env:"STORAGE_UPLOAD_TIMEOUT" envDefault:"30s"`
	S3            S3Config      `envPrefix:"STORAGE_S3_"`
}

// New builds the Storage named by cfg.Driver.
func New(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch cfg.Driver {
	case DriverLocal, "":
		s, err := NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverS3:
		if cfg.UploadTimeout > 0 {
			opts = append([]S3Option{WithS3UploadTimeout(cfg.UploadTimeout)}, opts...)
		}
		s, err := NewS3Storage(ctx, cfg.S3, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
