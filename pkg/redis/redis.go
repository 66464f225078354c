// Package redis connects to Redis for state that must be shared between
// processes, such as submission rate limits across Lambda containers.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrInvalidURL = errors.New("redis: invalid connection url")
	ErrNotReady   = errors.New("redis: not ready")
)

// Config is optional: an empty URL means Redis is not used.
type Config struct {
	URL            string        `env:"REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"1s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

func (c Config) Enabled() bool { return c.URL != "" }

// Connect pings until the server answers, up to RetryAttempts times within
// ConnectTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)
	var pingErr error
	for attempt := range max(cfg.RetryAttempts, 1) {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				_ = client.Close()
				return nil, fmt.Errorf("%w: %w", ErrNotReady, errors.Join(pingErr, ctx.Err()))
			case <-time.After(cfg.RetryInterval):
			}
		}
		if pingErr = client.Ping(ctx).Err(); pingErr == nil {
			return client, nil
		}
	}
	_ = client.Close()
	return nil, fmt.Errorf("%w: %w", ErrNotReady, pingErr)
}

// Healthcheck pings the server, for use as a readiness check.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrNotReady, err)
		}
		return nil
	}
}
