// Package app assembles the web forms relay from its configuration. Both
// binaries build the same handler through New; only the transport differs.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/eyetechsecurities/webforms/internal/forms"
	"github.com/eyetechsecurities/webforms/pkg/clientip"
	"github.com/eyetechsecurities/webforms/pkg/email"
	"github.com/eyetechsecurities/webforms/pkg/email/templates"
	"github.com/eyetechsecurities/webforms/pkg/file"
	"github.com/eyetechsecurities/webforms/pkg/httpserver"
	"github.com/eyetechsecurities/webforms/pkg/invoice"
	"github.com/eyetechsecurities/webforms/pkg/logger"
	"github.com/eyetechsecurities/webforms/pkg/ratelimiter"
	"github.com/eyetechsecurities/webforms/pkg/redis"
	"github.com/eyetechsecurities/webforms/pkg/requestid"
)

const (
	probeKey        = "healthz/ready"
	rateLimitPrefix = "webforms:ratelimit:"
)

// NewLogger builds the process logger. Records carry the service name and
// environment, plus the request ID and client IP when the context has them.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithLevelString(cfg.LogLevel),
		logger.WithOutput(w),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
}

// New wires storage, email, layouts and invoices into the router. When
// REDIS_URL is set, rate limits are kept in Redis and Redis joins the
// readiness checks.
func New(ctx context.Context, cfg Config, log *slog.Logger) (http.Handler, error) {
	if log == nil {
		log = logger.Discard()
	}

	sender, err := email.NewSender(cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("email sender: %w", err)
	}
	if !cfg.Email.UsePostmark() {
		log.WarnContext(ctx, "postmark tokens not set, writing emails to disk",
			logger.Component("app"),
			slog.String("dir", cfg.Email.DevOutputDir),
		)
	}

	storage, err := file.New(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	checks := []httpserver.Check{storageCheck(storage)}
	var store ratelimiter.Store
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		store = ratelimiter.NewRedisStore(client, rateLimitPrefix)
		checks = append(checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	} else {
		store = ratelimiter.NewMemoryStore()
	}

	opts := []forms.Option{forms.WithLogger(log)}
	if rl, ok := cfg.Forms.RateLimit(); ok {
		limiter, err := ratelimiter.NewBucket(store, rl)
		if err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		opts = append(opts, forms.WithLimiter(limiter))
	}

	svc := forms.NewService(cfg.Forms, sender, storage,
		invoice.NewRenderer(cfg.Invoice.Business()),
		templates.NewRenderer(cfg.Layout),
		opts...,
	)

	ro := forms.RouterOptions{
		Forms:  svc,
		Logger: log,
		Checks: checks,
	}
	if local, ok := storage.(*file.LocalStorage); ok {
		ro.Uploads, ro.UploadsPath = local.Handler(), local.BaseURL()
	}

	return forms.Router(ro), nil
}

// storageCheck reports ready once a probe object can be found or written.
func storageCheck(s file.Storage) httpserver.Check {
	return httpserver.Check{
		Name: "storage",
		Fn: func(ctx context.Context) error {
			if s.Exists(ctx, probeKey) {
				return nil
			}
			_, err := s.Put(ctx, probeKey, []byte("ok"), "text/plain")
			return err
		},
	}
}
