// Package httpserver wraps net/http with graceful shutdown, server timeouts,
// health-check handlers and slog logging.
//
// Run blocks until the context is canceled or SIGINT/SIGTERM arrives, then
// shuts the server down within the configured deadline. Listen failures are
// wrapped with ErrStart and shutdown failures with ErrShutdown.
//
//	r := chi.NewRouter()
//	r.Get("/healthz", httpserver.HealthCheckHandler(log))
//	r.Get("/readyz", httpserver.HealthCheckHandler(log, httpserver.Check{
//		Name: "storage",
//		Fn:   func(ctx context.Context) error { return pingBucket(ctx) },
//	}))
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, r); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
