package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/eyetechsecurities/webforms/pkg/logger"
)

var (
	// ErrStart wraps listen and serve failures returned by Run.
	ErrStart = errors.New("httpserver: start")
	// ErrShutdown wraps a graceful shutdown that did not finish in time.
	ErrShutdown = errors.New("httpserver: shutdown")
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for lifecycle events and net/http's own
// error log. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithListener serves on ln instead of listening on Config.Addr.
func WithListener(ln net.Listener) Option {
	return func(s *Server) { s.ln = ln }
}

// Server runs one handler until its context ends or the process receives
// SIGINT or SIGTERM.
type Server struct {
	cfg Config
	log *slog.Logger
	ln  net.Listener

	mu       sync.Mutex
	srv      *http.Server
	stopOnce sync.Once
	stopErr  error
}

func New(cfg Config, opts ...Option) *Server {
	s := &Server{cfg: cfg, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr reports the bound address once Run is serving, or Config.Addr before.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.cfg.Addr
}

// Run blocks until the server stops. A nil handler answers 404.
// Stopping through ctx, a signal or Shutdown returns nil.
func (s *Server) Run(ctx context.Context, h http.Handler) error {
	if h == nil {
		h = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: already running", ErrStart)
	}
	if s.ln == nil {
		ln, err := net.Listen("tcp", s.cfg.Addr)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("%w: %w", ErrStart, err)
		}
		s.ln = ln
	}
	s.srv = &http.Server{
		Handler:           h,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
	srv, ln := s.srv, s.ln
	s.mu.Unlock()

	log := s.log.With(logger.Component("httpserver"))
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()
	log.InfoContext(ctx, "http server listening", slog.String("addr", ln.Addr().String()))

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	select {
	case <-sigCtx.Done():
		log.InfoContext(ctx, "http server shutting down")
		if serr := s.Shutdown(context.WithoutCancel(ctx)); serr != nil {
			log.ErrorContext(ctx, "graceful shutdown failed", logger.Error(serr))
		}
		err = <-served
	case err = <-served:
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}
	log.InfoContext(ctx, "http server stopped")
	return nil
}

// Shutdown drains in-flight requests within Config.ShutdownTimeout. It is a
// no-op before Run; later calls return the first result.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	s.stopOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout())
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			s.stopErr = fmt.Errorf("%w: %w", ErrShutdown, err)
		}
	})
	return s.stopErr
}
