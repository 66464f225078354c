package lambdaproxy

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/eyetechsecurities/webforms/pkg/logger"
)

// Adapter serves API Gateway proxy events through an http.Handler.
type Adapter struct {
	handler http.Handler
	log     *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for rejected events and request timing.
func WithLogger(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// New returns an Adapter for h.
func New(h http.Handler, opts ...Option) *Adapter {
	a := &Adapter{handler: h, log: logger.Discard()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle is the Lambda entry point. Events that cannot be turned into a
// request get a 400 response; the returned error is always nil so API
// Gateway never sees a function failure for client mistakes.
func (a *Adapter) Handle(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	log := a.log.With(
		logger.RequestID(ev.RequestContext.RequestID),
		logger.Component("lambdaproxy"),
	)

	r, err := NewRequest(ctx, ev)
	if err != nil {
		log.WarnContext(ctx, "rejected proxy event",
			logger.Error(err),
			slog.String("method", ev.HTTPMethod),
			slog.String("path", ev.Path),
		)
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8"},
			Body:       `{"error":"Invalid request body"}`,
		}, nil
	}

	w := newResponseWriter()
	a.handler.ServeHTTP(w, r)
	resp := w.proxyResponse()

	log.InfoContext(ctx, "proxy request served",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.StatusCode(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)
	return resp, nil
}
