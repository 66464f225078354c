package handler

import "net/http"

// HandlerFunc handles a decoded request of type R.
//
//	send := func(ctx handler.Context, req InvoiceRequest) handler.Response {
//		if err := deliver(ctx, req); err != nil {
//			return handler.Public(http.StatusInternalServerError, "Failed to send invoice email", err)
//		}
//		return handler.Message("Invoice email sent successfully")
//	}
type HandlerFunc[R any] func(ctx Context, req R) Response

// Response renders itself to an http.ResponseWriter.
// A Response that is also an error is routed to the error handler instead.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind decodes r into v, which is always a pointer.
type Bind func(r *http.Request, v any) error

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(ctx Context, err error)

// WrapOption configures Wrap.
type WrapOption func(*wrapConfig)

type wrapConfig struct {
	bind   Bind
	onFail ErrorHandler
}

// WithBinder sets the request decoder. Without one the handler receives
// the zero value of R.
func WithBinder(b Bind) WrapOption {
	return func(c *wrapConfig) { c.bind = b }
}

// WithErrorHandler replaces the default error handler, which renders
// ClassifyError as JSON and logs nothing.
func WithErrorHandler(h ErrorHandler) WrapOption {
	return func(c *wrapConfig) {
		if h != nil {
			c.onFail = h
		}
	}
}

func renderUnlogged(ctx Context, err error) {
	_ = RenderJSON(ctx.ResponseWriter(), ctx.Request(), ClassifyError(err, DefaultErrorMessage))
}

// Wrap adapts h to net/http:
//
//	r.Post("/api/send-invoice", handler.Wrap(send,
//		handler.WithBinder(binder.JSON()),
//		handler.WithErrorHandler(errHandler),
//	))
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption) http.HandlerFunc {
	cfg := wrapConfig{onFail: renderUnlogged}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		if cfg.bind != nil {
			if err := cfg.bind(r, &req); err != nil {
				cfg.onFail(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		switch v := resp.(type) {
		case nil:
			cfg.onFail(ctx, ErrNilResponse)
		case error:
			cfg.onFail(ctx, v)
		default:
			if err := resp.Render(w, r); err != nil {
				cfg.onFail(ctx, err)
			}
		}
	}
}
