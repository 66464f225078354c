package forms

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eyetechsecurities/webforms/pkg/clientip"
	"github.com/eyetechsecurities/webforms/pkg/httpserver"
	"github.com/eyetechsecurities/webforms/pkg/requestid"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the top-level router. Only Forms is required.
type RouterOptions struct {
	Forms  Mountable
	Logger *slog.Logger

	// Checks run on /readyz. /healthz never runs checks.
	Checks []httpserver.Check

	// Uploads serves locally stored photos under UploadsPath, e.g. "/uploads/".
	Uploads     http.Handler
	UploadsPath string
}

// Router wires the form endpoints with health checks and request IDs.
//
// Example:
//
//	svc := forms.NewService(cfg, sender, storage, invoices, layouts)
//	http.ListenAndServe(":8080", forms.Router(forms.RouterOptions{Forms: svc}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware)

	r.Get("/healthz", httpserver.HealthCheckHandler(opts.Logger))
	r.Get("/readyz", httpserver.HealthCheckHandler(opts.Logger, opts.Checks...))

	if opts.Uploads != nil && strings.HasPrefix(opts.UploadsPath, "/") {
		r.Mount(strings.TrimSuffix(opts.UploadsPath, "/"), opts.Uploads)
	}
	if opts.Forms != nil {
		r.Mount("/", opts.Forms.Handle())
	}

	return r
}
