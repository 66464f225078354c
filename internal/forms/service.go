package forms

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/matcornic/hermes/v2"

	"github.com/eyetechsecurities/webforms/handler"
	"github.com/eyetechsecurities/webforms/pkg/binder"
	"github.com/eyetechsecurities/webforms/pkg/clientip"
	"github.com/eyetechsecurities/webforms/pkg/email"
	"github.com/eyetechsecurities/webforms/pkg/email/templates"
	"github.com/eyetechsecurities/webforms/pkg/file"
	"github.com/eyetechsecurities/webforms/pkg/formdata"
	"github.com/eyetechsecurities/webforms/pkg/invoice"
	"github.com/eyetechsecurities/webforms/pkg/logger"
	"github.com/eyetechsecurities/webforms/pkg/ratelimiter"
	"github.com/eyetechsecurities/webforms/pkg/sanitizer"
)

// Client-facing messages for failures the caller cannot fix.
const (
	msgServiceBookingFailed      = handler.DefaultErrorMessage
	msgInstallationBookingFailed = "Failed to send installation booking email"
	msgInvoiceFailed             = "Failed to send invoice email"
	msgInstallationInvoiceFailed = "Failed to send installation invoice email"
	msgContactFailed             = "Failed to send message. Please try again later."
	msgContactMethodNotAllowed   = "Method not allowed."
	msgTooManyRequests           = "Too many requests"
	msgContactTooManyRequests    = "Too many submissions. Please try again later."
)

// InvoiceRenderer produces the PDF attached to invoice emails.
type InvoiceRenderer interface {
	Render(inv invoice.Invoice) ([]byte, error)
}

// LayoutRenderer produces HTML and plain-text bodies for locally rendered emails.
type LayoutRenderer interface {
	Render(e hermes.Email) (templates.Content, error)
}

// Service serves the booking, invoice and contact forms.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	cfg      Config
	sender   email.EmailSender
	storage  file.Storage
	invoices InvoiceRenderer
	layouts  LayoutRenderer
	limiter  ratelimiter.Limiter
	log      *slog.Logger
	now      func() time.Time

	errorHandler        handler.ErrorHandler
	contactErrorHandler handler.ErrorHandler
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, which names uploaded photos.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLimiter throttles submissions per client IP.
func WithLimiter(l ratelimiter.Limiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}

// WithLogger sets the logger used for request and error logs.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// NewService builds the form endpoints around their collaborators.
func NewService(
	cfg Config,
	sender email.EmailSender,
	storage file.Storage,
	invoices InvoiceRenderer,
	layouts LayoutRenderer,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:      cfg,
		sender:   sender,
		storage:  storage,
		invoices: invoices,
		layouts:  layouts,
		log:      logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.With(logger.Component("forms"))
	s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{})
	s.contactErrorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
		Render:         handler.RenderText,
		DefaultMessage: msgContactFailed,
	})
	return s
}

// Handle returns the router for the form endpoints:
//
//	POST /api/send-email                 service booking (multipart)
//	POST /api/send-installation-booking  installation booking (JSON)
//	POST /api/send-invoice               service invoice (JSON)
//	POST /api/send-installation-invoice  installation invoice (JSON)
//	POST /submit-form                    contact form (urlencoded or multipart)
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(api chi.Router) {
		api.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			_ = handler.JSONError(http.StatusMethodNotAllowed, handler.ErrMethodNotAllowed.Key, nil).Render(w, r)
		})
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			_ = handler.JSONError(http.StatusNotFound, handler.ErrNotFound.Key, nil).Render(w, r)
		})

		api = api.With(s.throttle(func(w http.ResponseWriter, r *http.Request) {
			_ = handler.JSONError(http.StatusTooManyRequests, msgTooManyRequests, nil).Render(w, r)
		}))

		api.Post("/send-email", handler.Wrap(s.serviceBooking,
			handler.WithBinder(binder.Form(
				binder.WithMaxFormSize(s.maxFormSize()),
			)),
			handler.WithErrorHandler(s.errorHandler),
		))

		api.Post("/send-installation-booking", handler.Wrap(s.installationBooking,
			handler.WithBinder(binder.JSON()),
			handler.WithErrorHandler(s.errorHandler),
		))

		api.Post("/send-invoice", handler.Wrap(s.serviceInvoice,
			handler.WithBinder(binder.JSON()),
			handler.WithErrorHandler(s.errorHandler),
		))

		api.Post("/send-installation-invoice", handler.Wrap(s.installationInvoice,
			handler.WithBinder(binder.JSON()),
			handler.WithErrorHandler(s.errorHandler),
		))
	})

	// The contact form is posted by a plain HTML form, so it answers in text.
	r.Route("/submit-form", func(contact chi.Router) {
		contact.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			_ = handler.Text(http.StatusMethodNotAllowed, msgContactMethodNotAllowed).Render(w, r)
		})

		contact = contact.With(s.throttle(func(w http.ResponseWriter, r *http.Request) {
			_ = handler.Text(http.StatusTooManyRequests, msgContactTooManyRequests).Render(w, r)
		}))

		contact.Post("/", handler.Wrap(s.contact,
			handler.WithBinder(binder.Form()),
			handler.WithErrorHandler(s.contactErrorHandler),
		))
	})

	return r
}

// throttle limits submissions per client IP and answers denied ones with deny.
func (s *Service) throttle(deny http.HandlerFunc) func(http.Handler) http.Handler {
	if s.limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return ratelimiter.Middleware(s.limiter, clientip.FromRequest,
		func(w http.ResponseWriter, r *http.Request, res ratelimiter.Result) {
			s.log.WarnContext(r.Context(), "submission throttled",
				slog.String("path", r.URL.Path),
				slog.Int("limit", res.Limit),
			)
			deny(w, r)
		})
}

// maxFormSize leaves room for the text fields and multipart framing around
// the largest photo, so an oversized photo fails validation instead of the
// body limit.
func (s *Service) maxFormSize() int64 {
	return s.cfg.MaxUploadSize + 1<<20
}

// upstream runs fn with the configured send timeout and marks its error as
// an upstream failure.
func (s *Service) upstream(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SendTimeout)
		defer cancel()
	}
	if err := fn(ctx); err != nil {
		return errors.Join(ErrUpstream, err)
	}
	return nil
}

// send delivers params and logs the outcome without the full address.
func (s *Service) send(ctx context.Context, form string, params email.SendEmailParams) error {
	start := s.now()
	err := s.upstream(ctx, func(ctx context.Context) error {
		return s.sender.SendEmail(ctx, params)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "email sent",
		logger.Form(form),
		logger.Recipient(sanitizer.MaskEmail(params.SendTo)),
		logger.Duration(s.now().Sub(start)),
	)
	return nil
}

// render lays out a locally rendered email.
func (s *Service) render(e hermes.Email) (templates.Content, error) {
	content, err := s.layouts.Render(e)
	if err != nil {
		return templates.Content{}, errors.Join(ErrUpstream, err)
	}
	return content, nil
}

// uploadPhoto stores a booking photo and returns its public URL.
func (s *Service) uploadPhoto(ctx context.Context, photo *formdata.File) (string, error) {
	key := photoKey(s.now(), photo.Name)
	contentType := file.DetectMIMEType(photo.Data, photo.ContentType)

	var stored *file.File
	err := s.upstream(ctx, func(ctx context.Context) error {
		var err error
		stored, err = s.storage.Put(ctx, key, photo.Data, contentType)
		return err
	})
	if err != nil {
		return "", err
	}

	s.log.InfoContext(ctx, "photo uploaded",
		logger.UploadKey(key),
		logger.Size(photo.Size()),
		slog.String("content_type", contentType),
	)
	return stored.URL, nil
}

func photoKey(now time.Time, filename string) string {
	return "issues/" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + file.ObjectName(filename)
}
