package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/eyetechsecurities/webforms/pkg/binder"
	"github.com/eyetechsecurities/webforms/pkg/formdata"
	"github.com/eyetechsecurities/webforms/pkg/logger"
	"github.com/eyetechsecurities/webforms/pkg/requestid"
	"github.com/eyetechsecurities/webforms/pkg/validator"
)

// DefaultErrorMessage is sent for errors that carry no client-facing message.
const DefaultErrorMessage = "Internal Server Error"

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	Details    map[string]string
	LogLevel   slog.Level
}

// ErrorRenderer writes a classified error to the client.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, info ErrorInfo) error

// RenderJSON writes {"error": ..., "details": {...}}.
func RenderJSON(w http.ResponseWriter, r *http.Request, info ErrorInfo) error {
	return JSONError(info.StatusCode, info.Message, info.Details).Render(w, r)
}

// RenderText writes the message as text/plain. Details are dropped.
func RenderText(w http.ResponseWriter, r *http.Request, info ErrorInfo) error {
	return Text(info.StatusCode, info.Message).Render(w, r)
}

// ErrorHandlerConfig configures the default error handler
type ErrorHandlerConfig struct {
	// Render writes the error response (default: RenderJSON)
	Render ErrorRenderer

	// DefaultMessage replaces DefaultErrorMessage for unclassified errors
	DefaultMessage string
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// determineLogLevel maps HTTP status codes to appropriate log levels
func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// ClassifyError maps err to a status code and a message that is safe to
// send to the client. Unknown errors become a 500 with defaultMessage.
func ClassifyError(err error, defaultMessage string) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Message:    defaultMessage,
	}

	var (
		publicErr *PublicError
		validErr  validator.ValidationErrors
		malformed *formdata.MalformedRequestError
		httpErr   HTTPError
	)

	switch {
	case errors.As(err, &publicErr):
		info.StatusCode = publicErr.Code
		info.Message = publicErr.Message
		info.Details = publicErr.Details

	case errors.As(err, &validErr):
		info.StatusCode = http.StatusBadRequest
		info.Message = "Validation failed"
		if first, ok := validErr.First(); ok {
			info.Message = first.Message
		}
		info.Details = validErr.Map()

	case errors.As(err, &malformed):
		info.StatusCode = http.StatusBadRequest
		info.Message = "Malformed form data"
		field := malformed.Field
		if field == "" {
			field = "body"
		}
		info.Details = map[string]string{field: malformed.Err.Error()}

	case errors.Is(err, binder.ErrBodyTooLarge):
		info.StatusCode = ErrRequestTooLarge.Code
		info.Message = ErrRequestTooLarge.Key

	case binder.IsBindError(err):
		info.StatusCode = http.StatusBadRequest
		info.Message = "Invalid request body"
		info.Details = map[string]string{"body": err.Error()}

	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	}

	info.LogLevel = determineLogLevel(info.StatusCode)
	return info
}

// logError logs the error with request context
func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		logger.StatusCode(info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}

// NewErrorHandler creates an error handler that logs the full error and
// renders only the classified, client-safe part of it.
// Configure it once when building the router and pass it to every Wrap call.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Render == nil {
		cfg.Render = RenderJSON
	}
	if cfg.DefaultMessage == "" {
		cfg.DefaultMessage = DefaultErrorMessage
	}

	return func(ctx Context, err error) {
		info := ClassifyError(err, cfg.DefaultMessage)
		logError(log, ctx, err, info)

		if renderErr := cfg.Render(ctx.ResponseWriter(), ctx.Request(), info); renderErr != nil {
			log.LogAttrs(ctx.Request().Context(), slog.LevelError, "failed to render error response",
				logger.Error(renderErr),
				logger.Component("error_handler"),
			)
		}
	}
}
