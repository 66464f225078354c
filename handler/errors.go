package handler

import (
	"errors"
	"net/http"
)

// Package-level errors for common failure scenarios
var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
)

// HTTPError represents an HTTP error with a status code and a client-facing message.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // Message sent to the client
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest           = HTTPError{Code: http.StatusBadRequest, Key: "Bad request"}
	ErrNotFound             = HTTPError{Code: http.StatusNotFound, Key: "Not found"}
	ErrMethodNotAllowed     = HTTPError{Code: http.StatusMethodNotAllowed, Key: "Method not allowed"}
	ErrRequestTooLarge      = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "Request body too large"}
	ErrInternalServerError  = HTTPError{Code: http.StatusInternalServerError, Key: "Internal Server Error"}
	ErrUnsupportedMediaType = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "Unsupported media type"}
)

// NewHTTPError creates a custom HTTP error with the given status code and message.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

// PublicError pairs an internal cause with the message and details that may
// be shown to the caller. The cause is only logged.
type PublicError struct {
	Code    int
	Message string
	Details map[string]string
	Err     error
}

// Public creates a PublicError. Details are taken from err when it carries
// field errors (see the Detailer interface).
func Public(code int, message string, err error) *PublicError {
	pe := &PublicError{Code: code, Message: message, Err: err}
	var d Detailer
	if errors.As(err, &d) {
		pe.Details = d.Map()
	}
	return pe
}

func (e *PublicError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *PublicError) Unwrap() error {
	return e.Err
}

// Render lets a handler return a PublicError directly. Wrap passes it to
// the error handler, so Render only runs when PublicError is used elsewhere.
func (e *PublicError) Render(w http.ResponseWriter, r *http.Request) error {
	return JSONError(e.Code, e.Message, e.Details).Render(w, r)
}

// Detailer is implemented by errors that map field names to messages,
// such as validator.ValidationErrors.
type Detailer interface {
	error
	Map() map[string]string
}
