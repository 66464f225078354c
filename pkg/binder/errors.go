package binder

import "errors"

// Common binding errors
var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidJSON          = errors.New("invalid JSON request body")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrBodyTooLarge         = errors.New("request body too large")
)

// IsBindError reports whether err was produced while decoding a request,
// meaning the client sent something the server cannot read.
func IsBindError(err error) bool {
	return errors.Is(err, ErrUnsupportedMediaType) ||
		errors.Is(err, ErrMissingContentType) ||
		errors.Is(err, ErrInvalidJSON) ||
		errors.Is(err, ErrInvalidForm) ||
		errors.Is(err, ErrBodyTooLarge)
}
