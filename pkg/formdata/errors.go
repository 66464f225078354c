package formdata

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRequest matches every error returned by this package.
	ErrMalformedRequest = errors.New("malformed form data")

	ErrMissingBoundary = errors.New("missing boundary parameter in content type")
	ErrNoParts         = errors.New("no form-data parts found")
	ErrMissingName     = errors.New("form-data part has no name attribute")
	ErrMalformedPart   = errors.New("malformed part headers")
	ErrTooManyParts    = errors.New("too many form-data parts")
	ErrMultipleFiles   = errors.New("more than one file part")
)

// MalformedRequestError describes why a request body could not be parsed.
type MalformedRequestError struct {
	// Part is the 1-based index of the offending part, 0 when the request as a whole is at fault.
	Part int
	// Field is the form field name of the offending part, if known.
	Field string
	Err   error
}

func (e *MalformedRequestError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: part %d (%s): %v", ErrMalformedRequest, e.Part, e.Field, e.Err)
	case e.Part > 0:
		return fmt.Sprintf("%s: part %d: %v", ErrMalformedRequest, e.Part, e.Err)
	default:
		return fmt.Sprintf("%s: %v", ErrMalformedRequest, e.Err)
	}
}

func (e *MalformedRequestError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedRequest.
func (e *MalformedRequestError) Is(target error) bool {
	return target == ErrMalformedRequest
}

func malformed(part int, field string, err error) error {
	return &MalformedRequestError{Part: part, Field: field, Err: err}
}
