package forms

import "errors"

var (
	// ErrUpstream marks failures of the email provider, blob storage or PDF
	// renderer. The cause is logged; clients only see a generic message.
	ErrUpstream = errors.New("forms: upstream failure")

	ErrInvalidNumber = errors.New("forms: invalid number")
)
