package validator

import (
	"errors"
	"strings"
)

// ValidationError describes one failed rule. Code is a stable identifier
// such as "validation.digits"; Params holds the values used in Message.
type ValidationError struct {
	Field   string
	Message string
	Code    string
	Params  map[string]any
}

// ValidationErrors is returned by Apply. Order follows the rule order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, e := range ve {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Field + ": " + e.Message)
	}
	return b.String()
}

// First returns the earliest failure.
func (ve ValidationErrors) First() (ValidationError, bool) {
	if len(ve) == 0 {
		return ValidationError{}, false
	}
	return ve[0], true
}

func (ve ValidationErrors) Has(field string) bool {
	_, ok := ve.Map()[field]
	return ok
}

// Fields lists failing fields once each, in order of first failure.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	seen := make(map[string]struct{}, len(ve))
	for _, e := range ve {
		if _, dup := seen[e.Field]; !dup {
			seen[e.Field] = struct{}{}
			fields = append(fields, e.Field)
		}
	}
	return fields
}

// Map keeps the first message per field.
func (ve ValidationErrors) Map() map[string]string {
	m := make(map[string]string, len(ve))
	for _, e := range ve {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

// ExtractValidationErrors unwraps err to ValidationErrors, or returns nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
