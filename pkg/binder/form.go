package binder

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/eyetechsecurities/webforms/pkg/formdata"
)

// DefaultMaxFormSize is the default maximum size for form request bodies (10MB).
const DefaultMaxFormSize = 10 << 20 // 10 MB

// FormOption configures the Form binder.
type FormOption func(*formConfig)

type formConfig struct {
	maxSize     int64
	partOptions []formdata.Option
}

// WithMaxFormSize limits the request body size. Non-positive values are ignored.
func WithMaxFormSize(n int64) FormOption {
	return func(c *formConfig) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithPartOptions passes options through to formdata.Parse for multipart bodies.
func WithPartOptions(opts ...formdata.Option) FormOption {
	return func(c *formConfig) {
		c.partOptions = append(c.partOptions, opts...)
	}
}

// Form creates a unified binder for form data and a file upload.
// It handles application/x-www-form-urlencoded and multipart/form-data content
// types. Multipart bodies are decoded by the formdata package, so the request
// carries at most one file.
//
// Supported struct tags:
//   - `form:"name"` - binds to form field "name"
//   - `form:"-"`    - skips the field
//   - `file:"name"` - binds the uploaded file when it came from field "name"
//   - `file:"*"`    - binds the uploaded file whatever its field name
//
// Form fields support string, int, uint, float and bool kinds, pointers to
// them and slices of them. File fields must be *formdata.File.
//
// Example:
//
//	type BookingRequest struct {
//		Name  string         `form:"name"`
//		Phone string         `form:"phone"`
//		Photo *formdata.File `file:"*"`
//	}
func Form(opts ...FormOption) func(r *http.Request, v any) error {
	cfg := formConfig{maxSize: DefaultMaxFormSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		mt, err := mediaType(r)
		if err != nil {
			return err
		}

		body, err := readBody(r, cfg.maxSize, ErrInvalidForm)
		if err != nil {
			return err
		}

		var (
			values map[string][]string
			file   *formdata.File
		)

		switch mt {
		case "application/x-www-form-urlencoded":
			parsed, err := url.ParseQuery(string(body))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = parsed

		case "multipart/form-data":
			res, err := formdata.Parse(body, r.Header.Get("Content-Type"), cfg.partOptions...)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}
			values = make(map[string][]string, len(res.Fields))
			for k, v := range res.Fields {
				values[k] = []string{v}
			}
			file = res.File

		default:
			return fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mt)
		}

		if err := bindFields(v, values, file); err != nil {
			return err
		}

		sanitizeStruct(v)
		return nil
	}
}
