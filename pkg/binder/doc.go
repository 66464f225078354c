// Package binder decodes HTTP request bodies into Go structs.
//
// Each binder has the signature func(r *http.Request, v any) error and plugs
// into handler.WithBinder. Two binders are provided:
//
//   - JSON decodes application/json bodies (max 1MB). Unknown fields are ignored.
//   - Form decodes application/x-www-form-urlencoded and multipart/form-data
//     bodies. Multipart bodies go through the formdata parser, so a request
//     carries at most one file, bound to a *formdata.File field.
//
// After decoding, every string field is trimmed and stripped of null bytes.
//
// # Struct Tags
//
//	type ContactRequest struct {
//		Name    string         `form:"name"`
//		Email   string         `form:"email"`
//		Message string         `form:"message"`
//		Photo   *formdata.File `file:"*"`
//		Ignored string         `form:"-"`
//	}
//
// Untagged fields are not bound by Form. Scalar kinds, pointers to them and
// slices of them are supported; slices also accept comma-separated values.
//
// # Errors
//
// Every failure wraps one of ErrUnsupportedMediaType, ErrMissingContentType,
// ErrInvalidJSON, ErrInvalidForm or ErrBodyTooLarge. IsBindError reports
// whether an error came from the binder, which callers map to 400 Bad Request.
// Multipart parse failures also match formdata.ErrMalformedRequest.
package binder
