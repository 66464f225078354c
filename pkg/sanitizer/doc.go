// Package sanitizer cleans untrusted form input before it is validated or
// placed in an email.
//
// Functions are plain string transforms that compose with Apply and Compose:
//
//	name := sanitizer.FormLine(r.FormValue("name"))
//	message := sanitizer.FormText(r.FormValue("message"))
//	email := sanitizer.Apply(r.FormValue("email"), sanitizer.SanitizeEmail, sanitizer.NormalizeEmail)
//
// MaskEmail and MaskPhone redact personal data for log attributes.
package sanitizer
