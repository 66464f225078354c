package sanitizer

import (
	"regexp"
	"strings"
)

var (
	dotRun   = regexp.MustCompile(`\.+`)
	nonDigit = regexp.MustCompile(`\D`)
)

// SanitizeEmail removes characters that never belong in an address typed
// into a form, line breaks included.
func SanitizeEmail(email string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '"', '\'', ' ', '\t', ',', ';', '\r', '\n', 0:
			return -1
		}
		return r
	}, removeControl(email)))
}

// NormalizeEmail lowercases, trims and collapses repeated dots in the local
// part. Input without exactly one @ is only trimmed and lowercased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}
	return strings.Trim(dotRun.ReplaceAllString(local, "."), ".") + "@" + domain
}

// MaskEmail keeps the first character of the local part.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return strings.Repeat("*", len(email))
	}
	return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
}

func NormalizePhone(phone string) string {
	return nonDigit.ReplaceAllString(phone, "")
}

// MaskPhone keeps the last four digits.
func MaskPhone(phone string) string {
	d := NormalizePhone(phone)
	if len(d) < 4 {
		return strings.Repeat("*", len(d))
	}
	return strings.Repeat("*", len(d)-4) + d[len(d)-4:]
}
