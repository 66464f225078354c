package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	spaceRun   = regexp.MustCompile(`\s+`)
	anyTag     = regexp.MustCompile(`<[^>]*>`)
	scriptBody = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(script|style)>`)
)

// Transform is one step of a cleaning pipeline.
type Transform func(string) string

// Apply runs transforms over s left to right.
func Apply(s string, transforms ...Transform) string {
	for _, t := range transforms {
		s = t(s)
	}
	return s
}

// Compose fixes a pipeline for reuse.
func Compose(transforms ...Transform) Transform {
	return func(s string) string { return Apply(s, transforms...) }
}

func Trim(s string) string { return strings.TrimSpace(s) }

func RemoveNullBytes(s string) string { return strings.ReplaceAll(s, "\x00", "") }

// StripHTML drops script and style elements with their content, then any
// remaining tags, and decodes entities.
func StripHTML(s string) string {
	s = scriptBody.ReplaceAllString(s, "")
	return html.UnescapeString(anyTag.ReplaceAllString(s, ""))
}

// removeControl keeps tab, CR and LF.
func removeControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !strings.ContainsRune("\t\r\n", r) {
			return -1
		}
		return r
	}, s)
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// FormText cleans a free-text field. Line breaks survive.
func FormText(s string) string {
	return Apply(s, RemoveNullBytes, StripHTML, removeControl, Trim)
}

// FormLine cleans a single-line field such as a name or phone number; any
// whitespace run, line breaks included, becomes one space.
func FormLine(s string) string {
	return collapseSpace(FormText(s))
}
