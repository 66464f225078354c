package formdata

import (
	"mime"
	"strings"
)

const boundaryParam = "boundary="

// ExtractBoundary returns the boundary parameter of a multipart Content-Type
// header value. Quoted values, a trailing semicolon and additional parameters
// are tolerated. Headers that mime.ParseMediaType rejects still yield the raw
// text following "boundary=" up to the next semicolon.
func ExtractBoundary(contentType string) (string, error) {
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if b := params["boundary"]; b != "" {
			return b, nil
		}
	}

	idx := strings.Index(strings.ToLower(contentType), boundaryParam)
	if idx < 0 {
		return "", malformed(0, "", ErrMissingBoundary)
	}

	raw := contentType[idx+len(boundaryParam):]
	if semi := strings.IndexByte(raw, ';'); semi >= 0 {
		raw = raw[:semi]
	}
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	if raw == "" {
		return "", malformed(0, "", ErrMissingBoundary)
	}

	return raw, nil
}
