package binder

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

// mediaType returns the lower-cased media type of the request without parameters.
func mediaType(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return "", ErrMissingContentType
	}
	// Parameters are left to the decoders, which are more lenient than mime.ParseMediaType.
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt)), nil
}

// readBody reads at most limit bytes of the request body.
// Read failures are wrapped with bindErr.
func readBody(r *http.Request, limit int64, bindErr error) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read request body: %v", bindErr, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: max %d bytes", ErrBodyTooLarge, limit)
	}
	return body, nil
}
