package lambdaproxy

import "errors"

var (
	ErrInvalidEvent = errors.New("invalid API Gateway proxy event")
	ErrDecodeBody   = errors.New("failed to decode base64 request body")
)
