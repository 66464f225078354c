package qrcode

import (
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	ErrEmptyContent = errors.New("qrcode: empty content")
	ErrEncode       = errors.New("qrcode: encode")
)

// PNG encodes content as a square PNG, size pixels wide (256 when size is
// not positive), at medium error correction.
func PNG(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = 256
	}
	img, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return img, nil
}
