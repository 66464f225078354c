package formdata

import "bytes"

// Split cuts body on every occurrence of the "--"+boundary delimiter.
//
// The first chunk is the preamble. A chunk that starts with "--" follows the
// close delimiter and holds the epilogue. Joining the chunks with the same
// delimiter reproduces body exactly.
func Split(body []byte, boundary string) [][]byte {
	return bytes.Split(body, Delimiter(boundary))
}

// Delimiter returns the byte sequence that separates parts for boundary.
func Delimiter(boundary string) []byte {
	return []byte("--" + boundary)
}
