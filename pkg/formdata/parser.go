package formdata

import (
	"bufio"
	"bytes"
	"io"
	"mime"
	"net/textproto"
	"regexp"
	"strings"
)

const (
	// DefaultFilename is used when a file part carries an empty filename.
	DefaultFilename = "upload"
	// DefaultContentType is used when a file part has no Content-Type header.
	DefaultContentType = "application/octet-stream"
	// DefaultMaxParts limits the number of form-data parts in a single body.
	DefaultMaxParts = 256
)

var (
	crlf        = []byte("\r\n")
	headerEndCR = []byte("\r\n\r\n")
	headerEndLF = []byte("\n\n")

	dispositionHeader = []byte("content-disposition:")

	// Used when the Content-Disposition value is not RFC 2183 compliant.
	nameAttrRegex     = regexp.MustCompile(`(?i)\bname="([^"]*)"`)
	filenameAttrRegex = regexp.MustCompile(`(?i)\bfilename="([^"]*)"`)
)

// File is the uploaded file retained from a form submission.
type File struct {
	// Field is the form field name of the file part.
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the file size in bytes.
func (f *File) Size() int64 {
	return int64(len(f.Data))
}

// Result holds the parsed text fields and at most one file.
type Result struct {
	Fields map[string]string
	File   *File
}

// Value returns the value of the named field, or "" if absent.
func (r *Result) Value(name string) string {
	return r.Fields[name]
}

// Option configures Parse.
type Option func(*options)

type options struct {
	maxParts            int
	rejectMultipleFiles bool
}

// WithMaxParts limits how many form-data parts a body may contain.
// Non-positive values are ignored.
func WithMaxParts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxParts = n
		}
	}
}

// WithRejectMultipleFiles makes Parse fail with ErrMultipleFiles when more
// than one file part is present, instead of keeping the last one.
func WithRejectMultipleFiles() Option {
	return func(o *options) {
		o.rejectMultipleFiles = true
	}
}

// Parse decodes a buffered multipart/form-data body using the boundary from
// the contentType header value.
func Parse(body []byte, contentType string, opts ...Option) (*Result, error) {
	o := options{maxParts: DefaultMaxParts}
	for _, opt := range opts {
		opt(&o)
	}

	boundary, err := ExtractBoundary(contentType)
	if err != nil {
		return nil, err
	}

	res := &Result{Fields: make(map[string]string)}
	parts := 0

	for i, chunk := range Split(body, boundary) {
		if i == 0 {
			continue // preamble
		}
		if bytes.HasPrefix(chunk, []byte("--")) {
			break // close delimiter, the rest is epilogue
		}

		p, err := parsePart(chunk)
		if err != nil {
			return nil, malformed(i, "", err)
		}
		if p == nil {
			continue
		}

		parts++
		if parts > o.maxParts {
			return nil, malformed(i, p.name, ErrTooManyParts)
		}

		if !p.isFile {
			res.Fields[p.name] = strings.TrimSpace(string(p.content))
			continue
		}

		if res.File != nil && o.rejectMultipleFiles {
			return nil, malformed(i, p.name, ErrMultipleFiles)
		}

		filename := p.filename
		if filename == "" {
			filename = DefaultFilename
		}
		contentType := p.contentType
		if contentType == "" {
			contentType = DefaultContentType
		}
		res.File = &File{
			Field:       p.name,
			Name:        filename,
			ContentType: contentType,
			Data:        append([]byte(nil), p.content...),
		}
	}

	if parts == 0 {
		return nil, malformed(0, "", ErrNoParts)
	}

	return res, nil
}

type part struct {
	name        string
	filename    string
	isFile      bool
	contentType string
	content     []byte
}

// parsePart returns nil without error for chunks that are not form-data parts.
func parsePart(chunk []byte) (*part, error) {
	chunk = trimDelimiterLine(chunk)
	headerBlock, content := cutHeaders(chunk)

	if !bytes.Contains(bytes.ToLower(headerBlock), dispositionHeader) {
		return nil, nil
	}

	header, err := readHeader(headerBlock)
	if err != nil {
		return nil, ErrMalformedPart
	}

	disposition, params := parseDisposition(header.Get("Content-Disposition"))
	if disposition != "form-data" {
		return nil, nil
	}

	name := params["name"]
	if name == "" {
		return nil, ErrMissingName
	}

	filename, isFile := params["filename"]
	return &part{
		name:        name,
		filename:    filename,
		isFile:      isFile,
		contentType: strings.TrimSpace(header.Get("Content-Type")),
		content:     trimTrailingLineBreak(content),
	}, nil
}

// trimDelimiterLine drops transport padding and the line break that follow a delimiter.
func trimDelimiterLine(chunk []byte) []byte {
	rest := bytes.TrimLeft(chunk, " \t")
	switch {
	case bytes.HasPrefix(rest, crlf):
		return rest[2:]
	case len(rest) > 0 && rest[0] == '\n':
		return rest[1:]
	}
	return chunk
}

// cutHeaders splits a part into its header block and content.
// A part without a blank line is treated as headers only.
func cutHeaders(chunk []byte) (header, content []byte) {
	if bytes.HasPrefix(chunk, crlf) {
		return nil, chunk[2:]
	}
	if len(chunk) > 0 && chunk[0] == '\n' {
		return nil, chunk[1:]
	}

	idx, sepLen := bytes.Index(chunk, headerEndCR), len(headerEndCR)
	if lf := bytes.Index(chunk, headerEndLF); lf >= 0 && (idx < 0 || lf < idx) {
		idx, sepLen = lf, len(headerEndLF)
	}
	if idx < 0 {
		return chunk, nil
	}
	return chunk[:idx], chunk[idx+sepLen:]
}

// trimTrailingLineBreak removes the line break that belongs to the next delimiter.
func trimTrailingLineBreak(content []byte) []byte {
	if bytes.HasSuffix(content, crlf) {
		return content[:len(content)-2]
	}
	if bytes.HasSuffix(content, []byte("\n")) {
		return content[:len(content)-1]
	}
	return content
}

func readHeader(block []byte) (textproto.MIMEHeader, error) {
	r := textproto.NewReader(bufio.NewReader(io.MultiReader(
		bytes.NewReader(block),
		bytes.NewReader(headerEndCR),
	)))
	return r.ReadMIMEHeader()
}

func parseDisposition(value string) (string, map[string]string) {
	disposition, params, err := mime.ParseMediaType(value)
	if err == nil {
		return disposition, params
	}

	disposition, _, _ = strings.Cut(value, ";")
	params = make(map[string]string, 2)
	if m := nameAttrRegex.FindStringSubmatch(value); m != nil {
		params["name"] = m[1]
	}
	if m := filenameAttrRegex.FindStringSubmatch(value); m != nil {
		params["filename"] = m[1]
	}
	return strings.ToLower(strings.TrimSpace(disposition)), params
}
