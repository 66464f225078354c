// Package formdata parses multipart/form-data request bodies that are already
// fully buffered in memory, as delivered by serverless runtimes and by the
// HTTP server after reading the request body.
//
// The parser extracts the boundary from the Content-Type header, splits the
// body on the "--<boundary>" delimiter and classifies every part that carries
// a Content-Disposition header:
//
//   - parts with a filename attribute become the single retained File
//     (the last file part wins);
//   - all other parts become text fields, whitespace-trimmed, where the
//     last occurrence of a name wins.
//
// Parts without a Content-Disposition header (preamble, epilogue and the
// closing delimiter) are ignored.
//
// # Usage
//
//	res, err := formdata.Parse(body, r.Header.Get("Content-Type"))
//	if err != nil {
//		if errors.Is(err, formdata.ErrMalformedRequest) {
//			// 400 Bad Request
//		}
//		return err
//	}
//	name := res.Fields["name"]
//	if res.File != nil {
//		upload(res.File.Name, res.File.ContentType, res.File.Data)
//	}
//
// # Error Handling
//
// Every failure is reported as *MalformedRequestError. It wraps one of the
// package sentinels (ErrMissingBoundary, ErrNoParts, ErrMissingName,
// ErrMalformedPart, ErrTooManyParts, ErrMultipleFiles) and matches
// ErrMalformedRequest with errors.Is. A failed parse never returns a partial
// result.
package formdata
