package file

import "errors"

var (
	ErrInvalidPath  = errors.New("file: invalid path")
	ErrEmptyFile    = errors.New("file: empty")
	ErrFileNotFound = errors.New("file: not found")
	ErrIsDirectory  = errors.New("file: is a directory")

	ErrFileTooLarge       = errors.New("file: too large")
	ErrMIMETypeNotAllowed = errors.New("file: mime type not allowed")

	ErrInvalidConfig = errors.New("file: invalid config")
	ErrUnknownDriver = errors.New("file: unknown storage driver")

	// Backend failures, classified from S3 error codes and context errors.
	ErrBucketNotFound     = errors.New("file: bucket not found")
	ErrAccessDenied       = errors.New("file: access denied")
	ErrRequestTimeout     = errors.New("file: request timed out")
	ErrServiceUnavailable = errors.New("file: service unavailable")
	ErrOperationTimeout   = errors.New("file: operation timed out")
	ErrOperationCanceled  = errors.New("file: operation canceled")
)
