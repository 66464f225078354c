package email

import "errors"

var (
	// ErrSendFailed means the provider rejected the message or could not be
	// reached. Nothing should be assumed delivered.
	ErrSendFailed    = errors.New("email: send failed")
	ErrInvalidConfig = errors.New("email: invalid config")
	// ErrInvalidParams is returned before any network call.
	ErrInvalidParams = errors.New("email: invalid params")
)
