package chatmd

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a chat or message failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates the requested chat does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")
)
