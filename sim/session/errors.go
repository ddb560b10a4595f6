package session

import "errors"

var (
	// ErrInvalidConfig indicates a non-positive, non-numeric or unknown configuration value.
	ErrInvalidConfig = errors.New("session: invalid configuration")

	// ErrNotConfigured indicates a command issued before Configure.
	ErrNotConfigured = errors.New("session: not configured")

	// ErrEmptyBatch indicates a batch with no processes.
	ErrEmptyBatch = errors.New("session: batch has no processes")
)
