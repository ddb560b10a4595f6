package scenario

import "errors"

var (
	// ErrEncoding indicates an "encoding" value other than utf-8 or windows-1252.
	ErrEncoding = errors.New("scenario: unsupported encoding")

	// ErrInvalidStep indicates a step that neither allocates nor frees, or does both.
	ErrInvalidStep = errors.New("scenario: invalid step")
)
