package store

import "errors"

// ErrOutOfRange indicates a slot index outside [0, Len()).
// Seeing it outside a test means an allocator computed a bad index.
var ErrOutOfRange = errors.New("store: block index out of range")
