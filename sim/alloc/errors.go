package alloc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize indicates a process whose size rounds to zero or fewer blocks.
	ErrInvalidSize = errors.New("alloc: invalid process size")

	// ErrInsufficientMemory indicates that no free run (segmentation) or not
	// enough free blocks (paging) could hold the process.
	ErrInsufficientMemory = errors.New("alloc: insufficient memory")

	// ErrInvalidProcess indicates a non-positive or already allocated process id.
	ErrInvalidProcess = errors.New("alloc: invalid process id")

	// ErrBlockSize indicates a non-positive block size.
	ErrBlockSize = errors.New("alloc: block size must be positive")

	// ErrUnknownMode indicates a mode name that ParseMode does not know.
	ErrUnknownMode = errors.New("alloc: unknown mode")

	// ErrUnknownStrategy indicates a strategy name that ParseStrategy does not know.
	ErrUnknownStrategy = errors.New("alloc: unknown strategy")
)

// Error reports which process of a batch could not be placed.
// It unwraps to one of the sentinel errors above.
type Error struct {
	Process Process
	Needed  int // blocks the process needed
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("unable to allocate process %q (%dKB, %d blocks): %v",
		e.Process.Name, e.Process.Size, e.Needed, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
