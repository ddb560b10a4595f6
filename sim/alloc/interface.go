package alloc

import "github.com/joshuapare/memsim/sim/store"

// Allocator places processes into a store and keeps their records.
//
// Implementations:
//   - SegmentAllocator: contiguous placement under a fit Strategy
//   - PagingAllocator: page-per-block placement, Strategy is ignored
type Allocator interface {
	// Mode reports the scheme implemented by the allocator.
	Mode() Mode

	// BlockSize is the size of one block in kilobytes.
	BlockSize() int

	// Allocate places procs in order. The first failure stops the batch;
	// processes placed before it stay placed. The returned records are the
	// ones created by this call.
	Allocate(procs []Process, strategy Strategy) ([]Record, error)

	// Deallocate frees every block owned by id and drops its record.
	// Unknown ids are ignored; the result reports whether anything changed.
	Deallocate(id store.ProcessID) bool

	// Record returns the live record of id.
	Record(id store.ProcessID) (Record, bool)

	// Records returns every live record ordered by process id.
	Records() []Record

	// Reset frees every block and drops every record.
	Reset()
}

// New returns the allocator for mode over st.
func New(mode Mode, st *store.Store, blockSize int) (Allocator, error) {
	switch mode {
	case Segmentation:
		return NewSegment(st, blockSize)
	case Paging:
		return NewPaging(st, blockSize)
	default:
		return nil, ErrUnknownMode
	}
}
