// Package alloc places simulated processes into a block store.
//
// # Overview
//
// Two allocators share the Allocator interface:
//
//   - SegmentAllocator: each process gets one contiguous run of blocks,
//     chosen among the free runs by a fit Strategy
//   - PagingAllocator: each process gets the lowest free blocks, one page
//     per block, recorded in a page table
//
// A process of size S (kilobytes) needs ceil(S / blockSize) blocks under
// either scheme.
//
// # Fit Strategies
//
//	FirstFit  lowest-start run that is large enough
//	BestFit   smallest run that is large enough, ties to lowest start
//	WorstFit  largest run, ties to lowest start
//
// # Batches
//
// Allocate processes a batch in submission order and stops at the first
// process that cannot be placed. Processes placed earlier in the same batch
// stay placed; there is no rollback. The returned error is an *Error that
// names the process and unwraps to ErrInvalidSize or ErrInsufficientMemory.
//
//	st := store.New(10)
//	seg, _ := alloc.NewSegment(st, 10)
//	recs, err := seg.Allocate([]alloc.Process{{ID: 1, Name: "a", Size: 25}}, alloc.FirstFit)
//	if errors.Is(err, alloc.ErrInsufficientMemory) {
//	    // adjust and resubmit
//	}
//
// # Thread Safety
//
// Allocators are not thread-safe. A session drives one allocator from a
// single goroutine.
package alloc
