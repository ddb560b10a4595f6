package alloc

import (
	"github.com/joshuapare/memsim/internal/logger"
	"github.com/joshuapare/memsim/sim/store"
)

// SegmentAllocator places every process in one contiguous run of free
// blocks chosen by a fit Strategy.
type SegmentAllocator struct {
	recordBook
}

var _ Allocator = (*SegmentAllocator)(nil)

// NewSegment creates a segmentation allocator over st.
// The store is shared: the allocator owns its slots from now on.
func NewSegment(st *store.Store, blockSize int) (*SegmentAllocator, error) {
	b, err := newRecordBook(st, blockSize)
	if err != nil {
		return nil, err
	}
	return &SegmentAllocator{recordBook: b}, nil
}

// Mode returns Segmentation.
func (a *SegmentAllocator) Mode() Mode { return Segmentation }

// Allocate places procs in submission order. For each process it rescans the
// free runs, keeps those of at least ceil(size/blockSize) blocks, and picks
// one with SelectRun. The segment occupies the first blocks of that run.
func (a *SegmentAllocator) Allocate(procs []Process, strategy Strategy) ([]Record, error) {
	created := make([]Record, 0, len(procs))
	for _, p := range procs {
		need, err := a.checkProcess(p)
		if err != nil {
			logger.Debug("segment rejected", "pid", int(p.ID), "name", p.Name, "size", p.Size, "error", err)
			return created, err
		}

		runs := store.FreeRuns(a.st)
		run, ok := SelectRun(runs, need, strategy)
		if !ok {
			logger.Debug("segment does not fit",
				"pid", int(p.ID), "need", need, "free_runs", len(runs), "strategy", strategy.String())
			return created, &Error{Process: p, Needed: need, Err: ErrInsufficientMemory}
		}

		rec := Record{
			ProcessID:     p.ID,
			Name:          p.Name,
			RequestedSize: p.Size,
			BlocksUsed:    need,
			Mode:          Segmentation,
			Start:         run.Start,
		}
		if err := a.claim(p.ID, rec.Blocks()); err != nil {
			return created, err
		}
		a.records[p.ID] = rec
		created = append(created, rec.clone())

		logger.Debug("segment placed",
			"pid", int(p.ID), "start", run.Start, "blocks", need,
			"run_len", run.Length, "strategy", strategy.String())
	}
	return created, nil
}
