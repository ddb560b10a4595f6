package alloc

import (
	"github.com/joshuapare/memsim/internal/logger"
	"github.com/joshuapare/memsim/sim/store"
)

// PagingAllocator places every process in the lowest free blocks, one
// page per block, with no contiguity requirement.
type PagingAllocator struct {
	recordBook
}

var _ Allocator = (*PagingAllocator)(nil)

// NewPaging creates a paging allocator over st.
func NewPaging(st *store.Store, blockSize int) (*PagingAllocator, error) {
	b, err := newRecordBook(st, blockSize)
	if err != nil {
		return nil, err
	}
	return &PagingAllocator{recordBook: b}, nil
}

// Mode returns Paging.
func (a *PagingAllocator) Mode() Mode { return Paging }

// Allocate places procs in submission order. Each process takes the first
// ceil(size/blockSize) free blocks in increasing index order as virtual
// pages 0..n-1. The free count is checked against the live store, so
// earlier processes of the batch consume blocks first. The strategy is ignored.
func (a *PagingAllocator) Allocate(procs []Process, _ Strategy) ([]Record, error) {
	created := make([]Record, 0, len(procs))
	for _, p := range procs {
		pages, err := a.checkProcess(p)
		if err != nil {
			logger.Debug("paging rejected", "pid", int(p.ID), "name", p.Name, "size", p.Size, "error", err)
			return created, err
		}

		free := a.st.FreeIndices()
		if len(free) < pages {
			logger.Debug("not enough free pages", "pid", int(p.ID), "need", pages, "free", len(free))
			return created, &Error{Process: p, Needed: pages, Err: ErrInsufficientMemory}
		}

		table := make([]PageEntry, pages)
		for v := range table {
			table[v] = PageEntry{Virtual: v, Physical: free[v]}
		}
		rec := Record{
			ProcessID:     p.ID,
			Name:          p.Name,
			RequestedSize: p.Size,
			BlocksUsed:    pages,
			Mode:          Paging,
			Start:         -1,
			PageTable:     table,
		}
		if err := a.claim(p.ID, free[:pages]); err != nil {
			return created, err
		}
		a.records[p.ID] = rec
		created = append(created, rec.clone())

		logger.Debug("pages placed",
			"pid", int(p.ID), "pages", pages,
			"internal_frag", pages*a.blockSize-p.Size)
	}
	return created, nil
}
