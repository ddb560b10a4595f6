package alloc

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/joshuapare/memsim/internal/logger"
	"github.com/joshuapare/memsim/sim/store"
)

// recordBook is the store and record map shared by both allocators.
type recordBook struct {
	st        *store.Store
	blockSize int
	records   map[store.ProcessID]Record
}

func newRecordBook(st *store.Store, blockSize int) (recordBook, error) {
	if st == nil {
		return recordBook{}, fmt.Errorf("alloc: nil store")
	}
	if blockSize <= 0 {
		return recordBook{}, fmt.Errorf("%w: %d", ErrBlockSize, blockSize)
	}
	return recordBook{
		st:        st,
		blockSize: blockSize,
		records:   make(map[store.ProcessID]Record),
	}, nil
}

func (b *recordBook) BlockSize() int { return b.blockSize }

func (b *recordBook) Record(id store.ProcessID) (Record, bool) {
	rec, ok := b.records[id]
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

func (b *recordBook) Records() []Record {
	out := make([]Record, 0, len(b.records))
	for _, rec := range b.records {
		out = append(out, rec.clone())
	}
	slices.SortFunc(out, func(x, y Record) int { return cmp.Compare(x.ProcessID, y.ProcessID) })
	return out
}

func (b *recordBook) Deallocate(id store.ProcessID) bool {
	if _, ok := b.records[id]; !ok {
		return false
	}
	n := b.st.Release(id)
	delete(b.records, id)
	logger.Debug("deallocated", "pid", int(id), "blocks", n)
	return true
}

func (b *recordBook) Reset() {
	b.st.Reset(b.st.Len())
	clear(b.records)
}

// checkProcess validates the id and computes the blocks needed.
func (b *recordBook) checkProcess(p Process) (int, error) {
	if p.ID <= store.Free {
		return 0, &Error{Process: p, Err: ErrInvalidProcess}
	}
	if _, dup := b.records[p.ID]; dup {
		return 0, &Error{Process: p, Err: ErrInvalidProcess}
	}
	need := BlocksFor(p.Size, b.blockSize)
	if need <= 0 {
		return 0, &Error{Process: p, Needed: need, Err: ErrInvalidSize}
	}
	return need, nil
}

// claim assigns the given blocks to id. A failing Set means the caller
// computed an index outside the store.
func (b *recordBook) claim(id store.ProcessID, blocks []int) error {
	for _, i := range blocks {
		if err := b.st.Set(i, id); err != nil {
			return fmt.Errorf("alloc: claim block for process %d: %w", id, err)
		}
	}
	return nil
}
