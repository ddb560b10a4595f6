// Package verify checks that a block store and the allocator records over it
// agree. The checks are used by tests and by the --verify flag of memsim.
package verify

import (
	"fmt"

	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/store"
)

// ValidationError describes the first broken invariant found.
type ValidationError struct {
	Type    string
	Message string
	Block   int // block index where the error was seen (-1 if N/A)
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Block >= 0 {
		return fmt.Sprintf("%s at block %d: %s", e.Type, e.Block, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates ownership and record shape in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(st *store.Store, records []alloc.Record, blockSize int) error {
	if err := Ownership(st, records); err != nil {
		return err
	}
	return Records(st, records, blockSize)
}

// Ownership checks that every owned block belongs to a live record and that
// every record's blocks are owned by it.
func Ownership(st *store.Store, records []alloc.Record) error {
	live := make(map[store.ProcessID]bool, len(records))
	for _, rec := range records {
		live[rec.ProcessID] = true
	}

	for i := range st.Len() {
		owner, err := st.Get(i)
		if err != nil {
			return err
		}
		if owner != store.Free && !live[owner] {
			return &ValidationError{
				Type:    "Ownership",
				Message: fmt.Sprintf("orphaned block owned by process %d", owner),
				Block:   i,
			}
		}
	}

	for _, rec := range records {
		for _, b := range rec.Blocks() {
			owner, err := st.Get(b)
			if err != nil {
				return &ValidationError{
					Type:    "Ownership",
					Message: fmt.Sprintf("process %d references a block outside the store", rec.ProcessID),
					Block:   b,
				}
			}
			if owner != rec.ProcessID {
				return &ValidationError{
					Type:    "Ownership",
					Message: fmt.Sprintf("block of process %d owned by %d", rec.ProcessID, owner),
					Block:   b,
					Details: map[string]interface{}{"expected": int(rec.ProcessID), "actual": int(owner)},
				}
			}
		}
	}
	return nil
}

// Records checks each record's block count against its requested size and,
// for paging records, the page table shape. It also checks that the number
// of owned blocks equals the sum of BlocksUsed.
func Records(st *store.Store, records []alloc.Record, blockSize int) error {
	total := 0
	for _, rec := range records {
		want := alloc.BlocksFor(rec.RequestedSize, blockSize)
		if rec.BlocksUsed != want {
			return &ValidationError{
				Type:    "Record",
				Message: fmt.Sprintf("process %d uses %d blocks, size %dKB needs %d", rec.ProcessID, rec.BlocksUsed, rec.RequestedSize, want),
				Block:   -1,
			}
		}
		if !rec.Contiguous() {
			if len(rec.PageTable) != rec.BlocksUsed {
				return &ValidationError{
					Type:    "PageTable",
					Message: fmt.Sprintf("process %d has %d pages for %d blocks", rec.ProcessID, len(rec.PageTable), rec.BlocksUsed),
					Block:   -1,
				}
			}
			for v, e := range rec.PageTable {
				if e.Virtual != v {
					return &ValidationError{
						Type:    "PageTable",
						Message: fmt.Sprintf("process %d entry %d maps virtual page %d", rec.ProcessID, v, e.Virtual),
						Block:   e.Physical,
					}
				}
			}
		}
		total += rec.BlocksUsed
	}

	if used := st.UsedCount(); used != total {
		return &ValidationError{
			Type:    "Accounting",
			Message: fmt.Sprintf("%d blocks owned, records account for %d", used, total),
			Block:   -1,
			Details: map[string]interface{}{"owned": used, "recorded": total},
		}
	}
	return nil
}
