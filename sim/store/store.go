package store

import "fmt"

// ProcessID identifies the owner of a block. Valid ids are positive.
type ProcessID int

// Free marks a slot that no process owns.
const Free ProcessID = 0

// Store is the block array backing a simulation.
type Store struct {
	slots []ProcessID
	used  int // number of non-free slots
}

// New creates a store of totalBlocks free slots.
func New(totalBlocks int) *Store {
	s := &Store{}
	s.Reset(totalBlocks)
	return s
}

// Reset discards every slot and reallocates totalBlocks free ones.
// Negative counts are treated as zero.
func (s *Store) Reset(totalBlocks int) {
	if totalBlocks < 0 {
		totalBlocks = 0
	}
	s.slots = make([]ProcessID, totalBlocks)
	s.used = 0
}

// Len returns the number of slots.
func (s *Store) Len() int { return len(s.slots) }

// UsedCount returns the number of owned slots.
func (s *Store) UsedCount() int { return s.used }

// FreeCount returns the number of free slots.
func (s *Store) FreeCount() int { return len(s.slots) - s.used }

// Get returns the owner of slot i.
func (s *Store) Get(i int) (ProcessID, error) {
	if i < 0 || i >= len(s.slots) {
		return Free, fmt.Errorf("get %d (len %d): %w", i, len(s.slots), ErrOutOfRange)
	}
	return s.slots[i], nil
}

// Set assigns slot i to owner. Passing Free clears the slot.
func (s *Store) Set(i int, owner ProcessID) error {
	if i < 0 || i >= len(s.slots) {
		return fmt.Errorf("set %d (len %d): %w", i, len(s.slots), ErrOutOfRange)
	}
	prev := s.slots[i]
	switch {
	case prev == Free && owner != Free:
		s.used++
	case prev != Free && owner == Free:
		s.used--
	}
	s.slots[i] = owner
	return nil
}

// IsFree reports whether slot i is free. Out-of-range slots are not free.
func (s *Store) IsFree(i int) bool {
	return i >= 0 && i < len(s.slots) && s.slots[i] == Free
}

// FreeIndices returns the indices of all free slots in increasing order.
func (s *Store) FreeIndices() []int {
	out := make([]int, 0, s.FreeCount())
	for i, owner := range s.slots {
		if owner == Free {
			out = append(out, i)
		}
	}
	return out
}

// Release clears every slot owned by owner and returns how many were cleared.
func (s *Store) Release(owner ProcessID) int {
	if owner == Free {
		return 0
	}
	n := 0
	for i, o := range s.slots {
		if o == owner {
			s.slots[i] = Free
			n++
		}
	}
	s.used -= n
	return n
}

// Snapshot returns a copy of the slot array.
func (s *Store) Snapshot() []ProcessID {
	out := make([]ProcessID, len(s.slots))
	copy(out, s.slots)
	return out
}

// Owners returns the number of slots held by each owner.
func (s *Store) Owners() map[ProcessID]int {
	out := make(map[ProcessID]int)
	for _, o := range s.slots {
		if o != Free {
			out[o]++
		}
	}
	return out
}
