package store

// FreeRun is a maximal span of consecutive free slots.
type FreeRun struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// End returns the index one past the last slot of the run.
func (r FreeRun) End() int { return r.Start + r.Length }

// Span is a maximal span of consecutive slots sharing one owner.
// Owner is Free for unallocated spans.
type Span struct {
	Start  int       `json:"start"`
	Length int       `json:"length"`
	Owner  ProcessID `json:"owner"`
}

// FreeRuns scans the store left to right and returns its free runs in
// increasing start order.
func FreeRuns(s *Store) []FreeRun {
	var runs []FreeRun
	start := -1
	for i, owner := range s.slots {
		if owner == Free {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, FreeRun{Start: start, Length: i - start})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, FreeRun{Start: start, Length: len(s.slots) - start})
	}
	return runs
}

// Spans returns the memory map of the store: consecutive slots with the same
// owner are merged into one span.
func Spans(s *Store) []Span {
	var spans []Span
	for i, owner := range s.slots {
		if n := len(spans); n > 0 && spans[n-1].Owner == owner {
			spans[n-1].Length++
			continue
		}
		spans = append(spans, Span{Start: i, Length: 1, Owner: owner})
	}
	return spans
}
