// Package store models the simulated address space as a fixed array of
// equal-size blocks.
//
// # Overview
//
// Each slot of a Store is either Free or owned by a positive ProcessID.
// The store never grows on its own: a configuration change is applied with
// Reset, which reallocates every slot as Free.
//
//	st := store.New(10)
//	_ = st.Set(0, 1)
//	_ = st.Set(1, 1)
//
//	for _, run := range store.FreeRuns(st) {
//	    fmt.Printf("free: start=%d len=%d\n", run.Start, run.Length)
//	}
//
// # Free Runs
//
// FreeRuns reports maximal spans of consecutive free slots in increasing
// start order. Two runs are never adjacent. Spans reports every maximal
// span, free or owned, which is what a memory map renders.
//
// # Thread Safety
//
// Store instances are not thread-safe. A simulation session owns its store
// and drives it from a single goroutine.
package store
