// Package frag computes fragmentation figures from allocator records and
// free runs. All results are in kilobytes.
package frag

import (
	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/store"
)

// InternalFor returns the unused space in the last block of rec.
func InternalFor(rec alloc.Record, blockSize int) int {
	return rec.BlocksUsed*blockSize - rec.RequestedSize
}

// Internal sums InternalFor over records. It is meaningful under paging.
func Internal(records []alloc.Record, blockSize int) int {
	total := 0
	for _, rec := range records {
		total += InternalFor(rec, blockSize)
	}
	return total
}

// Summary breaks down free memory for a set of free runs.
type Summary struct {
	TotalFree  int `json:"total_free"`  // sum of all runs
	LargestRun int `json:"largest_run"` // the largest single run
	External   int `json:"external"`    // TotalFree - LargestRun
	Runs       int `json:"runs"`
}

// Summarize computes a Summary. With no runs every field is zero.
func Summarize(runs []store.FreeRun, blockSize int) Summary {
	var s Summary
	for _, r := range runs {
		b := r.Length * blockSize
		s.TotalFree += b
		if b > s.LargestRun {
			s.LargestRun = b
		}
	}
	s.External = s.TotalFree - s.LargestRun
	s.Runs = len(runs)
	return s
}

// External returns the free memory outside the largest free run.
// It is meaningful under segmentation.
func External(runs []store.FreeRun, blockSize int) int {
	return Summarize(runs, blockSize).External
}

// PageUse describes how much of one page a process fills.
type PageUse struct {
	Virtual  int `json:"virtual"`
	Physical int `json:"physical"`
	Used     int `json:"used"`    // KB of the page holding data
	Percent  int `json:"percent"` // Used as a rounded percentage of the block size
}

// PageUtilization returns one entry per page of a paging record. Every page
// is full except the last, which holds size - (n-1)*blockSize.
func PageUtilization(rec alloc.Record, blockSize int) []PageUse {
	if blockSize <= 0 {
		return nil
	}
	out := make([]PageUse, len(rec.PageTable))
	for i, e := range rec.PageTable {
		used := blockSize
		if i == len(rec.PageTable)-1 {
			used = rec.RequestedSize - (len(rec.PageTable)-1)*blockSize
		}
		out[i] = PageUse{
			Virtual:  e.Virtual,
			Physical: e.Physical,
			Used:     used,
			Percent:  (used*100 + blockSize/2) / blockSize,
		}
	}
	return out
}
