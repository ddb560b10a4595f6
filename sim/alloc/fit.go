package alloc

import "github.com/joshuapare/memsim/sim/store"

// BlocksFor returns ceil(size / blockSize), or 0 when either value is not positive.
func BlocksFor(size, blockSize int) int {
	if size <= 0 || blockSize <= 0 {
		return 0
	}
	return 1 + (size-1)/blockSize
}

// SelectRun picks the run a segment of need blocks goes into.
//
// runs must be in increasing start order, as FreeRuns returns them. Ties
// under BestFit and WorstFit go to the lowest start, which is the first
// candidate seen in that order.
func SelectRun(runs []store.FreeRun, need int, strategy Strategy) (store.FreeRun, bool) {
	best := -1
	for i, r := range runs {
		if r.Length < need {
			continue
		}
		if best < 0 {
			best = i
			if strategy != BestFit && strategy != WorstFit {
				break
			}
			continue
		}
		switch strategy {
		case BestFit:
			if r.Length < runs[best].Length {
				best = i
			}
		case WorstFit:
			if r.Length > runs[best].Length {
				best = i
			}
		}
	}
	if best < 0 {
		return store.FreeRun{}, false
	}
	return runs[best], true
}
