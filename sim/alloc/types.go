package alloc

import (
	"fmt"
	"strings"

	"github.com/joshuapare/memsim/sim/store"
)

// Mode selects the memory-management scheme of a simulation.
type Mode uint8

const (
	// Segmentation places each process in one contiguous run of blocks.
	Segmentation Mode = iota + 1
	// Paging places each process in any free blocks, one page per block.
	Paging
)

func (m Mode) String() string {
	switch m {
	case Segmentation:
		return "segmentation"
	case Paging:
		return "paging"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == Segmentation || m == Paging }

// ParseMode accepts "segmentation"/"segment"/"seg" and "paging"/"page", any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "segmentation", "segment", "seg":
		return Segmentation, nil
	case "paging", "page":
		return Paging, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Strategy is the fit rule used by segmentation to pick among free runs.
// The zero value is FirstFit.
type Strategy uint8

const (
	FirstFit Strategy = iota
	BestFit
	WorstFit
)

func (s Strategy) String() string {
	switch s {
	case BestFit:
		return "bestFit"
	case WorstFit:
		return "worstFit"
	default:
		return "firstFit"
	}
}

// ParseStrategy accepts firstFit/bestFit/worstFit in camel, kebab or short
// form ("first", "best-fit", "WORSTFIT"). An empty string means FirstFit.
func ParseStrategy(s string) (Strategy, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)
	switch norm {
	case "", "first", "firstfit":
		return FirstFit, nil
	case "best", "bestfit":
		return BestFit, nil
	case "worst", "worstfit":
		return WorstFit, nil
	default:
		return FirstFit, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Strategies lists every fit strategy in declaration order.
func Strategies() []Strategy { return []Strategy{FirstFit, BestFit, WorstFit} }

// Process is a request to place Size kilobytes under ID.
type Process struct {
	ID   store.ProcessID `json:"id"`
	Name string          `json:"name"`
	Size int             `json:"size"`
}

// PageEntry maps one virtual page of a process to a physical block.
type PageEntry struct {
	Virtual  int `json:"virtual"`
	Physical int `json:"physical"`
}

// Record describes a placed process. Start is the first block of a segment
// and -1 under paging; PageTable is only set under paging.
type Record struct {
	ProcessID     store.ProcessID `json:"process_id"`
	Name          string          `json:"name"`
	RequestedSize int             `json:"requested_size"`
	BlocksUsed    int             `json:"blocks_used"`
	Mode          Mode            `json:"-"`
	Start         int             `json:"start"`
	PageTable     []PageEntry     `json:"page_table,omitempty"`
}

// Contiguous reports whether the record is a segmentation record.
func (r Record) Contiguous() bool { return r.Mode == Segmentation }

// Blocks returns the physical blocks held by the record in virtual order.
func (r Record) Blocks() []int {
	if r.Contiguous() {
		out := make([]int, r.BlocksUsed)
		for i := range out {
			out[i] = r.Start + i
		}
		return out
	}
	out := make([]int, len(r.PageTable))
	for i, e := range r.PageTable {
		out[i] = e.Physical
	}
	return out
}

func (r Record) clone() Record {
	if r.PageTable != nil {
		pt := make([]PageEntry, len(r.PageTable))
		copy(pt, r.PageTable)
		r.PageTable = pt
	}
	return r
}
