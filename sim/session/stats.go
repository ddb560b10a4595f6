package session

import (
	"math"

	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/frag"
)

// NearFullPercent is the usage above which Stats.NearFull is set.
const NearFullPercent = 90.0

// Stats summarises memory usage. Sizes are in kilobytes. Exactly one of the
// fragmentation fields is set: internal under paging, external under
// segmentation.
type Stats struct {
	Mode        string  `json:"mode"`
	TotalBytes  int     `json:"total_bytes"`
	BlockSize   int     `json:"block_size"`
	TotalBlocks int     `json:"total_blocks"`
	UsedBlocks  int     `json:"used_blocks"`
	UsedBytes   int     `json:"used_bytes"`
	FreeBytes   int     `json:"free_bytes"`
	UsedPercent float64 `json:"used_percent"`
	FreePercent float64 `json:"free_percent"`
	NearFull    bool    `json:"near_full"`
	Processes   int     `json:"processes"`

	InternalFragBytes *int `json:"internal_frag_bytes,omitempty"`
	ExternalFragBytes *int `json:"external_frag_bytes,omitempty"`
	LargestFreeRun    *int `json:"largest_free_run,omitempty"`
}

// Stats computes usage and fragmentation for the current state. An
// unconfigured session reports zero values.
func (s *Session) Stats() Stats {
	if s.state != Configured {
		return Stats{Mode: s.mode.String()}
	}

	cfg := s.cfg
	used := s.st.UsedCount() * cfg.BlockSize
	recs := s.alloc.Records()
	out := Stats{
		Mode:        cfg.Mode.String(),
		TotalBytes:  cfg.TotalBytes,
		BlockSize:   cfg.BlockSize,
		TotalBlocks: cfg.TotalBlocks,
		UsedBlocks:  s.st.UsedCount(),
		UsedBytes:   used,
		FreeBytes:   cfg.TotalBytes - used,
		Processes:   len(recs),
	}
	out.UsedPercent = percent(out.UsedBytes, cfg.TotalBytes)
	out.FreePercent = percent(out.FreeBytes, cfg.TotalBytes)
	out.NearFull = out.UsedPercent > NearFullPercent

	switch cfg.Mode {
	case alloc.Paging:
		internal := frag.Internal(recs, cfg.BlockSize)
		out.InternalFragBytes = &internal
	case alloc.Segmentation:
		sum := frag.Summarize(s.FreeRuns(), cfg.BlockSize)
		out.ExternalFragBytes = &sum.External
		out.LargestFreeRun = &sum.LargestRun
	}
	return out
}

// percent returns part/whole as a percentage rounded to one decimal.
func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(whole)) / 10
}
