package printer

import (
	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/session"
	"github.com/joshuapare/memsim/sim/store"
)

// snapshot is everything PrintSession shows, captured once.
type snapshot struct {
	State    string               `json:"state"`
	Config   session.Config       `json:"config"`
	Stats    session.Stats        `json:"stats"`
	Records  []alloc.Record       `json:"records"`
	Map      []store.Span         `json:"map"`
	FreeRuns []store.FreeRun      `json:"free_runs"`
	Segments []session.SegmentRow `json:"segments,omitempty"`
	Pages    []session.PageRow    `json:"pages,omitempty"`
}

func takeSnapshot(s *session.Session) snapshot {
	snap := snapshot{
		State:    s.State().String(),
		Config:   s.Config(),
		Stats:    s.Stats(),
		Records:  s.Records(),
		Map:      s.Spans(),
		FreeRuns: s.FreeRuns(),
		Segments: s.SegmentTable(),
		Pages:    s.PageTable(),
	}
	if snap.Records == nil {
		snap.Records = []alloc.Record{}
	}
	if snap.Map == nil {
		snap.Map = []store.Span{}
	}
	if snap.FreeRuns == nil {
		snap.FreeRuns = []store.FreeRun{}
	}
	return snap
}

// names maps process ids to names for the legend.
func (s snapshot) names() map[store.ProcessID]string {
	out := make(map[store.ProcessID]string, len(s.Records))
	for _, rec := range s.Records {
		out[rec.ProcessID] = rec.Name
	}
	return out
}
