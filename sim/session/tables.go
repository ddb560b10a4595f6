package session

import (
	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/frag"
	"github.com/joshuapare/memsim/sim/store"
)

// SegmentRow is one line of the segment table: a process's single segment
// with its base address and limit in kilobytes.
type SegmentRow struct {
	ProcessID store.ProcessID `json:"process_id"`
	Name      string          `json:"name"`
	Segment   int             `json:"segment"`
	Base      int             `json:"base"`
	Limit     int             `json:"limit"`
}

// PageRow is one line of the page table.
type PageRow struct {
	ProcessID store.ProcessID `json:"process_id"`
	Name      string          `json:"name"`
	frag.PageUse
}

// SegmentTable lists the segments of all records under segmentation.
// It is empty in paging mode.
func (s *Session) SegmentTable() []SegmentRow {
	if s.mode != alloc.Segmentation {
		return nil
	}
	var rows []SegmentRow
	for _, rec := range s.Records() {
		rows = append(rows, SegmentRow{
			ProcessID: rec.ProcessID,
			Name:      rec.Name,
			Base:      rec.Start * s.cfg.BlockSize,
			Limit:     rec.BlocksUsed * s.cfg.BlockSize,
		})
	}
	return rows
}

// PageTable lists every page of every record under paging, with how much
// of the page the process fills. It is empty in segmentation mode.
func (s *Session) PageTable() []PageRow {
	if s.mode != alloc.Paging {
		return nil
	}
	var rows []PageRow
	for _, rec := range s.Records() {
		for _, use := range frag.PageUtilization(rec, s.cfg.BlockSize) {
			rows = append(rows, PageRow{ProcessID: rec.ProcessID, Name: rec.Name, PageUse: use})
		}
	}
	return rows
}
