// Package printer renders simulation state as text or JSON.
package printer

import (
	"io"

	"github.com/joshuapare/memsim/internal/term"
	"github.com/joshuapare/memsim/sim/session"
)

const (
	DefaultBarWidth = 0 // fit the terminal
	MinBarWidth     = 10
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text.
	FormatText Format = "text"

	// FormatJSON outputs indented JSON.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// Color styles the memory bar and warnings with lipgloss.
	// Default: false
	Color bool

	// BarWidth caps the number of cells in the memory bar. Zero sizes the
	// bar to the terminal, or term.DefaultWidth when not writing to one.
	// Default: 0
	BarWidth int

	// ShowMap includes the memory bar and its legend.
	// Default: true
	ShowMap bool

	// ShowTables includes the segment or page table.
	// Default: true
	ShowTables bool

	// ShowFreeRuns lists free runs (segmentation only).
	// Default: true
	ShowFreeRuns bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:       FormatText,
		BarWidth:     DefaultBarWidth,
		ShowMap:      true,
		ShowTables:   true,
		ShowFreeRuns: true,
	}
}

// Printer writes simulation state to a writer.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintSession(s)
func New(w io.Writer, opts Options) *Printer {
	return &Printer{writer: w, opts: opts}
}

// PrintSession prints the configuration, usage, memory map, tables and free
// runs of s.
func (p *Printer) PrintSession(s *session.Session) error {
	snap := takeSnapshot(s)
	if p.opts.Format == FormatJSON {
		return p.writeJSON(snap)
	}
	return p.printSnapshotText(snap)
}

// PrintStats prints usage figures only.
func (p *Printer) PrintStats(st session.Stats) error {
	if p.opts.Format == FormatJSON {
		return p.writeJSON(st)
	}
	return p.printStatsText(st)
}

// barWidth returns the number of cells available for the memory bar.
func (p *Printer) barWidth() int {
	if p.opts.BarWidth > 0 {
		return p.opts.BarWidth
	}
	// leave room for the "Map: [" prefix and closing bracket
	return max(term.Width(p.writer)-8, MinBarWidth)
}
