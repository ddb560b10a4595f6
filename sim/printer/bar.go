package printer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/memsim/sim/store"
)

const (
	FreeSymbol = '.'
	symbols    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	palette = []lipgloss.Color{
		lipgloss.Color("#7D56F4"),
		lipgloss.Color("#00D7FF"),
		lipgloss.Color("#04B575"),
		lipgloss.Color("#FF00FF"),
		lipgloss.Color("#FFA500"),
		lipgloss.Color("#5FAFFF"),
		lipgloss.Color("#D7AF5F"),
		lipgloss.Color("#87D787"),
	}

	freeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
)

// Symbol returns the bar character used for a process.
func Symbol(id store.ProcessID) rune {
	if id == store.Free {
		return FreeSymbol
	}
	return rune(symbols[(int(id)-1)%len(symbols)])
}

// OwnerStyle returns the bar style of a process.
func OwnerStyle(id store.ProcessID) lipgloss.Style {
	if id == store.Free {
		return freeStyle
	}
	return lipgloss.NewStyle().Foreground(palette[(int(id)-1)%len(palette)]).Bold(true)
}

// Bar draws the memory map as at most width cells. With more blocks than
// cells, each cell shows the owner of the first block it covers.
func Bar(spans []store.Span, width int, color bool) string {
	total := 0
	for _, sp := range spans {
		total += sp.Length
	}
	if total == 0 || width <= 0 {
		return ""
	}
	width = min(width, total)

	owners := make([]store.ProcessID, 0, total)
	for _, sp := range spans {
		for range sp.Length {
			owners = append(owners, sp.Owner)
		}
	}

	var b strings.Builder
	var run []rune
	runOwner := store.ProcessID(-1)
	flush := func() {
		if len(run) == 0 {
			return
		}
		if color {
			b.WriteString(OwnerStyle(runOwner).Render(string(run)))
		} else {
			b.WriteString(string(run))
		}
		run = run[:0]
	}
	for c := range width {
		owner := owners[c*total/width]
		if owner != runOwner {
			flush()
			runOwner = owner
		}
		run = append(run, Symbol(owner))
	}
	flush()
	return b.String()
}
