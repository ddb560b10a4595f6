package printer

import (
	"encoding/json"

	"github.com/joshuapare/memsim/sim/scenario"
)

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintResult prints a scenario run: each step, then the final state of s.
func (p *Printer) PrintResult(res *scenario.Result) error {
	if p.opts.Format == FormatJSON {
		return p.writeJSON(res)
	}
	return p.printResultText(res)
}

// PrintComparison prints one line per variant of a comparison.
func (p *Printer) PrintComparison(out []scenario.Outcome) error {
	if p.opts.Format == FormatJSON {
		return p.writeJSON(out)
	}
	return p.printComparisonText(out)
}
