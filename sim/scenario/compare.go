package scenario

import (
	"context"
	"slices"

	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/session"
)

// Outcome is one line of a comparison: the scenario replayed under a single
// mode and strategy.
type Outcome struct {
	Label    string        `json:"label"`
	Mode     string        `json:"mode"`
	Strategy string        `json:"strategy,omitempty"`
	Placed   int           `json:"placed"`
	Failed   int           `json:"failed"`
	Stats    session.Stats `json:"stats"`
}

// Variants returns the mode and strategy pairs Compare replays: every fit
// strategy under segmentation, then paging.
func Variants() []Variant {
	vs := make([]Variant, 0, len(alloc.Strategies())+1)
	for _, st := range alloc.Strategies() {
		vs = append(vs, Variant{Mode: alloc.Segmentation, Strategy: st})
	}
	return append(vs, Variant{Mode: alloc.Paging})
}

// Variant is a mode and, under segmentation, a fit strategy.
type Variant struct {
	Mode     alloc.Mode
	Strategy alloc.Strategy
}

// Label names the variant, e.g. "segmentation/bestFit" or "paging".
func (v Variant) Label() string {
	if v.Mode == alloc.Paging {
		return v.Mode.String()
	}
	return v.Mode.String() + "/" + v.Strategy.String()
}

// Compare replays sc once per variant on a fresh session each time. Step
// strategies are ignored so every batch runs under the variant's strategy.
// Process ids line up across variants because each session counts from 1.
func (r *Runner) Compare(ctx context.Context, sc *Scenario, variants ...Variant) ([]Outcome, error) {
	if len(variants) == 0 {
		variants = Variants()
	}

	out := make([]Outcome, 0, len(variants))
	for _, v := range variants {
		replay := sc.with(v)
		res, err := r.Run(ctx, session.New(session.WithLogger(r.logger())), replay)
		if err != nil {
			return out, err
		}
		o := Outcome{
			Label:  v.Label(),
			Mode:   v.Mode.String(),
			Placed: res.Placed,
			Failed: res.Failed,
			Stats:  res.Stats,
		}
		if v.Mode == alloc.Segmentation {
			o.Strategy = v.Strategy.String()
		}
		out = append(out, o)
	}
	return out, nil
}

// with returns a copy of sc forced to the variant's mode and strategy.
func (sc *Scenario) with(v Variant) *Scenario {
	cp := *sc
	cp.Mode = v.Mode.String()
	cp.Strategy = v.Strategy.String()
	cp.Steps = slices.Clone(sc.Steps)
	for i := range cp.Steps {
		cp.Steps[i].Strategy = ""
	}
	return &cp
}
