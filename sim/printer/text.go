package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/memsim/sim/scenario"
	"github.com/joshuapare/memsim/sim/session"
	"github.com/joshuapare/memsim/sim/store"
)

func (p *Printer) printSnapshotText(snap snapshot) error {
	if snap.State != session.Configured.String() {
		_, err := fmt.Fprintf(p.writer, "Memory not configured (mode: %s)\n", snap.Stats.Mode)
		return err
	}

	if err := p.printStatsText(snap.Stats); err != nil {
		return err
	}

	if p.opts.ShowMap && snap.Config.TotalBlocks > 0 {
		fmt.Fprintln(p.writer)
		fmt.Fprintf(p.writer, "Map: [%s]\n", Bar(snap.Map, p.barWidth(), p.opts.Color))
		names := snap.names()
		for _, rec := range snap.Records {
			fmt.Fprintf(p.writer, "  %c  #%d %s (%dKB, %d blocks)\n",
				Symbol(rec.ProcessID), rec.ProcessID, names[rec.ProcessID], rec.RequestedSize, rec.BlocksUsed)
		}
	}

	if p.opts.ShowTables {
		if len(snap.Segments) > 0 {
			fmt.Fprintln(p.writer)
			fmt.Fprintln(p.writer, "Segment table:")
			fmt.Fprintf(p.writer, "  %-5s %-16s %-4s %8s %8s\n", "PID", "NAME", "SEG", "BASE", "LIMIT")
			for _, row := range snap.Segments {
				fmt.Fprintf(p.writer, "  %-5d %-16s %-4d %6dKB %6dKB\n",
					row.ProcessID, truncate(row.Name, 16), row.Segment, row.Base, row.Limit)
			}
		}
		if len(snap.Pages) > 0 {
			fmt.Fprintln(p.writer)
			fmt.Fprintln(p.writer, "Page table:")
			fmt.Fprintf(p.writer, "  %-5s %-16s %5s %6s %8s %5s\n", "PID", "NAME", "PAGE", "FRAME", "USED", "UTIL")
			for _, row := range snap.Pages {
				fmt.Fprintf(p.writer, "  %-5d %-16s %5d %6d %6dKB %4d%%\n",
					row.ProcessID, truncate(row.Name, 16), row.Virtual, row.Physical, row.Used, row.Percent)
			}
		}
	}

	// free runs only matter under segmentation
	if p.opts.ShowFreeRuns && snap.Stats.ExternalFragBytes != nil {
		fmt.Fprintln(p.writer)
		if len(snap.FreeRuns) == 0 {
			fmt.Fprintln(p.writer, "Free runs: none")
			return nil
		}
		fmt.Fprintln(p.writer, "Free runs:")
		for _, r := range snap.FreeRuns {
			fmt.Fprintf(p.writer, "  blocks %d-%d (%dKB)\n", r.Start, r.End()-1, r.Length*snap.Config.BlockSize)
		}
	}
	return nil
}

func (p *Printer) printStatsText(st session.Stats) error {
	fmt.Fprintf(p.writer, "Memory: %dKB in %d blocks of %dKB (%s)\n",
		st.TotalBytes, st.TotalBlocks, st.BlockSize, st.Mode)
	fmt.Fprintf(p.writer, "Used:   %dKB (%.1f%%)\n", st.UsedBytes, st.UsedPercent)
	fmt.Fprintf(p.writer, "Free:   %dKB (%.1f%%)\n", st.FreeBytes, st.FreePercent)
	fmt.Fprintf(p.writer, "Processes: %d\n", st.Processes)

	if st.InternalFragBytes != nil {
		fmt.Fprintf(p.writer, "Internal fragmentation: %dKB\n", *st.InternalFragBytes)
	}
	if st.ExternalFragBytes != nil {
		fmt.Fprintf(p.writer, "External fragmentation: %dKB", *st.ExternalFragBytes)
		if st.LargestFreeRun != nil {
			fmt.Fprintf(p.writer, " (largest free run %dKB)", *st.LargestFreeRun)
		}
		fmt.Fprintln(p.writer)
	}

	if st.NearFull {
		msg := fmt.Sprintf("Warning: memory usage above %.0f%%", session.NearFullPercent)
		if p.opts.Color {
			msg = warningStyle.Render(msg)
		}
		fmt.Fprintln(p.writer, msg)
	}
	return nil
}

func (p *Printer) printResultText(res *scenario.Result) error {
	if res.Scenario != "" {
		fmt.Fprintf(p.writer, "Scenario: %s\n", res.Scenario)
	}
	for _, sr := range res.Steps {
		switch sr.Action {
		case scenario.ActionFree:
			fmt.Fprintf(p.writer, "[%d] free %s\n", sr.Step, joinIDs(sr.Freed))
		default:
			label := "allocate"
			if sr.Strategy != "" {
				label += " (" + sr.Strategy + ")"
			}
			fmt.Fprintf(p.writer, "[%d] %s\n", sr.Step, label)
			for _, rec := range sr.Records {
				where := fmt.Sprintf("at block %d", rec.Start)
				if !rec.Contiguous() {
					where = fmt.Sprintf("in %d pages", len(rec.PageTable))
				}
				fmt.Fprintf(p.writer, "    #%d %s %dKB -> %d blocks %s\n",
					rec.ProcessID, rec.Name, rec.RequestedSize, rec.BlocksUsed, where)
			}
			if sr.Error != "" {
				fmt.Fprintf(p.writer, "    failed: %s (%d not placed)\n", sr.Error, sr.Rejected)
			}
		}
	}
	fmt.Fprintf(p.writer, "Placed %d, failed %d\n\n", res.Placed, res.Failed)
	return p.printStatsText(res.Stats)
}

func (p *Printer) printComparisonText(out []scenario.Outcome) error {
	fmt.Fprintf(p.writer, "%-24s %7s %7s %8s %9s %9s\n",
		"VARIANT", "PLACED", "FAILED", "USED", "INTERNAL", "EXTERNAL")
	for _, o := range out {
		fmt.Fprintf(p.writer, "%-24s %7d %7d %7.1f%% %9s %9s\n",
			o.Label, o.Placed, o.Failed, o.Stats.UsedPercent,
			kb(o.Stats.InternalFragBytes), kb(o.Stats.ExternalFragBytes))
	}
	return nil
}

func kb(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%dKB", *v)
}

func joinIDs(ids []store.ProcessID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}

// truncate truncates a string to the specified length with ellipsis
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
