package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/printer"
	"github.com/joshuapare/memsim/sim/session"
)

// View renders the entire UI
func (m Model) View() string {
	screen := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderInput(),
		m.renderStatus(),
	)

	// The help box is drawn over the main view so the memory map stays visible around it
	if m.showHelp {
		help := overlay.New(
			staticView(m.renderHelp()),
			staticView(screen),
			overlay.Center,
			overlay.Center,
			0,
			0,
		)
		return help.View()
	}
	return screen
}

// staticView adapts already rendered text to tea.Model for the overlay.
type staticView string

func (v staticView) Init() tea.Cmd                       { return nil }
func (v staticView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v staticView) View() string                        { return string(v) }

func (m Model) renderHeader() string {
	title := headerStyle.Render("Memory Allocation Simulator")
	info := fmt.Sprintf("mode: %s | strategy: %s", m.sess.Mode(), m.strategy)
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", modeStyle.Render(info))
}

func (m Model) renderContent() string {
	if m.sess.State() != session.Configured {
		return paneStyle.Width(max(m.width-2, 20)).Render(
			"Memory is not configured.\n\nPress c and enter the total size and block size in KB, e.g. 100 10")
	}

	inner := max(m.width-6, printer.MinBarWidth)
	mapPane := paneStyle.Width(m.width - 2).Render(
		paneTitleStyle.Render("Memory map") + "\n" +
			printer.Bar(m.sess.Spans(), inner, true) + "\n" +
			m.renderLegend(inner))

	statsPane := paneStyle.Render(m.renderStats())
	tablePane := paneStyle.Width(max(m.width-lipgloss.Width(statsPane)-2, 20)).Render(m.renderTable())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		mapPane,
		lipgloss.JoinHorizontal(lipgloss.Top, statsPane, tablePane),
	)
}

// renderLegend lists symbol and name for every process, wrapped to width.
func (m Model) renderLegend(width int) string {
	recs := m.sess.Records()
	if len(recs) == 0 {
		return helpStyle.Render("no processes; press a to add some")
	}

	var lines []string
	line := ""
	for _, rec := range recs {
		sym := string(printer.Symbol(rec.ProcessID))
		entry := printer.OwnerStyle(rec.ProcessID).Render(sym) + " " + truncate(rec.Name, 16)
		if line != "" && lipgloss.Width(line)+lipgloss.Width(entry)+2 > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += "  "
		}
		line += entry
	}
	return strings.Join(append(lines, line), "\n")
}

func (m Model) renderStats() string {
	st := m.sess.Stats()
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("Usage") + "\n")
	b.WriteString(row("Total", fmt.Sprintf("%dKB", st.TotalBytes)))
	b.WriteString(row("Blocks", fmt.Sprintf("%d x %dKB", st.TotalBlocks, st.BlockSize)))
	b.WriteString(row("Used", fmt.Sprintf("%dKB (%.1f%%)", st.UsedBytes, st.UsedPercent)))
	b.WriteString(row("Free", fmt.Sprintf("%dKB (%.1f%%)", st.FreeBytes, st.FreePercent)))
	b.WriteString(row("Processes", fmt.Sprintf("%d", st.Processes)))
	if st.InternalFragBytes != nil {
		b.WriteString(row("Internal frag", fmt.Sprintf("%dKB", *st.InternalFragBytes)))
	}
	if st.ExternalFragBytes != nil {
		b.WriteString(row("External frag", fmt.Sprintf("%dKB", *st.ExternalFragBytes)))
	}
	if st.LargestFreeRun != nil {
		b.WriteString(row("Largest run", fmt.Sprintf("%dKB", *st.LargestFreeRun)))
	}
	if st.NearFull {
		b.WriteString(warningStyle.Render(fmt.Sprintf("Memory above %.0f%% used", session.NearFullPercent)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderTable() string {
	var title, header string
	var rows []string

	if m.sess.Mode() == alloc.Segmentation {
		title = "Segment table"
		header = fmt.Sprintf("%-4s %-16s %8s %8s", "PID", "NAME", "BASE", "LIMIT")
		for _, r := range m.sess.SegmentTable() {
			rows = append(rows, fmt.Sprintf("%-4d %-16s %6dKB %6dKB", r.ProcessID, truncate(r.Name, 16), r.Base, r.Limit))
		}
	} else {
		title = "Page table"
		header = fmt.Sprintf("%-4s %-16s %4s %5s %5s", "PID", "NAME", "PAGE", "FRAME", "USE")
		for _, r := range m.sess.PageTable() {
			rows = append(rows, fmt.Sprintf("%-4d %-16s %4d %5d %4d%%", r.ProcessID, truncate(r.Name, 16), r.Virtual, r.Physical, r.Percent))
		}
	}

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(title) + "\n")
	b.WriteString(tableHeaderStyle.Render(header))
	if len(rows) == 0 {
		b.WriteString("\n" + helpStyle.Render("empty"))
	}
	for i, r := range rows {
		if i == MaxTableRows {
			b.WriteString(fmt.Sprintf("\n... %d more", len(rows)-MaxTableRows))
			break
		}
		b.WriteString("\n" + r)
	}
	return b.String()
}

func (m Model) renderInput() string {
	if m.inputMode == NormalMode {
		return ""
	}
	return m.input.View()
}

func (m Model) renderStatus() string {
	var msg string
	switch {
	case m.statusMessage == "":
	case m.statusIsError:
		msg = errorStyle.Render("Error: " + m.statusMessage)
	default:
		msg = statusOKStyle.Render(m.statusMessage)
	}

	var hints []string
	for _, k := range m.keys.ShortHelp() {
		hints = append(hints, k.Help().Key+" "+k.Help().Desc)
	}
	line := helpStyle.Render(strings.Join(hints, "  "))
	if msg != "" {
		line = msg + "\n" + line
	}
	return statusStyle.Width(m.width).Render(line)
}

func (m Model) renderHelp() string {
	var helpContent strings.Builder
	helpContent.WriteString(modalTitleStyle.Render("Keyboard shortcuts"))
	helpContent.WriteString("\n")
	for _, k := range m.keys.FullHelp() {
		helpContent.WriteString(helpKeyStyle.Render(k.Help().Key))
		helpContent.WriteString("  ")
		helpContent.WriteString(helpDescStyle.Render(k.Help().Desc))
		helpContent.WriteString("\n")
	}
	helpContent.WriteString("\n")
	helpContent.WriteString(helpDescStyle.Render("Processes are entered as name:size or size,"))
	helpContent.WriteString("\n")
	helpContent.WriteString(helpDescStyle.Render("separated by commas. Sizes are in KB."))
	helpContent.WriteString("\n\n")
	helpContent.WriteString(helpStyle.Render("Press Esc, ?, or q to close this help"))

	return modalStyle.Width(50).Render(helpContent.String())
}
