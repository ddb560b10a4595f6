package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memsim/internal/logger"
	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/session"
	"github.com/joshuapare/memsim/sim/store"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-30, 10)
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help, m.keys.Esc, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		if m.inputMode != NormalMode {
			return m.handleInputKey(msg)
		}
		return m.handleNormalKey(msg)
	}
	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Configure):
		placeholder := "100 10"
		if cfg := m.sess.Config(); cfg.TotalBytes > 0 {
			placeholder = fmt.Sprintf("%d %d", cfg.TotalBytes, cfg.BlockSize)
		}
		return m.startInput(ConfigMode, "Total and block KB: ", placeholder)

	case key.Matches(msg, m.keys.Add):
		if m.sess.State() != session.Configured {
			m.setError(session.ErrNotConfigured)
			return m, nil
		}
		return m.startInput(ProcessMode, "Processes: ", "editor:25, shell:15, 10")

	case key.Matches(msg, m.keys.Free):
		if m.sess.State() != session.Configured {
			m.setError(session.ErrNotConfigured)
			return m, nil
		}
		return m.startInput(FreeMode, "Free process id: ", "1")

	case key.Matches(msg, m.keys.Strategy):
		m.strategy = nextStrategy(m.strategy)
		m.setStatus("Fit strategy: %s", m.strategy)

	case key.Matches(msg, m.keys.SwitchMode):
		next := alloc.Paging
		if m.sess.Mode() == alloc.Paging {
			next = alloc.Segmentation
		}
		cfg := m.sess.Config()
		if err := m.sess.SwitchMode(next); err != nil {
			m.setError(err)
			return m, nil
		}
		// keep the sizes so the user only loses the processes
		if cfg.TotalBytes > 0 {
			cfg.Mode = next
			if _, err := m.sess.Apply(cfg); err != nil {
				m.setError(err)
				return m, nil
			}
		}
		m.setStatus("Switched to %s; memory reset", next)

	case key.Matches(msg, m.keys.Clear):
		if m.sess.State() != session.Configured {
			m.setError(session.ErrNotConfigured)
			return m, nil
		}
		if _, err := m.sess.Apply(m.sess.Config()); err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus("Freed every process")

	case key.Matches(msg, m.keys.Copy):
		data, err := json.MarshalIndent(m.sess.Stats(), "", "  ")
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if err := clipboard.WriteAll(string(data)); err != nil {
			logger.Warn("clipboard write failed", "error", err)
			m.setError(fmt.Errorf("copy failed: %w", err))
			return m, nil
		}
		m.setStatus("Copied stats to clipboard")
	}
	return m, nil
}

func (m Model) startInput(mode InputMode, prompt, placeholder string) (tea.Model, tea.Cmd) {
	m.inputMode = mode
	m.input.Reset()
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Esc):
		m.endInput()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		value := strings.TrimSpace(m.input.Value())
		mode := m.inputMode
		m.endInput()
		m.submit(mode, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endInput() {
	m.inputMode = NormalMode
	m.input.Blur()
	m.input.Reset()
}

// submit runs the command collected by the input line.
func (m *Model) submit(mode InputMode, value string) {
	switch mode {
	case ConfigMode:
		fields := strings.Fields(value)
		if len(fields) < 2 || len(fields) > 3 {
			m.setError(fmt.Errorf("%w: enter total and block size, e.g. 100 10", session.ErrInvalidConfig))
			return
		}
		modeName := m.sess.Mode().String()
		if len(fields) == 3 {
			modeName = fields[2]
		}
		m.configure(fields[0], fields[1], modeName)

	case ProcessMode:
		reqs, err := session.ParseRequests(value)
		if err != nil {
			m.setError(err)
			return
		}
		recs, err := m.sess.SubmitBatch(reqs, m.strategy)
		if err != nil {
			if len(recs) > 0 {
				m.setError(fmt.Errorf("placed %d of %d; %w", len(recs), len(reqs), err))
			} else {
				m.setError(err)
			}
			return
		}
		m.setStatus("Placed %d process(es)", len(recs))

	case FreeMode:
		n, err := strconv.Atoi(strings.TrimPrefix(value, "#"))
		if err != nil {
			m.setError(fmt.Errorf("%q is not a process id", value))
			return
		}
		id := store.ProcessID(n)
		rec, ok := m.sess.Record(id)
		if !ok {
			m.setError(errors.New("no such process: " + value))
			return
		}
		if err := m.sess.Deallocate(id); err != nil {
			m.setError(err)
			return
		}
		m.setStatus("Freed process %d (%s)", id, rec.Name)
	}
}

func (m *Model) setStatus(format string, args ...any) {
	m.statusMessage = fmt.Sprintf(format, args...)
	m.statusIsError = false
}

func (m *Model) setError(err error) {
	m.statusMessage = err.Error()
	m.statusIsError = true
}

func nextStrategy(s alloc.Strategy) alloc.Strategy {
	all := alloc.Strategies()
	for i, st := range all {
		if st == s {
			return all[(i+1)%len(all)]
		}
	}
	return alloc.FirstFit
}
