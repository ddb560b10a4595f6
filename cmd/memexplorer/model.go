package main

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/memsim/internal/logger"
	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/session"
)

// InputMode represents what the input line is collecting
type InputMode int

const (
	NormalMode InputMode = iota
	ConfigMode
	ProcessMode
	FreeMode
)

// Layout constants
const (
	DefaultWidth  = 80
	DefaultHeight = 24
	MaxTableRows  = 12 // rows shown in the process table before eliding
)

// Model is the main application model
type Model struct {
	sess     *session.Session
	keys     KeyMap
	strategy alloc.Strategy

	width  int
	height int

	// Input line
	inputMode InputMode
	input     textinput.Model

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	statusMessage string
	statusIsError bool
}

// Options seeds the model at startup.
type Options struct {
	Total    string // empty leaves memory unconfigured
	Block    string
	Mode     string
	Strategy string
}

// NewModel creates a new TUI model. Invalid options are reported in the
// status bar and leave memory unconfigured.
func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	ti.PromptStyle = promptStyle

	m := Model{
		sess:   session.New(),
		keys:   DefaultKeyMap(),
		width:  DefaultWidth,
		height: DefaultHeight,
		input:  ti,
	}

	if opts.Strategy != "" {
		st, err := alloc.ParseStrategy(opts.Strategy)
		if err != nil {
			m.setError(err)
		}
		m.strategy = st
	}
	if opts.Mode != "" && opts.Total == "" {
		if mode, err := alloc.ParseMode(opts.Mode); err == nil {
			_ = m.sess.SwitchMode(mode)
		} else {
			m.setError(err)
		}
	}
	if opts.Total != "" {
		mode := opts.Mode
		if mode == "" {
			mode = m.sess.Mode().String()
		}
		m.configure(opts.Total, opts.Block, mode)
	}
	if m.statusMessage == "" && m.sess.State() == session.Unconfigured {
		m.statusMessage = "Press c to configure memory"
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// configure applies a configuration from text fields.
func (m *Model) configure(total, block, mode string) {
	cfg, err := session.ParseConfig(total, block, mode)
	if err != nil {
		m.setError(err)
		return
	}
	if _, err := m.sess.Apply(cfg); err != nil {
		m.setError(err)
		return
	}
	logger.Info("memory configured", "total", cfg.TotalBytes, "block", cfg.BlockSize, "mode", cfg.Mode.String())
	m.setStatus("Configured %dKB as %d blocks of %dKB", cfg.TotalBytes, cfg.TotalBlocks, cfg.BlockSize)
}
