package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

// TestHelper provides utilities for testing TUI components
type TestHelper struct {
	model Model
	cmd   tea.Cmd
}

// NewTestHelper creates a test helper with a model
func NewTestHelper(opts Options) *TestHelper {
	return &TestHelper{
		model: NewModel(opts),
	}
}

// SendKey simulates a key press
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	return h.send(tea.KeyMsg{Type: keyType})
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// TypeString types each rune of s
func (h *TestHelper) TypeString(s string) *TestHelper {
	for _, r := range s {
		if r == ' ' {
			h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		h.SendKeyRune(r)
	}
	return h
}

// Enter types s into the input line opened by key k and submits it
func (h *TestHelper) Enter(k rune, s string) *TestHelper {
	return h.SendKeyRune(k).TypeString(s).SendKey(tea.KeyEnter)
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	return h.send(tea.WindowSizeMsg{Width: width, Height: height})
}

func (h *TestHelper) send(msg tea.Msg) *TestHelper {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	h.cmd = cmd
	return h
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}

// LastCmd returns the command returned by the last update
func (h *TestHelper) LastCmd() tea.Cmd {
	return h.cmd
}
