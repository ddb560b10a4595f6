package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Commands
	Configure  key.Binding
	Add        key.Binding
	Free       key.Binding
	Strategy   key.Binding
	SwitchMode key.Binding
	Clear      key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding

	// Input
	Enter key.Binding
	Esc   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Configure: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "configure memory"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a", "add processes"),
		),
		Free: key.NewBinding(
			key.WithKeys("f", "d"),
			key.WithHelp("f", "free a process"),
		),
		Strategy: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle fit strategy"),
		),
		SwitchMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "switch mode (resets)"),
		),
		Clear: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "free everything"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy stats as JSON"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp lists the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Configure, k.Add, k.Free, k.Strategy, k.SwitchMode, k.Help, k.Quit}
}

// FullHelp lists every binding for the help overlay.
func (k KeyMap) FullHelp() []key.Binding {
	return []key.Binding{
		k.Configure, k.Add, k.Free, k.Strategy, k.SwitchMode,
		k.Clear, k.Copy, k.Help, k.Quit,
	}
}
