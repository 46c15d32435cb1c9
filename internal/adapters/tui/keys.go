package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the timer key bindings.
type keyMap struct {
	Toggle    key.Binding
	Reset     key.Binding
	Notify    key.Binding
	Noise     key.Binding
	AutoStart key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s/space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Notify: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notify mode"),
		),
		Noise: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "noise"),
		),
		AutoStart: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto-start"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Quit},
		{k.Notify, k.Noise, k.AutoStart},
	}
}
