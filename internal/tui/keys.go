package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Next          key.Binding
	Prev          key.Binding
	Up            key.Binding
	Down          key.Binding
	Toggle        key.Binding
	ShowCompleted key.Binding
	Reload        key.Binding
	Continue      key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "toggle done"),
		),
		ShowCompleted: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "show completed"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (m Model) ShortHelp() []key.Binding {
	if m.welcome {
		return []key.Binding{m.keys.Continue, m.keys.Quit}
	}
	keys := []key.Binding{m.keys.Next, m.keys.Quit, m.keys.Help}
	if m.tab == TabTimeline {
		keys = append(keys, m.keys.Toggle, m.keys.ShowCompleted)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Next, m.keys.Prev, m.keys.Up, m.keys.Down},
		{m.keys.Toggle, m.keys.ShowCompleted, m.keys.Reload},
		{m.keys.Help, m.keys.Quit},
	}
}
