package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the editor reacts to outside of text entry.
// Delimiter keys are configurable and are not listed here.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Remove   key.Binding
	Focus    key.Binding
	Copy     key.Binding
	Done     key.Binding
	Cancel   key.Binding
	ShowHelp key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "choose suggestion"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "select tag"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
		),
		Remove: key.NewBinding(
			key.WithKeys("delete", "ctrl+x"),
			key.WithHelp("del", "remove tag"),
		),
		Focus: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "focus/blur"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy tags"),
		),
		Done: key.NewBinding(
			key.WithKeys("ctrl+s", "ctrl+d"),
			key.WithHelp("ctrl+s", "done"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
		ShowHelp: key.NewBinding(
			key.WithKeys("f1", "ctrl+o"),
			key.WithHelp("f1", "more help"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Focus, k.Done, k.Cancel, k.ShowHelp}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Left, k.Remove},
		{k.Focus, k.Copy},
		{k.Done, k.Cancel, k.ShowHelp},
	}
}
