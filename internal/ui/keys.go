package ui

import "github.com/charmbracelet/bubbles/key"

// SelectionKeyMap defines the keybindings of the branch selection prompt.
type SelectionKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Interrupt key.Binding
}

// DefaultSelectionKeyMap provides the default prompt keybindings.
var DefaultSelectionKeyMap = SelectionKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "select/unselect"),
	),
	ToggleAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "toggle all"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc/q", "cancel"),
	),
	Interrupt: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// ShortHelp returns the bindings shown beneath the prompt.
func (keyMap SelectionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keyMap.Up, keyMap.Down, keyMap.Toggle, keyMap.ToggleAll, keyMap.Confirm, keyMap.Cancel}
}

// FullHelp returns the same bindings as ShortHelp in a single column.
func (keyMap SelectionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{keyMap.ShortHelp()}
}
