package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the editor key bindings
type keyMap struct {
	Save   key.Binding
	Switch key.Binding
	Open   key.Binding
	Indent key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Switch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "switch pane"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump to screen"),
		),
		Indent: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "indent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the one-line help footer
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Switch, k.Open, k.Quit}
}

// FullHelp returns all bindings grouped for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Switch},
		{k.Open, k.Indent, k.Quit},
	}
}
