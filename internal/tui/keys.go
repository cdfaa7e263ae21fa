package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Search     key.Binding
	Categories key.Binding
	Window     key.Binding
	Clear      key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Enter      key.Binding
	Help       key.Binding
	Quit       key.Binding
	Escape     key.Binding
}

var keys = keyMap{
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Categories: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "toggle category")),
	Window:     key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "time window")),
	Clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
	Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
	ShiftTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev category")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
