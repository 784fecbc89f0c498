package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	reveal key.Binding
	copy   key.Binding
	quit   key.Binding
}

var keys = keyMap{
	reveal: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reveal secrets")),
	copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy value")),
	quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}
