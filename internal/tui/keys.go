package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	download key.Binding
	refresh  key.Binding
	clear    key.Binding
	sync     key.Binding
	info     key.Binding
	esc      key.Binding
	enter    key.Binding
	quit     key.Binding
	yes      key.Binding
	no       key.Binding
}

var keys = keyMap{
	download: key.NewBinding(key.WithKeys("d")),
	refresh:  key.NewBinding(key.WithKeys("r")),
	clear:    key.NewBinding(key.WithKeys("x")),
	sync:     key.NewBinding(key.WithKeys("s")),
	info:     key.NewBinding(key.WithKeys("v")),
	esc:      key.NewBinding(key.WithKeys("esc")),
	enter:    key.NewBinding(key.WithKeys("enter")),
	quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	yes:      key.NewBinding(key.WithKeys("y")),
	no:       key.NewBinding(key.WithKeys("n")),
}
