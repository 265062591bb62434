package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type navigation struct {
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Rate     key.Binding
	Keeper   key.Binding
}

// Navigation returns key bindings for moving around a grid page.
var Navigation = navigation{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("n", "pgdown"),
		key.WithHelp("n/pgdn", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("p", "pgup"),
		key.WithHelp("p/pgup", "previous page"),
	),
	Rate: key.NewBinding(
		key.WithKeys("0", "1", "2", "3", "4", "5"),
		key.WithHelp("0-5", "rate selection"),
	),
	Keeper: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "toggle keeper keyword"),
	),
}
