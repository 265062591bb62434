package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type global struct {
	Back        key.Binding
	Forward     key.Binding
	Library     key.Binding
	Search      key.Binding
	Curate      key.Binding
	Admin       key.Binding
	NextSubTab  key.Binding
	PrevSubTab  key.Binding
	AdminPanel  key.Binding
	Filter      key.Binding
	SelectClear key.Binding
	Enter       key.Binding
	Quit        key.Binding
	Help        key.Binding
}

var Global = global{
	Back: key.NewBinding(
		key.WithKeys("esc", "alt+left"),
		key.WithHelp("esc", "back"),
	),
	Forward: key.NewBinding(
		key.WithKeys("alt+right"),
		key.WithHelp("alt+→", "forward"),
	),
	Library: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "library"),
	),
	Search: key.NewBinding(
		key.WithKeys("S"),
		key.WithHelp("S", "search"),
	),
	Curate: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "curate"),
	),
	Admin: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "admin"),
	),
	NextSubTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next sub-tab"),
	),
	PrevSubTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous sub-tab"),
	),
	AdminPanel: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "keyword admin panel"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	SelectClear: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear selection"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "view"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "exit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
}
