package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the list-mode bindings.
type KeyMap struct {
	Up, Down        key.Binding
	Toggle, Delete  key.Binding
	Search, Filter  key.Binding
	FilterAll       key.Binding
	FilterPending   key.Binding
	FilterCompleted key.Binding
	PrevPage        key.Binding
	NextPage        key.Binding
	FirstPage       key.Binding
	LastPage        key.Binding
	New             key.Binding
	Help            key.Binding
	Quit            key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:              key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:            key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Toggle:          key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete:          key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Search:          key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:          key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		FilterAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterPending:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "pending")),
		FilterCompleted: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		PrevPage:        key.NewBinding(key.WithKeys("h", "left", "["), key.WithHelp("←/h", "prev page")),
		NextPage:        key.NewBinding(key.WithKeys("l", "right", "]"), key.WithHelp("→/l", "next page")),
		FirstPage:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
		LastPage:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
		New:             key.NewBinding(key.WithKeys("n", "a"), key.WithHelp("n", "new task")),
		Help:            key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.New, k.Search, k.Filter, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.Search, k.Filter, k.FilterAll, k.FilterPending, k.FilterCompleted},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.New, k.Help, k.Quit},
	}
}
