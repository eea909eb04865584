package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextSection key.Binding
	PrevSection key.Binding
	Jump        key.Binding
	NextRole    key.Binding
	PrevRole    key.Binding
	Open        key.Binding
	Close       key.Binding
	Theme       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextSection: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		PrevSection: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		Jump:        key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "jump")),
		NextRole:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n/p", "select role")),
		PrevRole:    key.NewBinding(key.WithKeys("p")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextSection, k.NextRole, k.Open, k.Close, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextSection, k.PrevSection, k.Jump},
		{k.NextRole, k.Open, k.Close},
		{k.Theme, k.Help, k.Quit},
	}
}
