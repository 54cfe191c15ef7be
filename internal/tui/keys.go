package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Editor   key.Binding
	Preview  key.Binding
	Clients  key.Binding
	Settings key.Binding

	// Actions
	Select      key.Binding
	New         key.Binding
	AddItem     key.Binding
	Delete      key.Binding
	SaveProfile key.Binding
	LoadProfile key.Binding
	SaveClient  key.Binding
	Search      key.Binding
	Mail        key.Binding
	Export      key.Binding
	Generate    key.Binding
	Theme       key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Editor:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "invoice")),
	Preview:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	Clients:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clients")),
	Settings:    key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
	New:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new invoice")),
	AddItem:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
	Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete item")),
	SaveProfile: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save profile")),
	LoadProfile: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "load profile")),
	SaveClient:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save client")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Mail:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "email")),
	Export:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export PDF")),
	Generate:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "AI draft")),
	Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
