package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Expand    key.Binding
	Select    key.Binding
	Toggle    key.Binding
	Drag      key.Binding
	Exclusive key.Binding
	Add       key.Binding
	Edit      key.Binding
	Done      key.Binding
	Delete    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Expand:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "expand")),
		Select:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "select mode")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle selected")),
		Drag:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drag mode")),
		Exclusive: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "exclusive")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit")),
		Done:      key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "done")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Expand, k.Select, k.Drag, k.Exclusive, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand, k.Toggle},
		{k.Select, k.Drag, k.Exclusive},
		{k.Add, k.Edit, k.Done, k.Delete},
		{k.Help, k.Quit},
	}
}
