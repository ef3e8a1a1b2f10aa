package channel

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ForceQuit     key.Binding
	Back          key.Binding
	NextFocus     key.Binding
	PrevFocus     key.Binding
	Up            key.Binding
	Down          key.Binding
	Select        key.Binding
	Send          key.Binding
	AddChannel    key.Binding
	RenameChannel key.Binding
	RemoveChannel key.Binding
	Confirm       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ForceQuit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close/quit")),
		NextFocus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevFocus:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous pane")),
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open channel")),
		Send:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		AddChannel:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add channel")),
		RenameChannel: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		RemoveChannel: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		Confirm:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	}
}

func (k keyMap) sidebarHelp() []key.Binding {
	return []key.Binding{k.Select, k.AddChannel, k.RenameChannel, k.RemoveChannel, k.NextFocus}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Send, k.NextFocus, k.Back}
}
