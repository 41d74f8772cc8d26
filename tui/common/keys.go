package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	ToggleHints key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	Back        key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	NewEditor   key.Binding // p, compose via $EDITOR
	NewInline   key.Binding // P, compose inline
	Like        key.Binding
	Comment     key.Binding
	Follow      key.Binding
	Share       key.Binding
	Block       key.Binding
	Pin         key.Binding
	Delete      key.Binding
	Edit        key.Binding
	Menu        key.Binding
	Refresh     key.Binding
	Roster      key.Binding
	Profile     key.Binding
	Admin       key.Binding
	Login       key.Binding
	Logout      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("t", "tab"),
			key.WithHelp("t", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("T", "shift+tab"),
			key.WithHelp("T", "prev tab"),
		),
		NewEditor: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "post ($EDITOR)"),
		),
		NewInline: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "post (inline)"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		Block: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "block"),
		),
		Pin: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "pin"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "actions"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Roster: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "heroes"),
		),
		Profile: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "profile"),
		),
		Admin: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "admin"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log in"),
		),
		Logout: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "log out"),
		),
	}
}
