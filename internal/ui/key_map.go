package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	submit    key.Binding
	nextField key.Binding
	prevField key.Binding
	register  key.Binding
	add       key.Binding
	remove    key.Binding
	watchlist key.Binding
	back      key.Binding
	logout    key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		nextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		register:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "login/register")),
		add:       key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter/a", "add to watchlist")),
		remove:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		watchlist: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "watchlist")),
		back:      key.NewBinding(key.WithKeys("esc", "c"), key.WithHelp("esc", "catalog")),
		logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.submit},
		{k.add, k.remove, k.watchlist, k.back},
		{k.logout, k.quit},
	}
}
