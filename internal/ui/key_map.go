package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	back   key.Binding
	save   key.Binding
	filter key.Binding
	panel  key.Binding
	saved  key.Binding
	login  key.Binding
	signup key.Binding
	logout key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save/unsave")),
		filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filters")),
		panel:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "show/hide filters")),
		saved:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "saved movies")),
		login:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
		signup: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "sign up")),
		logout: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "logout")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.save, k.filter, k.panel, k.saved},
		{k.login, k.signup, k.logout, k.quit},
	}
}
