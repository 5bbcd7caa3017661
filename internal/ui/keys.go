package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings of the browser
type KeyMap struct {
	Next           key.Binding
	Previous       key.Binding
	First          key.Binding
	Last           key.Binding
	ClearSelection key.Binding
	Remove         key.Binding
	Metadata       key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next photo"),
		),
		Previous: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "previous photo"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first photo"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last photo"),
		),
		ClearSelection: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear selection"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove photo"),
		),
		Metadata: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "metadata"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings for the mini help line
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Remove, k.Metadata, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped into columns
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.First, k.Last},
		{k.ClearSelection, k.Remove, k.Metadata},
		{k.Help, k.Quit},
	}
}
