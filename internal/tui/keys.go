package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the preview.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Stack actions
	Open        key.Binding
	OpenBlurred key.Binding
	Close       key.Binding
	CloseCursor key.Binding
	Escape      key.Binding
	CloseAll    key.Binding
	Resize      key.Binding
	Recolor     key.Binding
	Copy        key.Binding

	// Appearance
	Theme     key.Binding
	Animation key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Escape, k.Resize, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.CloseCursor},
		{k.Open, k.OpenBlurred, k.Close, k.Escape, k.CloseAll},
		{k.Resize, k.Recolor, k.Theme, k.Animation},
		{k.Copy, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open"),
		),
		OpenBlurred: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "open blurred"),
		),
		Close: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "close current"),
		),
		CloseCursor: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "close selected"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "escape current"),
		),
		CloseAll: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close all"),
		),
		Resize: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "cycle size"),
		),
		Recolor: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "cycle color"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy stack as YAML"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		Animation: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "cycle animation"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
