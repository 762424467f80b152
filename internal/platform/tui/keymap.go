package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruitcatch/internal/core"
)

// GameKeyMap defines the key bindings while playing.
// Catching fruit is done with the mouse; keys only drive the session.
type GameKeyMap struct {
	Start   key.Binding
	Restart key.Binding
	Menu    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Restart, k.Menu, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Restart, k.Menu},
		{k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "esc"),
			key.WithHelp("m/esc", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a session action.
// Help is handled by the model and maps to ActionNone.
func (k GameKeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Start):
		return core.ActionConfirm
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Menu):
		return core.ActionMenu
	}
	return core.ActionNone
}
