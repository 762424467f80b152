// Package tui provides the Bubble Tea integration for fruit catcher.
// It maps keys and mouse clicks onto an engine controller and renders
// the snapshots the controller publishes.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
)

// snapshotMsg carries a snapshot published by the controller.
type snapshotMsg fruit.Snapshot

// eventMsg carries a session event.
type eventMsg struct {
	fruit.Event
}

// controllerClosedMsg is sent when the controller stops publishing.
type controllerClosedMsg struct{}

// waitForSnapshot returns a command that waits for the next snapshot.
func waitForSnapshot(snapshots <-chan fruit.Snapshot, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-snapshots:
			return snapshotMsg(snap)
		case <-done:
			return controllerClosedMsg{}
		}
	}
}

// waitForEvent returns a command that waits for the next session event.
func waitForEvent(events <-chan fruit.Event, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-events:
			return eventMsg{evt}
		case <-done:
			return controllerClosedMsg{}
		}
	}
}
