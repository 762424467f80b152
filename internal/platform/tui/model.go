package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruitcatch/internal/core"
	"github.com/vovakirdan/fruitcatch/internal/engine"
	"github.com/vovakirdan/fruitcatch/internal/games/fruit"
)

// statusDuration is how long a status message stays on the help row.
const statusDuration = 2 * time.Second

var statusStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

// Model is the Bubble Tea model for one player. It owns the controller
// and closes it on quit.
type Model struct {
	controller *engine.Controller
	screen     *core.Screen
	keys       GameKeyMap
	help       help.Model
	snap       fruit.Snapshot
	width      int
	height     int

	status      string
	statusUntil time.Time
	quitting    bool
}

// NewModel creates a model driving the given controller in a terminal
// of width x height cells.
func NewModel(controller *engine.Controller, width, height int) Model {
	h := help.New()
	h.Width = width
	m := Model{
		controller: controller,
		keys:       DefaultGameKeyMap(),
		help:       h,
		snap:       controller.Snapshot(),
		width:      width,
		height:     height,
	}
	m.screen = core.NewScreen(width, m.playHeight())
	return m
}

// playHeight is the number of rows used by the playfield.
// The last row holds the help bar.
func (m Model) playHeight() int {
	return max(m.height-1, 0)
}

// viewport returns the playfield size in viewport units.
func (m Model) viewport() core.Viewport {
	return fruit.ViewportForScreen(m.width, m.playHeight())
}

// Init starts listening for snapshots and events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForSnapshot(m.controller.Snapshots(), m.controller.Done()),
		waitForEvent(m.controller.Events(), m.controller.Done()),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.screen.Resize(m.width, m.playHeight())
		m.help.Width = msg.Width
		v := m.viewport()
		m.controller.Resize(v.W, v.H)
		return m, nil

	case snapshotMsg:
		m.snap = fruit.Snapshot(msg)
		return m, waitForSnapshot(m.controller.Snapshots(), m.controller.Done())

	case eventMsg:
		m.handleEvent(msg.Event)
		return m, waitForEvent(m.controller.Events(), m.controller.Done())

	case controllerClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.controller.Close()
		return m, tea.Quit
	case core.ActionConfirm:
		m.start()
	case core.ActionRestart:
		m.controller.Restart()
	case core.ActionMenu:
		m.controller.ReturnToMenu()
	}
	m.snap = m.controller.Snapshot()
	return m, nil
}

// handleMouse turns a left click into a tap on the clicked cell.
// A click on the menu starts a game.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if msg.Y >= m.playHeight() {
		return m, nil
	}

	switch m.snap.Phase {
	case fruit.PhaseMenu:
		m.start()
		m.snap = m.controller.Snapshot()
	case fruit.PhasePlaying:
		tap := fruit.TapForCell(msg.X, msg.Y)
		m.controller.Tap(tap.X, tap.Y)
	}
	return m, nil
}

func (m *Model) start() {
	m.controller.StartGame(m.viewport())
}

// handleEvent turns notable session events into a status message.
func (m *Model) handleEvent(evt fruit.Event) {
	switch e := evt.(type) {
	case fruit.LevelUpEvent:
		m.setStatus(fmt.Sprintf("Level %d: %s", e.To.Number, e.To.Name))
	case fruit.FruitCaughtEvent:
		if e.Fruit.Kind.IsBomb() {
			m.setStatus(fmt.Sprintf("Bomb! %d", e.Points))
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = time.Now().Add(statusDuration)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	fruit.Render(m.screen, m.snap)

	bottom := m.help.View(m.keys)
	if m.status != "" && time.Now().Before(m.statusUntil) {
		bottom = statusStyle.Render(m.status)
	}
	return RenderScreen(m.screen) + "\n" + bottom
}

// Run starts the Bubble Tea program for a local player.
// The controller is closed when the program exits.
func Run(controller *engine.Controller, width, height int) error {
	defer controller.Close()

	model := NewModel(controller, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks are taps
	)

	_, err := p.Run()
	return err
}
