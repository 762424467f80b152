package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruitcatch/internal/storage"
)

// ReplayStore is the part of the replay journal the browser needs.
type ReplayStore interface {
	RecentReplays(limit int) ([]storage.Replay, error)
	VerifyReplay(id int64) (storage.ReplayCheck, error)
	DeleteReplay(id int64) error
}

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Verify, k.Delete, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for the replay browser.
type ReplaysModel struct {
	store    ReplayStore
	limit    int
	replays  []storage.Replay
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	width    int
	height   int
	status   string
	quitting bool
}

// NewReplaysModel creates a replay browser showing up to limit runs.
func NewReplaysModel(store ReplayStore, limit, width, height int) ReplaysModel {
	h := help.New()
	h.ShowAll = false

	m := ReplaysModel{
		store:  store,
		limit:  limit,
		keys:   DefaultReplaysKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table sized to the terminal.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 14},
		{Title: "Outcome", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 12},
		{Title: "Time", Width: 8},
		{Title: "Taps", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, status and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays reloads the most recent replays from the store.
func (m *ReplaysModel) loadReplays() {
	if m.store == nil {
		m.replays = nil
		m.updateTableRows()
		return
	}

	replays, err := m.store.RecentReplays(m.limit)
	if err != nil {
		m.replays = nil
		m.status = err.Error()
	} else {
		m.replays = replays
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded replays.
func (m *ReplaysModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		seconds := 0.0
		if r.TickRate > 0 {
			seconds = float64(r.Ticks) / float64(r.TickRate)
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			r.CreatedAt.Format("Jan 02 15:04"),
			r.Outcome,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d %s", r.Tier, r.TierName),
			fmt.Sprintf("%.1fs", seconds),
			fmt.Sprintf("%d", r.Inputs),
		}
	}
	m.table.SetRows(rows)
}

// selected returns the replay under the cursor.
func (m ReplaysModel) selected() (storage.Replay, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.Replay{}, false
	}
	return m.replays[i], true
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ReplaysModel) verifySelected() {
	r, ok := m.selected()
	if !ok || m.store == nil {
		return
	}
	check, err := m.store.VerifyReplay(r.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = describeCheck(check)
}

func (m *ReplaysModel) deleteSelected() {
	r, ok := m.selected()
	if !ok || m.store == nil {
		return
	}
	if err := m.store.DeleteReplay(r.ID); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("Deleted replay #%d", r.ID)
	m.loadReplays()
}

// describeCheck formats a verification result for display.
func describeCheck(check storage.ReplayCheck) string {
	verdict := "verified"
	if !check.Match {
		verdict = "MISMATCH"
	}
	return fmt.Sprintf("Replay #%d %s: %s with %d points at level %d (%s)",
		check.Replay.ID, verdict, check.Final.Phase, check.Final.Score,
		check.Final.Tier.Number, check.Final.Tier.Name)
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("REPLAYS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No replays recorded yet.\nFinish a game to record one!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunReplayBrowser runs the replay browser until the user quits.
func RunReplayBrowser(store ReplayStore, limit, width, height int) error {
	model := NewReplaysModel(store, limit, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
