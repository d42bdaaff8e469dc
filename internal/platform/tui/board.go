package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/progress"
)

// BoardKeyMap defines the key bindings for the progress board.
type BoardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Back, k.Quit},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BoardModel shows a climber's progress level by level.
type BoardModel struct {
	recorder  progress.Recorder
	logger    *log.Logger
	userID    string
	summary   *progress.Summary
	loadErr   error
	table     table.Model
	help      help.Model
	keys      BoardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewBoardModel creates a progress board for userID.
func NewBoardModel(rec progress.Recorder, logger *log.Logger, userID string, width, height int) BoardModel {
	if logger == nil {
		logger = log.Default()
	}
	h := help.New()
	h.ShowAll = false

	m := BoardModel{
		recorder: rec,
		logger:   logger,
		userID:   userID,
		keys:     DefaultBoardKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a table sized for the current window.
func (m *BoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 24},
		{Title: "Status", Width: 10},
		{Title: "Score", Width: 7},
		{Title: "Tries", Width: 6},
		{Title: "Completed", Width: 14},
	}

	// Give spare width to the level title.
	if spare := m.width - 4 - 75; spare > 0 {
		columns[1].Width += min(spare, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)), // Leave room for header, help, and margins
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

// updateTableRows fills the table from the summary.
func (m *BoardModel) updateTableRows() {
	var rows []table.Row
	if m.summary != nil {
		rows = make([]table.Row, len(m.summary.Levels))
		for i, l := range m.summary.Levels {
			rows[i] = levelRow(l)
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func levelRow(l progress.LevelStatus) table.Row {
	title := l.Title
	if l.Premium {
		title += " ★"
	}
	status, score, tries, when := "locked", "-", "-", ""
	switch {
	case l.Completed:
		status = "done"
		score = fmt.Sprintf("%d", l.Score)
		tries = fmt.Sprintf("%d", l.Attempts)
		if !l.CompletedAt.IsZero() {
			when = l.CompletedAt.Format("Jan 02 15:04")
		}
	case l.Unlocked:
		status = "open"
	}
	return table.Row{fmt.Sprintf("%02d", l.Number), title, status, score, tries, when}
}

// Init loads the summary.
func (m BoardModel) Init() tea.Cmd {
	return loadSummaryCmd(m.recorder, m.userID)
}

// Update handles messages for the board.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case summaryMsg:
		m.summary, m.loadErr = msg.summary, msg.err
		if msg.err != nil {
			m.logger.Warn("could not load progress", "user", m.userID, "error", msg.err)
		}
		m.updateTableRows()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, loadSummaryCmd(m.recorder, m.userID)

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m BoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("PROGRESS - "+m.userID, m.width)))
	b.WriteString("\n\n")

	if m.summary != nil {
		line := fmt.Sprintf("%d/%d levels  ·  %d points", m.summary.Completed, m.summary.Total, m.summary.Score)
		if m.summary.Premium {
			line += "  ·  premium"
		}
		if m.summary.Next != "" {
			line += "  ·  next: " + m.summary.Next
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or a placeholder.
func (m BoardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Progress unavailable:\n" + errorText(m.loadErr))
	case m.summary == nil:
		return emptyStyle.Render("Loading progress...")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m BoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m BoardModel) IsQuitting() bool {
	return m.quitting
}
