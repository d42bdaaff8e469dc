package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/core"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/progress"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/registry"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewBoard
)

// SessionModel manages the full climb: menu -> lesson -> menu, with the
// progress board one key away. It is the top-level model for SSH sessions
// and for the local menu command.
type SessionModel struct {
	recorder progress.Recorder
	logger   *log.Logger
	config   core.RuntimeConfig
	view     sessionView
	menu     MenuModel
	game     *Model
	board    *BoardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(rec progress.Recorder, logger *log.Logger, cfg core.RuntimeConfig) SessionModel {
	if logger == nil {
		logger = log.Default()
	}
	return SessionModel{
		recorder: rec,
		logger:   logger,
		config:   cfg,
		menu:     NewMenuModel(rec, logger, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	// A save can finish after the player left the lesson. The menu or board
	// loaded its summary before the save landed, so load it again.
	if rec, ok := msg.(recordedMsg); ok && m.view != viewGame {
		return m.handleLateRecord(rec)
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewBoard:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) handleLateRecord(msg recordedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("could not save progress", "user", m.config.UserID, "error", msg.err)
		if m.view == viewMenu {
			m.menu.notice = "progress not saved: " + errorText(msg.err)
		}
		return m, nil
	}
	return m, loadSummaryCmd(m.recorder, m.config.UserID)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsProgress() {
		board := NewBoardModel(m.recorder, m.logger, m.config.UserID, m.config.ScreenW, m.config.ScreenH)
		m.board = &board
		m.view = viewBoard
		return m, m.board.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// The menu only lists registered levels.
			m.logger.Error("could not create lesson", "level", selected.GameID, "error", err)
			return m, nil
		}

		m.config = m.menu.Config()
		gameModel := NewModel(game, m.recorder, m.logger, m.config)
		m.game = &gameModel
		m.view = viewGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates while a lesson runs.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		return m.backToMenu()
	}

	return m, cmd
}

// updateBoard handles updates on the progress board.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if boardModel, ok := newBoard.(BoardModel); ok {
		m.board = &boardModel
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.board.IsGoingBack() {
		m.board = nil
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu rebuilds the menu so it reflects the latest progress.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.recorder, m.logger, m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewBoard:
		return m.board.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven climb in the local terminal.
func RunSession(rec progress.Recorder, logger *log.Logger, cfg core.RuntimeConfig) error {
	_, err := tea.NewProgram(NewSessionModel(rec, logger, cfg), tea.WithAltScreen()).Run()
	return err
}
