package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/apperr"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/core"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/progress"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/registry"
)

// recordTimeout bounds one completion upload, retries included.
const recordTimeout = 15 * time.Second

// conceptReporter is implemented by lessons that know which concept cards
// the player explored.
type conceptReporter interface {
	Concepts() []string
}

// recordedMsg carries the outcome of saving a completion.
type recordedMsg struct {
	receipt *progress.Receipt
	err     error
}

// Model is the Bubble Tea model for running one lesson.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	recorder   progress.Recorder
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	notice     string
	noticeErr  bool
	quitting   bool
	backToMenu bool
	standalone bool // Back quits instead of returning to a menu
	recorded   bool // Whether the current completion was sent
}

// NewModel creates a model for game. A nil recorder plays without saving.
func NewModel(game registry.Game, rec progress.Recorder, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if logger == nil {
		logger = log.Default()
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   rec,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the lesson.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case recordedMsg:
		return m.handleRecorded(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		m.inputFrame.Clear()
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleResize resizes the screen buffer. Lessons lay out on every render,
// so the lesson keeps its progress.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	if r, ok := m.game.(interface{ Resize(w, h int) }); ok {
		r.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	// Restart after completion replays the level from scratch.
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.recorded = false
		m.notice = ""
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if result.Finished && !m.recorded {
		m.recorded = true
		if cmd := m.recordCmd(); cmd != nil {
			m.notice = "saving progress..."
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// recordCmd reports the finished lesson in the background. Saving never
// blocks or ends the lesson.
func (m Model) recordCmd() tea.Cmd {
	if m.recorder == nil || m.config.UserID == "" {
		return nil
	}
	c := progress.Completion{
		UserID:  m.config.UserID,
		LevelID: m.game.ID(),
		Score:   m.gameState.Score,
	}
	if cr, ok := m.game.(conceptReporter); ok {
		c.Concepts = cr.Concepts()
	}
	rec := m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		r, err := rec.Complete(ctx, c)
		return recordedMsg{receipt: r, err: err}
	}
}

func (m Model) handleRecorded(msg recordedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("could not save progress", "user", m.config.UserID, "level", m.game.ID(), "error", msg.err)
		m.notice = "progress not saved: " + errorText(msg.err)
		m.noticeErr = true
		return m, nil
	}
	m.noticeErr = false
	switch r := msg.receipt; {
	case r.Next != "":
		m.notice = fmt.Sprintf("saved · unlocked %s", r.Next)
	case r.Improved:
		m.notice = fmt.Sprintf("saved · new best %d", r.Progress.Score)
	default:
		m.notice = fmt.Sprintf("saved · best stays %d", r.Progress.Score)
	}
	return m, nil
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".algomountain", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, lesson continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.notice != "" && m.screen.Height() > 0 {
		y := m.screen.Height() - 1
		color := core.ColorBrightGreen
		if m.noticeErr {
			color = core.ColorOrange
		}
		m.screen.DrawHLine(0, y, m.screen.Width(), ' ', core.ColorDefault)
		m.screen.DrawTextColor(1, y, m.notice, color)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single lesson in the local terminal.
func Run(game registry.Game, rec progress.Recorder, logger *log.Logger, cfg core.RuntimeConfig) error {
	m := NewModel(game, rec, logger, cfg)
	m.standalone = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// errorText is the user-facing part of an error.
func errorText(err error) string {
	return apperr.UserMessage(err)
}
