package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/core"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/progress"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/registry"
)

const summaryTimeout = 10 * time.Second

// MenuItem is one level on the mountain.
type MenuItem struct {
	GameID  string
	Title   string
	Number  int
	Premium bool
}

// summaryMsg carries a freshly loaded progress summary.
type summaryMsg struct {
	summary *progress.Summary
	err     error
}

// loadSummaryCmd fetches the climber's summary in the background.
func loadSummaryCmd(rec progress.Recorder, userID string) tea.Cmd {
	if rec == nil || userID == "" {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
		defer cancel()
		sum, err := rec.Summary(ctx, userID)
		return summaryMsg{summary: sum, err: err}
	}
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	menuLockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuNoticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	menuControlsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the level picker. Levels are listed bottom to top of the
// climb with completion and lock markers from the climber's summary.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	width        int
	height       int
	recorder     progress.Recorder
	logger       *log.Logger
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	summary      *progress.Summary
	notice       string
	quitting     bool
	selected     *MenuItem // Set when user selects a level
	openProgress bool      // True if user pressed Tab for the progress board
}

// NewMenuModel creates a new menu model.
func NewMenuModel(rec progress.Recorder, logger *log.Logger, cfg core.RuntimeConfig) MenuModel {
	if logger == nil {
		logger = log.Default()
	}
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{
			GameID:  g.ID,
			Title:   g.Title,
			Number:  g.Number,
			Premium: g.Premium,
		})
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		recorder:  rec,
		logger:    logger,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init loads the climber's progress.
func (m MenuModel) Init() tea.Cmd {
	return loadSummaryCmd(m.recorder, m.config.UserID)
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil

	case summaryMsg:
		if msg.err != nil {
			m.logger.Warn("could not load progress", "user", m.config.UserID, "error", msg.err)
			m.notice = "progress unavailable, every level is open"
			return m, nil
		}
		m.summary = msg.summary
		m.notice = ""
		m.cursor = m.nextIndex()
		return m, nil
	}

	return m, nil
}

// nextIndex is the item to start on: the next level to climb.
func (m MenuModel) nextIndex() int {
	if m.summary == nil || m.summary.Next == "" {
		return m.cursor
	}
	for i, it := range m.items {
		if it.GameID == m.summary.Next {
			return i
		}
	}
	return m.cursor
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
		m.notice = ""

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		m.notice = ""

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if reason := m.lockReason(item); reason != "" {
			m.notice = reason
			return m, nil
		}
		m.selected = &item

	case MenuActionProgress:
		m.openProgress = true
	}

	return m, nil
}

// lockReason explains why a level cannot be played, or returns "".
// Without a summary nothing is locked.
func (m MenuModel) lockReason(it MenuItem) string {
	if m.summary == nil {
		return ""
	}
	st, ok := m.summary.Level(it.GameID)
	if !ok || st.Unlocked {
		return ""
	}
	if it.Premium && !m.summary.Premium {
		return fmt.Sprintf("%s is a premium level", it.Title)
	}
	return fmt.Sprintf("%s is locked: finish level %d first", it.Title, it.Number-1)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("C L I M B   A L G O   M O U N T A I N"), m.width))
	b.WriteString("\n\n")

	subtitle := "Pick a level"
	if m.summary != nil {
		subtitle = fmt.Sprintf("%s · %d/%d levels · %d points", m.config.UserID, m.summary.Completed, m.summary.Total, m.summary.Score)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		b.WriteString(centerText(m.renderItem(i, item), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(menuNoticeStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}
	controls := "Up/Down: Navigate  |  Enter: Climb  |  Tab: Progress  |  Q: Quit"
	b.WriteString(centerText(menuControlsStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(i int, item MenuItem) string {
	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}
	marker, score, style := "[ ]", "", lipgloss.NewStyle()
	if m.summary != nil {
		if st, ok := m.summary.Level(item.GameID); ok {
			switch {
			case st.Completed:
				marker, style = "[✓]", menuDoneStyle
				score = fmt.Sprintf("  %d", st.Score)
			case !st.Unlocked:
				marker, style = "[x]", menuLockedStyle
			}
		}
	}
	premium := ""
	if item.Premium {
		premium = " ★"
	}
	line := fmt.Sprintf("%s%s %02d %-26s%s%s", cursor, marker, item.Number, item.Title, premium, score)
	if i == m.cursor {
		style = menuCursorStyle
	}
	return style.Render(line)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsProgress returns true if user requested the progress board.
func (m MenuModel) WantsProgress() bool {
	return m.openProgress
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
