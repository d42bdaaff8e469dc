package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/core"
	_ "github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/games/lesson"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/levels"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/progress"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/storage"
)

var quiet = log.New(io.Discard)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// fakeRecorder records completions in memory.
type fakeRecorder struct {
	mu          sync.Mutex
	completions []progress.Completion
	summary     *progress.Summary
	err         error
}

func (f *fakeRecorder) Complete(_ context.Context, c progress.Completion) (*progress.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.completions = append(f.completions, c)
	return &progress.Receipt{
		Progress: storage.LevelProgress{UserID: c.UserID, LevelID: c.LevelID, Score: c.Score, Attempts: 1},
		Improved: true,
		Next:     "components",
	}, nil
}

func (f *fakeRecorder) Summary(_ context.Context, _ string) (*progress.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.summary, f.err
}

// firstLevelDone is the summary of a climber who finished level 1 only.
func firstLevelDone() *progress.Summary {
	sum := &progress.Summary{UserID: "ada", Completed: 1, Score: 300, Next: "components"}
	for _, l := range levels.MustDefault().All() {
		st := progress.LevelStatus{ID: l.ID, Number: l.Number, Title: l.Title, Premium: l.Premium}
		switch l.Number {
		case 1:
			st.Unlocked, st.Completed, st.Score, st.Attempts = true, true, 300, 2
		case 2:
			st.Unlocked = true
		}
		sum.Levels = append(sum.Levels, st)
	}
	sum.Total = len(sum.Levels)
	return sum
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 100, 30
	cfg.UserID = "ada"
	return cfg
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runes("j"), core.ActionDown, false},
		{runes("h"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runes("p"), core.ActionPause, false},
		{runes("r"), core.ActionRestart, false},
		{runes("z"), core.ActionNone, false},
	}
	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}

	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionProgress {
		t.Errorf("tab = %v, want MenuActionProgress", got)
	}
}

func TestMenuFollowsSummary(t *testing.T) {
	m := NewMenuModel(nil, quiet, testConfig())
	require.NotEmpty(t, m.items)

	updated, _ := m.Update(summaryMsg{summary: firstLevelDone()})
	m = updated.(MenuModel)
	assert.Equal(t, "components", m.items[m.cursor].GameID, "cursor should start on the next level")

	view := m.View()
	assert.Contains(t, view, "[✓]")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "★")

	// Level 3 is locked.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = updated.(MenuModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(MenuModel)
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.notice, "finish level 2 first")

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = updated.(MenuModel)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(MenuModel)
	require.NotNil(t, m.Selected())
	assert.Equal(t, "components", m.Selected().GameID)
}

func TestMenuPremiumLock(t *testing.T) {
	m := NewMenuModel(nil, quiet, testConfig())
	sum := firstLevelDone()
	m.summary = sum

	for i, it := range m.items {
		if it.GameID == "kruskal" {
			m.cursor = i
		}
	}
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(MenuModel)
	assert.Nil(t, m.Selected())
	assert.Contains(t, m.notice, "premium")
}

func TestMenuWithoutProgress(t *testing.T) {
	m := NewMenuModel(nil, quiet, testConfig())
	updated, _ := m.Update(summaryMsg{err: errors.New("connection refused")})
	m = updated.(MenuModel)
	assert.Contains(t, m.notice, "every level is open")

	m.cursor = len(m.items) - 1
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(MenuModel)
	require.NotNil(t, m.Selected(), "levels stay playable without a summary")
}

func TestMenuKeys(t *testing.T) {
	m := NewMenuModel(nil, quiet, testConfig())
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, updated.(MenuModel).WantsProgress())
	assert.Nil(t, cmd)

	updated, cmd = m.Update(runes("q"))
	assert.True(t, updated.(MenuModel).IsQuitting())
	assert.NotNil(t, cmd)
}

// finishingGame completes on its first tick.
type finishingGame struct {
	steps int
	done  bool
}

func (g *finishingGame) ID() string { return "bfs-dfs" }
func (g *finishingGame) Title() string { return "Finishing" }
func (g *finishingGame) Reset(core.RuntimeConfig) { g.done = false }
func (g *finishingGame) Render(dst *core.Screen) { dst.Clear() }
func (g *finishingGame) Concepts() []string { return []string{"breadth-first"} }
func (g *finishingGame) State() core.GameState { return core.GameState{Score: 250, GameOver: g.done} }
func (g *finishingGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	finished := !g.done
	g.done = true
	return core.StepResult{State: g.State(), Finished: finished}
}

func TestModelRecordsCompletionOnce(t *testing.T) {
	rec := &fakeRecorder{}
	game := &finishingGame{}
	m := NewModel(game, rec, quiet, testConfig())

	updated, _ := m.Update(TickMsg{})
	m = updated.(Model)
	assert.True(t, m.recorded)
	assert.Equal(t, "saving progress...", m.notice)

	msg := m.recordCmd()()
	updated, _ = m.Update(msg)
	m = updated.(Model)
	assert.Equal(t, "saved · unlocked components", m.notice)

	// Later ticks do not record again.
	updated, _ = m.Update(TickMsg{})
	m = updated.(Model)
	assert.Equal(t, 2, game.steps)

	require.Len(t, rec.completions, 1)
	c := rec.completions[0]
	assert.Equal(t, "ada", c.UserID)
	assert.Equal(t, "bfs-dfs", c.LevelID)
	assert.Equal(t, 250, c.Score)
	assert.Equal(t, []string{"breadth-first"}, c.Concepts)
}

func TestModelRecordFailureIsNotFatal(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("backend down")}
	m := NewModel(&finishingGame{}, rec, quiet, testConfig())

	updated, _ := m.Update(TickMsg{})
	m = updated.(Model)
	updated, _ = m.Update(m.recordCmd()())
	m = updated.(Model)

	assert.True(t, m.noticeErr)
	assert.True(t, strings.HasPrefix(m.notice, "progress not saved"))
	assert.False(t, m.IsQuitting())
}

func TestModelWithoutUserSkipsRecording(t *testing.T) {
	cfg := testConfig()
	cfg.UserID = ""
	m := NewModel(&finishingGame{}, &fakeRecorder{}, quiet, cfg)

	updated, _ := m.Update(TickMsg{})
	assert.Empty(t, updated.(Model).notice)
}

func TestModelBack(t *testing.T) {
	m := NewModel(&finishingGame{}, nil, quiet, testConfig())
	updated, cmd := m.Update(runes("b"))
	assert.True(t, updated.(Model).BackToMenu())
	assert.Nil(t, cmd, "back inside a session does not quit")

	m.standalone = true
	updated, cmd = m.Update(runes("b"))
	assert.True(t, updated.(Model).BackToMenu())
	assert.NotNil(t, cmd)
}

func TestBoard(t *testing.T) {
	b := NewBoardModel(nil, quiet, "ada", 120, 40)
	assert.Contains(t, b.View(), "Loading progress")

	updated, _ := b.Update(summaryMsg{summary: firstLevelDone()})
	b = updated.(BoardModel)
	view := b.View()
	assert.Contains(t, view, "PROGRESS - ada")
	assert.Contains(t, view, "1/12 levels")
	assert.Contains(t, view, "next: components")
	assert.Len(t, b.table.Rows(), 12)
	assert.Equal(t, "done", b.table.Rows()[0][2])
	assert.Equal(t, "open", b.table.Rows()[1][2])
	assert.Equal(t, "locked", b.table.Rows()[2][2])

	updated, _ = b.Update(runes("b"))
	assert.True(t, updated.(BoardModel).IsGoingBack())

	updated, _ = b.Update(runes("q"))
	assert.True(t, updated.(BoardModel).IsQuitting())
}

func TestBoardLoadError(t *testing.T) {
	b := NewBoardModel(nil, quiet, "ada", 120, 40)
	updated, _ := b.Update(summaryMsg{err: errors.New("boom")})
	assert.Contains(t, updated.(BoardModel).View(), "Progress unavailable")
}

func TestSessionFlow(t *testing.T) {
	rec := &fakeRecorder{summary: firstLevelDone()}
	s := NewSessionModel(rec, quiet, testConfig())

	updated, _ := s.Update(summaryMsg{summary: rec.summary})
	s = updated.(SessionModel)

	// Enter opens the next level.
	updated, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = updated.(SessionModel)
	require.Equal(t, viewGame, s.view)
	assert.Equal(t, "components", s.game.game.ID())
	assert.NotNil(t, cmd)

	// Back returns to a fresh menu that reloads progress.
	updated, cmd = s.Update(runes("b"))
	s = updated.(SessionModel)
	assert.Equal(t, viewMenu, s.view)
	assert.Nil(t, s.game)
	require.NotNil(t, cmd)
	assert.IsType(t, summaryMsg{}, cmd())

	// Tab opens the board, b closes it.
	updated, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = updated.(SessionModel)
	require.Equal(t, viewBoard, s.view)
	updated, _ = s.Update(runes("b"))
	s = updated.(SessionModel)
	assert.Equal(t, viewMenu, s.view)

	updated, cmd = s.Update(runes("q"))
	assert.True(t, updated.(SessionModel).quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, updated.(SessionModel).View())
}

func TestSessionSaveLandsAfterLeavingLesson(t *testing.T) {
	rec := &fakeRecorder{summary: firstLevelDone()}
	s := NewSessionModel(rec, quiet, testConfig())
	updated, _ := s.Update(summaryMsg{summary: rec.summary})
	s = updated.(SessionModel)

	updated, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = updated.(SessionModel)
	require.Equal(t, viewGame, s.view)

	// The menu reloads before the save of the lesson has landed.
	updated, cmd := s.Update(runes("b"))
	s = updated.(SessionModel)
	require.Equal(t, viewMenu, s.view)
	updated, _ = s.Update(cmd())
	s = updated.(SessionModel)
	assert.Equal(t, "components", s.menu.summary.Next)

	later := *firstLevelDone()
	later.Completed, later.Next = 2, "cycle-detection"
	rec.mu.Lock()
	rec.summary = &later
	rec.mu.Unlock()

	updated, cmd = s.Update(recordedMsg{receipt: &progress.Receipt{Next: "cycle-detection"}})
	s = updated.(SessionModel)
	require.NotNil(t, cmd, "a late save must refresh the menu")
	msg := cmd()
	require.IsType(t, summaryMsg{}, msg)
	updated, _ = s.Update(msg)
	s = updated.(SessionModel)
	assert.Equal(t, viewMenu, s.view)
	assert.Equal(t, "cycle-detection", s.menu.summary.Next)
	assert.Equal(t, 2, s.menu.summary.Completed)

	updated, cmd = s.Update(recordedMsg{err: errors.New("db down")})
	s = updated.(SessionModel)
	assert.Nil(t, cmd)
	assert.Contains(t, s.menu.notice, "progress not saved")
}
