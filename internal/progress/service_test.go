package progress

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/apperr"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/levels"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	n := 0
	return NewService(store, levels.MustDefault(),
		WithLogger(log.New(io.Discard)),
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("event-%d", n)
		}),
	)
}

// finished is a completion that visited every card of the level.
func finished(t *testing.T, user, levelID string, score int) Completion {
	t.Helper()
	l, err := levels.MustDefault().Get(levelID)
	require.NoError(t, err)
	c := Completion{UserID: user, LevelID: levelID, Score: score}
	for _, card := range l.Cards {
		c.Concepts = append(c.Concepts, card.ID)
	}
	return c
}

// climb completes every level up to and including the given number with
// the best possible score.
func climb(t *testing.T, s *Service, user string, upTo int) {
	t.Helper()
	for _, l := range levels.MustDefault().All() {
		if l.Number > upTo {
			return
		}
		_, err := s.Complete(context.Background(), finished(t, user, l.ID, l.MaxScore()))
		require.NoError(t, err, "complete %s", l.ID)
	}
}

func TestSummaryNewClimber(t *testing.T) {
	s := newTestService(t)

	sum, err := s.Summary(context.Background(), "ada")
	require.NoError(t, err)

	assert.Equal(t, 0, sum.Completed)
	assert.Equal(t, levels.MustDefault().Len(), sum.Total)
	assert.Equal(t, "bfs-dfs", sum.Next)
	assert.False(t, sum.Premium)
	assert.True(t, sum.Unlocked("bfs-dfs"))
	assert.False(t, sum.Unlocked("components"))
	assert.Len(t, sum.Levels, sum.Total)
}

func TestCompleteUnlocksNextLevel(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	r, err := s.Complete(ctx, Completion{
		UserID:   "ada",
		LevelID:  "bfs-dfs",
		Score:    290,
		Concepts: []string{"breadth-first", "depth-first", "breadth-first", "fewest-ropes"},
	})
	require.NoError(t, err)
	assert.Equal(t, "event-1", r.EventID)
	assert.True(t, r.Improved)
	assert.Equal(t, "components", r.Next)
	assert.Equal(t, []string{"breadth-first", "depth-first", "fewest-ropes"}, r.Progress.Concepts)

	ok, err := s.Unlocked(ctx, "ada", "components")
	require.NoError(t, err)
	assert.True(t, ok)

	// Replaying a completed level unlocks nothing new.
	r, err = s.Complete(ctx, finished(t, "ada", "bfs-dfs", 100))
	require.NoError(t, err)
	assert.False(t, r.Improved)
	assert.Empty(t, r.Next)
	assert.Equal(t, 290, r.Progress.Score)
	assert.Equal(t, 2, r.Progress.Attempts)

	sum, err := s.Summary(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Completed)
	assert.Equal(t, 290, sum.Score)
	assert.Equal(t, "components", sum.Next)
}

func TestCompleteRejections(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		c    Completion
		code apperr.Code
	}{
		{"missing user", Completion{LevelID: "bfs-dfs"}, apperr.CodeMissingUser},
		{"unknown level", Completion{UserID: "ada", LevelID: "everest"}, apperr.CodeLevelNotFound},
		{"unknown card", Completion{UserID: "ada", LevelID: "bfs-dfs", Score: 300, Concepts: []string{"nope"}}, apperr.CodeCardNotFound},
		{"negative score", finished(t, "ada", "bfs-dfs", -1), apperr.CodeInvalidInput},
		{"score below floor", finished(t, "ada", "bfs-dfs", levels.MinScore-1), apperr.CodeInvalidInput},
		{"score above level maximum", finished(t, "ada", "bfs-dfs", 301), apperr.CodeInvalidInput},
		{"inflated score", finished(t, "ada", "bfs-dfs", 999999999), apperr.CodeInvalidInput},
		{"no cards visited", Completion{UserID: "ada", LevelID: "bfs-dfs", Score: 100}, apperr.CodeInvalidInput},
		{"card missing", Completion{UserID: "ada", LevelID: "bfs-dfs", Score: 200, Concepts: []string{"breadth-first", "depth-first", "depth-first"}}, apperr.CodeInvalidInput},
		{"locked", finished(t, "ada", "cycle-detection", 200), apperr.CodeLevelLocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Complete(ctx, tt.c)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, tt.code), "got %v, want %s", err, tt.code)
		})
	}

	sum, err := s.Summary(ctx, "ada")
	require.NoError(t, err)
	assert.Zero(t, sum.Completed, "rejected completions must not be stored")

	board, err := s.Leaderboard(ctx, "bfs-dfs", 10)
	require.NoError(t, err)
	assert.Empty(t, board)
}

func TestCompleteMissingCardsAreNamed(t *testing.T) {
	s := newTestService(t)

	_, err := s.Complete(context.Background(), Completion{
		UserID: "ada", LevelID: "bfs-dfs", Score: 100, Concepts: []string{"depth-first"},
	})
	require.Error(t, err)
	assert.Contains(t, apperr.UserMessage(err), "breadth-first, fewest-ropes")
}

func TestCompleteWithEventIDIsIdempotent(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	c := finished(t, "ada", "bfs-dfs", 250)
	c.EventID = "b0c4f1de-5d0e-4d4a-9d8e-2f6b1f3f9a10"
	first, err := s.Complete(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, c.EventID, first.EventID)
	assert.False(t, first.Replayed)
	assert.Equal(t, "components", first.Next)

	again, err := s.Complete(ctx, c)
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, c.EventID, again.EventID)
	assert.Equal(t, 1, again.Progress.Attempts)
	assert.Equal(t, 250, again.Progress.Score)

	events, err := s.Events(ctx, "ada", 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// The same id on another level is a client bug, not a replay.
	other := finished(t, "ada", "components", 200)
	other.EventID = c.EventID
	_, err = s.Complete(ctx, other)
	assert.True(t, apperr.Is(err, apperr.CodeInvalidInput), "got %v", err)
}

func TestPremiumGate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	climb(t, s, "ada", 8)
	r, err := s.Complete(ctx, finished(t, "ada", "disjoint-set-union", 200))
	require.NoError(t, err)
	assert.Empty(t, r.Next, "premium level should not be reported as unlocked")

	_, err = s.Complete(ctx, finished(t, "ada", "kruskal", 200))
	assert.True(t, apperr.Is(err, apperr.CodePremiumRequired), "got %v", err)

	sum, err := s.Summary(ctx, "ada")
	require.NoError(t, err)
	assert.Empty(t, sum.Next)
	assert.Equal(t, 9, sum.Completed)

	u, err := s.ActivatePremium(ctx, "ada")
	require.NoError(t, err)
	assert.True(t, u.Premium)

	sum, err = s.Summary(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, "kruskal", sum.Next)
	assert.False(t, sum.Unlocked("tree-traversals"))

	r, err = s.Complete(ctx, finished(t, "ada", "kruskal", 200))
	require.NoError(t, err)
	assert.Equal(t, "tree-traversals", r.Next)
}

func TestLevelStatus(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	climb(t, s, "ada", 1)

	st, err := s.LevelStatus(ctx, "ada", "bfs-dfs")
	require.NoError(t, err)
	assert.True(t, st.Completed)
	assert.Equal(t, 300, st.Score)
	assert.False(t, st.CompletedAt.IsZero())

	st, err = s.LevelStatus(ctx, "ada", "components")
	require.NoError(t, err)
	assert.True(t, st.Unlocked)
	assert.False(t, st.Completed)

	_, err = s.LevelStatus(ctx, "ada", "everest")
	assert.True(t, apperr.Is(err, apperr.CodeLevelNotFound))
}

func TestResetAndEvents(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	climb(t, s, "ada", 3)

	n, err := s.Reset(ctx, "ada")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	sum, err := s.Summary(ctx, "ada")
	require.NoError(t, err)
	assert.Zero(t, sum.Completed)
	assert.Equal(t, "bfs-dfs", sum.Next)

	events, err := s.Events(ctx, "ada", 10)
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, storage.EventReset, events[0].Kind)
}

func TestLeaderboardAndStats(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	climb(t, s, "ada", 2)
	climb(t, s, "grace", 1)

	board, err := s.Leaderboard(ctx, "bfs-dfs", 5)
	require.NoError(t, err)
	assert.Len(t, board, 2)

	_, err = s.Leaderboard(ctx, "everest", 5)
	assert.True(t, apperr.Is(err, apperr.CodeLevelNotFound))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Users)
	assert.Equal(t, 3, stats.Completions)
}

func TestProfileOfUnknownClimber(t *testing.T) {
	s := newTestService(t)

	u, err := s.Profile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", u.ID)
	assert.False(t, u.Premium)

	_, err = s.Profile(context.Background(), "  ")
	assert.True(t, apperr.Is(err, apperr.CodeMissingUser))
}
