package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.EnsureUser(ctx, "ada", "Ada"); err != nil {
		t.Fatalf("EnsureUser() failed: %v", err)
	}
	if _, err := store.Profile(ctx, "ada"); err != nil {
		t.Errorf("Profile() after EnsureUser failed: %v", err)
	}
}

func TestStoreUsers(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.Profile(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Profile(unknown) error = %v, want ErrNotFound", err)
	}

	u, err := store.EnsureUser(ctx, "ada", "")
	if err != nil {
		t.Fatalf("EnsureUser() failed: %v", err)
	}
	if u.ID != "ada" || u.Premium {
		t.Errorf("new user = %+v", u)
	}

	// Empty name is filled in later, a set name is kept.
	u, _ = store.EnsureUser(ctx, "ada", "Ada")
	if u.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", u.Name)
	}
	u, _ = store.EnsureUser(ctx, "ada", "Someone Else")
	if u.Name != "Ada" {
		t.Errorf("Name overwritten to %q", u.Name)
	}

	u, err = store.SetPremium(ctx, "ada", true)
	if err != nil {
		t.Fatalf("SetPremium() failed: %v", err)
	}
	if !u.Premium || u.Name != "Ada" {
		t.Errorf("after SetPremium user = %+v", u)
	}

	// SetPremium creates missing users.
	if u, err := store.SetPremium(ctx, "grace", true); err != nil || !u.Premium {
		t.Errorf("SetPremium(new) = %+v, %v", u, err)
	}
}

func TestStoreRecordCompletionKeepsBest(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	p, improved, err := store.RecordCompletion(ctx, Completion{
		EventID: "e1", UserID: "ada", LevelID: "bfs-dfs", Score: 280, Concepts: []string{"bfs"},
	})
	if err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if !improved || p.Score != 280 || p.Attempts != 1 {
		t.Errorf("first completion = %+v improved=%v", p, improved)
	}

	// A worse play counts as an attempt but keeps the best score.
	p, improved, err = store.RecordCompletion(ctx, Completion{
		EventID: "e2", UserID: "ada", LevelID: "bfs-dfs", Score: 150, Concepts: []string{"dfs"},
	})
	if err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if improved || p.Score != 280 || p.Attempts != 2 {
		t.Errorf("worse completion = %+v improved=%v", p, improved)
	}
	if len(p.Concepts) != 1 || p.Concepts[0] != "bfs" {
		t.Errorf("Concepts = %v, want the best play's [bfs]", p.Concepts)
	}

	p, improved, _ = store.RecordCompletion(ctx, Completion{
		EventID: "e3", UserID: "ada", LevelID: "bfs-dfs", Score: 300, Concepts: []string{"bfs", "dfs"},
	})
	if !improved || p.Score != 300 || p.Attempts != 3 || len(p.Concepts) != 2 {
		t.Errorf("better completion = %+v improved=%v", p, improved)
	}

	// The user row is created on the fly.
	if _, err := store.Profile(ctx, "ada"); err != nil {
		t.Errorf("Profile() after completion failed: %v", err)
	}

	events, err := store.Events(ctx, "ada", 10)
	if err != nil {
		t.Fatalf("Events() failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].ID != "e3" || events[0].Kind != EventComplete {
		t.Errorf("newest event = %+v", events[0])
	}
}

func TestStoreDuplicateEventRollsBack(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	c := Completion{EventID: "same", UserID: "ada", LevelID: "prim", Score: 200}
	if _, _, err := store.RecordCompletion(ctx, c); err != nil {
		t.Fatal(err)
	}
	c.Score = 300
	if _, _, err := store.RecordCompletion(ctx, c); !errors.Is(err, ErrDuplicateEvent) {
		t.Fatalf("reusing an event id: err = %v, want ErrDuplicateEvent", err)
	}
	other := Completion{EventID: "same", UserID: "grace", LevelID: "prim", Score: 300}
	if _, _, err := store.RecordCompletion(ctx, other); !errors.Is(err, ErrEventConflict) {
		t.Fatalf("foreign event id: err = %v, want ErrEventConflict", err)
	}
	if _, err := store.LevelProgress(ctx, "grace", "prim"); !errors.Is(err, ErrNotFound) {
		t.Errorf("conflicting completion was stored: %v", err)
	}
	p, err := store.LevelProgress(ctx, "ada", "prim")
	if err != nil {
		t.Fatal(err)
	}
	if p.Score != 200 || p.Attempts != 1 {
		t.Errorf("failed completion leaked into progress: %+v", p)
	}
}

func TestStoreProgressAndReset(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, lvl := range []string{"prim", "bfs-dfs", "dijkstra"} {
		store.RecordCompletion(ctx, Completion{UserID: "ada", LevelID: lvl, Score: 100})
	}
	store.RecordCompletion(ctx, Completion{UserID: "grace", LevelID: "prim", Score: 100})

	rows, err := store.Progress(ctx, "ada")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if len(rows) != 3 || rows[0].LevelID != "bfs-dfs" || rows[2].LevelID != "prim" {
		t.Errorf("Progress() = %+v", rows)
	}

	if _, err := store.LevelProgress(ctx, "ada", "kruskal"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LevelProgress(missing) error = %v", err)
	}

	n, err := store.ResetProgress(ctx, "ada", "reset-1")
	if err != nil {
		t.Fatalf("ResetProgress() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("ResetProgress() removed %d rows, want 3", n)
	}
	if rows, _ := store.Progress(ctx, "ada"); len(rows) != 0 {
		t.Errorf("progress after reset = %v", rows)
	}
	// Other users are untouched.
	if rows, _ := store.Progress(ctx, "grace"); len(rows) != 1 {
		t.Error("reset should not affect other users")
	}
	events, _ := store.Events(ctx, "ada", 1)
	if len(events) != 1 || events[0].Kind != EventReset {
		t.Errorf("latest event = %+v, want reset", events)
	}
}

func TestStoreLeaderboard(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.EnsureUser(ctx, "ada", "Ada")
	scores := map[string]int{"ada": 300, "grace": 250, "linus": 290, "ken": 100}
	for user, score := range scores {
		store.RecordCompletion(ctx, Completion{UserID: user, LevelID: "prim", Score: score})
	}
	store.RecordCompletion(ctx, Completion{UserID: "ken", LevelID: "kruskal", Score: 400})

	board, err := store.Leaderboard(ctx, "prim", 3)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	if len(board) != 3 {
		t.Fatalf("Expected 3 entries with limit, got %d", len(board))
	}
	want := []string{"ada", "linus", "grace"}
	for i, e := range board {
		if e.UserID != want[i] || e.Rank != i+1 {
			t.Errorf("board[%d] = %+v, want %s", i, e, want[i])
		}
	}
	if board[0].Name != "Ada" {
		t.Errorf("board[0].Name = %q", board[0].Name)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SetPremium(ctx, "ada", true)
	store.RecordCompletion(ctx, Completion{EventID: "1", UserID: "ada", LevelID: "prim", Score: 300})
	store.RecordCompletion(ctx, Completion{EventID: "2", UserID: "ada", LevelID: "prim", Score: 100})
	store.RecordCompletion(ctx, Completion{EventID: "3", UserID: "grace", LevelID: "prim", Score: 200})

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Users != 2 || stats.PremiumUsers != 1 || stats.Completions != 2 || stats.Events != 3 {
		t.Errorf("Stats() = %+v", stats)
	}
	prim := stats.Levels["prim"]
	if prim == nil {
		t.Fatal("missing prim stats")
	}
	if prim.Completions != 2 || prim.Attempts != 3 || prim.BestScore != 300 || prim.AvgScore != 250 {
		t.Errorf("prim stats = %+v", prim)
	}
	if prim.LastCompleted.IsZero() {
		t.Error("LastCompleted should be set")
	}
}
