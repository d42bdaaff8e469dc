package lesson

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/core"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/levels"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/registry"
)

func newTestGame(t *testing.T, id string) *Game {
	t.Helper()
	l, err := levels.MustDefault().Get(id)
	if err != nil {
		t.Fatalf("Get(%q): %v", id, err)
	}
	g := New(l)
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = 100, 30
	cfg.StepTicks = 1
	g.Reset(cfg)
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	return g.Step(core.NewInputFrame(actions...))
}

// playOut confirms the selected card and ticks until its animation ends.
func playOut(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	res := press(g, core.ActionConfirm)
	for i := 0; i < 10000 && g.anim != nil && !g.anim.done(); i++ {
		res = press(g)
	}
	if g.anim == nil || !g.anim.done() {
		t.Fatalf("animation of card %d did not finish", g.selected)
	}
	return res
}

func TestInitialState(t *testing.T) {
	g := newTestGame(t, "bfs-dfs")
	s := g.State()

	if s.CardCount != 3 || s.Visited != 0 {
		t.Errorf("cards = %d/%d, want 0/3", s.Visited, s.CardCount)
	}
	if s.Score != 300 {
		t.Errorf("Score = %d, want 300", s.Score)
	}
	if s.GameOver {
		t.Error("fresh lesson should not be over")
	}
}

func TestCompleteLevel(t *testing.T) {
	g := newTestGame(t, "bfs-dfs")

	finishedTicks := 0
	for i := range g.cards {
		if i > 0 {
			press(g, core.ActionDown)
		}
		if res := playOut(t, g); res.Finished {
			finishedTicks++
		}
		// A few idle ticks after the end must not re-finish.
		for range 3 {
			if press(g).Finished {
				finishedTicks++
			}
		}
	}

	s := g.State()
	if !s.Completed() {
		t.Fatalf("level should be complete, state = %+v", s)
	}
	if finishedTicks != 1 {
		t.Errorf("Finished reported %d times, want 1", finishedTicks)
	}
	if s.Score != 300 {
		t.Errorf("Score = %d, want 300", s.Score)
	}
	if got := strings.Join(g.Concepts(), ","); got != "breadth-first,depth-first,fewest-ropes" {
		t.Errorf("Concepts() = %q", got)
	}
}

func TestSelectionWraps(t *testing.T) {
	g := newTestGame(t, "bfs-dfs")

	press(g, core.ActionUp)
	if g.selected != 2 {
		t.Errorf("Up from first card selected %d, want 2", g.selected)
	}
	press(g, core.ActionDown)
	if g.selected != 0 {
		t.Errorf("Down from last card selected %d, want 0", g.selected)
	}
}

func TestRestartPenalty(t *testing.T) {
	g := newTestGame(t, "bfs-dfs")

	press(g, core.ActionConfirm)
	press(g)
	press(g, core.ActionRestart)
	if g.anim.cursor > 1 {
		t.Errorf("restart should rewind, cursor = %d", g.anim.cursor)
	}
	if g.Score() != 290 {
		t.Errorf("Score after one restart = %d, want 290", g.Score())
	}

	// Confirming the running card again is also a restart.
	press(g, core.ActionConfirm)
	if g.restarts != 2 {
		t.Errorf("restarts = %d, want 2", g.restarts)
	}
}

func TestScoreFloor(t *testing.T) {
	g := newTestGame(t, "bfs-dfs")
	press(g, core.ActionConfirm)
	for range 50 {
		press(g, core.ActionRestart)
	}
	if g.Score() != levels.MinScore {
		t.Errorf("Score = %d, want floor %d", g.Score(), levels.MinScore)
	}
}

func TestPauseAndSeek(t *testing.T) {
	g := newTestGame(t, "bfs-dfs")

	press(g, core.ActionConfirm)
	press(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("lesson should be paused")
	}
	at := g.anim.cursor
	for range 5 {
		press(g)
	}
	if g.anim.cursor != at {
		t.Errorf("paused animation moved from %d to %d", at, g.anim.cursor)
	}

	press(g, core.ActionRight)
	if g.anim.cursor != at+1 {
		t.Errorf("Right should step forward, cursor = %d", g.anim.cursor)
	}
	press(g, core.ActionLeft)
	press(g, core.ActionLeft)
	if g.anim.cursor != at-1 {
		t.Errorf("Left should step back, cursor = %d", g.anim.cursor)
	}

	// Resuming advances on the same tick.
	press(g, core.ActionPause)
	if g.anim.cursor != at {
		t.Errorf("resumed animation should advance, cursor = %d", g.anim.cursor)
	}
}

func TestPauseWithoutAnimationIgnored(t *testing.T) {
	g := newTestGame(t, "bfs-dfs")
	press(g, core.ActionPause)
	if g.State().Paused {
		t.Error("pause needs a running animation")
	}
}

func TestReplayMarks(t *testing.T) {
	steps := []trace.Step{
		{Kind: trace.KindEnqueue, Node: "A"},
		{Kind: trace.KindDequeue, Node: "A"},
		{Kind: trace.KindEnqueue, Node: "B", From: "A", To: "B"},
		{Kind: trace.KindRelax, From: "A", To: "C", Value: 4},
		{Kind: trace.KindReject, From: "B", To: "C"},
		{Kind: trace.KindUnion, From: "C", To: "A"},
	}
	b := replay(steps, len(steps))

	if b.nodes["A"] < markVisited {
		t.Errorf("A mark = %d, want at least visited", b.nodes["A"])
	}
	if b.nodes["B"] != markFrontier {
		t.Errorf("B mark = %d, want frontier", b.nodes["B"])
	}
	if b.labels["C"] != "4" {
		t.Errorf("C label = %q, want 4", b.labels["C"])
	}
	if b.edge("C", "B") != markRejected {
		t.Error("edge lookup should work in both directions")
	}
	if b.parent["C"] != "A" {
		t.Errorf("parent[C] = %q, want A", b.parent["C"])
	}
	if b.focus != "A" {
		t.Errorf("focus = %q, want A", b.focus)
	}

	if b := replay(steps, 0); len(b.nodes) != 0 || b.focus != "" {
		t.Error("empty prefix should give an empty board")
	}
}

func TestRender(t *testing.T) {
	tests := []string{"bfs-dfs", "disjoint-set-union", "tree-views"}
	for _, id := range tests {
		t.Run(id, func(t *testing.T) {
			g := newTestGame(t, id)
			press(g, core.ActionConfirm)
			press(g)

			s := core.NewScreen(100, 30)
			g.Render(s)
			out := s.String()
			for _, want := range []string{"Level", "Concept cards", "Steps"} {
				if !strings.Contains(out, want) {
					t.Errorf("render missing %q", want)
				}
			}
		})
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, "bfs-dfs")
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, StepTicks: 1})

	s := core.NewScreen(30, 10)
	g.Render(s)
	if !strings.Contains(s.String(), "Window too small") {
		t.Error("expected too-small message")
	}
}

func TestLevelsRegistered(t *testing.T) {
	list := registry.List()
	if len(list) != levels.MustDefault().Len() {
		t.Fatalf("registry has %d games, want %d", len(list), levels.MustDefault().Len())
	}
	for i, info := range list {
		if info.Number != i+1 {
			t.Errorf("List()[%d].Number = %d", i, info.Number)
		}
	}
	if info, _ := registry.Info("tree-views"); !info.Premium {
		t.Error("tree-views should be premium")
	}
}

func TestInstallCustomCatalogue(t *testing.T) {
	custom := fstest.MapFS{
		"levels/01.yaml": &fstest.MapFile{Data: []byte(`id: warmup
number: 1
title: Warm-up
summary: One edge
kind: graph
graph:
  vertices: [A, B]
  edges:
    - {from: A, to: B}
cards:
  - id: walk
    title: Walk it
    algorithm: bfs
    source: A
`)},
	}
	cat, err := levels.Load(custom, "levels")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	registry.Clear()
	t.Cleanup(func() {
		registry.Clear()
		Install(levels.MustDefault())
	})
	Install(cat)

	list := registry.List()
	if len(list) != 1 || list[0].ID != "warmup" {
		t.Fatalf("registry = %+v, want only warmup", list)
	}
	g, err := registry.Create("warmup")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Warm-up" {
		t.Errorf("Title() = %q", g.Title())
	}
}
