// Package lesson turns a catalogue level into a playable game: the player
// picks concept cards and watches each algorithm animate step by step.
// A level is complete once every card's animation has played to the end.
package lesson

import (
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/graph"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/core"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/levels"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/registry"
)

// card is a concept card plus its play state.
type card struct {
	levels.ConceptCard
	visited bool
	result  *levels.Result
	err     error
}

// Game implements registry.Game for one level.
type Game struct {
	level *levels.Level
	graph *graph.Graph // nil for tree and DSU levels

	cards    []card
	selected int
	anim     *animation
	restarts int

	stepTicks int
	screenW   int
	screenH   int
	tick      uint64

	paused   bool
	complete bool
}

// New creates a lesson for level.
func New(level *levels.Level) *Game {
	g := &Game{level: level}
	if level.Graph != nil {
		// The catalogue validated the graph already.
		g.graph, _ = level.Graph.Build()
	}
	return g
}

func init() {
	Install(levels.MustDefault())
}

// Install registers one lesson per level of cat. Callers swapping in a
// custom catalogue clear the registry first.
func Install(cat *levels.Catalogue) {
	for _, l := range cat.All() {
		registry.Register(l.ID, func() registry.Game {
			return New(l)
		})
	}
}

// ID returns the level ID.
func (g *Game) ID() string { return g.level.ID }

// Title returns the level title.
func (g *Game) Title() string { return g.level.Title }

// Number returns the level's place on the climb.
func (g *Game) Number() int { return g.level.Number }

// Premium reports whether the level needs a premium profile.
func (g *Game) Premium() bool { return g.level.Premium }

// Level returns the catalogue entry this lesson plays.
func (g *Game) Level() *levels.Level { return g.level }

// Reset initializes or restarts the lesson.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cards = make([]card, len(g.level.Cards))
	for i, c := range g.level.Cards {
		g.cards[i] = card{ConceptCard: c}
	}
	g.selected = 0
	g.anim = nil
	g.restarts = 0
	g.stepTicks = max(1, cfg.StepTicks)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.complete = false
}

// Resize adapts the layout to a new terminal size without losing progress.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Step advances the lesson by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.complete {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.anim != nil {
		g.paused = !g.paused
	}

	switch {
	case in.Has(core.ActionUp):
		g.selected = (g.selected - 1 + len(g.cards)) % len(g.cards)
	case in.Has(core.ActionDown):
		g.selected = (g.selected + 1) % len(g.cards)
	case in.Has(core.ActionConfirm):
		g.play(g.selected)
	case in.Has(core.ActionRestart):
		g.restart()
	case in.Has(core.ActionLeft):
		g.seek(-1)
	case in.Has(core.ActionRight):
		g.seek(1)
	}

	if g.anim != nil && !g.paused {
		g.advance()
	}

	finished := false
	if !g.complete && g.allVisited() {
		g.complete = true
		finished = true
	}
	return core.StepResult{State: g.State(), Finished: finished}
}

// play starts the animation of card i. Replaying a card whose animation
// is still running counts as a restart.
func (g *Game) play(i int) {
	if g.anim != nil && g.anim.card == i && !g.anim.done() {
		g.restart()
		return
	}

	c := &g.cards[i]
	if c.result == nil && c.err == nil {
		c.result, c.err = levels.Run(c.ConceptCard, g.level)
	}
	if c.err != nil {
		// Nothing to animate; the error is shown in the log.
		c.visited = true
		g.anim = nil
		return
	}
	g.anim = newAnimation(i, c.result)
	g.paused = false
}

func (g *Game) restart() {
	if g.anim == nil {
		return
	}
	g.anim.rewind()
	g.restarts++
	g.paused = false
}

// seek moves the animation cursor by delta while paused.
func (g *Game) seek(delta int) {
	if g.anim == nil || !g.paused {
		return
	}
	g.anim.seek(delta)
	if g.anim.done() {
		g.cards[g.anim.card].visited = true
	}
}

func (g *Game) advance() {
	if g.anim.tickOnce(g.stepTicks) {
		g.cards[g.anim.card].visited = true
	}
}

func (g *Game) allVisited() bool {
	for _, c := range g.cards {
		if !c.visited {
			return false
		}
	}
	return len(g.cards) > 0
}

func (g *Game) visitedCount() int {
	n := 0
	for _, c := range g.cards {
		if c.visited {
			n++
		}
	}
	return n
}

// Score is the level score: points per card minus a penalty per restart.
func (g *Game) Score() int {
	return max(levels.MinScore, len(g.cards)*levels.PointsPerCard-g.restarts*levels.RestartPenalty)
}

// Concepts returns the IDs of cards whose animation finished.
func (g *Game) Concepts() []string {
	var out []string
	for _, c := range g.cards {
		if c.visited {
			out = append(out, c.ID)
		}
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.Score(),
		GameOver:  g.complete,
		Paused:    g.paused,
		Visited:   g.visitedCount(),
		CardCount: len(g.cards),
	}
}
