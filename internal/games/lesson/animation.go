package lesson

import (
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/levels"
)

// animation replays a recorded trace, one step every stepTicks ticks.
// cursor is the number of steps already applied.
type animation struct {
	card   int
	result *levels.Result
	cursor int
	ticks  int
}

func newAnimation(card int, res *levels.Result) *animation {
	return &animation{card: card, result: res}
}

func (a *animation) steps() []trace.Step {
	if a.result == nil || a.result.Trace == nil {
		return nil
	}
	return a.result.Trace.Steps
}

func (a *animation) done() bool {
	return a.cursor >= len(a.steps())
}

func (a *animation) rewind() {
	a.cursor = 0
	a.ticks = 0
}

func (a *animation) seek(delta int) {
	a.cursor = max(0, min(len(a.steps()), a.cursor+delta))
	a.ticks = 0
}

// tickOnce advances the clock and reports true on the tick the last step
// is applied.
func (a *animation) tickOnce(stepTicks int) bool {
	if a.done() {
		return false
	}
	a.ticks++
	if a.ticks < stepTicks {
		return false
	}
	a.ticks = 0
	a.cursor++
	return a.done()
}

// current returns the step applied last, if any.
func (a *animation) current() (trace.Step, bool) {
	if a.cursor == 0 {
		return trace.Step{}, false
	}
	return a.steps()[a.cursor-1], true
}

// mark is the visual state of a vertex, tree node or edge.
type mark int

const (
	markIdle mark = iota
	markFrontier
	markVisited
	markSelected
	markCurrent
	markRejected
	markCycle
)

type edgeKey struct{ from, to string }

// board is the picture after replaying a prefix of a trace.
type board struct {
	nodes  map[string]mark
	edges  map[edgeKey]mark
	labels map[string]string
	parent map[string]string
	focus  string
}

func newBoard() *board {
	return &board{
		nodes:  make(map[string]mark),
		edges:  make(map[edgeKey]mark),
		labels: make(map[string]string),
		parent: make(map[string]string),
	}
}

// edge looks an edge up in either direction.
func (b *board) edge(from, to string) mark {
	if m, ok := b.edges[edgeKey{from, to}]; ok {
		return m
	}
	return b.edges[edgeKey{to, from}]
}

// promote raises a node's mark but never downgrades a stronger one.
func (b *board) promote(id string, m mark) {
	if id == "" {
		return
	}
	if b.nodes[id] < m || m >= markRejected {
		b.nodes[id] = m
	}
}

func (b *board) apply(s trace.Step) {
	isEdge := s.From != "" && s.To != ""
	switch s.Kind {
	case trace.KindEnqueue, trace.KindPush:
		if isEdge && s.Node == "" {
			b.edges[edgeKey{s.From, s.To}] = markFrontier
			return
		}
		b.promote(s.Node, markFrontier)
		if isEdge {
			b.edges[edgeKey{s.From, s.To}] = markVisited
		}
	case trace.KindDequeue, trace.KindVisit, trace.KindEmit, trace.KindPop:
		if isEdge && s.Node == "" {
			b.edges[edgeKey{s.From, s.To}] = markVisited
			b.promote(s.To, markFrontier)
			return
		}
		b.promote(s.Node, markVisited)
	case trace.KindSelect:
		if isEdge {
			b.edges[edgeKey{s.From, s.To}] = markSelected
			b.promote(s.From, markSelected)
			b.promote(s.To, markSelected)
			return
		}
		b.promote(s.Node, markSelected)
		if s.Note == "" {
			b.labels[s.Node] = formatValue(s.Value)
		}
	case trace.KindRelax:
		b.edges[edgeKey{s.From, s.To}] = markFrontier
		b.labels[s.To] = formatValue(s.Value)
		b.promote(s.To, markFrontier)
	case trace.KindReject:
		if isEdge {
			b.edges[edgeKey{s.From, s.To}] = markRejected
			return
		}
		b.nodes[s.Node] = markRejected
	case trace.KindUnion:
		b.parent[s.From] = s.To
		b.promote(s.To, markSelected)
	case trace.KindCompress:
		b.parent[s.From] = s.To
	case trace.KindFind:
		b.promote(s.Node, markVisited)
	case trace.KindCycle:
		if isEdge {
			b.edges[edgeKey{s.From, s.To}] = markCycle
			b.nodes[s.From] = markCycle
			b.nodes[s.To] = markCycle
			return
		}
		b.nodes[s.Node] = markCycle
	}
}

// replay builds the board for the first n steps and focuses the last one.
func replay(steps []trace.Step, n int) *board {
	b := newBoard()
	for _, s := range steps[:n] {
		b.apply(s)
	}
	if n > 0 {
		last := steps[n-1]
		b.focus = last.Node
		if b.focus == "" {
			b.focus = last.To
		}
	}
	return b
}
