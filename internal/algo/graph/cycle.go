package graph

import "github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"

type color uint8

const (
	white color = iota
	gray
	black
)

// HasCycle reports whether g contains a cycle and returns one witness.
//
// Directed graphs use three-colour DFS: an edge into a gray vertex closes a
// cycle. Undirected graphs use the visited+parent rule, skipping the tree
// edge back to the parent exactly once so parallel edges still count.
// Self-loops are cycles of length one.
//
// The witness lists the cycle's vertices in traversal order starting at the
// vertex the closing edge points to; the closing edge is implied.
func HasCycle(g *Graph, opts ...Option) (bool, []string, error) {
	if g == nil {
		return false, nil, ErrNilGraph
	}
	o := buildOptions(opts)

	d := &cycleDetector{
		g:     g,
		rec:   o.rec,
		state: make(map[string]color, g.Order()),
		pos:   make(map[string]int, g.Order()),
	}
	for _, v := range g.order {
		if d.state[v] != white {
			continue
		}
		if d.visit(v, "") {
			o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "cycle found"})
			return true, d.witness, nil
		}
	}

	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "acyclic"})
	return false, nil, nil
}

type cycleDetector struct {
	g       *Graph
	rec     trace.Recorder
	state   map[string]color
	stack   []string
	pos     map[string]int
	witness []string
}

func (d *cycleDetector) visit(u, parent string) bool {
	d.state[u] = gray
	d.pos[u] = len(d.stack)
	d.stack = append(d.stack, u)
	d.rec.Record(trace.Step{Kind: trace.KindPush, Node: u})

	skippedParent := false
	for _, e := range d.g.neighbors(u) {
		v := e.To
		if !d.g.directed && v == parent && !skippedParent {
			skippedParent = true
			continue
		}

		switch d.state[v] {
		case white:
			d.rec.Record(trace.Step{Kind: trace.KindVisit, From: u, To: v})
			if d.visit(v, u) {
				return true
			}
		case gray:
			start := d.pos[v]
			d.witness = append([]string(nil), d.stack[start:]...)
			d.rec.Record(trace.Step{Kind: trace.KindCycle, From: u, To: v})
			return true
		}
	}

	d.stack = d.stack[:len(d.stack)-1]
	d.state[u] = black
	d.rec.Record(trace.Step{Kind: trace.KindPop, Node: u})
	return false
}
