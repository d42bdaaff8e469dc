package graph

import (
	"fmt"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
)

// TopoSort orders the vertices of a directed graph with Kahn's algorithm so
// that every edge u→v has u before v. The queue is seeded with zero
// in-degree vertices in insertion order, which makes the result stable.
//
// If a cycle prevents some vertices from ever reaching in-degree zero,
// the partial order is returned together with an error wrapping ErrCycle.
func TopoSort(g *Graph, opts ...Option) ([]string, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !g.directed {
		return nil, ErrNeedsDirected
	}
	o := buildOptions(opts)

	indeg := make(map[string]int, g.Order())
	for _, e := range g.edges {
		indeg[e.To]++
	}

	queue := make([]string, 0, g.Order())
	for _, v := range g.order {
		if indeg[v] == 0 {
			queue = append(queue, v)
			o.rec.Record(trace.Step{Kind: trace.KindEnqueue, Node: v, Value: 0})
		}
	}

	order := make([]string, 0, g.Order())
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		o.rec.Record(trace.Step{Kind: trace.KindDequeue, Node: u})
		order = append(order, u)
		o.rec.Record(trace.Step{Kind: trace.KindEmit, Node: u, Value: float64(len(order))})

		for _, e := range g.neighbors(u) {
			indeg[e.To]--
			o.rec.Record(trace.Step{Kind: trace.KindRelax, From: u, To: e.To, Value: float64(indeg[e.To])})
			if indeg[e.To] == 0 {
				queue = append(queue, e.To)
				o.rec.Record(trace.Step{Kind: trace.KindEnqueue, Node: e.To})
			}
		}
	}

	if len(order) != g.Order() {
		o.rec.Record(trace.Step{Kind: trace.KindCycle, Note: "vertices left with in-degree > 0"})
		return order, fmt.Errorf("%w: sorted %d of %d vertices", ErrCycle, len(order), g.Order())
	}

	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "topological order"})
	return order, nil
}
