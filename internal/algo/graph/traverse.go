package graph

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
)

// TraversalResult holds the outcome of BFS or DFS.
type TraversalResult struct {
	Start  string            `json:"start"`
	Order  []string          `json:"order"`
	Depth  map[string]int    `json:"depth"`
	Parent map[string]string `json:"parent"`
}

// PathTo rebuilds the tree path from Start to target.
// Returns false if target was not reached.
func (r *TraversalResult) PathTo(target string) ([]string, bool) {
	if _, ok := r.Depth[target]; !ok {
		return nil, false
	}
	var rev []string
	for v := target; ; v = r.Parent[v] {
		rev = append(rev, v)
		if v == r.Start {
			break
		}
	}
	path := make([]string, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path, true
}

func newTraversal(start string, n int) *TraversalResult {
	return &TraversalResult{
		Start:  start,
		Order:  make([]string, 0, n),
		Depth:  make(map[string]int, n),
		Parent: make(map[string]string, n),
	}
}

// BFS explores g level by level from start. Depth is the unweighted
// distance; PathTo returns a shortest path by edge count.
func BFS(g *Graph, start string, opts ...Option) (*TraversalResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := g.requireVertex(start); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	res := newTraversal(start, g.Order())
	visited := mapset.NewThreadUnsafeSet[string](start)
	queue := []string{start}
	res.Depth[start] = 0
	o.rec.Record(trace.Step{Kind: trace.KindEnqueue, Node: start})

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		o.rec.Record(trace.Step{Kind: trace.KindDequeue, Node: u})
		res.Order = append(res.Order, u)
		o.rec.Record(trace.Step{Kind: trace.KindVisit, Node: u, Value: float64(res.Depth[u])})

		for _, e := range g.neighbors(u) {
			if visited.Contains(e.To) {
				continue
			}
			visited.Add(e.To)
			res.Depth[e.To] = res.Depth[u] + 1
			res.Parent[e.To] = u
			queue = append(queue, e.To)
			o.rec.Record(trace.Step{Kind: trace.KindEnqueue, Node: e.To, From: u, To: e.To})
		}
	}

	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "bfs"})
	return res, nil
}

// DFS explores g depth-first from start, visiting neighbours in insertion
// order. Order is the preorder.
func DFS(g *Graph, start string, opts ...Option) (*TraversalResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := g.requireVertex(start); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	res := newTraversal(start, g.Order())
	visited := mapset.NewThreadUnsafeSet[string]()

	var visit func(u string, depth int)
	visit = func(u string, depth int) {
		visited.Add(u)
		res.Depth[u] = depth
		res.Order = append(res.Order, u)
		o.rec.Record(trace.Step{Kind: trace.KindPush, Node: u})
		o.rec.Record(trace.Step{Kind: trace.KindVisit, Node: u, Value: float64(depth)})

		for _, e := range g.neighbors(u) {
			if visited.Contains(e.To) {
				continue
			}
			res.Parent[e.To] = u
			visit(e.To, depth+1)
		}
		o.rec.Record(trace.Step{Kind: trace.KindPop, Node: u})
	}
	visit(start, 0)

	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "dfs"})
	return res, nil
}

// ShortestPathBFS returns the fewest-edges path from src to dst.
func ShortestPathBFS(g *Graph, src, dst string, opts ...Option) ([]string, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := g.requireVertex(dst); err != nil {
		return nil, err
	}
	res, err := BFS(g, src, opts...)
	if err != nil {
		return nil, err
	}
	path, ok := res.PathTo(dst)
	if !ok {
		return nil, ErrDisconnected
	}
	return path, nil
}

// Components returns the connected components of g, treating directed
// edges as undirected (weak connectivity). Components are ordered by their
// first vertex; members keep insertion order.
func Components(g *Graph, opts ...Option) ([][]string, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := buildOptions(opts)

	// Undirected view for weak connectivity.
	undirected := make(map[string][]string, g.Order())
	for _, e := range g.edges {
		undirected[e.From] = append(undirected[e.From], e.To)
		if e.From != e.To {
			undirected[e.To] = append(undirected[e.To], e.From)
		}
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	var comps [][]string
	for _, v := range g.order {
		if seen.Contains(v) {
			continue
		}
		members := mapset.NewThreadUnsafeSet[string](v)
		seen.Add(v)
		stack := []string{v}
		o.rec.Record(trace.Step{Kind: trace.KindSelect, Node: v, Note: "new component"})
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			o.rec.Record(trace.Step{Kind: trace.KindVisit, Node: u, Value: float64(len(comps))})
			for _, w := range undirected[u] {
				if seen.Contains(w) {
					continue
				}
				seen.Add(w)
				members.Add(w)
				stack = append(stack, w)
			}
		}

		comp := make([]string, 0, members.Cardinality())
		for _, u := range g.order {
			if members.Contains(u) {
				comp = append(comp, u)
			}
		}
		comps = append(comps, comp)
	}

	o.rec.Record(trace.Step{Kind: trace.KindDone, Value: float64(len(comps)), Note: "components"})
	return comps, nil
}
