package graph

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
)

// Inf is the distance of an unreachable vertex.
var Inf = math.Inf(1)

// PathResult holds single-source shortest-path distances.
type PathResult struct {
	Source string             `json:"source"`
	Dist   map[string]float64 `json:"-"`
	Prev   map[string]string  `json:"prev"`
	// Settled is the order vertices were finalised in (Dijkstra only).
	Settled []string `json:"settled,omitempty"`
}

// Reachable reports whether target has a finite distance.
func (r *PathResult) Reachable(target string) bool {
	d, ok := r.Dist[target]
	return ok && !math.IsInf(d, 1)
}

// PathTo rebuilds the shortest path from Source to target.
func (r *PathResult) PathTo(target string) ([]string, bool) {
	if !r.Reachable(target) {
		return nil, false
	}
	var rev []string
	for v := target; ; v = r.Prev[v] {
		rev = append(rev, v)
		if v == r.Source {
			break
		}
	}
	path := make([]string, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path, true
}

// FiniteDist returns distances of reachable vertices only, for JSON output.
func (r *PathResult) FiniteDist() map[string]float64 {
	out := make(map[string]float64, len(r.Dist))
	for v, d := range r.Dist {
		if !math.IsInf(d, 1) {
			out[v] = d
		}
	}
	return out
}

func newPathResult(g *Graph, src string) *PathResult {
	r := &PathResult{
		Source: src,
		Dist:   make(map[string]float64, g.Order()),
		Prev:   make(map[string]string, g.Order()),
	}
	for _, v := range g.order {
		r.Dist[v] = Inf
	}
	r.Dist[src] = 0
	return r
}

// pqItem is a lazy-deletion heap entry; seq breaks ties in push order.
type pqItem struct {
	id   string
	dist float64
	seq  int
}

type minHeap []pqItem

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].seq < h[j].seq
}
func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)   { *h = append(*h, x.(pqItem)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Dijkstra computes shortest distances from src using a binary heap.
// Any negative edge weight fails fast with ErrNegativeWeight.
func Dijkstra(g *Graph, src string, opts ...Option) (*PathResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := g.requireVertex(src); err != nil {
		return nil, err
	}
	for _, e := range g.edges {
		if e.Weight < 0 {
			return nil, fmt.Errorf("%w: %s-%s (%g)", ErrNegativeWeight, e.From, e.To, e.Weight)
		}
	}
	o := buildOptions(opts)

	res := newPathResult(g, src)
	settled := make(map[string]bool, g.Order())
	seq := 0
	h := &minHeap{{id: src, dist: 0, seq: seq}}
	o.rec.Record(trace.Step{Kind: trace.KindEnqueue, Node: src, Value: 0})

	for h.Len() > 0 {
		it := heap.Pop(h).(pqItem)
		if settled[it.id] {
			continue
		}
		settled[it.id] = true
		res.Settled = append(res.Settled, it.id)
		o.rec.Record(trace.Step{Kind: trace.KindSelect, Node: it.id, Value: it.dist})

		for _, e := range g.neighbors(it.id) {
			if settled[e.To] {
				continue
			}
			nd := it.dist + e.Weight
			if nd < res.Dist[e.To] {
				res.Dist[e.To] = nd
				res.Prev[e.To] = it.id
				seq++
				heap.Push(h, pqItem{id: e.To, dist: nd, seq: seq})
				o.rec.Record(trace.Step{Kind: trace.KindRelax, From: it.id, To: e.To, Value: nd})
			}
		}
	}

	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "dijkstra"})
	return res, nil
}

// BellmanFord computes shortest distances from src allowing negative
// weights. It runs at most |V|-1 relaxation rounds, stopping early once a
// round changes nothing, then makes one more pass: any further improvement
// means a negative cycle reachable from src and yields ErrNegativeCycle.
//
// Undirected edges relax in both directions, so a single negative
// undirected edge is itself a negative cycle.
func BellmanFord(g *Graph, src string, opts ...Option) (*PathResult, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if err := g.requireVertex(src); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	res := newPathResult(g, src)
	relaxAll := func(round int) bool {
		changed := false
		for _, u := range g.order {
			du := res.Dist[u]
			if math.IsInf(du, 1) {
				continue
			}
			for _, e := range g.neighbors(u) {
				if nd := du + e.Weight; nd < res.Dist[e.To] {
					res.Dist[e.To] = nd
					res.Prev[e.To] = u
					changed = true
					o.rec.Record(trace.Step{
						Kind:  trace.KindRelax,
						From:  u,
						To:    e.To,
						Value: nd,
						Note:  fmt.Sprintf("round %d", round),
					})
				}
			}
		}
		return changed
	}

	for round := 1; round < g.Order(); round++ {
		if !relaxAll(round) {
			break
		}
	}

	// Detection pass: look for any edge that still relaxes.
	for _, u := range g.order {
		du := res.Dist[u]
		if math.IsInf(du, 1) {
			continue
		}
		for _, e := range g.neighbors(u) {
			if du+e.Weight < res.Dist[e.To] {
				o.rec.Record(trace.Step{Kind: trace.KindCycle, From: u, To: e.To, Value: e.Weight})
				return nil, fmt.Errorf("%w: edge %s-%s still relaxes", ErrNegativeCycle, u, e.To)
			}
		}
	}

	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "bellman-ford"})
	return res, nil
}

// Matrix is the all-pairs result of FloydWarshall.
type Matrix struct {
	Vertices []string    `json:"vertices"`
	Dist     [][]float64 `json:"-"`
	next     [][]int
}

// Distance returns the shortest distance from u to v.
func (m *Matrix) Distance(u, v string) (float64, error) {
	i, j, err := m.lookup(u, v)
	if err != nil {
		return 0, err
	}
	return m.Dist[i][j], nil
}

// Path reconstructs the shortest path from u to v using next-hop links.
// Returns false when v is unreachable from u.
func (m *Matrix) Path(u, v string) ([]string, bool) {
	i, j, err := m.lookup(u, v)
	if err != nil || m.next[i][j] < 0 {
		return nil, false
	}
	path := []string{m.Vertices[i]}
	for i != j {
		i = m.next[i][j]
		path = append(path, m.Vertices[i])
	}
	return path, true
}

// Rows returns the matrix with unreachable entries as nil, for JSON output.
func (m *Matrix) Rows() [][]*float64 {
	rows := make([][]*float64, len(m.Dist))
	for i, row := range m.Dist {
		rows[i] = make([]*float64, len(row))
		for j, d := range row {
			if !math.IsInf(d, 1) {
				rows[i][j] = &d
			}
		}
	}
	return rows
}

func (m *Matrix) lookup(u, v string) (int, int, error) {
	i, j := -1, -1
	for k, id := range m.Vertices {
		if id == u {
			i = k
		}
		if id == v {
			j = k
		}
	}
	if i < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrVertexNotFound, u)
	}
	if j < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrVertexNotFound, v)
	}
	return i, j, nil
}

// FloydWarshall computes all-pairs shortest distances in O(V³).
// A negative value on the diagonal after the run means a negative cycle.
func FloydWarshall(g *Graph, opts ...Option) (*Matrix, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := buildOptions(opts)

	n := g.Order()
	m := &Matrix{
		Vertices: g.Vertices(),
		Dist:     make([][]float64, n),
		next:     make([][]int, n),
	}
	for i := range n {
		m.Dist[i] = make([]float64, n)
		m.next[i] = make([]int, n)
		for j := range n {
			m.Dist[i][j] = Inf
			m.next[i][j] = -1
		}
		m.Dist[i][i] = 0
		m.next[i][i] = i
	}
	for _, u := range g.order {
		i := g.index[u]
		for _, e := range g.neighbors(u) {
			j := g.index[e.To]
			// Keep the lightest of parallel edges.
			if e.Weight < m.Dist[i][j] {
				m.Dist[i][j] = e.Weight
				m.next[i][j] = j
			}
		}
	}

	for k := range n {
		o.rec.Record(trace.Step{Kind: trace.KindSelect, Node: m.Vertices[k], Note: "via"})
		for i := range n {
			if math.IsInf(m.Dist[i][k], 1) {
				continue
			}
			for j := range n {
				if math.IsInf(m.Dist[k][j], 1) {
					continue
				}
				if nd := m.Dist[i][k] + m.Dist[k][j]; nd < m.Dist[i][j] {
					m.Dist[i][j] = nd
					m.next[i][j] = m.next[i][k]
					o.rec.Record(trace.Step{
						Kind:  trace.KindRelax,
						From:  m.Vertices[i],
						To:    m.Vertices[j],
						Value: nd,
						Note:  "via " + m.Vertices[k],
					})
				}
			}
		}
	}

	for i := range n {
		if m.Dist[i][i] < 0 {
			o.rec.Record(trace.Step{Kind: trace.KindCycle, Node: m.Vertices[i]})
			return nil, fmt.Errorf("%w: through %q", ErrNegativeCycle, m.Vertices[i])
		}
	}

	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "floyd-warshall"})
	return m, nil
}
