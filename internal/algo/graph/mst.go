package graph

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/dsu"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
)

// MST is a minimum spanning tree.
type MST struct {
	Edges  []Edge  `json:"edges"`
	Weight float64 `json:"weight"`
}

// edgeItem orders candidate edges by weight, then by push order.
type edgeItem struct {
	e   Edge
	seq int
}

type edgeHeap []edgeItem

func (h edgeHeap) Len() int { return len(h) }
func (h edgeHeap) Less(i, j int) bool {
	if h[i].e.Weight != h[j].e.Weight {
		return h[i].e.Weight < h[j].e.Weight
	}
	return h[i].seq < h[j].seq
}
func (h edgeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *edgeHeap) Push(x any)   { *h = append(*h, x.(edgeItem)) }
func (h *edgeHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Prim grows a minimum spanning tree from start, always taking the lightest
// edge that leaves the tree. Edges whose far end is already in the tree are
// rejected when popped.
func Prim(g *Graph, start string, opts ...Option) (*MST, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if g.directed {
		return nil, ErrNeedsUndirected
	}
	if err := g.requireVertex(start); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	inTree := map[string]bool{start: true}
	mst := &MST{Edges: make([]Edge, 0, g.Order()-1)}
	h := &edgeHeap{}
	seq := 0
	push := func(u string) {
		for _, e := range g.neighbors(u) {
			if inTree[e.To] {
				continue
			}
			heap.Push(h, edgeItem{e: e, seq: seq})
			seq++
			o.rec.Record(trace.Step{Kind: trace.KindEnqueue, From: e.From, To: e.To, Value: e.Weight})
		}
	}

	o.rec.Record(trace.Step{Kind: trace.KindVisit, Node: start})
	push(start)
	for h.Len() > 0 && len(mst.Edges) < g.Order()-1 {
		it := heap.Pop(h).(edgeItem)
		if inTree[it.e.To] {
			o.rec.Record(trace.Step{Kind: trace.KindReject, From: it.e.From, To: it.e.To, Value: it.e.Weight})
			continue
		}
		inTree[it.e.To] = true
		mst.Edges = append(mst.Edges, it.e)
		mst.Weight += it.e.Weight
		o.rec.Record(trace.Step{Kind: trace.KindSelect, From: it.e.From, To: it.e.To, Value: it.e.Weight})
		push(it.e.To)
	}

	if len(inTree) != g.Order() {
		return nil, fmt.Errorf("%w: spanned %d of %d vertices", ErrDisconnected, len(inTree), g.Order())
	}

	o.rec.Record(trace.Step{Kind: trace.KindDone, Value: mst.Weight, Note: "prim"})
	return mst, nil
}

// Kruskal builds a minimum spanning tree by scanning edges in ascending
// weight order (stable on insertion order) and keeping those that join two
// different components of a union-by-rank DSU. Self-loops are skipped.
func Kruskal(g *Graph, opts ...Option) (*MST, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if g.directed {
		return nil, ErrNeedsUndirected
	}
	o := buildOptions(opts)

	if g.Order() == 0 {
		return &MST{}, nil
	}

	edges := g.Edges()
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight < edges[j].Weight
	})

	sets := dsu.New(dsu.ByRank, g.order...)
	sets.SetRecorder(o.rec)

	mst := &MST{Edges: make([]Edge, 0, g.Order()-1)}
	for _, e := range edges {
		if len(mst.Edges) == g.Order()-1 {
			break
		}
		if e.From == e.To {
			continue
		}
		o.rec.Record(trace.Step{Kind: trace.KindDequeue, From: e.From, To: e.To, Value: e.Weight})
		merged, err := sets.Union(e.From, e.To)
		if err != nil {
			return nil, err
		}
		if !merged {
			o.rec.Record(trace.Step{Kind: trace.KindReject, From: e.From, To: e.To, Value: e.Weight})
			continue
		}
		mst.Edges = append(mst.Edges, e)
		mst.Weight += e.Weight
		o.rec.Record(trace.Step{Kind: trace.KindSelect, From: e.From, To: e.To, Value: e.Weight})
	}

	if len(mst.Edges) != g.Order()-1 {
		return nil, fmt.Errorf("%w: %d components remain", ErrDisconnected, sets.SetCount())
	}

	o.rec.Record(trace.Step{Kind: trace.KindDone, Value: mst.Weight, Note: "kruskal"})
	return mst, nil
}
