// Package dsu implements a disjoint-set union (union-find) over string
// elements with path compression and either union-by-rank or union-by-size.
//
// Find is iterative and compresses the whole path to the root, so amortised
// cost per operation is O(α(n)).
package dsu

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
)

// ErrUnknownElement is returned when an operation names an element that was
// never added.
var ErrUnknownElement = errors.New("dsu: unknown element")

// Strategy selects how two roots are linked on Union.
type Strategy int

const (
	// ByRank attaches the shallower tree under the deeper one.
	ByRank Strategy = iota
	// BySize attaches the smaller set under the larger one.
	BySize
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case ByRank:
		return "rank"
	case BySize:
		return "size"
	default:
		return "unknown"
	}
}

// ParseStrategy converts "rank" or "size" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "rank":
		return ByRank, nil
	case "size":
		return BySize, nil
	default:
		return ByRank, fmt.Errorf("dsu: unknown strategy %q", s)
	}
}

// DSU is a disjoint-set forest. The zero value is not usable; call New.
type DSU struct {
	strategy Strategy
	parent   map[string]string
	rank     map[string]int
	size     map[string]int
	order    []string
	sets     int
	rec      trace.Recorder
}

// New creates a forest with each element in its own set.
// Duplicate elements are ignored.
func New(strategy Strategy, elems ...string) *DSU {
	d := &DSU{
		strategy: strategy,
		parent:   make(map[string]string, len(elems)),
		rank:     make(map[string]int, len(elems)),
		size:     make(map[string]int, len(elems)),
		rec:      trace.Nop{},
	}
	for _, e := range elems {
		d.Add(e)
	}
	return d
}

// SetRecorder attaches a step recorder. Passing nil disables recording.
func (d *DSU) SetRecorder(r trace.Recorder) {
	d.rec = trace.Or(r)
}

// Strategy returns the linking strategy.
func (d *DSU) Strategy() Strategy {
	return d.strategy
}

// Add inserts x as a singleton set. Returns false if x already exists.
func (d *DSU) Add(x string) bool {
	if _, ok := d.parent[x]; ok {
		return false
	}
	d.parent[x] = x
	d.rank[x] = 0
	d.size[x] = 1
	d.order = append(d.order, x)
	d.sets++
	return true
}

// Has reports whether x was added.
func (d *DSU) Has(x string) bool {
	_, ok := d.parent[x]
	return ok
}

// Find returns the representative of x's set, compressing the path.
func (d *DSU) Find(x string) (string, error) {
	if !d.Has(x) {
		return "", fmt.Errorf("%w: %q", ErrUnknownElement, x)
	}
	return d.find(x), nil
}

func (d *DSU) find(x string) string {
	root := x
	for d.parent[root] != root {
		root = d.parent[root]
	}
	d.rec.Record(trace.Step{Kind: trace.KindFind, Node: x, Note: "root " + root})

	// Second pass points every node on the path directly at the root.
	for x != root {
		next := d.parent[x]
		if next != root {
			d.parent[x] = root
			d.rec.Record(trace.Step{Kind: trace.KindCompress, From: x, To: root})
		}
		x = next
	}
	return root
}

// Union merges the sets containing a and b.
// Returns true if they were in different sets.
func (d *DSU) Union(a, b string) (bool, error) {
	if !d.Has(a) {
		return false, fmt.Errorf("%w: %q", ErrUnknownElement, a)
	}
	if !d.Has(b) {
		return false, fmt.Errorf("%w: %q", ErrUnknownElement, b)
	}

	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		d.rec.Record(trace.Step{Kind: trace.KindReject, From: a, To: b, Note: "same set"})
		return false, nil
	}

	switch d.strategy {
	case BySize:
		if d.size[ra] < d.size[rb] {
			ra, rb = rb, ra
		}
	default:
		if d.rank[ra] < d.rank[rb] {
			ra, rb = rb, ra
		} else if d.rank[ra] == d.rank[rb] {
			d.rank[ra]++
		}
	}

	// rb hangs under ra.
	d.parent[rb] = ra
	d.size[ra] += d.size[rb]
	d.sets--
	d.rec.Record(trace.Step{Kind: trace.KindUnion, From: rb, To: ra, Value: float64(d.size[ra])})
	return true, nil
}

// Connected reports whether a and b are in the same set.
func (d *DSU) Connected(a, b string) (bool, error) {
	ra, err := d.Find(a)
	if err != nil {
		return false, err
	}
	rb, err := d.Find(b)
	if err != nil {
		return false, err
	}
	return ra == rb, nil
}

// SetCount returns the number of disjoint sets.
func (d *DSU) SetCount() int {
	return d.sets
}

// Len returns the number of elements.
func (d *DSU) Len() int {
	return len(d.order)
}

// Size returns the size of the set containing x.
func (d *DSU) Size(x string) (int, error) {
	r, err := d.Find(x)
	if err != nil {
		return 0, err
	}
	return d.size[r], nil
}

// Rank returns the rank of x's root. Ranks are maintained only by ByRank.
func (d *DSU) Rank(x string) (int, error) {
	r, err := d.Find(x)
	if err != nil {
		return 0, err
	}
	return d.rank[r], nil
}

// Parent returns x's direct parent without compressing, for rendering the forest.
func (d *DSU) Parent(x string) (string, bool) {
	p, ok := d.parent[x]
	return p, ok
}

// Elements returns elements in insertion order.
func (d *DSU) Elements() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Sets returns every set as a sorted slice; sets are ordered by their
// smallest member.
func (d *DSU) Sets() [][]string {
	groups := make(map[string][]string, d.sets)
	for _, x := range d.order {
		r := d.root(x)
		groups[r] = append(groups[r], x)
	}

	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		sort.Strings(g)
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out
}

// root follows parents without compressing or recording.
func (d *DSU) root(x string) string {
	for d.parent[x] != x {
		x = d.parent[x]
	}
	return x
}
