// Package graph provides a small adjacency-list graph and the textbook
// algorithms taught by the lessons: BFS, DFS, cycle detection, Kahn's
// topological sort, Dijkstra, Bellman-Ford, Floyd-Warshall, Prim, Kruskal
// and connected components.
//
// Vertices and neighbours are kept in insertion order so every algorithm is
// deterministic: the same level always animates the same way. No algorithm
// mutates the graph it is given.
//
// Every algorithm accepts WithRecorder to capture a step-by-step trace.
package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	ErrNilGraph        = errors.New("graph: nil graph")
	ErrVertexNotFound  = errors.New("graph: vertex not found")
	ErrEmptyVertexID   = errors.New("graph: empty vertex id")
	ErrNeedsDirected   = errors.New("graph: algorithm requires a directed graph")
	ErrNeedsUndirected = errors.New("graph: algorithm requires an undirected graph")
	ErrCycle           = errors.New("graph: graph contains a cycle")
	ErrNegativeWeight  = errors.New("graph: negative edge weight")
	ErrNegativeCycle   = errors.New("graph: negative-weight cycle")
	ErrDisconnected    = errors.New("graph: graph is disconnected")
)

// Edge is a weighted connection. For undirected graphs From/To follow the
// order the edge was added in.
type Edge struct {
	From   string  `json:"from" yaml:"from"`
	To     string  `json:"to" yaml:"to"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// Graph is an adjacency-list graph keyed by vertex ID.
type Graph struct {
	directed bool
	order    []string
	index    map[string]int
	adj      map[string][]Edge
	edges    []Edge
}

// GraphOption configures a Graph at construction time.
type GraphOption func(*Graph)

// WithDirected makes every edge one-way.
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) {
		g.directed = directed
	}
}

// New returns an empty graph. Graphs are undirected unless WithDirected(true).
func New(opts ...GraphOption) *Graph {
	g := &Graph{
		index: make(map[string]int),
		adj:   make(map[string][]Edge),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromEdges builds a graph from a vertex list and an edge list.
// Vertices referenced only by edges are added in first-seen order.
func FromEdges(directed bool, vertices []string, edges []Edge) (*Graph, error) {
	g := New(WithDirected(directed))
	for _, v := range vertices {
		if err := g.AddVertex(v); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool {
	return g.directed
}

// AddVertex inserts id. Adding an existing vertex is a no-op.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	if _, ok := g.index[id]; ok {
		return nil
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	return nil
}

// AddEdge connects from and to, creating missing vertices.
// Undirected edges appear in both adjacency lists but once in Edges.
func (g *Graph) AddEdge(from, to string, weight float64) error {
	if err := g.AddVertex(from); err != nil {
		return err
	}
	if err := g.AddVertex(to); err != nil {
		return err
	}

	e := Edge{From: from, To: to, Weight: weight}
	g.edges = append(g.edges, e)
	g.adj[from] = append(g.adj[from], e)
	if !g.directed && from != to {
		g.adj[to] = append(g.adj[to], Edge{From: to, To: from, Weight: weight})
	}
	return nil
}

// HasVertex reports whether id exists.
func (g *Graph) HasVertex(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Vertices returns vertex IDs in insertion order.
func (g *Graph) Vertices() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Order returns the number of vertices.
func (g *Graph) Order() int {
	return len(g.order)
}

// Size returns the number of edges as added.
func (g *Graph) Size() int {
	return len(g.edges)
}

// Edges returns every edge once, in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Neighbors returns the outgoing edges of id in insertion order.
func (g *Graph) Neighbors(id string) ([]Edge, error) {
	if !g.HasVertex(id) {
		return nil, fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}
	out := make([]Edge, len(g.adj[id]))
	copy(out, g.adj[id])
	return out, nil
}

// Index returns the insertion index of id, or -1.
func (g *Graph) Index(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	return -1
}

// neighbors is the internal, non-copying accessor.
func (g *Graph) neighbors(id string) []Edge {
	return g.adj[id]
}

func (g *Graph) requireVertex(id string) error {
	if !g.HasVertex(id) {
		return fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}
	return nil
}
