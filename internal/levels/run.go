package levels

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/dsu"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/graph"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/tree"
)

// Input is everything an algorithm may need. Only the part matching the
// algorithm's kind is read.
type Input struct {
	Graph  *GraphSpec `json:"graph,omitempty"`
	Tree   []*int     `json:"tree,omitempty"`
	DSU    *DSUSpec   `json:"dsu,omitempty"`
	Source string     `json:"source,omitempty"`
	Target string     `json:"target,omitempty"`
}

// Result is the outcome of running one algorithm.
// Failure carries expected algorithmic outcomes (a cycle blocking a
// topological order, a negative cycle) that a lesson shows rather than
// treats as an error.
type Result struct {
	Algorithm string       `json:"algorithm"`
	Summary   string       `json:"summary"`
	Output    any          `json:"output,omitempty"`
	Failure   string       `json:"failure,omitempty"`
	Trace     *trace.Trace `json:"trace"`
}

// Input limits. Floyd-Warshall is cubic in the vertex count and every
// algorithm records a trace step per visit, so caller data is capped well
// above anything a lesson needs.
const (
	MaxVertices    = 40
	MaxEdges       = 400
	MaxTreeNodes   = 255
	MaxDSUElements = 64
	MaxDSUUnions   = 256
)

type runner struct {
	kind        Kind
	needsSource bool
	run         func(in Input, rec trace.Recorder) (any, string, error)
}

var runners = map[string]runner{
	"bfs":            {KindGraph, true, runBFS},
	"dfs":            {KindGraph, true, runDFS},
	"bfs-path":       {KindGraph, true, runBFSPath},
	"components":     {KindGraph, false, runComponents},
	"cycle":          {KindGraph, false, runCycle},
	"topo-sort":      {KindGraph, false, runTopo},
	"dijkstra":       {KindGraph, true, runDijkstra},
	"bellman-ford":   {KindGraph, true, runBellmanFord},
	"floyd-warshall": {KindGraph, false, runFloydWarshall},
	"prim":           {KindGraph, true, runPrim},
	"kruskal":        {KindGraph, false, runKruskal},
	"dsu-rank":       {KindDSU, false, runDSU(dsu.ByRank)},
	"dsu-size":       {KindDSU, false, runDSU(dsu.BySize)},
	"preorder":       {KindTree, false, treeList(tree.Preorder)},
	"inorder":        {KindTree, false, treeList(tree.Inorder)},
	"postorder":      {KindTree, false, treeList(tree.Postorder)},
	"level-order":    {KindTree, false, treeRows(tree.LevelOrder)},
	"zigzag":         {KindTree, false, treeRows(tree.Zigzag)},
	"vertical":       {KindTree, false, treeRows(tree.Vertical)},
	"top-view":       {KindTree, false, treeList(tree.TopView)},
	"bottom-view":    {KindTree, false, treeList(tree.BottomView)},
	"left-view":      {KindTree, false, treeList(tree.LeftView)},
	"right-view":     {KindTree, false, treeList(tree.RightView)},
}

// AlgorithmInfo describes a runnable algorithm.
type AlgorithmInfo struct {
	Name        string `json:"name"`
	Kind        Kind   `json:"kind"`
	NeedsSource bool   `json:"needsSource"`
}

// Algorithms lists every runnable algorithm sorted by name.
func Algorithms() []AlgorithmInfo {
	out := make([]AlgorithmInfo, 0, len(runners))
	for name, r := range runners {
		out = append(out, AlgorithmInfo{Name: name, Kind: r.kind, NeedsSource: r.needsSource})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Run executes a concept card of a level.
func Run(card ConceptCard, level *Level) (*Result, error) {
	return Execute(card.Algorithm, level.Input(card))
}

// Execute runs the named algorithm on in and records its trace.
func Execute(name string, in Input) (*Result, error) {
	r, ok := runners[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	switch {
	case r.kind == KindGraph && in.Graph == nil,
		r.kind == KindTree && len(in.Tree) == 0,
		r.kind == KindDSU && in.DSU == nil:
		return nil, fmt.Errorf("%w: %s needs %s data", ErrMissingInput, name, r.kind)
	case r.needsSource && in.Source == "":
		return nil, fmt.Errorf("%w: %s needs a source vertex", ErrMissingInput, name)
	}
	if err := checkSize(r.kind, in); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	tr := trace.New()
	out, summary, err := r.run(in, tr)
	res := &Result{Algorithm: name, Summary: summary, Output: out, Trace: tr}
	if err != nil {
		if !isOutcome(err) {
			return nil, err
		}
		res.Failure = err.Error()
		tr.Record(trace.Step{Kind: trace.KindDone, Note: res.Failure})
		if res.Summary == "" {
			res.Summary = err.Error()
		}
	}
	return res, nil
}

func checkSize(k Kind, in Input) error {
	tooLarge := func(what string, n, limit int) error {
		return fmt.Errorf("%w: %d %s, at most %d", ErrInputTooLarge, n, what, limit)
	}
	switch k {
	case KindGraph:
		if n := len(in.Graph.Edges); n > MaxEdges {
			return tooLarge("edges", n, MaxEdges)
		}
		names := make(map[string]struct{}, len(in.Graph.Vertices))
		for _, v := range in.Graph.Vertices {
			names[v] = struct{}{}
		}
		for _, e := range in.Graph.Edges {
			names[e.From] = struct{}{}
			names[e.To] = struct{}{}
		}
		if n := len(names); n > MaxVertices {
			return tooLarge("vertices", n, MaxVertices)
		}
	case KindTree:
		if n := len(in.Tree); n > MaxTreeNodes {
			return tooLarge("tree slots", n, MaxTreeNodes)
		}
	case KindDSU:
		if n := len(in.DSU.Elements); n > MaxDSUElements {
			return tooLarge("elements", n, MaxDSUElements)
		}
		if n := len(in.DSU.Unions); n > MaxDSUUnions {
			return tooLarge("unions", n, MaxDSUUnions)
		}
	}
	return nil
}

func isOutcome(err error) bool {
	return errors.Is(err, graph.ErrCycle) ||
		errors.Is(err, graph.ErrNegativeCycle) ||
		errors.Is(err, graph.ErrNegativeWeight) ||
		errors.Is(err, graph.ErrDisconnected) ||
		errors.Is(err, graph.ErrNeedsDirected) ||
		errors.Is(err, graph.ErrNeedsUndirected)
}

func runBFS(in Input, rec trace.Recorder) (any, string, error) {
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	res, err := graph.BFS(g, in.Source, graph.WithRecorder(rec))
	if err != nil {
		return nil, "", err
	}
	return res, "order: " + strings.Join(res.Order, " "), nil
}

func runDFS(in Input, rec trace.Recorder) (any, string, error) {
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	res, err := graph.DFS(g, in.Source, graph.WithRecorder(rec))
	if err != nil {
		return nil, "", err
	}
	return res, "order: " + strings.Join(res.Order, " "), nil
}

func runBFSPath(in Input, rec trace.Recorder) (any, string, error) {
	if in.Target == "" {
		return nil, "", fmt.Errorf("%w: bfs-path needs a target vertex", ErrMissingInput)
	}
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	path, err := graph.ShortestPathBFS(g, in.Source, in.Target, graph.WithRecorder(rec))
	if err != nil {
		return nil, "", err
	}
	return path, fmt.Sprintf("path: %s (%d edges)", strings.Join(path, " "), len(path)-1), nil
}

func runComponents(in Input, rec trace.Recorder) (any, string, error) {
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	comps, err := graph.Components(g, graph.WithRecorder(rec))
	if err != nil {
		return nil, "", err
	}
	return comps, fmt.Sprintf("%d components: %s", len(comps), groupsOf(comps)), nil
}

func runCycle(in Input, rec trace.Recorder) (any, string, error) {
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	found, cycle, err := graph.HasCycle(g, graph.WithRecorder(rec))
	if err != nil {
		return nil, "", err
	}
	out := map[string]any{"hasCycle": found, "cycle": cycle}
	if !found {
		return out, "no cycle", nil
	}
	return out, "cycle: " + strings.Join(cycle, " "), nil
}

func runTopo(in Input, rec trace.Recorder) (any, string, error) {
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	order, err := graph.TopoSort(g, graph.WithRecorder(rec))
	if err != nil {
		return order, "", err
	}
	return order, "order: " + strings.Join(order, " "), nil
}

// pathOutput is the JSON shape of single-source shortest paths.
type pathOutput struct {
	Source  string             `json:"source"`
	Dist    map[string]float64 `json:"dist"`
	Prev    map[string]string  `json:"prev"`
	Settled []string           `json:"settled,omitempty"`
	Path    []string           `json:"path,omitempty"`
}

func shortestSummary(g *graph.Graph, res *graph.PathResult, target string) (pathOutput, string) {
	out := pathOutput{Source: res.Source, Dist: res.FiniteDist(), Prev: res.Prev, Settled: res.Settled}
	if target != "" {
		path, ok := res.PathTo(target)
		if !ok {
			return out, fmt.Sprintf("%s unreachable from %s", target, res.Source)
		}
		out.Path = path
		return out, fmt.Sprintf("%s→%s = %g via %s", res.Source, target, res.Dist[target], strings.Join(path, " "))
	}
	parts := make([]string, 0, g.Order())
	for _, v := range g.Vertices() {
		if res.Reachable(v) {
			parts = append(parts, fmt.Sprintf("%s=%g", v, res.Dist[v]))
		} else {
			parts = append(parts, v+"=∞")
		}
	}
	return out, "distances: " + strings.Join(parts, " ")
}

func runDijkstra(in Input, rec trace.Recorder) (any, string, error) {
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	res, err := graph.Dijkstra(g, in.Source, graph.WithRecorder(rec))
	if err != nil {
		return nil, "", err
	}
	out, summary := shortestSummary(g, res, in.Target)
	return out, summary, nil
}

func runBellmanFord(in Input, rec trace.Recorder) (any, string, error) {
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	res, err := graph.BellmanFord(g, in.Source, graph.WithRecorder(rec))
	if err != nil {
		return nil, "", err
	}
	out, summary := shortestSummary(g, res, in.Target)
	return out, summary, nil
}

func runFloydWarshall(in Input, rec trace.Recorder) (any, string, error) {
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	m, err := graph.FloydWarshall(g, graph.WithRecorder(rec))
	if err != nil {
		return nil, "", err
	}
	out := map[string]any{"vertices": m.Vertices, "dist": m.Rows()}
	if in.Source == "" || in.Target == "" {
		return out, fmt.Sprintf("%d×%d distance matrix", len(m.Vertices), len(m.Vertices)), nil
	}
	d, err := m.Distance(in.Source, in.Target)
	if err != nil {
		return nil, "", err
	}
	path, ok := m.Path(in.Source, in.Target)
	if !ok {
		return out, fmt.Sprintf("%s unreachable from %s", in.Target, in.Source), nil
	}
	out["path"] = path
	return out, fmt.Sprintf("%s→%s = %g via %s", in.Source, in.Target, d, strings.Join(path, " ")), nil
}

func mstSummary(m *graph.MST) string {
	return fmt.Sprintf("MST weight %g (%d edges)", m.Weight, len(m.Edges))
}

func runPrim(in Input, rec trace.Recorder) (any, string, error) {
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	m, err := graph.Prim(g, in.Source, graph.WithRecorder(rec))
	if err != nil {
		return nil, "", err
	}
	return m, mstSummary(m), nil
}

func runKruskal(in Input, rec trace.Recorder) (any, string, error) {
	g, err := in.Graph.Build()
	if err != nil {
		return nil, "", err
	}
	m, err := graph.Kruskal(g, graph.WithRecorder(rec))
	if err != nil {
		return nil, "", err
	}
	return m, mstSummary(m), nil
}

func runDSU(strategy dsu.Strategy) func(Input, trace.Recorder) (any, string, error) {
	return func(in Input, rec trace.Recorder) (any, string, error) {
		sets := dsu.New(strategy, in.DSU.Elements...)
		sets.SetRecorder(rec)
		for _, u := range in.DSU.Unions {
			if len(u) != 2 {
				return nil, "", fmt.Errorf("%w: union needs two elements, got %d", ErrMissingInput, len(u))
			}
			if _, err := sets.Union(u[0], u[1]); err != nil {
				return nil, "", err
			}
		}
		groups := sets.Sets()
		rec.Record(trace.Step{Kind: trace.KindDone, Value: float64(len(groups)), Note: strategy.String()})
		return groups, fmt.Sprintf("%d sets by %s: %s", len(groups), strategy, groupsOf(groups)), nil
	}
}

func treeList(fn func(*tree.Node, ...tree.Option) []int) func(Input, trace.Recorder) (any, string, error) {
	return func(in Input, rec trace.Recorder) (any, string, error) {
		vals := fn(tree.FromLevelOrder(in.Tree), tree.WithRecorder(rec))
		return vals, ints(vals), nil
	}
}

func treeRows(fn func(*tree.Node, ...tree.Option) [][]int) func(Input, trace.Recorder) (any, string, error) {
	return func(in Input, rec trace.Recorder) (any, string, error) {
		rows := fn(tree.FromLevelOrder(in.Tree), tree.WithRecorder(rec))
		parts := make([]string, len(rows))
		for i, r := range rows {
			parts[i] = "[" + ints(r) + "]"
		}
		return rows, strings.Join(parts, " "), nil
	}
}

func ints(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func groupsOf(sets [][]string) string {
	parts := make([]string, len(sets))
	for i, s := range sets {
		parts[i] = "{" + strings.Join(s, " ") + "}"
	}
	return strings.Join(parts, " ")
}
