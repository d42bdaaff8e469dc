package tree

import (
	"sort"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
)

// Preorder visits root, left, right.
func Preorder(root *Node, opts ...Option) []int {
	o := buildOptions(opts)
	var out []int
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		out = append(out, n.Val)
		o.rec.Record(trace.Step{Kind: trace.KindVisit, Node: label(n)})
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)
	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "preorder"})
	return out
}

// Inorder visits left, root, right.
func Inorder(root *Node, opts ...Option) []int {
	o := buildOptions(opts)
	var out []int
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		o.rec.Record(trace.Step{Kind: trace.KindPush, Node: label(n)})
		walk(n.Left)
		out = append(out, n.Val)
		o.rec.Record(trace.Step{Kind: trace.KindVisit, Node: label(n)})
		walk(n.Right)
	}
	walk(root)
	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "inorder"})
	return out
}

// Postorder visits left, right, root.
func Postorder(root *Node, opts ...Option) []int {
	o := buildOptions(opts)
	var out []int
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		o.rec.Record(trace.Step{Kind: trace.KindPush, Node: label(n)})
		walk(n.Left)
		walk(n.Right)
		out = append(out, n.Val)
		o.rec.Record(trace.Step{Kind: trace.KindVisit, Node: label(n)})
	}
	walk(root)
	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "postorder"})
	return out
}

// LevelOrder returns node values grouped by depth.
func LevelOrder(root *Node, opts ...Option) [][]int {
	o := buildOptions(opts)
	var out [][]int
	for depth, level := range Levels(root) {
		row := make([]int, len(level))
		for i, n := range level {
			row[i] = n.Val
			o.rec.Record(trace.Step{Kind: trace.KindVisit, Node: label(n), Value: float64(depth)})
		}
		out = append(out, row)
	}
	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "level order"})
	return out
}

// Zigzag is level order with every other level reversed, starting
// left-to-right at the root.
func Zigzag(root *Node, opts ...Option) [][]int {
	o := buildOptions(opts)
	var out [][]int
	for depth, level := range Levels(root) {
		row := make([]int, len(level))
		for i := range level {
			n := level[i]
			if depth%2 == 1 {
				n = level[len(level)-1-i]
			}
			row[i] = n.Val
			o.rec.Record(trace.Step{Kind: trace.KindVisit, Node: label(n), Value: float64(depth)})
		}
		out = append(out, row)
	}
	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "zigzag"})
	return out
}

// placed is a node with its column (root 0, left -1, right +1) and row.
type placed struct {
	n        *Node
	col, row int
}

// walkColumns does a BFS tagging every node with its column and row.
func walkColumns(root *Node) []placed {
	if root == nil {
		return nil
	}
	out := []placed{{n: root}}
	for i := 0; i < len(out); i++ {
		p := out[i]
		if p.n.Left != nil {
			out = append(out, placed{n: p.n.Left, col: p.col - 1, row: p.row + 1})
		}
		if p.n.Right != nil {
			out = append(out, placed{n: p.n.Right, col: p.col + 1, row: p.row + 1})
		}
	}
	return out
}

func columnRange(ps []placed) (lo, hi int) {
	for _, p := range ps {
		lo = min(lo, p.col)
		hi = max(hi, p.col)
	}
	return lo, hi
}

// Vertical returns columns left to right. Inside a column nodes are ordered
// by row, and nodes sharing a row and column by value.
func Vertical(root *Node, opts ...Option) [][]int {
	o := buildOptions(opts)
	ps := walkColumns(root)
	if len(ps) == 0 {
		o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "vertical"})
		return nil
	}

	sorted := make([]placed, len(ps))
	copy(sorted, ps)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.col != b.col {
			return a.col < b.col
		}
		if a.row != b.row {
			return a.row < b.row
		}
		return a.n.Val < b.n.Val
	})

	lo, hi := columnRange(ps)
	out := make([][]int, hi-lo+1)
	for _, p := range sorted {
		out[p.col-lo] = append(out[p.col-lo], p.n.Val)
		o.rec.Record(trace.Step{Kind: trace.KindVisit, Node: label(p.n), Value: float64(p.col)})
	}
	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "vertical"})
	return out
}

// TopView returns the first node seen in each column from above, left to
// right. Within a row the leftmost node in level order wins.
func TopView(root *Node, opts ...Option) []int {
	o := buildOptions(opts)
	ps := walkColumns(root)
	if len(ps) == 0 {
		o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "top view"})
		return nil
	}
	lo, hi := columnRange(ps)
	seen := make([]bool, hi-lo+1)
	out := make([]int, hi-lo+1)
	for _, p := range ps {
		c := p.col - lo
		if seen[c] {
			o.rec.Record(trace.Step{Kind: trace.KindReject, Node: label(p.n), Value: float64(p.col)})
			continue
		}
		seen[c] = true
		out[c] = p.n.Val
		o.rec.Record(trace.Step{Kind: trace.KindSelect, Node: label(p.n), Value: float64(p.col)})
	}
	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "top view"})
	return out
}

// BottomView returns the last node seen in each column, left to right.
// When two nodes share the lowest row of a column the later one in level
// order wins.
func BottomView(root *Node, opts ...Option) []int {
	o := buildOptions(opts)
	ps := walkColumns(root)
	if len(ps) == 0 {
		o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "bottom view"})
		return nil
	}
	lo, hi := columnRange(ps)
	out := make([]int, hi-lo+1)
	for _, p := range ps {
		out[p.col-lo] = p.n.Val
		o.rec.Record(trace.Step{Kind: trace.KindSelect, Node: label(p.n), Value: float64(p.col)})
	}
	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "bottom view"})
	return out
}

// LeftView returns the first node of every level.
func LeftView(root *Node, opts ...Option) []int {
	o := buildOptions(opts)
	var out []int
	for depth, level := range Levels(root) {
		out = append(out, level[0].Val)
		o.rec.Record(trace.Step{Kind: trace.KindSelect, Node: label(level[0]), Value: float64(depth)})
	}
	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "left view"})
	return out
}

// RightView returns the last node of every level.
func RightView(root *Node, opts ...Option) []int {
	o := buildOptions(opts)
	var out []int
	for depth, level := range Levels(root) {
		last := level[len(level)-1]
		out = append(out, last.Val)
		o.rec.Record(trace.Step{Kind: trace.KindSelect, Node: label(last), Value: float64(depth)})
	}
	o.rec.Record(trace.Step{Kind: trace.KindDone, Note: "right view"})
	return out
}
