// Package tree implements binary-tree traversals and the classic "views"
// (top, bottom, left, right, vertical) used by the tree lessons.
//
// Trees are built from LeetCode-style level-order arrays where nil marks a
// missing child. All functions accept a nil root and return empty results.
package tree

import (
	"strconv"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
)

// Node is a binary tree node.
type Node struct {
	Val   int
	Left  *Node
	Right *Node
}

// FromLevelOrder builds a tree from a level-order array.
// The first element must be non-nil for a non-empty tree.
func FromLevelOrder(vals []*int) *Node {
	if len(vals) == 0 || vals[0] == nil {
		return nil
	}
	root := &Node{Val: *vals[0]}
	queue := []*Node{root}
	i := 1
	for len(queue) > 0 && i < len(vals) {
		n := queue[0]
		queue = queue[1:]

		if i < len(vals) && vals[i] != nil {
			n.Left = &Node{Val: *vals[i]}
			queue = append(queue, n.Left)
		}
		i++
		if i < len(vals) && vals[i] != nil {
			n.Right = &Node{Val: *vals[i]}
			queue = append(queue, n.Right)
		}
		i++
	}
	return root
}

// Option configures a traversal.
type Option func(*options)

type options struct {
	rec trace.Recorder
}

// WithRecorder captures visited nodes.
func WithRecorder(r trace.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.rec = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{rec: trace.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func label(n *Node) string {
	return strconv.Itoa(n.Val)
}

// Height returns the number of levels; an empty tree has height 0.
func Height(root *Node) int {
	if root == nil {
		return 0
	}
	return 1 + max(Height(root.Left), Height(root.Right))
}

// Count returns the number of nodes.
func Count(root *Node) int {
	if root == nil {
		return 0
	}
	return 1 + Count(root.Left) + Count(root.Right)
}

// Levels returns the nodes of each level left to right, for rendering.
func Levels(root *Node) [][]*Node {
	if root == nil {
		return nil
	}
	var out [][]*Node
	level := []*Node{root}
	for len(level) > 0 {
		out = append(out, level)
		var next []*Node
		for _, n := range level {
			if n.Left != nil {
				next = append(next, n.Left)
			}
			if n.Right != nil {
				next = append(next, n.Right)
			}
		}
		level = next
	}
	return out
}
