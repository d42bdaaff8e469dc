package tree_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"
	"github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/tree"
)

// slots builds a level-order input; nil marks a missing child.
func slots(vals ...any) []*int {
	out := make([]*int, len(vals))
	for i, v := range vals {
		if n, ok := v.(int); ok {
			out[i] = &n
		}
	}
	return out
}

func full() *tree.Node {
	return tree.FromLevelOrder(slots(1, 2, 3, 4, 5, 6, 7))
}

func TestFromLevelOrder(t *testing.T) {
	root := tree.FromLevelOrder(slots(1, 2, 3, nil, 4))
	require.NotNil(t, root)
	assert.Equal(t, 1, root.Val)
	assert.Nil(t, root.Left.Left)
	assert.Equal(t, 4, root.Left.Right.Val)
	assert.Equal(t, 4, tree.Count(root))
	assert.Equal(t, 3, tree.Height(root))

	assert.Nil(t, tree.FromLevelOrder(nil))
	assert.Nil(t, tree.FromLevelOrder(slots(nil, 1)))
}

func TestFromLevelOrderKeepsExtremeValues(t *testing.T) {
	root := tree.FromLevelOrder(slots(math.MinInt32, nil, math.MaxInt32))
	require.NotNil(t, root)
	assert.Equal(t, math.MinInt32, root.Val)
	assert.Nil(t, root.Left)
	assert.Equal(t, math.MaxInt32, root.Right.Val)
	assert.Equal(t, []int{math.MinInt32, math.MaxInt32}, tree.Inorder(root))
}

func TestDepthFirstOrders(t *testing.T) {
	root := full()
	assert.Equal(t, []int{1, 2, 4, 5, 3, 6, 7}, tree.Preorder(root))
	assert.Equal(t, []int{4, 2, 5, 1, 6, 3, 7}, tree.Inorder(root))
	assert.Equal(t, []int{4, 5, 2, 6, 7, 3, 1}, tree.Postorder(root))
}

func TestLevelOrderAndZigzag(t *testing.T) {
	root := full()
	assert.Equal(t, [][]int{{1}, {2, 3}, {4, 5, 6, 7}}, tree.LevelOrder(root))
	assert.Equal(t, [][]int{{1}, {3, 2}, {4, 5, 6, 7}}, tree.Zigzag(root))
}

func TestVertical(t *testing.T) {
	got := tree.Vertical(full())
	assert.Equal(t, [][]int{{4}, {2}, {1, 5, 6}, {3}, {7}}, got)
}

func TestViews(t *testing.T) {
	root := full()
	assert.Equal(t, []int{4, 2, 1, 3, 7}, tree.TopView(root))
	assert.Equal(t, []int{4, 2, 6, 3, 7}, tree.BottomView(root))
	assert.Equal(t, []int{1, 2, 4}, tree.LeftView(root))
	assert.Equal(t, []int{1, 3, 7}, tree.RightView(root))

	sparse := tree.FromLevelOrder(slots(1, 2, 3, nil, 4))
	assert.Equal(t, []int{2, 1, 3}, tree.TopView(sparse))
	assert.Equal(t, []int{2, 4, 3}, tree.BottomView(sparse))
	assert.Equal(t, []int{1, 2, 4}, tree.LeftView(sparse))
	assert.Equal(t, []int{1, 3, 4}, tree.RightView(sparse))
}

func TestSkewedTree(t *testing.T) {
	root := tree.FromLevelOrder(slots(1, 2, nil, 3))
	assert.Equal(t, []int{1, 2, 3}, tree.RightView(root))
	assert.Equal(t, []int{1, 2, 3}, tree.LeftView(root))
	assert.Equal(t, [][]int{{3}, {2}, {1}}, tree.Vertical(root))
}

func TestEmptyTree(t *testing.T) {
	assert.Empty(t, tree.Preorder(nil))
	assert.Empty(t, tree.LevelOrder(nil))
	assert.Empty(t, tree.Vertical(nil))
	assert.Empty(t, tree.TopView(nil))
	assert.Empty(t, tree.BottomView(nil))
	assert.Equal(t, 0, tree.Height(nil))
}

func TestRecorder(t *testing.T) {
	tr := trace.New()
	tree.TopView(tree.FromLevelOrder(slots(1, 2, 3, nil, 4)), tree.WithRecorder(tr))

	rejected := tr.Filter(trace.KindReject)
	require.Len(t, rejected, 1)
	assert.Equal(t, "4", rejected[0].Node)
	assert.Len(t, tr.Filter(trace.KindSelect), 3)

	last, ok := tr.At(tr.Len() - 1)
	require.True(t, ok)
	assert.Equal(t, trace.KindDone, last.Kind)
}
