package outline

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/flattree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds
//
//	R
//	├── A
//	├── B
//	│   ├── B1
//	│   └── B2
//	└── C
//
// with a view on R as the tree's sink.
func sample(t *testing.T) (*flattree.Tree[string], *View[string], map[string]flattree.NodeID) {
	t.Helper()
	tree, err := flattree.New[string](flattree.Config{})
	require.NoError(t, err)
	ids := make(map[string]flattree.NodeID)
	for _, name := range []string{"R", "A", "B", "B1", "B2", "C"} {
		ids[name] = tree.NewNode(name)
	}
	require.NoError(t, tree.Append(ids["B"], ids["B1"], ids["B2"]))
	require.NoError(t, tree.Append(ids["R"], ids["A"], ids["B"], ids["C"]))
	view, err := NewView(tree, ids["R"])
	require.NoError(t, err)
	tree.SetSink(view)
	return tree, view, ids
}

func names(tree *flattree.Tree[string], rows []Row) string {
	var s []string
	for _, r := range rows {
		s = append(s, strings.Repeat(".", r.Depth)+tree.Value(r.Node))
	}
	return strings.Join(s, " ")
}

func selected(t *testing.T, tree *flattree.Tree[string], v *View[string]) string {
	t.Helper()
	pos, n, ok := v.Selection()
	require.True(t, ok)
	row, err := v.Row(pos)
	require.NoError(t, err)
	require.Equal(t, n, row.Node, "selection row and anchor disagree")
	return tree.Value(n)
}

func TestViewRows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flattree")
	defer teardown()
	//
	tree, view, ids := sample(t)
	assert.Equal(t, 6, view.Len())
	assert.Equal(t, "R .A .B ..B1 ..B2 .C", names(tree, view.Rows(0, 10)))
	assert.Equal(t, "..B1 ..B2", names(tree, view.Rows(3, 2)))
	assert.Empty(t, view.Rows(2, 0))

	row, err := view.Row(4)
	require.NoError(t, err)
	assert.Equal(t, Row{Node: ids["B2"], Pos: 4, Depth: 2, Leaf: true}, row)
	_, err = view.Row(6)
	assert.ErrorIs(t, err, flattree.ErrIndexOutOfBounds)

	require.NoError(t, view.Toggle(2))
	assert.Equal(t, 4, view.Len())
	assert.Equal(t, "R .A .B .C", names(tree, view.Rows(0, 10)))
	row, _ = view.Row(2)
	assert.True(t, row.Folded)

	sub, err := NewView(tree, ids["B"])
	require.NoError(t, err)
	assert.Equal(t, 1, sub.Len(), "a folded root shows itself only")
	_, err = NewView(tree, flattree.None)
	assert.ErrorIs(t, err, flattree.ErrInvalidArgument)
}

func TestSelectionFollowsStructuralChanges(t *testing.T) {
	tree, view, ids := sample(t)
	require.NoError(t, view.Select(5))
	assert.Equal(t, "C", selected(t, tree, view))

	require.NoError(t, tree.Add(ids["B"], 0, tree.NewNode("B0")))
	assert.Equal(t, "C", selected(t, tree, view))
	pos, _, _ := view.Selection()
	assert.Equal(t, 6, pos)

	tree.Remove(ids["R"], 0)
	assert.Equal(t, "C", selected(t, tree, view))

	tree.Fold(ids["B"], true)
	assert.Equal(t, "C", selected(t, tree, view))
	pos, _, _ = view.Selection()
	assert.Equal(t, 2, pos)

	tree.Fold(ids["B"], false)
	assert.Equal(t, "C", selected(t, tree, view))

	x := tree.NewNode("X")
	require.NoError(t, tree.Add(x, 0, tree.NewNode("X1")))
	require.NoError(t, tree.Set(ids["R"], 0, x))
	assert.Equal(t, "C", selected(t, tree, view))
	assert.Zero(t, view.drifts)
}

func TestSelectionOfHiddenOrRemovedNode(t *testing.T) {
	tree, view, ids := sample(t)
	require.NoError(t, view.Select(4))
	assert.Equal(t, "B2", selected(t, tree, view))

	tree.Fold(ids["B"], true)
	assert.Equal(t, "B", selected(t, tree, view), "folding selects the folded node")

	tree.Fold(ids["B"], false)
	require.NoError(t, view.Select(3))
	tree.RemoveRange(ids["B"], 0, 1)
	assert.Equal(t, "B", selected(t, tree, view), "removal selects the preceding row")

	require.NoError(t, view.Select(1))
	y := tree.NewNode("Y")
	require.NoError(t, tree.Set(ids["R"], 0, y))
	assert.Equal(t, "Y", selected(t, tree, view), "replacement selects the new child")
	assert.Zero(t, view.drifts)
}

func TestSelectionFollowsMoves(t *testing.T) {
	tree, view, ids := sample(t)
	require.NoError(t, view.Select(1))
	require.NoError(t, tree.MoveWithin(ids["R"], 0, 0, 2))
	assert.Equal(t, "A", selected(t, tree, view))
	pos, _, _ := view.Selection()
	assert.Equal(t, 4, pos)

	require.NoError(t, view.Select(5))
	require.NoError(t, tree.Move(ids["R"], ids["B"], 0, 1, ids["C"], 0))
	assert.Equal(t, "C", selected(t, tree, view))
	assert.Equal(t, "R .B .A .C ..B1 ..B2", names(tree, view.Rows(0, 10)))

	tree.Fold(ids["C"], true)
	require.NoError(t, view.Select(2))
	require.NoError(t, tree.Move(ids["R"], ids["R"], 1, 1, ids["C"], 0))
	assert.Equal(t, "B", selected(t, tree, view), "moving into a folded node selects the preceding row")

	tree.Fold(ids["C"], false)
	require.NoError(t, view.Select(4))
	assert.Equal(t, "B1", selected(t, tree, view))
	tree.Sort(ids["C"], func(a, b flattree.NodeID) int {
		return -strings.Compare(tree.Value(a), tree.Value(b))
	})
	assert.Equal(t, "B1", selected(t, tree, view))
	assert.Zero(t, view.drifts)
}

func TestSelectionIgnoresChangesBelowFoldedNode(t *testing.T) {
	for _, sel := range []string{"A", "B", "C"} {
		t.Run(sel, func(t *testing.T) {
			tree, view, ids := sample(t)
			tree.Fold(ids["B"], true)
			rows := map[string]int{"A": 1, "B": 2, "C": 3}
			require.NoError(t, view.Select(rows[sel]))
			stays := func(op string) {
				t.Helper()
				assert.Equal(t, sel, selected(t, tree, view), "after %s", op)
				pos, _, _ := view.Selection()
				assert.Equal(t, rows[sel], pos, "after %s", op)
			}
			tree.RemoveRange(ids["B"], 0, 0)
			stays("remove")
			require.NoError(t, tree.Add(ids["B"], 0, tree.NewNode("B0")))
			stays("add")
			require.NoError(t, tree.Set(ids["B"], 1, tree.NewNode("B3")))
			stays("set")
			tree.Clear(ids["B"])
			stays("clear")
			assert.Equal(t, "R .A .B .C", names(tree, view.Rows(0, 10)))
			assert.Zero(t, view.drifts)
		})
	}
}

func TestSelectionIgnoresChangesOutsideOfView(t *testing.T) {
	tree, _, ids := sample(t)
	view, err := NewView(tree, ids["B"])
	require.NoError(t, err)
	tree.SetSink(view)
	require.NoError(t, view.Select(2))
	require.NoError(t, tree.Add(ids["R"], 0, tree.NewNode("Z")))
	tree.Fold(ids["C"], true)
	assert.Equal(t, "B2", selected(t, tree, view))
	require.NoError(t, tree.Move(ids["R"], ids["R"], 0, 0, ids["B"], 0))
	assert.Equal(t, "B2", selected(t, tree, view))
	pos, _, _ := view.Selection()
	assert.Equal(t, 3, pos)
}

func TestSelectionUnderRandomMutations(t *testing.T) {
	tree, view, ids := sample(t)
	rnd := rand.New(rand.NewSource(42))
	all := func() []flattree.NodeID {
		var nodes []flattree.NodeID
		tree.Each(ids["R"], func(n flattree.NodeID, _ int) bool {
			nodes = append(nodes, n)
			return true
		})
		return nodes
	}
	require.NoError(t, view.Select(3))
	for step := 0; step < 500; step++ {
		nodes := all()
		p := nodes[rnd.Intn(len(nodes))]
		cnt := tree.ChildCount(p)
		switch rnd.Intn(6) {
		case 0:
			require.NoError(t, tree.Add(p, rnd.Intn(cnt+1), tree.NewNode("n")))
		case 1:
			if cnt > 0 {
				i := rnd.Intn(cnt)
				tree.RemoveRange(p, i, i+rnd.Intn(cnt-i))
			}
		case 2:
			tree.Fold(p, !tree.IsFolded(p))
		case 3:
			if cnt > 0 {
				i := rnd.Intn(cnt)
				to := nodes[rnd.Intn(len(nodes))]
				_ = tree.Move(ids["R"], p, i, i, to, rnd.Intn(tree.ChildCount(to)+1))
			}
		case 4:
			if cnt > 0 {
				s := tree.NewNode("s")
				if rnd.Intn(2) == 0 {
					require.NoError(t, tree.Add(s, 0, tree.NewNode("s1")))
				}
				require.NoError(t, tree.Set(p, rnd.Intn(cnt), s))
			}
		case 5:
			if rnd.Intn(4) == 0 {
				tree.Clear(p)
			}
		}
		pos, n, ok := view.Selection()
		require.True(t, ok)
		got, err := tree.Get(ids["R"], pos)
		require.NoError(t, err)
		require.Equal(t, n, got, "step %d", step)
		if rnd.Intn(10) == 0 {
			require.NoError(t, view.Select(rnd.Intn(view.Len())))
		}
	}
	assert.Zero(t, view.drifts)
}
