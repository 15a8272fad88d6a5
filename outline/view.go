package outline

import (
	"fmt"

	"github.com/npillmayer/flattree"
)

// Row is a single line of a view.
type Row struct {
	Node   flattree.NodeID
	Pos    int  // flat position within the view
	Depth  int  // depth below the view's root
	Folded bool // node is folded
	Leaf   bool // node has no children
}

// View is a virtual list over the flattening of a subtree. Row 0 is the
// subtree's root.
//
// A View may track a selected row. To keep the selection on the same node
// while the tree changes, the view has to receive the tree's changes, i.e.
// be installed as (one of) the tree's change sinks.
type View[V any] struct {
	tree   *flattree.Tree[V]
	root   flattree.NodeID
	sel    int // selected row, -1 if none
	anchor flattree.NodeID
	drifts int // selection had to be re-resolved from the anchor
}

var _ flattree.ChangeSink = (*View[int])(nil)

// NewView creates a view on the subtree at root. The view starts without a
// selection.
func NewView[V any](tree *flattree.Tree[V], root flattree.NodeID) (*View[V], error) {
	if tree == nil || !tree.Valid(root) {
		return nil, fmt.Errorf("%w: cannot create view for node %d", flattree.ErrInvalidArgument, root)
	}
	return &View[V]{tree: tree, root: root, sel: -1, anchor: flattree.None}, nil
}

// Tree returns the tree the view presents.
func (v *View[V]) Tree() *flattree.Tree[V] {
	return v.tree
}

// Root returns the root of the view's subtree.
func (v *View[V]) Root() flattree.NodeID {
	return v.root
}

// Len returns the number of rows, including the root row.
func (v *View[V]) Len() int {
	return v.tree.Size(v.root) + 1
}

// Row returns the row at position pos.
func (v *View[V]) Row(pos int) (Row, error) {
	n, err := v.tree.Get(v.root, pos)
	if err != nil {
		return Row{}, err
	}
	return Row{
		Node:   n,
		Pos:    pos,
		Depth:  v.tree.Depth(n) - v.tree.Depth(v.root),
		Folded: v.tree.IsFolded(n),
		Leaf:   v.tree.ChildCount(n) == 0,
	}, nil
}

// Rows returns up to count rows, starting at row from. It returns fewer rows
// if the view ends earlier.
func (v *View[V]) Rows(from, count int) []Row {
	if from < 0 {
		count += from
		from = 0
	}
	if count <= 0 {
		return nil
	}
	rows := make([]Row, 0, min(count, v.Len()))
	flattree.Walk(v.tree, v.root, func(n flattree.NodeID, pos, depth int) bool {
		if pos < from {
			return true
		}
		rows = append(rows, Row{
			Node:   n,
			Pos:    pos,
			Depth:  depth,
			Folded: v.tree.IsFolded(n),
			Leaf:   v.tree.ChildCount(n) == 0,
		})
		return len(rows) < count
	})
	return rows
}

// Toggle folds the node at row pos if it is unfolded, and unfolds it
// otherwise.
func (v *View[V]) Toggle(pos int) error {
	n, err := v.tree.Get(v.root, pos)
	if err != nil {
		return err
	}
	v.tree.Fold(n, !v.tree.IsFolded(n))
	return nil
}

// Select selects the row at pos.
func (v *View[V]) Select(pos int) error {
	n, err := v.tree.Get(v.root, pos)
	if err != nil {
		return err
	}
	v.sel, v.anchor = pos, n
	return nil
}

// Deselect clears the selection.
func (v *View[V]) Deselect() {
	v.sel, v.anchor = -1, flattree.None
}

// Selection returns the selected row and its node. It returns false if
// nothing is selected.
func (v *View[V]) Selection() (int, flattree.NodeID, bool) {
	if v.sel < 0 {
		return -1, flattree.None, false
	}
	return v.sel, v.anchor, true
}

// Changed adjusts the selection to a change of the tree. It is part of
// interface flattree.ChangeSink.
//
// The positions of a change are local to its origin node. Changes at nodes
// outside of the view or hidden within it do not affect any row, except for
// moves, which may take nodes from anywhere.
func (v *View[V]) Changed(c flattree.Change) {
	if v.sel < 0 || !v.tree.Valid(v.root) {
		return
	}
	if c.Kind == flattree.ChangeInvalidate {
		v.resync()
		return
	}
	base, ok := v.tree.PositionIn(v.root, c.Origin)
	if !ok {
		if c.Kind == flattree.ChangeMove {
			v.resync()
		}
		return
	}
	switch c.Kind {
	case flattree.ChangeAdd, flattree.ChangeRemove, flattree.ChangeReplace:
		if v.tree.IsFolded(c.Origin) {
			return // children of a folded node are not rows
		}
	}
	s, lost := v.sel, false
	switch c.Kind {
	case flattree.ChangeAdd, flattree.ChangeUnfold:
		if s >= base+c.Start {
			s += c.Count
		}
	case flattree.ChangeRemove:
		start := base + c.Start
		if s >= start+c.Count {
			s -= c.Count
		} else if s >= start {
			s, lost = start-1, true
		}
	case flattree.ChangeFold:
		start := base + c.Start
		if s >= start+c.Count {
			s -= c.Count
		} else if s >= start {
			s, lost = base, true
		}
	case flattree.ChangeReplace:
		start := base + c.Start
		if s >= start+c.OldCount {
			s += c.NewCount - c.OldCount
		} else if s >= start {
			s, lost = start, true
		}
	case flattree.ChangeMove:
		s, lost = afterMove(s, base, c)
	}
	v.settle(s, lost)
}

// afterMove maps row s across a move. The source range is given in
// coordinates before the move, the destination range in coordinates after
// the move.
func afterMove(s, base int, c flattree.Change) (int, bool) {
	var m int
	switch {
	case c.FromStart != flattree.Hidden:
		m = c.FromEnd - c.FromStart + 1
	case c.ToStart != flattree.Hidden:
		m = c.ToEnd - c.ToStart + 1
	default:
		return s, false
	}
	if c.FromStart != flattree.Hidden {
		from, to := base+c.FromStart, base+c.FromEnd
		if s >= from && s <= to {
			if c.ToStart == flattree.Hidden {
				return from - 1, true
			}
			return base + c.ToStart + s - from, false
		}
		if s > to {
			s -= m
		}
	}
	if c.ToStart != flattree.Hidden && s >= base+c.ToStart {
		s += m
	}
	return s, false
}

// settle stores the adjusted selection s. Unless the selected node was lost,
// the row at s has to be the anchor node.
func (v *View[V]) settle(s int, lost bool) {
	s = max(0, min(s, v.Len()-1))
	n, err := v.tree.Get(v.root, s)
	if err != nil || (!lost && n != v.anchor) {
		tracer().Errorf("outline: selection drifted from node %d to row %d", v.anchor, s)
		v.drifts++
		v.resync()
		return
	}
	if lost {
		tracer().Debugf("outline: selected node %d gone, selecting row %d", v.anchor, s)
	}
	v.sel, v.anchor = s, n
}

// resync re-resolves the selection from the anchor node. If the anchor is
// no longer visible, the selection stays at the same row.
func (v *View[V]) resync() {
	if v.tree.Valid(v.anchor) {
		if pos, ok := v.tree.PositionIn(v.root, v.anchor); ok {
			v.sel = pos
			return
		}
	}
	v.sel = max(0, min(v.sel, v.Len()-1))
	v.anchor, _ = v.tree.Get(v.root, v.sel)
}
