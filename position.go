package flattree

import (
	"fmt"
	"sort"
)

// Size returns the number of descendants of n visible in n's flattening.
// A folded node has size 0.
func (t *Tree[V]) Size(n NodeID) int {
	return t.at(n).effective() - 1
}

// EffectiveCount returns the size n presents to its parent: 1 if n is
// folded, its aggregate count otherwise.
func (t *Tree[V]) EffectiveCount(n NodeID) int {
	return t.at(n).effective()
}

// AggregateCount returns the size of the subtree at n including n, regardless
// of folding.
func (t *Tree[V]) AggregateCount(n NodeID) int {
	return t.at(n).count
}

// IsFolded reports whether n is folded.
func (t *Tree[V]) IsFolded(n NodeID) bool {
	return t.at(n).folded
}

// Get returns the node at flat position pos within n's flattening. Position
// 0 is n itself, positions 1…Size(n) address n's visible descendants in
// pre-order.
func (t *Tree[V]) Get(n NodeID, pos int) (NodeID, error) {
	if pos < 0 || pos > t.Size(n) {
		return None, fmt.Errorf("%w: position %d not in [0, %d]", ErrIndexOutOfBounds, pos, t.Size(n))
	}
	curr := n
	for pos > 0 {
		c := &t.nodes[curr]
		// greatest k with offsets[k] <= pos
		k := sort.SearchInts(c.offsets, pos+1) - 1
		assert(k >= 0, "flattree: flat position precedes first child")
		if c.offsets[k] == pos {
			return c.children[k], nil
		}
		pos -= c.offsets[k]
		curr = c.children[k]
	}
	return curr, nil
}

// Fold folds (folded = true) or unfolds n. A folded node keeps its children,
// but presents itself to its ancestors with a size of 1.
//
// Fold emits ChangeFold or ChangeUnfold with Start = 1 and Count = the number
// of descendants hidden or revealed, in n's local coordinates. The event is
// emitted while n still reports itself as unfolded; the fold flag settles to
// its target value after the sink returns.
func (t *Tree[V]) Fold(n NodeID, folded bool) {
	nd := t.at(n)
	if nd.folded == folded {
		return
	}
	nd.folded = false
	delta := nd.count - 1
	kind := ChangeUnfold
	if folded {
		delta = -delta
		kind = ChangeFold
	}
	if nd.parent != None {
		t.propagate(nd.parent, None, t.indexInParent(n), delta)
	}
	t.notifyRange(kind, n, 1, nd.count-1)
	t.nodes[n].folded = folded
}

// PositionIn returns the flat position of n within the flattening of origin.
// It returns false if n is not part of origin's subtree or if n is hidden
// by a folded node on the path from n's parent up to and including origin.
func (t *Tree[V]) PositionIn(origin, n NodeID) (int, bool) {
	t.at(origin)
	if n == origin {
		return 0, true
	}
	p := t.at(n).parent
	if p == None {
		return Hidden, false
	}
	return t.basePosition(origin, p, t.nodes[p].offsets[t.indexInParent(n)])
}

// Position returns the flat position of n within the flattening of its root.
func (t *Tree[V]) Position(n NodeID) (int, bool) {
	return t.PositionIn(t.Root(n), n)
}

// basePosition adds the flat offset of parent within origin to a position
// local to parent.
func (t *Tree[V]) basePosition(origin, parent NodeID, local int) (int, bool) {
	pos := local
	for {
		p := &t.nodes[parent]
		if p.folded {
			return Hidden, false
		}
		if parent == origin {
			return pos, true
		}
		if p.parent == None {
			return Hidden, false
		}
		pos += t.nodes[p.parent].offsets[t.indexInParent(parent)]
		parent = p.parent
	}
}
