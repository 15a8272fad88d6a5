package flattree

import (
	"fmt"
	"slices"
)

// visitSet records nodes seen while climbing an ancestor chain.
type visitSet map[NodeID]struct{}

// MoveWithin moves the children of parent from index fromStart to index
// fromEnd (inclusive) to the position in front of the child currently at
// toIndex.
func (t *Tree[V]) MoveWithin(parent NodeID, fromStart, fromEnd, toIndex int) error {
	return t.Move(parent, parent, fromStart, fromEnd, parent, toIndex)
}

// Move relocates the children of fromParent from index fromStart to index
// fromEnd (inclusive) to toParent, inserting them in front of the child
// currently at toIndex. fromParent and toParent have to be part of the same
// tree. toIndex refers to the children of toParent before the move.
//
// Index ranges not fully inside the children of the parents are silently
// ignored, as are moves which would leave the children in place: with
// fromParent == toParent, every toIndex in [fromStart, fromEnd+1] is a no-op
// and emits no ChangeMove. Moving children into one of their own subtrees
// fails with ErrInvalidArgument.
//
// Move emits a single ChangeMove with flat positions relative to origin. The
// source range is reported as it was before the move, the destination range
// as it is after the move. Positions hidden by a folded node are reported as
// Hidden.
func (t *Tree[V]) Move(origin, fromParent NodeID, fromStart, fromEnd int, toParent NodeID, toIndex int) error {
	if !t.Valid(origin) || !t.Valid(fromParent) || !t.Valid(toParent) {
		return fmt.Errorf("%w: absent node in move(%d, %d, %d)", ErrInvalidArgument, origin, fromParent, toParent)
	}
	from, to := &t.nodes[fromParent], &t.nodes[toParent]
	if fromStart < 0 || fromEnd < fromStart || fromEnd >= len(from.children) ||
		toIndex < 0 || toIndex > len(to.children) {
		T().Debugf("flattree: ignoring move of [%d,%d] from %d to %d@%d", fromStart, fromEnd,
			fromParent, toParent, toIndex)
		return nil
	}
	if fromParent == toParent && toIndex >= fromStart && toIndex <= fromEnd+1 {
		return nil
	}
	if t.movesIntoItself(fromParent, fromStart, fromEnd, toParent) {
		return fmt.Errorf("%w: cannot move children of %d into their own subtree at %d",
			ErrInvalidArgument, fromParent, toParent)
	}
	lca := t.lowestCommonAncestor(fromParent, toParent)
	if lca == None {
		T().Errorf("flattree: no common ancestor of %d and %d", fromParent, toParent)
		panic(fmt.Errorf("%w: %d and %d are not part of the same tree", ErrInvariantViolation,
			fromParent, toParent))
	}
	moved := from.offsets[fromEnd] + t.nodes[from.children[fromEnd]].effective() - from.offsets[fromStart]
	fromStartPos, fromEndPos := Hidden, Hidden
	if pos, ok := t.basePosition(origin, fromParent, from.offsets[fromStart]); ok {
		fromStartPos, fromEndPos = pos, pos+moved-1
	}
	// Both walks stop at the LCA. The LCA's size changes only if one of them
	// is cut short by a folded node below it.
	lcaCount := t.nodes[lca].count
	t.propagate(fromParent, lca, fromEnd, -moved)
	t.propagate(toParent, lca, toIndex-1, moved)
	if net := t.nodes[lca].count - lcaCount; net != 0 && !t.nodes[lca].folded {
		if p := t.nodes[lca].parent; p != None {
			t.propagate(p, None, t.indexInParent(lca), net)
		}
	}

	n := fromEnd - fromStart + 1
	run := slices.Clone(from.children[fromStart : fromEnd+1])
	from.offsets = slices.Delete(from.offsets, fromStart, fromEnd+1)
	from.children = slices.Delete(from.children, fromStart, fromEnd+1)
	ins := toIndex
	if fromParent == toParent && fromStart < toIndex {
		ins -= n
	}
	start := t.localStart(toParent, ins)
	offsets := make([]int, n)
	pos := start
	for i, c := range run {
		offsets[i] = pos
		pos += t.nodes[c].effective()
		t.nodes[c].parent = toParent
	}
	to.children = slices.Insert(to.children, ins, run...)
	to.offsets = slices.Insert(to.offsets, ins, offsets...)

	toStartPos, toEndPos := Hidden, Hidden
	if pos, ok := t.basePosition(origin, toParent, start); ok {
		toStartPos, toEndPos = pos, pos+moved-1
	}
	T().Debugf("flattree: moved %d children from %d to %d@%d, lca=%d", n, fromParent, toParent, ins, lca)
	t.notify(Change{
		Kind:      ChangeMove,
		Origin:    origin,
		FromStart: fromStartPos,
		FromEnd:   fromEndPos,
		ToStart:   toStartPos,
		ToEnd:     toEndPos,
	})
	return nil
}

// movesIntoItself reports whether toParent is one of the children of
// fromParent in [fromStart, fromEnd] or a descendant of one of them.
func (t *Tree[V]) movesIntoItself(fromParent NodeID, fromStart, fromEnd int, toParent NodeID) bool {
	for x := toParent; x != None; x = t.nodes[x].parent {
		if t.nodes[x].parent == fromParent {
			i := t.indexInParent(x)
			return i >= fromStart && i <= fromEnd
		}
	}
	return false
}

// lowestCommonAncestor climbs the ancestor chains of a and b in lock-step,
// until one of them reaches a node already seen on the other chain. It
// returns None if a and b are part of different trees.
func (t *Tree[V]) lowestCommonAncestor(a, b NodeID) NodeID {
	if a == b {
		return a
	}
	aPath, bPath := t.visits.Obtain(), t.visits.Obtain()
	defer func() {
		_ = t.visits.Recycle(aPath)
		_ = t.visits.Recycle(bPath)
	}()
	(*aPath)[a] = struct{}{}
	(*bPath)[b] = struct{}{}
	for t.nodes[a].parent != None || t.nodes[b].parent != None {
		if p := t.nodes[a].parent; p != None {
			a = p
			if _, ok := (*bPath)[a]; ok {
				return a
			}
			(*aPath)[a] = struct{}{}
		}
		if p := t.nodes[b].parent; p != None {
			b = p
			if _, ok := (*aPath)[b]; ok {
				return b
			}
			(*bPath)[b] = struct{}{}
		}
	}
	return None
}
