package flattree

import (
	"fmt"
	"slices"
)

// Add inserts child as the child of parent at index. child has to be a
// detached node which is not an ancestor of parent.
func (t *Tree[V]) Add(parent NodeID, index int, child NodeID) error {
	return t.AddAll(parent, index, child)
}

// Append adds children after the last child of parent.
func (t *Tree[V]) Append(parent NodeID, children ...NodeID) error {
	if !t.Valid(parent) {
		return fmt.Errorf("%w: absent parent %d", ErrInvalidArgument, parent)
	}
	return t.AddAll(parent, len(t.nodes[parent].children), children...)
}

// AddAll inserts a contiguous batch of children into parent, starting at
// index. The batch is validated as a whole; if any child is unusable, no
// child is inserted.
func (t *Tree[V]) AddAll(parent NodeID, index int, children ...NodeID) error {
	if !t.Valid(parent) {
		return fmt.Errorf("%w: absent parent %d", ErrInvalidArgument, parent)
	}
	if index < 0 || index > len(t.nodes[parent].children) {
		return fmt.Errorf("%w: child index %d not in [0, %d]", ErrIndexOutOfBounds,
			index, len(t.nodes[parent].children))
	}
	if err := t.checkAttachable(parent, children...); err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}
	start := t.localStart(parent, index)
	offsets := make([]int, len(children))
	added := 0
	for i, c := range children {
		offsets[i] = start + added
		added += t.nodes[c].effective()
		t.nodes[c].parent = parent
	}
	p := &t.nodes[parent]
	p.children = slices.Insert(p.children, index, children...)
	p.offsets = slices.Insert(p.offsets, index, offsets...)
	t.propagate(parent, None, index+len(children)-1, added)
	T().Debugf("flattree: added %d children to %d at %d", len(children), parent, index)
	t.notifyRange(ChangeAdd, parent, start, added)
	return nil
}

// checkAttachable validates nodes to be attached to parent: they have to be
// live, detached, pairwise distinct and must not contain parent's root path.
func (t *Tree[V]) checkAttachable(parent NodeID, children ...NodeID) error {
	var seen map[NodeID]struct{}
	if len(children) > 1 {
		seen = make(map[NodeID]struct{}, len(children))
	}
	for _, c := range children {
		if !t.Valid(c) {
			return fmt.Errorf("%w: absent child %d", ErrInvalidArgument, c)
		}
		if t.nodes[c].parent != None {
			return fmt.Errorf("%w: child %d is attached to %d", ErrInvalidArgument, c, t.nodes[c].parent)
		}
		if t.isAncestorOrSelf(c, parent) {
			return fmt.Errorf("%w: child %d is an ancestor of %d", ErrInvalidArgument, c, parent)
		}
		if seen != nil {
			if _, dup := seen[c]; dup {
				return fmt.Errorf("%w: child %d occurs twice", ErrInvalidArgument, c)
			}
			seen[c] = struct{}{}
		}
	}
	return nil
}

// Remove detaches the child of parent at index.
func (t *Tree[V]) Remove(parent NodeID, index int) {
	t.RemoveRange(parent, index, index)
}

// RemoveChild detaches child from parent. It is a no-op if child is not a
// child of parent.
func (t *Tree[V]) RemoveChild(parent, child NodeID) {
	if i := t.IndexOf(parent, child); i >= 0 {
		t.RemoveRange(parent, i, i)
	}
}

// RemoveRange detaches the children of parent from index start to index end,
// inclusive. Ranges not fully inside the children of parent are silently
// ignored.
func (t *Tree[V]) RemoveRange(parent NodeID, start, end int) {
	if !t.Valid(parent) || start < 0 || end < start || end >= len(t.nodes[parent].children) {
		T().Debugf("flattree: ignoring removal of [%d,%d] from %d", start, end, parent)
		return
	}
	p := &t.nodes[parent]
	local := p.offsets[start]
	removed := p.offsets[end] + t.nodes[p.children[end]].effective() - local
	t.propagate(parent, None, end, -removed)
	for _, c := range p.children[start : end+1] {
		t.nodes[c].parent = None
	}
	p.offsets = slices.Delete(p.offsets, start, end+1)
	p.children = slices.Delete(p.children, start, end+1)
	T().Debugf("flattree: removed children [%d,%d] of %d", start, end, parent)
	t.notifyRange(ChangeRemove, parent, local, removed)
}

// Set replaces the child of parent at index by child. The previous child is
// detached. Setting the child already present is a no-op.
func (t *Tree[V]) Set(parent NodeID, index int, child NodeID) error {
	if !t.Valid(parent) {
		return fmt.Errorf("%w: absent parent %d", ErrInvalidArgument, parent)
	}
	p := &t.nodes[parent]
	if index < 0 || index >= len(p.children) {
		return fmt.Errorf("%w: child index %d not in [0, %d)", ErrIndexOutOfBounds, index, len(p.children))
	}
	old := p.children[index]
	if old == child {
		return nil
	}
	if err := t.checkAttachable(parent, child); err != nil {
		return err
	}
	oldCount, newCount := t.nodes[old].effective(), t.nodes[child].effective()
	t.nodes[old].parent = None
	p.children[index] = child
	t.nodes[child].parent = parent
	t.propagate(parent, None, index, newCount-oldCount)
	t.notify(Change{
		Kind:     ChangeReplace,
		Origin:   parent,
		Start:    p.offsets[index],
		OldCount: oldCount,
		NewCount: newCount,
	})
	return nil
}

// Clear detaches all children of parent.
func (t *Tree[V]) Clear(parent NodeID) {
	if !t.Valid(parent) {
		return
	}
	p := &t.nodes[parent]
	if len(p.children) == 0 {
		p.count = 1
		return
	}
	for _, c := range p.children {
		t.nodes[c].parent = None
	}
	p.children = p.children[:0]
	p.offsets = p.offsets[:0]
	removed := p.count - 1
	t.propagate(parent, None, -1, -removed)
	T().Debugf("flattree: cleared %d", parent)
	t.notifyRange(ChangeRemove, parent, 1, removed)
}

// Sort reorders the direct children of parent by cmp, which has to return a
// negative number if a sorts before b. The sort is stable and not recursive.
// As no incremental range mapping exists for an arbitrary reordering, Sort
// emits ChangeInvalidate.
func (t *Tree[V]) Sort(parent NodeID, cmp func(a, b NodeID) int) {
	if !t.Valid(parent) || cmp == nil {
		return
	}
	p := &t.nodes[parent]
	slices.SortStableFunc(p.children, cmp)
	t.rebuildOffsets(parent)
	t.notify(Change{Kind: ChangeInvalidate, Origin: parent})
}

func (t *Tree[V]) rebuildOffsets(parent NodeID) {
	p := &t.nodes[parent]
	pos := 1
	for i, c := range p.children {
		p.offsets[i] = pos
		pos += t.nodes[c].effective()
	}
}
