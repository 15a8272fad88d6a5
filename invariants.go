package flattree

import "fmt"

// Check validates the position index of every live node of the arena.
//
// This checker is intentionally strict and meant to be used in tests. It
// takes time linear in the size of the arena.
func (t *Tree[V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	live := 0
	for i := range t.nodes {
		n := NodeID(i)
		if t.nodes[i].state != slotInUse {
			continue
		}
		live++
		if err := t.checkNode(n); err != nil {
			T().Errorf("flattree: %v", err)
			return err
		}
	}
	if live != t.live {
		return fmt.Errorf("%w: %d live nodes, arena counts %d", ErrInvariantViolation, live, t.live)
	}
	if err := t.checkFreeList(); err != nil {
		return err
	}
	reached := 0
	for i := range t.nodes {
		if t.nodes[i].state == slotInUse && t.nodes[i].parent == None {
			cnt, err := t.checkAcyclic(NodeID(i))
			if err != nil {
				return err
			}
			reached += cnt
		}
	}
	if reached != t.live {
		return fmt.Errorf("%w: %d of %d live nodes are not reachable from a root",
			ErrInvariantViolation, t.live-reached, t.live)
	}
	return nil
}

func (t *Tree[V]) checkNode(n NodeID) error {
	nd := &t.nodes[n]
	if nd.parent != None {
		if !t.Valid(nd.parent) {
			return fmt.Errorf("%w: node %d has stale parent %d", ErrInvariantViolation, n, nd.parent)
		}
		found := 0
		for _, c := range t.nodes[nd.parent].children {
			if c == n {
				found++
			}
		}
		if found != 1 {
			return fmt.Errorf("%w: node %d occurs %d times among the children of its parent %d",
				ErrInvariantViolation, n, found, nd.parent)
		}
	}
	if len(nd.offsets) != len(nd.children) {
		return fmt.Errorf("%w: node %d has %d offsets for %d children",
			ErrInvariantViolation, n, len(nd.offsets), len(nd.children))
	}
	expected := 1
	for i, c := range nd.children {
		if !t.Valid(c) {
			return fmt.Errorf("%w: node %d has stale child %d", ErrInvariantViolation, n, c)
		}
		if t.nodes[c].parent != n {
			return fmt.Errorf("%w: child %d of node %d points to parent %d",
				ErrInvariantViolation, c, n, t.nodes[c].parent)
		}
		if nd.offsets[i] != expected {
			return fmt.Errorf("%w: node %d has offset %d for child #%d, expected %d",
				ErrInvariantViolation, n, nd.offsets[i], i, expected)
		}
		expected += t.nodes[c].effective()
	}
	if nd.count != expected {
		return fmt.Errorf("%w: node %d has aggregate count %d, expected %d",
			ErrInvariantViolation, n, nd.count, expected)
	}
	return nil
}

func (t *Tree[V]) checkFreeList() error {
	free := 0
	for id := t.free; id != None; id = t.nodes[id].nextFree {
		if int(id) >= len(t.nodes) || t.nodes[id].state != slotInPool {
			return fmt.Errorf("%w: free list links to slot %d in use", ErrInvariantViolation, id)
		}
		free++
		if free > len(t.nodes) {
			return fmt.Errorf("%w: free list is cyclic", ErrInvariantViolation)
		}
	}
	if free+t.live != len(t.nodes) {
		return fmt.Errorf("%w: %d free + %d live slots, arena has %d",
			ErrInvariantViolation, free, t.live, len(t.nodes))
	}
	return nil
}

func (t *Tree[V]) checkAcyclic(root NodeID) (int, error) {
	seen := make(map[NodeID]struct{})
	var err error
	t.Each(root, func(n NodeID, _ int) bool {
		if _, ok := seen[n]; ok {
			err = fmt.Errorf("%w: node %d reachable twice from root %d", ErrInvariantViolation, n, root)
			return false
		}
		seen[n] = struct{}{}
		return true
	})
	return len(seen), err
}
