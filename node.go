package flattree

// Value returns the payload of node n.
func (t *Tree[V]) Value(n NodeID) V {
	return t.at(n).value
}

// SetValue replaces the payload of node n. This is not a structural change
// and does not emit a Change.
func (t *Tree[V]) SetValue(n NodeID, v V) {
	t.at(n).value = v
}

// Parent returns the parent of n, or None for a detached node.
func (t *Tree[V]) Parent(n NodeID) NodeID {
	return t.at(n).parent
}

// ChildCount returns the number of direct children of n.
func (t *Tree[V]) ChildCount(n NodeID) int {
	return len(t.at(n).children)
}

// ChildAt returns the child of n at index i.
func (t *Tree[V]) ChildAt(n NodeID, i int) NodeID {
	children := t.at(n).children
	if i < 0 || i >= len(children) {
		return None
	}
	return children[i]
}

// Children returns a copy of the children of n.
func (t *Tree[V]) Children(n NodeID) []NodeID {
	children := t.at(n).children
	if len(children) == 0 {
		return nil
	}
	return append([]NodeID(nil), children...)
}

// IndexOf returns the index of child within the children of parent, or -1.
func (t *Tree[V]) IndexOf(parent, child NodeID) int {
	if !t.Valid(child) || t.nodes[child].parent != parent {
		return -1
	}
	return t.indexInParent(child)
}

// indexInParent scans the siblings of n. Nodes carry no sibling index.
func (t *Tree[V]) indexInParent(n NodeID) int {
	p := t.nodes[n].parent
	if p == None {
		return -1
	}
	for i, c := range t.nodes[p].children {
		if c == n {
			return i
		}
	}
	assert(false, "flattree: node not found among the children of its parent")
	return -1
}

// Root returns the top-most ancestor of n (n itself if detached).
func (t *Tree[V]) Root(n NodeID) NodeID {
	for t.at(n).parent != None {
		n = t.nodes[n].parent
	}
	return n
}

// Depth returns the number of ancestors of n.
func (t *Tree[V]) Depth(n NodeID) int {
	d := 0
	for t.at(n).parent != None {
		n = t.nodes[n].parent
		d++
	}
	return d
}

// isAncestorOrSelf reports whether a is n or one of its ancestors.
func (t *Tree[V]) isAncestorOrSelf(a, n NodeID) bool {
	for n != None {
		if n == a {
			return true
		}
		n = t.nodes[n].parent
	}
	return false
}
