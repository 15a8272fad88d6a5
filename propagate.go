package flattree

// propagate applies a signed size delta caused by a change at the child with
// index childIndex of parent, and walks it up the ancestor chain:
//
//  1. the flat offsets of all later siblings are shifted by delta,
//  2. the parent's aggregate count is adjusted by delta,
//  3. if the parent is folded, its size towards its own parent did not
//     change and the walk stops,
//  4. otherwise the walk continues at the grandparent.
//
// If bound is not None, the walk stops after bound has been updated.
// childIndex may be -1, shifting all of the parent's offsets.
func (t *Tree[V]) propagate(parent NodeID, bound NodeID, childIndex int, delta int) {
	if delta == 0 {
		return
	}
	for parent != None {
		p := &t.nodes[parent]
		for i := len(p.offsets) - 1; i > childIndex; i-- {
			p.offsets[i] += delta
		}
		p.count += delta
		assert(p.count >= 1, "flattree: aggregate count dropped below 1")
		if p.folded || parent == bound {
			return
		}
		if p.parent != None {
			childIndex = t.indexInParent(parent)
		}
		parent = p.parent
	}
}

// localStart returns the flat offset a child inserted at index would start at
// within parent's flattening.
func (t *Tree[V]) localStart(parent NodeID, index int) int {
	if index == 0 {
		return 1
	}
	p := &t.nodes[parent]
	return p.offsets[index-1] + t.nodes[p.children[index-1]].effective()
}
