package flattree

// Shape is the read-only structure the flattening algorithms work on. Tree
// implements Shape.
type Shape interface {
	ChildCount(n NodeID) int
	ChildAt(n NodeID, i int) NodeID
	EffectiveCount(n NodeID) int
}

// Walk visits the nodes of the flattening of root in pre-order, i.e. root
// and its descendants which are not hidden by a folded node. fn receives the
// node, its flat position relative to root and its depth below root.
//
// Iteration stops early if fn returns false.
func Walk(s Shape, root NodeID, fn func(n NodeID, pos, depth int) bool) {
	if fn == nil {
		return
	}
	walkNode(s, root, 0, 0, fn)
}

func walkNode(s Shape, n NodeID, pos, depth int, fn func(NodeID, int, int) bool) bool {
	if !fn(n, pos, depth) {
		return false
	}
	if s.EffectiveCount(n) == 1 {
		return true // leaf or folded
	}
	pos++
	for i := 0; i < s.ChildCount(n); i++ {
		c := s.ChildAt(n, i)
		if !walkNode(s, c, pos, depth+1, fn) {
			return false
		}
		pos += s.EffectiveCount(c)
	}
	return true
}

// Flatten returns the flattening of root as a slice, where index i holds the
// node at flat position i. It takes time linear in the size of the
// flattening and is meant for tests and debugging.
func Flatten(s Shape, root NodeID) []NodeID {
	var rows []NodeID
	Walk(s, root, func(n NodeID, _, _ int) bool {
		rows = append(rows, n)
		return true
	})
	return rows
}

// Each visits the complete subtree of root in pre-order, including nodes
// hidden by folding.
//
// Iteration stops early if fn returns false.
func (t *Tree[V]) Each(root NodeID, fn func(n NodeID, depth int) bool) {
	if fn == nil {
		return
	}
	t.at(root)
	t.eachNode(root, 0, fn)
}

func (t *Tree[V]) eachNode(n NodeID, depth int, fn func(NodeID, int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	for _, c := range t.nodes[n].children {
		if !t.eachNode(c, depth+1, fn) {
			return false
		}
	}
	return true
}
