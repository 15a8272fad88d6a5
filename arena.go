package flattree

import (
	"fmt"

	"github.com/npillmayer/flattree/pool"
)

// NodeID is a stable handle for a node within a tree arena.
type NodeID int

// None is the absent node.
const None NodeID = -1

// slotState tags an arena slot.
type slotState uint8

const (
	slotInPool slotState = iota // slot is on the free list
	slotInUse                   // slot holds a live node
)

// node is an arena slot. Children are owned by index, the parent link is a
// plain index without ownership.
type node[V any] struct {
	state    slotState
	parent   NodeID
	children []NodeID
	// offsets[i] is the flat offset of children[i] within this node's
	// flattening, where the node itself is at offset 0.
	offsets []int
	// count is the size of the subtree including the node itself, as if
	// the subtree was not folded.
	count    int
	folded   bool
	value    V
	nextFree NodeID // valid if state == slotInPool
}

// effective is the size a node presents to its parent.
func (n *node[V]) effective() int {
	if n.folded {
		return 1
	}
	return n.count
}

// Tree is an arena of nodes with payloads of type V. It may hold any number
// of disjoint rooted trees.
//
// The zero value is not usable; create trees with New.
type Tree[V any] struct {
	cfg   Config
	nodes []node[V]
	free  NodeID // head of the free list
	live  int    // number of slots in use
	sink  ChangeSink
	// visits holds scratch sets for ancestor searches.
	visits *pool.Pool[visitSet]
}

// New creates an empty tree arena with validated configuration.
func New[V any](cfg Config) (*Tree[V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	visits, err := pool.New(pool.Config[visitSet]{
		MaxRetained: 2,
		New: func() *visitSet {
			s := make(visitSet)
			return &s
		},
		Reset: func(s *visitSet) {
			clear(*s)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Tree[V]{
		cfg:    cfg,
		nodes:  make([]node[V], 0, cfg.Capacity),
		free:   None,
		sink:   cfg.Sink,
		visits: visits,
	}, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[V]) Config() Config {
	return t.cfg
}

// SetSink replaces the change sink. sink may be nil.
func (t *Tree[V]) SetSink(sink ChangeSink) {
	t.sink = sink
	t.cfg.Sink = sink
}

// Len returns the number of live nodes in the arena.
func (t *Tree[V]) Len() int {
	return t.live
}

// NewNode creates a detached node carrying value v.
func (t *Tree[V]) NewNode(v V) NodeID {
	var id NodeID
	if t.free != None {
		id = t.free
		t.free = t.nodes[id].nextFree
	} else {
		t.nodes = append(t.nodes, node[V]{})
		id = NodeID(len(t.nodes) - 1)
	}
	n := &t.nodes[id]
	*n = node[V]{
		state:    slotInUse,
		parent:   None,
		count:    1,
		value:    v,
		nextFree: None,
	}
	t.live++
	return id
}

// Release hands the slots of a detached subtree back to the arena. The
// subtree's node handles are invalid afterwards and may be re-issued by
// NewNode.
func (t *Tree[V]) Release(root NodeID) error {
	if !t.Valid(root) {
		return fmt.Errorf("%w: cannot release absent node %d", ErrInvalidArgument, root)
	}
	if t.nodes[root].parent != None {
		return fmt.Errorf("%w: cannot release attached node %d", ErrInvalidArgument, root)
	}
	stack := []NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stack = append(stack, t.nodes[id].children...)
		t.nodes[id] = node[V]{
			state:    slotInPool,
			parent:   None,
			nextFree: t.free,
		}
		t.free = id
		t.live--
	}
	T().Debugf("flattree: released subtree at %d, %d nodes live", root, t.live)
	return nil
}

// Valid reports whether n is a live node of this arena.
func (t *Tree[V]) Valid(n NodeID) bool {
	return n >= 0 && int(n) < len(t.nodes) && t.nodes[n].state == slotInUse
}

// at returns the slot of a live node, panicking for stale handles.
func (t *Tree[V]) at(n NodeID) *node[V] {
	if !t.Valid(n) {
		panic(fmt.Sprintf("flattree: access to invalid node %d", n))
	}
	return &t.nodes[n]
}
