package flattree

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// exampleTree builds
//
//	R
//	├── A
//	├── B
//	│   ├── B1
//	│   └── B2
//	└── C
func exampleTree(t *testing.T) (*Tree[string], map[string]NodeID, *ChangeLog) {
	t.Helper()
	log := &ChangeLog{}
	tree, err := New[string](Config{Sink: log})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ids := make(map[string]NodeID)
	for _, name := range []string{"R", "A", "B", "B1", "B2", "C"} {
		ids[name] = tree.NewNode(name)
	}
	if err := tree.Append(ids["B"], ids["B1"], ids["B2"]); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := tree.Append(ids["R"], ids["A"], ids["B"], ids["C"]); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	log.Reset()
	return tree, ids, log
}

// flat returns the names of the nodes of root's flattening, as resolved by Get.
func flat(t *testing.T, tree *Tree[string], root NodeID) string {
	t.Helper()
	var names []string
	for i := 0; i <= tree.Size(root); i++ {
		n, err := tree.Get(root, i)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
		names = append(names, tree.Value(n))
	}
	return strings.Join(names, " ")
}

func mustCheck(t *testing.T, tree *Tree[string]) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatalf("tree invariants broken: %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	_, err := New[string](Config{Capacity: -1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestNewStoresConfig(t *testing.T) {
	log := &ChangeLog{}
	tree, err := New[int](Config{Sink: log})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := tree.Config()
	if cfg.Capacity != DefaultCapacity {
		t.Fatalf("expected default capacity, got %d", cfg.Capacity)
	}
	if cfg.Sink != log {
		t.Fatalf("expected sink to be stored in config")
	}
}

func TestNewNodeIsDetached(t *testing.T) {
	tree, err := New[string](Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := tree.NewNode("x")
	if tree.Parent(n) != None || tree.ChildCount(n) != 0 {
		t.Fatalf("new node should be detached and empty")
	}
	if tree.AggregateCount(n) != 1 || tree.Size(n) != 0 || tree.IsFolded(n) {
		t.Fatalf("unexpected initial index state: count=%d size=%d folded=%v",
			tree.AggregateCount(n), tree.Size(n), tree.IsFolded(n))
	}
	if tree.Value(n) != "x" {
		t.Fatalf("unexpected payload %q", tree.Value(n))
	}
	mustCheck(t, tree)
}

func TestStructuralQueries(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flattree")
	defer teardown()
	//
	tree, ids, _ := exampleTree(t)
	if tree.Parent(ids["B1"]) != ids["B"] || tree.Parent(ids["R"]) != None {
		t.Errorf("unexpected parent links")
	}
	if tree.ChildAt(ids["R"], 1) != ids["B"] || tree.ChildAt(ids["R"], 3) != None {
		t.Errorf("unexpected ChildAt results")
	}
	if tree.IndexOf(ids["R"], ids["C"]) != 2 || tree.IndexOf(ids["B"], ids["C"]) != -1 {
		t.Errorf("unexpected IndexOf results")
	}
	if tree.Root(ids["B2"]) != ids["R"] || tree.Depth(ids["B2"]) != 2 {
		t.Errorf("unexpected root/depth for B2")
	}
	children := tree.Children(ids["R"])
	children[0] = None
	if tree.ChildAt(ids["R"], 0) != ids["A"] {
		t.Errorf("Children must return a copy")
	}
	if tree.Len() != 6 {
		t.Errorf("expected 6 live nodes, have %d", tree.Len())
	}
}

func TestReleaseRecyclesSlots(t *testing.T) {
	tree, ids, _ := exampleTree(t)
	if err := tree.Release(ids["B"]); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected attached node to be rejected, got %v", err)
	}
	tree.RemoveChild(ids["R"], ids["B"])
	if err := tree.Release(ids["B"]); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if tree.Len() != 3 {
		t.Fatalf("expected 3 live nodes after release, have %d", tree.Len())
	}
	if tree.Valid(ids["B1"]) {
		t.Fatalf("released descendant should be invalid")
	}
	mustCheck(t, tree)
	x := tree.NewNode("X")
	if x != ids["B"] && x != ids["B1"] && x != ids["B2"] {
		t.Fatalf("expected a released slot to be re-used, got %d", x)
	}
	if err := tree.Append(ids["R"], x); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	mustCheck(t, tree)
	if got := flat(t, tree, ids["R"]); got != "R A C X" {
		t.Fatalf("unexpected flattening %q", got)
	}
}

func TestEachVisitsHiddenNodes(t *testing.T) {
	tree, ids, _ := exampleTree(t)
	tree.Fold(ids["B"], true)
	var visited []string
	tree.Each(ids["R"], func(n NodeID, depth int) bool {
		visited = append(visited, tree.Value(n))
		return true
	})
	if strings.Join(visited, " ") != "R A B B1 B2 C" {
		t.Fatalf("unexpected pre-order %v", visited)
	}
	rows := Flatten(tree, ids["R"])
	if len(rows) != 4 {
		t.Fatalf("expected 4 visible rows, have %d", len(rows))
	}
}

func TestWalkReportsPositionsAndDepth(t *testing.T) {
	tree, ids, _ := exampleTree(t)
	Walk(tree, ids["R"], func(n NodeID, pos, depth int) bool {
		got, err := tree.Get(ids["R"], pos)
		if err != nil || got != n {
			t.Errorf("Walk position %d does not match Get: %v", pos, err)
		}
		if depth != tree.Depth(n) {
			t.Errorf("Walk depth %d for %s, expected %d", depth, tree.Value(n), tree.Depth(n))
		}
		return true
	})
}

func TestToDot(t *testing.T) {
	tree, ids, _ := exampleTree(t)
	tree.Fold(ids["B"], true)
	var b strings.Builder
	if err := ToDot(tree, ids["R"], &b, func(s string) string { return s }); err != nil {
		t.Fatalf("ToDot failed: %v", err)
	}
	out := b.String()
	if !strings.HasPrefix(out, "strict digraph {") {
		t.Errorf("unexpected DOT preamble")
	}
	if !strings.Contains(out, "B1 -") {
		t.Errorf("expected hidden node B1 to be marked as hidden:\n%s", out)
	}
	if !strings.Contains(out, "C @3") {
		t.Errorf("expected C at position 3:\n%s", out)
	}
}
