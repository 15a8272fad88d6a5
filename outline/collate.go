package outline

import (
	"github.com/npillmayer/flattree"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collated returns a comparator ordering nodes of tree by the labels of their
// payloads, following the collation rules for lang. Case is ignored. The
// comparator is meant to be used with (*flattree.Tree).Sort.
//
// A collator is not safe for concurrent use; neither is the comparator.
func Collated[V any](tree *flattree.Tree[V], lang language.Tag, label func(V) string) func(a, b flattree.NodeID) int {
	c := collate.New(lang, collate.IgnoreCase)
	return func(a, b flattree.NodeID) int {
		return c.CompareString(label(tree.Value(a)), label(tree.Value(b)))
	}
}

// SortAll sorts the children of every node in the subtree at root, including
// nodes hidden by folding. Every node with children emits a change of kind
// ChangeInvalidate.
func SortAll[V any](tree *flattree.Tree[V], root flattree.NodeID, cmp func(a, b flattree.NodeID) int) {
	var parents []flattree.NodeID
	tree.Each(root, func(n flattree.NodeID, _ int) bool {
		if tree.ChildCount(n) > 1 {
			parents = append(parents, n)
		}
		return true
	})
	for _, p := range parents {
		tree.Sort(p, cmp)
	}
	tracer().Debugf("outline: sorted children of %d nodes", len(parents))
}
