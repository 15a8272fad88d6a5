package flattree

import (
	"fmt"
	"io"
	"strings"
)

// ToDot outputs the structure of the subtree at root in Graphviz DOT format
// (for debugging purposes). Every node is labelled with its flat position,
// its aggregate count and its child offsets; folded nodes are greyed out and
// nodes hidden by folding are dashed. label may be nil.
func ToDot[V any](t *Tree[V], root NodeID, w io.Writer, label func(V) string) error {
	if !t.Valid(root) {
		return fmt.Errorf("%w: absent node %d", ErrInvalidArgument, root)
	}
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	t.Each(root, func(n NodeID, _ int) bool {
		nd := &t.nodes[n]
		text := fmt.Sprintf("#%d", n)
		if label != nil {
			text = strings.ReplaceAll(label(nd.value), `"`, `\"`)
		}
		pos, visible := t.PositionIn(root, n)
		where := "-"
		if visible {
			where = fmt.Sprintf("@%d", pos)
		}
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s %s\\n%d %v\" %s];\n",
			n, text, where, nd.count, nd.offsets, nodeDotStyles(nd.folded, visible))
		for _, c := range nd.children {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", n, c)
		}
		return true
	})
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	_, err := io.WriteString(w, "}\n")
	return err
}

func nodeDotStyles(folded bool, visible bool) string {
	s := ",shape=box"
	switch {
	case !visible:
		s += ",style=dashed"
	case folded:
		s += ",style=filled,fillcolor=\"#cccccc\""
	default:
		s += ",style=filled,fillcolor=\"#a3d7e4\""
	}
	return s
}
