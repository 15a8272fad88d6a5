/*
Package outline presents a flattree as a virtual list of rows.

A View addresses the rows of a subtree by flat position, the way a list
widget would address its lines. Folding a node in the tree hides its
descendants from the view, unfolding reveals them again. A View is a
flattree.ChangeSink: when hooked up to a tree, it keeps a selected row
pinned to the same node while the tree is mutated, adjusting the selection
from the positions carried by each change.

Printer outputs rows of a view to a console with a fixed-width font. It
marks foldable rows, indents rows by depth and fits labels into the
available line width, measuring text by UAX#11 character widths.

Collated returns a comparator for ordering children by locale-aware
comparison of their labels, for use with (*flattree.Tree).Sort.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package outline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'flattree'
func tracer() tracing.Trace {
	return tracing.Select("flattree")
}
