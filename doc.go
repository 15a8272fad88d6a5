/*
Package flattree implements an ordered, mutable tree whose nodes may be
addressed structurally (parent/child) as well as by a live flattened index.

Flattened Positions

Virtualized list views (outlines, file browsers, folding code editors) have to
translate "row N" to a tree node and back, for trees which change all the time.
Re-flattening the tree after every edit is linear in the size of the tree.
flattree instead keeps a small position index at every node:

  - the node's aggregate count, i.e. the size of its subtree including itself,
  - a fold flag; a folded node presents itself upwards with a size of 1,
  - one flat offset per child, telling where the child's subtree starts
    within the node's own flattening.

Every structural edit (insert, remove, replace, clear, sort, move, fold)
updates the index incrementally, walking up the ancestor chain at most once.
Lookup by position is a binary search per tree level.

	           R            flat:  0  1  2  3  4  5
	        /  |  \                R  A  B  B1 B2 C
	       A   B   C
	          / \          offsets(R) = [1 2 5]
	         B1  B2        offsets(B) = [1 2]

Nodes live in an arena (type Tree) and are addressed by NodeID handles. A
tree arena may hold any number of disjoint trees.

Change Notification

Every effective mutating call emits exactly one Change to the tree's
ChangeSink, describing the flat-range effect in the local coordinates of the
node the change happened at.

Concurrency

A Tree provides no internal synchronization. Clients have to serialize all
access to a tree.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package flattree

import "github.com/npillmayer/schuko/tracing"

// T traces with key 'flattree'.
func T() tracing.Trace {
	return tracing.Select("flattree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
