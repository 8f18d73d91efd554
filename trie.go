// Copyright 2026 The FCF Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fcf

// nodeIndex identifies a trie node by its position in the flat node
// table. Index 0 is always the root, by construction (spec §3).
type nodeIndex uint32

const rootIndex nodeIndex = 0

// edge is the decoded form of one Edge record: a code-unit label and the
// node it leads to.
type edge struct {
	label uint16
	child nodeIndex
}

// trieStore is a read-only view over the flat node/edge tables. Like
// zoekt's indexData, it never holds pointers between nodes: every
// reference is an index into a table, which is what lets the whole
// structure be a zero-copy projection over an mmap'd blob (spec §9,
// "struct-of-arrays over disk layout").
type trieStore struct {
	c *container
}

func (t *trieStore) root() nodeIndex {
	return rootIndex
}

// isTerminal reports whether node i marks the end of a dictionary word.
func (t *trieStore) isTerminal(i nodeIndex) bool {
	_, _, flags := t.c.nodeAt(uint32(i))
	return flags&terminalFlag != 0
}

// edgeRange returns the [first, first+count) half-open range of edge
// indices belonging to node i. Edges of one node are contiguous and
// sorted ascending by label (spec §3), which is what makes both linear
// scan and binary search correct.
func (t *trieStore) edgeRange(i nodeIndex) (first uint32, count uint16) {
	first, count, _ = t.c.nodeAt(uint32(i))
	return
}

// childFor returns the child of node i reached by label, if any. Nodes
// with a small fan-out (the common case for sparse alphabets) are
// scanned linearly per spec §4.3 ("For alphabets where most nodes have
// <=4 children, a linear scan is permitted and may be faster"); larger
// fan-outs fall back to binary search. Both return the identical result,
// just at different cost.
func (t *trieStore) childFor(i nodeIndex, label uint16) (nodeIndex, bool) {
	first, count := t.edgeRange(i)
	if count == 0 {
		return 0, false
	}

	if count <= 4 {
		for e := uint32(0); e < uint32(count); e++ {
			l, child := t.c.edgeAt(first + e)
			if l == label {
				return nodeIndex(child), true
			}
			if l > label {
				// edges are ascending; no later edge can match.
				break
			}
		}
		return 0, false
	}

	lo, hi := uint32(0), uint32(count)
	for lo < hi {
		mid := lo + (hi-lo)/2
		l, _ := t.c.edgeAt(first + mid)
		switch {
		case l == label:
			_, child := t.c.edgeAt(first + mid)
			return nodeIndex(child), true
		case l < label:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}
