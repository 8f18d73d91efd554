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

import (
	"io"
	"sort"
	"unicode/utf16"

	"github.com/pkg/errors"
)

// buildNode is the builder's mutable trie node, used only while
// assembling a dictionary. It is converted to the flat, read-only
// node/edge tables (spec §3) by Build.
type buildNode struct {
	terminal bool
	children map[uint16]*buildNode
}

// Builder assembles an FCF3 dictionary from a set of words: it builds
// the trie, computes each word's CRC32 fingerprint, and serializes the
// result to the binary container format (spec §4.4 write path). It
// mirrors the teacher's own index-builder split (an in-memory mutable
// structure distinct from the frozen, read-only indexData it produces)
// without adopting any of the teacher's source/repo/shard concepts,
// which have no equivalent in a single flat dictionary.
type Builder struct {
	normalize bool
	root      *buildNode
	words     map[string]struct{} // dedup set, keyed by (normalized) word
}

// NewBuilder creates an empty Builder. normalizeWords controls whether
// each added word is lowercased before being inserted — this MUST match
// the EnableNormalization a Filter will later be loaded with (spec
// §4.5's equivalence requirement).
func NewBuilder(normalizeWords bool) *Builder {
	return &Builder{
		normalize: normalizeWords,
		root:      &buildNode{},
		words:     map[string]struct{}{},
	}
}

// AddWord inserts word into the dictionary. Empty words are ignored.
// Duplicates (after normalization) are deduplicated, per spec §6.
func (b *Builder) AddWord(word string) {
	if word == "" {
		return
	}
	units := make([]uint16, 0, len(word))
	for _, r := range word {
		r1, r2 := utf16.EncodeRune(r)
		if r1 == 0xFFFD && r2 == 0xFFFD {
			units = append(units, uint16(r))
			continue
		}
		units = append(units, uint16(r1), uint16(r2))
	}
	if b.normalize {
		normalize(modeLower, units, units)
	}
	if len(units) == 0 {
		return
	}

	key := string(utf16.Decode(units))
	if _, dup := b.words[key]; dup {
		return
	}
	b.words[key] = struct{}{}

	n := b.root
	for _, u := range units {
		if n.children == nil {
			n.children = map[uint16]*buildNode{}
		}
		child, ok := n.children[u]
		if !ok {
			child = &buildNode{}
			n.children[u] = child
		}
		n = child
	}
	n.terminal = true
}

// Len reports the number of distinct words added so far.
func (b *Builder) Len() int {
	return len(b.words)
}

// flatNode/flatEdge mirror the on-disk record layout exactly, as a
// convenience for Build before serialization.
type flatNode struct {
	firstEdge uint32
	edgeCount uint16
	flags     uint16
}

type flatEdge struct {
	label uint16
	child uint32
}

// Build flattens the trie into the struct-of-arrays form spec §3
// describes and computes the sorted CRC32 fingerprint table. It performs
// a breadth-first layout so sibling edges are contiguous, matching the
// access pattern trieStore.edgeRange relies on.
func (b *Builder) Build() (nodes []flatNode, edges []flatEdge, hashes []uint32, minLen, maxLen int) {
	type queued struct {
		n   *buildNode
		idx uint32
	}

	nodes = append(nodes, flatNode{})
	order := []queued{{b.root, 0}}

	for i := 0; i < len(order); i++ {
		cur := order[i]

		labels := make([]uint16, 0, len(cur.n.children))
		for l := range cur.n.children {
			labels = append(labels, l)
		}
		sort.Slice(labels, func(a, c int) bool { return labels[a] < labels[c] })

		first := uint32(len(edges))
		for _, l := range labels {
			child := cur.n.children[l]
			childIdx := uint32(len(nodes))
			nodes = append(nodes, flatNode{})
			edges = append(edges, flatEdge{label: l, child: childIdx})
			order = append(order, queued{child, childIdx})
		}

		flags := uint16(0)
		if cur.n.terminal {
			flags |= terminalFlag
		}
		nodes[cur.idx] = flatNode{firstEdge: first, edgeCount: uint16(len(labels)), flags: flags}
	}

	minLen, maxLen = 0, 0
	hashSetTmp := make(map[uint32]struct{}, len(b.words))
	for w := range b.words {
		units := utf16.Encode([]rune(w))
		n := len(units)
		if minLen == 0 || n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
		buf := make([]byte, n*2)
		h := crcChecksum(codeUnitBytes(units, buf))
		hashSetTmp[h] = struct{}{}
	}

	hashes = make([]uint32, 0, len(hashSetTmp))
	for h := range hashSetTmp {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })

	return nodes, edges, hashes, minLen, maxLen
}

// WriteTo serializes the built dictionary as an FCF3 blob to w, per spec
// §4.4's write path: a 32-byte header followed by the node, edge, and
// hash tables, all little-endian.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	nodes, edges, hashes, minLen, maxLen := b.Build()

	hdr := make([]byte, headerSize)
	putU32LE(hdr[0:4], magic)
	leU16(hdr[4:6], formatVersion)
	leU16(hdr[6:8], 0)
	putU32LE(hdr[8:12], uint32(len(nodes)))
	putU32LE(hdr[12:16], uint32(len(edges)))
	putU32LE(hdr[16:20], uint32(len(hashes)))
	putU32LE(hdr[20:24], uint32(minLen))
	putU32LE(hdr[24:28], uint32(maxLen))
	putU32LE(hdr[28:32], 0)

	var written int64
	n, err := w.Write(hdr)
	written += int64(n)
	if err != nil {
		return written, errors.Wrap(err, "fcf: write header")
	}

	nodeBuf := make([]byte, nodeRecordSize)
	for _, nd := range nodes {
		putU32LE(nodeBuf[0:4], nd.firstEdge)
		leU16(nodeBuf[4:6], nd.edgeCount)
		leU16(nodeBuf[6:8], nd.flags)
		n, err := w.Write(nodeBuf)
		written += int64(n)
		if err != nil {
			return written, errors.Wrap(err, "fcf: write node table")
		}
	}

	edgeBuf := make([]byte, edgeRecordSize)
	for _, ed := range edges {
		leU16(edgeBuf[0:2], ed.label)
		leU16(edgeBuf[2:4], 0)
		putU32LE(edgeBuf[4:8], ed.child)
		n, err := w.Write(edgeBuf)
		written += int64(n)
		if err != nil {
			return written, errors.Wrap(err, "fcf: write edge table")
		}
	}

	hashBuf := make([]byte, hashRecordSize)
	for _, h := range hashes {
		putU32LE(hashBuf, h)
		n, err := w.Write(hashBuf)
		written += int64(n)
		if err != nil {
			return written, errors.Wrap(err, "fcf: write hash table")
		}
	}

	return written, nil
}

func leU16(dst []byte, v uint16) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
}
