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

// FCF3 is the on-disk container: a fixed 32-byte header followed by three
// flat tables (nodes, edges, hash fingerprints). It is modeled on the
// teacher's table-of-contents-over-a-single-blob layout (see toc.go,
// read.go in the pack this was distilled from), simplified because our
// format has a small, fixed set of regions instead of a dynamic TOC: the
// header's counts alone are enough to compute every section's offset.

// magic identifies an FCF3 blob: ASCII "FCF3" read as a little-endian u32.
const magic uint32 = 0x33464346

// formatVersion is the container version this package writes and the
// highest version it will read. Bumped whenever the on-disk layout
// changes in a way that breaks a naive reader.
const formatVersion uint16 = 3

const headerSize = 32

// nodeRecordSize is the on-disk size of one Node: u32 first_edge_index,
// u16 edge_count, u16 flags.
const nodeRecordSize = 8

// edgeRecordSize is the on-disk size of one Edge: u16 label, u16 padding,
// u32 child_index.
const edgeRecordSize = 8

// hashRecordSize is the on-disk size of one fingerprint entry.
const hashRecordSize = 4

// terminalFlag marks a Node as the end of a stored dictionary word.
const terminalFlag uint16 = 1 << 0

// header is the FCF3 fixed preamble. Field order and widths match spec
// §4.4 exactly; all multi-byte fields are little-endian on disk.
type header struct {
	magic     uint32
	version   uint16
	flags     uint16
	nodeCount uint32
	edgeCount uint32
	hashCount uint32
	minLen    uint32
	maxLen    uint32
	reserved  uint32
}

// section is a simple {offset, size} view into the blob, in the spirit of
// the teacher's simpleSection: a zero-copy projection, not a copy.
type section struct {
	off uint32
	sz  uint32
}

// sections returns the three fixed regions implied by the header, in
// on-disk order: nodes, edges, hashes.
func (h *header) sections() (nodes, edges, hashes section) {
	nodes = section{off: headerSize, sz: h.nodeCount * nodeRecordSize}
	edges = section{off: nodes.off + nodes.sz, sz: h.edgeCount * edgeRecordSize}
	hashes = section{off: edges.off + edges.sz, sz: h.hashCount * hashRecordSize}
	return
}

// totalSize is the minimum blob length a well-formed FCF3 file of this
// header must have.
func (h *header) totalSize() uint64 {
	return uint64(headerSize) +
		uint64(h.nodeCount)*nodeRecordSize +
		uint64(h.edgeCount)*edgeRecordSize +
		uint64(h.hashCount)*hashRecordSize
}
