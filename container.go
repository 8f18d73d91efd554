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
	"encoding/binary"
)

// container is the parsed, validated view over an FCF3 blob: the header,
// zero-copy projections of the node and edge tables, and a decoded copy
// of the hash table. The node and edge views are bound to the lifetime of
// the blobSource they were built from, as zoekt's indexData is a set of
// slices over a single mmap'd region; the hash slice is owned by the
// container and does not alias the blob.
type container struct {
	hdr header

	nodes []byte // raw node table, nodeRecordSize bytes per entry
	edges []byte // raw edge table, edgeRecordSize bytes per entry
	hash  []uint32
}

// parseContainer validates blob against the FCF3 header contract (spec
// §4.4 read path) and projects its three tables. It never copies the
// node/edge tables; the hash table is materialized into a []uint32 once
// since every lookup needs it in that shape and it's tiny relative to the
// trie (one u32 per distinct dictionary word).
func parseContainer(blob []byte) (*container, error) {
	if len(blob) < headerSize {
		return nil, newFormatError("header", int64(len(blob)), "blob shorter than %d-byte header", headerSize)
	}

	var h header
	h.magic = binary.LittleEndian.Uint32(blob[0:4])
	h.version = binary.LittleEndian.Uint16(blob[4:6])
	h.flags = binary.LittleEndian.Uint16(blob[6:8])
	h.nodeCount = binary.LittleEndian.Uint32(blob[8:12])
	h.edgeCount = binary.LittleEndian.Uint32(blob[12:16])
	h.hashCount = binary.LittleEndian.Uint32(blob[16:20])
	h.minLen = binary.LittleEndian.Uint32(blob[20:24])
	h.maxLen = binary.LittleEndian.Uint32(blob[24:28])
	h.reserved = binary.LittleEndian.Uint32(blob[28:32])

	if h.magic != magic {
		return nil, newFormatError("magic", 0, "bad magic 0x%08x, want 0x%08x", h.magic, magic)
	}
	if h.version > formatVersion {
		return nil, newFormatError("version", 4, "unsupported version %d (max %d)", h.version, formatVersion)
	}
	if h.nodeCount < 1 {
		return nil, newFormatError("node_count", 8, "node table empty: root node is mandatory")
	}
	if h.hashCount > 0 && h.minLen < 1 {
		return nil, newFormatError("min_len", 20, "min_len must be >= 1")
	}
	if h.hashCount > 0 && h.minLen > h.maxLen {
		return nil, newFormatError("min_len", 20, "min_len %d > max_len %d", h.minLen, h.maxLen)
	}

	want := h.totalSize()
	if uint64(len(blob)) < want {
		return nil, newFormatError("length", int64(len(blob)), "blob length %d shorter than declared tables require (%d)", len(blob), want)
	}

	nodesSec, edgesSec, hashSec := h.sections()

	hash := make([]uint32, h.hashCount)
	hashBytes := blob[hashSec.off : hashSec.off+hashSec.sz]
	for i := range hash {
		hash[i] = binary.LittleEndian.Uint32(hashBytes[i*hashRecordSize:])
	}

	return &container{
		hdr:   h,
		nodes: blob[nodesSec.off : nodesSec.off+nodesSec.sz],
		edges: blob[edgesSec.off : edgesSec.off+edgesSec.sz],
		hash:  hash,
	}, nil
}

// nodeAt decodes the Node record at index i. Out-of-bounds access is a
// programming error per spec §4.3 and panics rather than returning an
// error, matching the teacher's own struct-of-arrays contract ("Access
// out of bounds is a programming error, not a user-visible failure").
func (c *container) nodeAt(i uint32) (firstEdge uint32, edgeCount uint16, flags uint16) {
	off := i * nodeRecordSize
	b := c.nodes[off : off+nodeRecordSize]
	firstEdge = binary.LittleEndian.Uint32(b[0:4])
	edgeCount = binary.LittleEndian.Uint16(b[4:6])
	flags = binary.LittleEndian.Uint16(b[6:8])
	return
}

// edgeAt decodes the Edge record at index i: (label, child index).
func (c *container) edgeAt(i uint32) (label uint16, child uint32) {
	off := i * edgeRecordSize
	b := c.edges[off : off+edgeRecordSize]
	label = binary.LittleEndian.Uint16(b[0:2])
	child = binary.LittleEndian.Uint32(b[4:8])
	return
}
