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

// Package fcf's CRC32 primitive. The teacher's own bloom filter
// (bloom.go in the source this was adapted from) hashes word fragments
// with exactly stdlib hash/crc32, and this package keeps that choice:
// crc32.IEEE is hardware-accelerated transparently by the Go runtime
// (CLMUL-based slicing on amd64/arm64) without us having to hand-roll an
// intrinsics path, and it sidesteps the Castagnoli-only SSE4.2 CRC32
// instruction family entirely — see DESIGN.md for why that family is
// rejected (spec open question O1).
package fcf

import (
	"encoding/binary"
	"hash/crc32"

	"golang.org/x/sys/cpu"
)

var ieeeTable = crc32.MakeTable(crc32.IEEE)

// crcBackend names which path computed a checksum, for diagnostics only
// (it never affects the result — both paths implement the same
// polynomial and must agree bit for bit).
type crcBackend string

const (
	backendHardware crcBackend = "hardware-accelerated-ieee"
	backendSoftware crcBackend = "software-ieee"
)

// activeCRCBackend reports which implementation crcChecksum dispatches
// to on this CPU, purely as a diagnostic label. Only tests call it; the
// builder CLI does not report it.
func activeCRCBackend() crcBackend {
	if cpu.X86.HasSSE42 || cpu.ARM64.HasCRC32 {
		return backendHardware
	}
	return backendSoftware
}

// crcChecksum computes the CRC32 (IEEE 802.3 polynomial, reflected
// 0xEDB88320, init 0xFFFFFFFF, final XOR 0xFFFFFFFF) of data. This is the
// single checksum function used by both the builder (to populate the
// hash table) and the matcher (to verify a trie-proposed candidate); spec
// §4.1 requires they agree bit-for-bit; using one shared function is how
// that's guaranteed rather than merely tested.
func crcChecksum(data []byte) uint32 {
	return crc32.Checksum(data, ieeeTable)
}

// crcChecksumSoftware is a from-scratch, table-free reference
// implementation of the same polynomial. It exists only so tests can
// assert that the accelerated path (crcChecksum, which Go's runtime may
// serve via hardware CLMUL instructions) and a naive bit-at-a-time
// implementation agree on every input — the bit-for-bit equivalence
// spec §4.1 demands between a hardware and software path.
func crcChecksumSoftware(data []byte) uint32 {
	crc := uint32(0xFFFFFFFF)
	for _, b := range data {
		crc ^= uint32(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ 0xEDB88320
			} else {
				crc >>= 1
			}
		}
	}
	return ^crc
}

// codeUnitBytes reinterprets a slice of UTF-16 code units as its raw
// little-endian byte representation, per spec §4.1 / O2: "Input is
// treated as raw bytes... reinterpreted as their underlying code-unit
// memory (little-endian 16-bit code units)." buf must have capacity for
// 2*len(units) bytes; it is returned resliced to that length.
func codeUnitBytes(units []uint16, buf []byte) []byte {
	buf = buf[:0]
	for _, u := range units {
		buf = append(buf, byte(u), byte(u>>8))
	}
	return buf
}

// codeUnitChecksum computes the CRC32 fingerprint of a code-unit
// sequence using its little-endian byte reinterpretation. scratch must
// already have capacity for 2*len(units) bytes; the matcher sizes its
// scratch buffer once, from the dictionary's max word length, so this
// never has to grow mid-match.
func codeUnitChecksum(units []uint16, scratch []byte) uint32 {
	return crcChecksum(codeUnitBytes(units, scratch))
}

// putU32LE is a tiny helper kept next to the checksum code since both the
// writer and the in-memory hash table need little-endian u32 encoding of
// fingerprints and header fields.
func putU32LE(dst []byte, v uint32) {
	binary.LittleEndian.PutUint32(dst, v)
}
