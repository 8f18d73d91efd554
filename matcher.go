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

// MatchResult is one verified match: text[Start : Start+Length] equals
// some dictionary word (after normalization on both sides, when
// enabled). Mirrors the teacher's candidateMatch{byteOffset, byteMatchSz}
// shape (matchtree.go), narrowed to exactly what spec §3 names.
type MatchResult struct {
	Start  uint32
	Length uint32
}

// matcher is the hybrid trie+hash engine: a trie walk proposes candidate
// spans, a CRC32 lookup against the hash set confirms or rejects them.
// Neither half trusts the other — a trie path ending at a terminal node
// is only a candidate until its checksum is found in the hash set (spec
// §4.6).
type matcher struct {
	trie *trieStore
	hash *hashSet
}

// scratch bundles the per-call working buffers the matcher needs so that
// contains/findAll never allocate on the hot path (spec §5 allocation
// discipline). The facade rents one from the Filter's scratchPool for
// every call, whatever the input size (see pool.go), and passes it down.
type scratch struct {
	// crcBuf holds the little-endian byte reinterpretation of the code
	// units currently under the trie walk; sized for the longest
	// candidate seen so far, regrown (not reallocated per-candidate) if
	// a longer one appears.
	crcBuf []byte
}

// contains reports whether any dictionary word occurs anywhere in text.
// Implements spec §4.6 contains(text): for each start position, walk the
// trie; at every terminal node encountered, verify with CRC32 against
// the hash set; return true on the first confirmed hit.
func (m *matcher) contains(text []uint16, sc *scratch) bool {
	n := len(text)
	for start := 0; start < n; start++ {
		if m.matchFromPositionShortCircuit(text, start, sc) {
			return true
		}
	}
	return false
}

// matchFromPositionShortCircuit walks the trie from start and returns
// true as soon as any terminal node it passes through verifies. Used by
// contains, which only needs existence, not the longest match.
func (m *matcher) matchFromPositionShortCircuit(text []uint16, start int, sc *scratch) bool {
	node := m.trie.root()
	n := len(text)
	for i := start; i < n; i++ {
		child, ok := m.trie.childFor(node, text[i])
		if !ok {
			return false
		}
		node = child
		if m.trie.isTerminal(node) {
			length := i - start + 1
			if m.verify(text[start:start+length], sc) {
				return true
			}
		}
	}
	return false
}

// matchFromPosition walks the trie from start as far as it can, and
// returns the length of the *longest* verified dictionary word starting
// there, or 0 if none verifies. Spec §4.6: "it returns the longest
// verified length seen" — the walk does not stop at the first terminal
// node, only at the first point the trie itself has no further edge.
func (m *matcher) matchFromPosition(text []uint16, start int, sc *scratch) int {
	node := m.trie.root()
	n := len(text)
	longest := 0
	for i := start; i < n; i++ {
		child, ok := m.trie.childFor(node, text[i])
		if !ok {
			break
		}
		node = child
		if m.trie.isTerminal(node) {
			length := i - start + 1
			if m.verify(text[start:start+length], sc) {
				longest = length
			}
		}
	}
	return longest
}

// verify confirms a trie-proposed candidate against the hash set: first
// the O(1) length guard, then (only if the length is plausible) the
// CRC32 computation and lookup. Per spec §4.6 this skip is an
// optimization only — "the result must be identical either way."
func (m *matcher) verify(candidate []uint16, sc *scratch) bool {
	if !m.hash.validLength(len(candidate)) {
		return false
	}
	need := len(candidate) * 2
	if cap(sc.crcBuf) < need {
		// Only reachable if the caller under-sized the scratch buffer;
		// the facade always pre-sizes it from the dictionary's max word
		// length, so this is a safety net, not the common path.
		sc.crcBuf = make([]byte, need)
	}
	h := codeUnitChecksum(candidate, sc.crcBuf[:need])
	return m.hash.contains(h)
}

// findAll enumerates non-overlapping, longest-match-at-position results
// in ascending start order, appending to out (capped at cap(out)) and
// returning the count written. Implements spec §4.6 find_all.
func (m *matcher) findAll(text []uint16, out []MatchResult, sc *scratch) int {
	count := 0
	start := 0
	n := len(text)
	for start < n && count < cap(out) {
		length := m.matchFromPosition(text, start, sc)
		if length > 0 {
			out = append(out[:count], MatchResult{Start: uint32(start), Length: uint32(length)})
			count++
			start += length
		} else {
			start++
		}
	}
	return count
}
