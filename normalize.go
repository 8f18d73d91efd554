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

// normalizeMode selects one of the two normalizer variants spec §4.5/§9
// calls for: a case over {none, lowercase}, not a type hierarchy ("avoid
// deep type hierarchies").
type normalizeMode int

const (
	modeNone normalizeMode = iota
	modeLower
)

// normalize writes the normalized form of src into dst (which must be at
// least len(src) long) and returns the count written. Every normalizer
// this package supports is length-preserving: it always returns
// len(src). It never allocates.
func normalize(mode normalizeMode, src, dst []uint16) int {
	if mode == modeNone {
		copy(dst, src)
		return len(src)
	}
	for i, u := range src {
		dst[i] = lowerCodeUnit(u)
	}
	return len(src)
}

// lowerCodeUnit lowercases a single UTF-16 code unit within the Basic
// Multilingual Plane. Per spec §9 O3/Non-goals this is deliberately not
// full Unicode case-folding: surrogate pairs (code units >= 0xD800) are
// passed through unchanged, matching "a simple per-code-unit lowercase of
// the BMP" rather than attempting to decode astral characters.
func lowerCodeUnit(u uint16) uint16 {
	switch {
	case u >= 'A' && u <= 'Z':
		return u + ('a' - 'A')
	case u >= 0x00C0 && u <= 0x00DE && u != 0x00D7:
		// Latin-1 Supplement uppercase block (À-Þ, excluding the
		// multiplication sign at 0x00D7) maps to lowercase +0x20,
		// same offset as ASCII.
		return u + 0x20
	case u >= 0x0391 && u <= 0x03A9 && u != 0x03A2:
		// Greek uppercase alphabet.
		return u + 0x20
	case u >= 0x0410 && u <= 0x042F:
		// Cyrillic uppercase alphabet.
		return u + 0x20
	default:
		return u
	}
}
