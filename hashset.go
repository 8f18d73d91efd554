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

import "golang.org/x/exp/slices"

// hashSet is a read-only, sorted array of CRC32 fingerprints plus the
// dictionary's word-length bounds. It is the verification half of the
// hybrid matcher: the trie proposes a candidate span, the hash set
// confirms the candidate's fingerprint is actually in the dictionary.
//
// Binary search goes through golang.org/x/exp/slices.BinarySearch, the
// same package the teacher reaches for elsewhere in this codebase
// (contentprovider.go imports golang.org/x/exp/slices) to search sorted
// slices rather than hand-rolling sort.Search.
type hashSet struct {
	fingerprints []uint32
	minLen       int
	maxLen       int
}

func newHashSet(fingerprints []uint32, minLen, maxLen int) *hashSet {
	return &hashSet{fingerprints: fingerprints, minLen: minLen, maxLen: maxLen}
}

// contains reports whether h is present in the set.
func (s *hashSet) contains(h uint32) bool {
	_, ok := slices.BinarySearch(s.fingerprints, h)
	return ok
}

// validLength reports whether n could possibly be the length of a
// dictionary word: an O(1) guard callers use to skip CRC32 computation
// for candidates that are provably too short or too long.
func (s *hashSet) validLength(n int) bool {
	if len(s.fingerprints) == 0 {
		return false
	}
	return n >= s.minLen && n <= s.maxLen
}

// len returns the number of distinct fingerprints in the set.
func (s *hashSet) len() int {
	return len(s.fingerprints)
}
