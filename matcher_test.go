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
	"bytes"
	"testing"
	"unicode/utf16"
)

func buildTestMatcher(t *testing.T, words ...string) *matcher {
	t.Helper()
	blob := buildTestBlob(t, words...)
	c, err := parseContainer(blob)
	if err != nil {
		t.Fatalf("parseContainer: %v", err)
	}
	trie := &trieStore{c: c}
	hash := newHashSet(c.hash, int(c.hdr.minLen), int(c.hdr.maxLen))
	return &matcher{trie: trie, hash: hash}
}

func newTestScratch() *scratch {
	return &scratch{crcBuf: make([]byte, 256)}
}

func units(s string) []uint16 { return utf16.Encode([]rune(s)) }

// TestContainmentLaw: contains(text) is true iff text has a substring
// whose normalized form is a dictionary word.
func TestContainmentLaw(t *testing.T) {
	m := buildTestMatcher(t, "ass", "cat")
	sc := newTestScratch()

	cases := []struct {
		text string
		want bool
	}{
		{"a class about cats", true}, // "ass" inside "class"
		{"grass", true},
		{"dog", false},
		{"", false},
		{"ca", false},
	}
	for _, c := range cases {
		if got := m.contains(units(c.text), sc); got != c.want {
			t.Errorf("contains(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

// TestLongestMatchAtPosition: when multiple dictionary words share a
// prefix, matchFromPosition returns the longest one that verifies.
func TestLongestMatchAtPosition(t *testing.T) {
	m := buildTestMatcher(t, "cat", "catalog")
	sc := newTestScratch()

	text := units("catalog")
	length := m.matchFromPosition(text, 0, sc)
	if length != len("catalog") {
		t.Fatalf("matchFromPosition = %d, want %d (longest match)", length, len("catalog"))
	}
}

// TestFindAllNonOverlapping verifies find_all reports non-overlapping,
// ascending-order matches, advancing past each match's full span.
func TestFindAllNonOverlapping(t *testing.T) {
	m := buildTestMatcher(t, "cat", "dog")
	sc := newTestScratch()

	text := units("the cat and the dog ran")
	out := make([]MatchResult, 4)
	n := m.findAll(text, out, sc)
	if n != 2 {
		t.Fatalf("findAll found %d matches, want 2", n)
	}
	if out[0].Start != 4 || out[0].Length != 3 {
		t.Errorf("first match = %+v, want Start=4 Length=3", out[0])
	}
	if out[1].Start != 16 || out[1].Length != 3 {
		t.Errorf("second match = %+v, want Start=16 Length=3", out[1])
	}
}

// TestFindAllRespectsCapacity: find_all never writes past cap(out).
func TestFindAllRespectsCapacity(t *testing.T) {
	m := buildTestMatcher(t, "cat")
	sc := newTestScratch()

	text := units("cat cat cat cat")
	out := make([]MatchResult, 2)
	n := m.findAll(text, out, sc)
	if n != 2 {
		t.Fatalf("findAll = %d, want 2 (capped by cap(out))", n)
	}
}

// TestVerifyRejectsLengthOutOfRange: verify's O(1) length guard must
// reject candidates shorter/longer than any dictionary word without
// computing a checksum, and must agree with the full CRC32 path.
func TestVerifyRejectsLengthOutOfRange(t *testing.T) {
	m := buildTestMatcher(t, "cat", "dog")
	sc := newTestScratch()

	if m.verify(units("c"), sc) {
		t.Error("\"c\" is shorter than every dictionary word, must not verify")
	}
	if m.verify(units("caterpillar"), sc) {
		t.Error("\"caterpillar\" is longer than every dictionary word, must not verify")
	}
	if !m.verify(units("cat"), sc) {
		t.Error("\"cat\" is a dictionary word, must verify")
	}
}

// TestEmptyDictionaryMatchesNothing covers the degenerate zero-word case.
func TestEmptyDictionaryMatchesNothing(t *testing.T) {
	m := buildTestMatcher(t)
	sc := newTestScratch()
	if m.contains(units("anything at all"), sc) {
		t.Error("an empty dictionary must never match")
	}
}

// TestWordsWithSharedPrefixAndDifferentLengths: with "art" and
// "artistic" in the dictionary, "artisan" shares a longer prefix with
// "artistic" but only "art" is a verified word, so findAll reports one
// match of length 3.
func TestWordsWithSharedPrefixAndDifferentLengths(t *testing.T) {
	m := buildTestMatcher(t, "art", "artistic")
	sc := newTestScratch()

	out := make([]MatchResult, 1)
	n := m.findAll(units("artisan"), out, sc)
	if n != 1 || out[0].Length != 3 {
		t.Fatalf("expected only \"art\" (length 3) inside \"artisan\", got n=%d out=%+v", n, out[:n])
	}
}

func TestBuilderRoundTripThroughBytesBuffer(t *testing.T) {
	b := NewBuilder(true)
	b.AddWord("needle")
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	c, err := parseContainer(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	trie := &trieStore{c: c}
	hash := newHashSet(c.hash, int(c.hdr.minLen), int(c.hdr.maxLen))
	m := &matcher{trie: trie, hash: hash}
	sc := newTestScratch()
	if !m.contains(units("a needle in a haystack"), sc) {
		t.Error("expected \"needle\" to be found")
	}
}
