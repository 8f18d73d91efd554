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
)

func buildTestTrie(t *testing.T, words ...string) *trieStore {
	t.Helper()
	blob := buildTestBlob(t, words...)
	c, err := parseContainer(blob)
	if err != nil {
		t.Fatalf("parseContainer: %v", err)
	}
	return &trieStore{c: c}
}

func TestTrieWalk(t *testing.T) {
	trie := buildTestTrie(t, "cat", "car", "cart")

	walk := func(word string) (nodeIndex, bool) {
		n := trie.root()
		for _, r := range word {
			child, ok := trie.childFor(n, uint16(r))
			if !ok {
				return 0, false
			}
			n = child
		}
		return n, true
	}

	for _, word := range []string{"cat", "car", "cart"} {
		n, ok := walk(word)
		if !ok {
			t.Fatalf("expected a path for %q", word)
		}
		if !trie.isTerminal(n) {
			t.Errorf("expected %q to end at a terminal node", word)
		}
	}

	if n, ok := walk("ca"); ok && trie.isTerminal(n) {
		t.Error("\"ca\" is not itself a dictionary word, should not be terminal")
	}
	if _, ok := walk("dog"); ok {
		t.Error("did not expect a path for \"dog\"")
	}
}

func TestTrieEdgesAscending(t *testing.T) {
	trie := buildTestTrie(t, "ant", "bee", "cat", "dog")
	root := trie.root()
	first, count := trie.edgeRange(root)
	if count != 4 {
		t.Fatalf("edgeCount at root = %d, want 4", count)
	}
	var labels []uint16
	for i := uint32(0); i < uint32(count); i++ {
		l, _ := trie.c.edgeAt(first + i)
		labels = append(labels, l)
	}
	for i := 1; i < len(labels); i++ {
		if labels[i-1] >= labels[i] {
			t.Fatalf("edges not strictly ascending at %d: %d >= %d", i, labels[i-1], labels[i])
		}
	}
}

func TestBuilderDedup(t *testing.T) {
	b := NewBuilder(true)
	b.AddWord("Cat")
	b.AddWord("cat")
	b.AddWord("CAT")
	if b.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after normalized dedup", b.Len())
	}
}

func TestBuilderWriteToDeterministicHeader(t *testing.T) {
	b := NewBuilder(true)
	for _, w := range []string{"one", "two", "three"} {
		b.AddWord(w)
	}
	var buf1, buf2 bytes.Buffer
	if _, err := b.WriteTo(&buf1); err != nil {
		t.Fatal(err)
	}
	if _, err := b.WriteTo(&buf2); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf1.Bytes(), buf2.Bytes()) {
		t.Error("two WriteTo calls on the same Builder produced different blobs")
	}
}
