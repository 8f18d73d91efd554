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

// Package fcf implements a high-throughput, allocation-light
// substring-matching engine for forbidden-word detection against a
// precompiled dictionary of up to ~10^5 words.
//
// Matching is substring-based, not word-boundary-aware: a dictionary
// entry "ass" will match inside "class" and "grass". This is a
// deliberate scope decision (see spec O3), not a bug — callers who need
// token-aware filtering must add their own boundary check on top of
// MatchResult spans.
package fcf

import (
	"io"
	"os"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Options configure how a loaded Filter matches and masks text.
type Options struct {
	// EnableNormalization must match the mode the dictionary was built
	// with for case-insensitive matching to work (spec §4.5). Default:
	// true. Mismatched builder/matcher configurations are not rejected
	// — they silently yield case-sensitive behavior, which is the
	// caller's responsibility per spec §4.5.
	EnableNormalization bool
	// MaskChar replaces each code unit of a match in preserve-length
	// mask mode. Default '*'.
	MaskChar rune
	// FixedMask, if non-empty, replaces each entire match span instead
	// of masking code unit by code unit.
	FixedMask string
}

// DefaultOptions returns the spec §6 runtime configuration defaults.
func DefaultOptions() Options {
	return Options{EnableNormalization: true, MaskChar: '*'}
}

// Filter composes a loaded dictionary (trie + hash set), a normalizer,
// and the hybrid matcher into the containment/enumeration/masking
// surface spec §4.7 calls the "filter facade". A *Filter is read-only
// after Load returns and is safe for concurrent use by any number of
// goroutines (spec §5).
type Filter struct {
	src  blobSource
	c    *container
	trie *trieStore
	hash *hashSet
	m    *matcher

	mode normalizeMode

	units    *codeUnitPool
	scratch  *scratchPool
	maxWords int // hash.maxLen, cached for sizing buffers

	closed bool
}

// LoadFile memory-maps path and parses it as an FCF3 container. The
// returned Filter owns the mapping; Close releases it.
func LoadFile(path string, opts Options) (*Filter, error) {
	if path == "" {
		return nil, &ArgumentError{Arg: "path", Msg: "must not be empty"}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "fcf: open %s", path)
	}
	src, err := openMmapBlobSource(f)
	if err != nil {
		return nil, err
	}
	return newFilter(src, opts)
}

// LoadReader reads r to completion and parses the result as an FCF3
// container. Use this for streams that cannot be mmap'd.
func LoadReader(r io.Reader, opts Options) (*Filter, error) {
	if r == nil {
		return nil, &ArgumentError{Arg: "r", Msg: "must not be nil"}
	}
	src, err := readAllBlobSource(r)
	if err != nil {
		return nil, err
	}
	return newFilter(src, opts)
}

// LoadBytes parses an in-memory FCF3 blob. The Filter does not take
// ownership of blob's backing array in the sense of ever mutating it,
// but the caller must not mutate blob for as long as the Filter is in
// use — the container is a zero-copy projection over it.
func LoadBytes(blob []byte, opts Options) (*Filter, error) {
	if blob == nil {
		return nil, &ArgumentError{Arg: "blob", Msg: "must not be nil"}
	}
	return newFilter(&memBlobSource{data: blob}, opts)
}

func newFilter(src blobSource, opts Options) (*Filter, error) {
	c, err := parseContainer(src.bytes())
	if err != nil {
		src.close()
		return nil, err
	}

	mode := modeNone
	if opts.EnableNormalization {
		mode = modeLower
	}

	hash := newHashSet(c.hash, int(c.hdr.minLen), int(c.hdr.maxLen))
	trie := &trieStore{c: c}

	return &Filter{
		src:      src,
		c:        c,
		trie:     trie,
		hash:     hash,
		m:        &matcher{trie: trie, hash: hash},
		mode:     mode,
		units:    newCodeUnitPool(),
		scratch:  newScratchPool(int(c.hdr.maxLen)),
		maxWords: int(c.hdr.maxLen),
	}, nil
}

// Close releases the Filter's underlying buffer (unmapping it, if
// mmap'd). Double-close is a no-op, per spec §4.7's resource contract.
func (f *Filter) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.src.close()
	return nil
}

// withCodeUnits converts text to its normalized UTF-16 code-unit form
// and calls fn with it. Inputs of up to 512 code units are converted
// into a fixed-size array declared here (the compiler places it on the
// heap, since it is passed to fn); larger inputs rent a buffer from the
// Filter's pool, which is always released before withCodeUnits returns
// (spec §5 "acquired and released with guaranteed release on every exit
// path").
func (f *Filter) withCodeUnits(text string, fn func([]uint16)) {
	if text == "" {
		fn(nil)
		return
	}

	// The threshold is in UTF-16 code units, so count them first.
	nUnits := 0
	for _, r := range text {
		if r >= 0x10000 {
			nUnits += 2
		} else {
			nUnits++
		}
	}
	if nUnits <= stackThreshold {
		var stackBuf [stackThreshold]uint16
		n := f.encodeInto(text, stackBuf[:])
		normalized := stackBuf[:n]
		f.normalizeInPlace(normalized)
		fn(normalized)
		return
	}

	// len(text) (bytes) is always >= the number of UTF-16 code units
	// text decodes to, so it's a safe upper bound for sizing.
	buf := f.units.get(len(text))
	defer f.units.put(buf)
	n := f.encodeInto(text, buf)
	normalized := buf[:n]
	f.normalizeInPlace(normalized)
	fn(normalized)
}

// encodeInto writes text's UTF-16 code units into dst (which must be at
// least len(text) long) and returns the count written.
func (f *Filter) encodeInto(text string, dst []uint16) int {
	n := 0
	for _, r := range text {
		r1, r2 := utf16.EncodeRune(r)
		if r1 == utf8.RuneError && r2 == utf8.RuneError {
			dst[n] = uint16(r)
			n++
			continue
		}
		dst[n] = uint16(r1)
		dst[n+1] = uint16(r2)
		n += 2
	}
	return n
}

// normalizeInPlace applies the configured normalizer to units in place
// — source and destination are the same slice, which normalize supports
// because it only ever narrows a code unit to its lowercase form (never
// reads ahead of the write position).
func (f *Filter) normalizeInPlace(units []uint16) {
	normalize(f.mode, units, units)
}

// Contains reports whether text contains any dictionary word. Implements
// spec §4.6 contains / testable property #1 (the containment law).
func (f *Filter) Contains(text string) bool {
	var found bool
	f.withCodeUnits(text, func(units []uint16) {
		if len(units) == 0 {
			return
		}
		sc := f.scratch.get()
		defer f.scratch.put(sc)
		found = f.m.contains(units, sc)
	})
	return found
}

// FindMatches enumerates non-overlapping, longest-match-at-position
// results into out (capped at cap(out)) and returns the count written,
// in strictly ascending Start order. Implements spec §4.6 find_all.
func (f *Filter) FindMatches(text string, out []MatchResult) int {
	var count int
	f.withCodeUnits(text, func(units []uint16) {
		if len(units) == 0 || cap(out) == 0 {
			return
		}
		sc := f.scratch.get()
		defer f.scratch.put(sc)
		count = f.m.findAll(units, out, sc)
	})
	return count
}

// maxMaskMatches bounds the internal match buffer Mask uses, per spec
// §4.7 ("an internal buffer of up to 256 results").
const maxMaskMatches = 256

// Mask returns a copy of text with every dictionary match redacted. If
// text contains no match, the original string is returned unchanged
// (testable property #10). Two modes: preserve-length (opts.FixedMask
// empty — each code unit of a match becomes opts.MaskChar) and
// fixed-mask (each whole match span becomes opts.FixedMask).
func (f *Filter) Mask(text string, opts Options) string {
	if text == "" {
		return text
	}

	matches := make([]MatchResult, 0, maxMaskMatches)
	n := f.FindMatches(text, matches[:cap(matches)])
	matches = matches[:n]
	if n == 0 {
		return text
	}

	maskChar := opts.MaskChar
	if maskChar == 0 {
		maskChar = '*'
	}

	var out strings.Builder
	out.Grow(len(text) + len(opts.FixedMask)*n)

	// Re-encode the *original* (non-normalized) text for the unmatched
	// spans: match Start/Length are stable across normalization because
	// every normalizer this package ships is length- and
	// order-preserving, but the surrounding text the caller sees back
	// must keep its original casing, not the folded form used to find
	// the match.
	units := make([]uint16, len(text))
	units = units[:f.encodeInto(text, units)]

	pos := uint32(0)
	for _, mr := range matches {
		out.WriteString(reencode(units[pos:mr.Start]))
		if opts.FixedMask != "" {
			out.WriteString(opts.FixedMask)
		} else {
			for i := uint32(0); i < mr.Length; i++ {
				out.WriteRune(maskChar)
			}
		}
		pos = mr.Start + mr.Length
	}
	out.WriteString(reencode(units[pos:]))

	return out.String()
}

// reencode converts UTF-16 code units back to a UTF-8 string, for the
// unmatched spans Mask copies through verbatim.
func reencode(units []uint16) string {
	if len(units) == 0 {
		return ""
	}
	runes := utf16.Decode(units)
	return string(runes)
}
