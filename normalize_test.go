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
	"testing"
	"unicode/utf16"
)

func TestNormalizeModeNone(t *testing.T) {
	src := utf16.Encode([]rune("HeLLo"))
	dst := make([]uint16, len(src))
	n := normalize(modeNone, src, dst)
	if n != len(src) {
		t.Fatalf("n = %d, want %d", n, len(src))
	}
	if string(utf16.Decode(dst)) != "HeLLo" {
		t.Errorf("modeNone must not change case, got %q", string(utf16.Decode(dst)))
	}
}

func TestNormalizeModeLowerASCII(t *testing.T) {
	src := utf16.Encode([]rune("HeLLo WORLD"))
	dst := make([]uint16, len(src))
	normalize(modeLower, src, dst)
	if got := string(utf16.Decode(dst)); got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
}

func TestNormalizeIsLengthPreserving(t *testing.T) {
	for _, s := range []string{"", "a", "ABCabc", "ÀÉÎ", "мир", "123 !@#"} {
		src := utf16.Encode([]rune(s))
		dst := make([]uint16, len(src))
		n := normalize(modeLower, src, dst)
		if n != len(src) {
			t.Errorf("normalize(%q) changed length: %d != %d", s, n, len(src))
		}
	}
}

func TestLowerCodeUnitLatinGreekCyrillic(t *testing.T) {
	cases := []struct{ in, want uint16 }{
		{'A', 'a'},
		{'Z', 'z'},
		{0x00C0, 0x00E0}, // À -> à
		{0x00D7, 0x00D7}, // multiplication sign must pass through
		{0x0391, 0x03B1}, // Greek Alpha -> alpha
		{0x0410, 0x0430}, // Cyrillic A -> a
		{'5', '5'},
	}
	for _, c := range cases {
		if got := lowerCodeUnit(c.in); got != c.want {
			t.Errorf("lowerCodeUnit(%#x) = %#x, want %#x", c.in, got, c.want)
		}
	}
}

func TestNormalizeInPlaceSameSlice(t *testing.T) {
	units := utf16.Encode([]rune("MiXeD"))
	normalize(modeLower, units, units)
	if got := string(utf16.Decode(units)); got != "mixed" {
		t.Errorf("in-place normalize got %q, want %q", got, "mixed")
	}
}
