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

package main

import (
	"bufio"
	"io"
	"strings"
)

// readWordList parses a dictionary source file: one word per line, or
// multiple comma-separated words per line. '#' starts a line comment
// (only when it is the first non-whitespace rune on the line); blank
// lines are skipped. A word may be wrapped in single or double quotes,
// which are stripped before the word is used, so lists can carry words
// that are themselves just "#" or contain leading/trailing spaces.
func readWordList(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Split(line, ",") {
			w := strings.TrimSpace(field)
			w = unquote(w)
			if w == "" {
				continue
			}
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// unquote strips one layer of matching single or double quotes, if
// present.
func unquote(w string) string {
	if len(w) < 2 {
		return w
	}
	first, last := w[0], w[len(w)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return w[1 : len(w)-1]
	}
	return w
}
