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

// Command fcf-build compiles a plain-text word list into an FCF3 binary
// dictionary a *fcf.Filter can load.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/tyranno-rex/fcf"
)

func main() {
	input := flag.String("i", "", "path to the word list (required); '-' reads stdin")
	output := flag.String("o", "", "path to write the FCF3 dictionary (required)")
	normalizeWords := flag.Bool("n", true, "lowercase words before indexing (must match the Filter's EnableNormalization)")
	flag.Parse()

	if *input == "" || *output == "" {
		fmt.Fprintln(flag.CommandLine.Output(), "USAGE: fcf-build -i words.txt -o dict.fcf3")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Tune GOMAXPROCS to match container CPU quota; the builder itself is
	// single-threaded today, but this keeps behavior consistent with the
	// rest of the toolchain if parallel construction is added later.
	_, _ = maxprocs.Set()

	if err := run(*input, *output, *normalizeWords); err != nil {
		log.Fatalf("fcf-build: %v", err)
	}
}

func run(inputPath, outputPath string, normalizeWords bool) error {
	in := os.Stdin
	if inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	words, err := readWordList(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	b := fcf.NewBuilder(normalizeWords)
	for _, w := range words {
		b.AddWord(w)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	n, err := b.WriteTo(out)
	if err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	log.Printf("fcf-build: %d words -> %s (%s)", b.Len(), outputPath, humanize.Bytes(uint64(n)))
	return nil
}
