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
	"io"
	"log"
	"os"
	"runtime"

	// cross-platform memory-mapped file package; same choice and the same
	// justification the teacher's own mmap-backed index reader makes.
	mmap "github.com/edsrzf/mmap-go"

	"github.com/pkg/errors"
)

// blobSource is the read-only byte source the container is projected
// over. It is an interface (rather than a concrete []byte) so that
// LoadFile can mmap the blob while LoadBytes/LoadReader can hold a plain
// in-memory slice, without duplicating the validation and projection
// logic in container.go.
type blobSource interface {
	// bytes returns the full blob. The returned slice must not be
	// mutated or retained past Close.
	bytes() []byte
	// close releases any OS resources (e.g. an mmap). Safe to call more
	// than once.
	close()
}

// memBlobSource is a blobSource backed by an ordinary in-memory slice.
// Used by LoadBytes and LoadReader.
type memBlobSource struct {
	data []byte
}

func (m *memBlobSource) bytes() []byte { return m.data }
func (m *memBlobSource) close()        {}

// mmapBlobSource is a blobSource backed by a memory-mapped file. This
// mirrors the teacher's mmapedIndexFile: the OS page cache serves reads
// lazily and concurrently, with no heap copy of the dictionary.
type mmapBlobSource struct {
	name   string
	data   mmap.MMap
	closed bool
}

func (m *mmapBlobSource) bytes() []byte { return m.data }

func (m *mmapBlobSource) close() {
	if m.closed {
		return
	}
	m.closed = true
	if err := m.data.Unmap(); err != nil {
		log.Printf("fcf: WARN failed to munmap %s: %v", m.name, err)
	}
}

// mmapPageRoundedSize rounds sz up to the OS page size on platforms where
// mmap requires (or simply prefers) page-aligned regions. mmap zero-fills
// the extra bytes, which is harmless: our header/section math never reads
// past totalSize().
func mmapPageRoundedSize(sz int) int {
	if runtime.GOOS == "windows" {
		return sz
	}
	pagesize := os.Getpagesize() - 1
	return (sz + pagesize) &^ pagesize
}

// openMmapBlobSource memory-maps f read-only. It takes ownership of f and
// always closes the OS file handle before returning, since the mapping
// itself keeps the pages available.
func openMmapBlobSource(f *os.File) (*mmapBlobSource, error) {
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "fcf: stat")
	}

	sz := fi.Size()
	if sz > int64(^uint32(0)) {
		return nil, &FormatError{Kind: InvalidFormat, Msg: "blob too large to address with u32 offsets"}
	}

	data, err := mmap.MapRegion(f, mmapPageRoundedSize(int(sz)), mmap.RDONLY, 0, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "fcf: mmap %s", f.Name())
	}

	return &mmapBlobSource{name: f.Name(), data: data[:sz]}, nil
}

// readAllBlobSource reads r to completion into memory. Used for streams
// that cannot be mmap'd (pipes, embedded readers, etc.).
func readAllBlobSource(r io.Reader) (*memBlobSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "fcf: read")
	}
	return &memBlobSource{data: data}, nil
}
