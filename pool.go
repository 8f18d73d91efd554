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

import "sync"

// stackThreshold is the input size (in code units) up to which Filter
// normalizes into a fixed-size array declared in withCodeUnits instead
// of renting from the pool. That array is passed to a callback, so the
// Go compiler allocates it on the heap; this path skips the pool but is
// not allocation-free.
const stackThreshold = 512

// codeUnitPool hands out reusable []uint16 buffers for normalizing and
// converting inputs larger than stackThreshold. This is a field of
// *Filter (one pool per loaded dictionary), never a package-level
// singleton — spec §9 explicitly calls out the source's ambient
// process-wide scratch pool as a pattern to re-express as "a borrowed
// mutable scratch... or a per-filter pool", grounded the same way
// itgcl-ahocorasick scopes its dedup map pool to *Matcher rather than a
// package global, and the way the teacher's contentProvider reuses
// _nlBuf/_sectBuf fields rather than a global cache.
type codeUnitPool struct {
	pool sync.Pool
}

func newCodeUnitPool() *codeUnitPool {
	return &codeUnitPool{
		pool: sync.Pool{
			New: func() interface{} {
				return make([]uint16, 0, stackThreshold*4)
			},
		},
	}
}

// get rents a buffer with at least n capacity. Release with put on every
// exit path, including error returns — see Filter.withCodeUnits in
// facade.go for the defer-guarded acquisition pattern.
func (p *codeUnitPool) get(n int) []uint16 {
	buf := p.pool.Get().([]uint16)
	if cap(buf) < n {
		buf = make([]uint16, 0, n)
	}
	return buf[:n]
}

func (p *codeUnitPool) put(buf []uint16) {
	p.pool.Put(buf[:0]) //nolint:staticcheck // intentionally reset length, keep capacity
}

// scratchPool hands out *scratch (the matcher's CRC working buffer),
// pre-sized from the dictionary's max word length so the matcher never
// grows it mid-call.
type scratchPool struct {
	pool sync.Pool
}

func newScratchPool(maxWordLen int) *scratchPool {
	bufSize := maxWordLen * 2
	if bufSize < 64 {
		bufSize = 64
	}
	return &scratchPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &scratch{crcBuf: make([]byte, bufSize)}
			},
		},
	}
}

func (p *scratchPool) get() *scratch {
	return p.pool.Get().(*scratch)
}

func (p *scratchPool) put(s *scratch) {
	p.pool.Put(s)
}
