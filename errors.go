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

import "fmt"

// Kind classifies the failure modes of this package. These are kinds,
// not a type hierarchy. A Kind value is carried only by *FormatError,
// and every *FormatError this package returns has Kind InvalidFormat.
// Caller mistakes are returned as *ArgumentError, which has no Kind
// field. I/O failures are the underlying error wrapped with context via
// github.com/pkg/errors (errors.Cause recovers it); they carry no Kind.
// Callers tell the cases apart with errors.As.
type Kind int

const (
	// Io is an underlying storage or stream error encountered while loading.
	Io Kind = iota
	// InvalidFormat means the blob is structurally unsound: bad magic,
	// unsupported version, truncated, or an internal size mismatch.
	InvalidFormat
	// InvalidArgument means the caller passed a bad argument: a missing
	// path, an undersized destination buffer, etc.
	InvalidArgument
	// OutOfRange means an internal node/edge index violated its bounds.
	// No error this package returns carries it: an out-of-bounds node or
	// edge index panics (see container.nodeAt).
	OutOfRange
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "io"
	case InvalidFormat:
		return "invalid_format"
	case InvalidArgument:
		return "invalid_argument"
	case OutOfRange:
		return "out_of_range"
	default:
		return "unknown"
	}
}

// FormatError reports a validation failure against the FCF3 container,
// naming the byte offset or field that failed so a caller can diagnose a
// corrupt or foreign file without a hex editor.
type FormatError struct {
	Kind   Kind
	Field  string
	Offset int64
	Msg    string
}

func (e *FormatError) Error() string {
	if e.Offset != 0 || e.Field != "" {
		return fmt.Sprintf("fcf: %s: %s (field=%q offset=%d)", e.Kind, e.Msg, e.Field, e.Offset)
	}
	return fmt.Sprintf("fcf: %s: %s", e.Kind, e.Msg)
}

// ArgumentError reports a caller mistake: a nil/empty required argument,
// or a destination buffer too small for the operation.
type ArgumentError struct {
	Arg string
	Msg string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("fcf: invalid argument %q: %s", e.Arg, e.Msg)
}

func newFormatError(field string, offset int64, format string, args ...interface{}) *FormatError {
	return &FormatError{
		Kind:   InvalidFormat,
		Field:  field,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}
