// Package lz implements a sliding-window dictionary codec whose compressed
// form is a readable text stream of tuples:
//
//	[backDistance|matchLength|literal]
//
// Each tuple copies matchLength bytes from backDistance bytes before the
// current end of the output, then appends one literal byte. A tuple with
// both numbers zero is a lone literal.
//
// The compressor takes the longest match at each position, searching the
// trailing WindowSize bytes with KMP; ties go to the earliest position in
// the window. The decompressor copies byte by byte, so a match may be longer
// than its distance and repeat the bytes it has just written.
package lz

import (
	"errors"
	"strconv"

	"github.com/lztext/pack/kmp"
)

// WindowSize is how far back the compressor looks for a match.
const WindowSize = 100

var (
	// ErrInvalidArgument is returned when compressing an empty input.
	ErrInvalidArgument = kmp.ErrInvalidArgument

	// ErrFormat is returned when a compressed stream is malformed or refers
	// to data before the start of the output.
	ErrFormat = errors.New("lz: malformed tuple stream")
)

// A Tuple is one step of the compressed stream.
type Tuple struct {
	Distance int  // how far back to copy from; 0 for a lone literal
	Length   int  // how many bytes to copy; 0 for a lone literal
	Literal  byte // the byte that follows the copy
}

// Valid reports whether t is either a lone literal or a copy with a
// positive distance and length.
func (t Tuple) Valid() bool {
	if t.Distance == 0 || t.Length == 0 {
		return t.Distance == 0 && t.Length == 0
	}
	return t.Distance > 0 && t.Length > 0
}

// Size returns the number of bytes t expands to.
func (t Tuple) Size() int {
	return t.Length + 1
}

func (t Tuple) String() string {
	return string(AppendTuple(nil, t))
}

// AppendTuple appends the text form of t to dst.
func AppendTuple(dst []byte, t Tuple) []byte {
	dst = append(dst, '[')
	dst = strconv.AppendInt(dst, int64(t.Distance), 10)
	dst = append(dst, '|')
	dst = strconv.AppendInt(dst, int64(t.Length), 10)
	dst = append(dst, '|', t.Literal, ']')
	return dst
}
