package lz

import (
	"io"

	"github.com/lztext/pack"
)

// An Encoder is a pack.Encoder that writes matches as a text tuple stream,
// so the output of any MatchFinder can be read back with Decompress.
type Encoder struct {
	tuples []Tuple
}

func (e *Encoder) Reset() {}

func (e *Encoder) Encode(dst []byte, src []byte, matches []pack.Match, lastBlock bool) []byte {
	e.tuples = AppendTuples(e.tuples[:0], src, matches)
	for _, t := range e.tuples {
		dst = AppendTuple(dst, t)
	}
	return dst
}

// AppendTuples converts the matches covering src to tuples and appends them
// to dst. A copy takes the next unmatched byte as its literal. When no
// unmatched byte follows it, the copy gives up its own last byte instead.
func AppendTuples(dst []Tuple, src []byte, matches []pack.Match) []Tuple {
	pos := 0
	var pending pack.Match

	flush := func() {
		if pending.Length == 0 {
			return
		}
		last := src[pos-1]
		if pending.Length == 1 {
			dst = append(dst, Tuple{Literal: last})
		} else {
			dst = append(dst, Tuple{
				Distance: pending.Distance,
				Length:   pending.Length - 1,
				Literal:  last,
			})
		}
		pending = pack.Match{}
	}

	literals := func(n int) {
		for _, c := range src[pos : pos+n] {
			if pending.Length > 0 {
				dst = append(dst, Tuple{
					Distance: pending.Distance,
					Length:   pending.Length,
					Literal:  c,
				})
				pending = pack.Match{}
			} else {
				dst = append(dst, Tuple{Literal: c})
			}
		}
		pos += n
	}

	for _, m := range matches {
		if m.Unmatched > 0 {
			literals(m.Unmatched)
		}
		if m.Length > 0 {
			flush()
			pending = m
			pos += m.Length
		}
	}
	if pos < len(src) {
		literals(len(src) - pos)
	}
	flush()

	return dst
}

// NewWriter returns a pack.Writer that compresses to the text tuple format.
// Each block of input is parsed on its own, with the end of the previous
// block as history, so the output can differ from Compress at block
// boundaries; Decompress reads either.
func NewWriter(dst io.Writer) *pack.Writer {
	return &pack.Writer{
		Dest:        dst,
		MatchFinder: &MatchFinder{},
		Encoder:     &Encoder{},
		BlockSize:   1 << 16,
	}
}
