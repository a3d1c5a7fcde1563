package lz

import (
	"fmt"

	"github.com/lztext/pack/kmp"
)

// Tokenize splits input into tuples, taking the longest match in the window
// at each position.
func Tokenize(input []byte) ([]Tuple, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidArgument)
	}
	return appendTuples(nil, input, 0, kmp.Search), nil
}

// Compress returns the text tuple stream for input.
func Compress(input []byte) ([]byte, error) {
	tuples, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	// Lone literals take 7 bytes; most streams are dominated by them.
	dst := make([]byte, 0, 7*len(tuples))
	for _, t := range tuples {
		dst = AppendTuple(dst, t)
	}
	return dst, nil
}

// CompressString is Compress for strings.
func CompressString(input string) (string, error) {
	out, err := Compress([]byte(input))
	return string(out), err
}

// appendTuples tokenizes buf[start:], using buf[:start] as history, and
// appends the tuples to dst. search must behave like kmp.Search.
func appendTuples(dst []Tuple, buf []byte, start int, search func(pattern, text []byte) int) []Tuple {
	c := start
	for c < len(buf) {
		windowStart := c - WindowSize
		if windowStart < 0 {
			windowStart = 0
		}
		window := buf[windowStart:c]

		// Grow the candidate while it still occurs in the window. One byte
		// is always left over to serve as the literal.
		best, distance := 0, 0
		for n := 1; c+n < len(buf); n++ {
			m := search(buf[c:c+n], window)
			if m < 0 {
				break
			}
			best = n
			distance = c - (windowStart + m)
		}

		if best == 0 {
			dst = append(dst, Tuple{Literal: buf[c]})
			c++
			continue
		}
		dst = append(dst, Tuple{
			Distance: distance,
			Length:   best,
			Literal:  buf[c+best],
		})
		c += best + 1
	}
	return dst
}
