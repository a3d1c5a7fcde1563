package lz

import "fmt"

// Expand appends the bytes described by tuples to dst and returns the
// extended buffer. Distances are resolved against everything in dst,
// including bytes that were there before the call.
func Expand(dst []byte, tuples []Tuple) ([]byte, error) {
	for i, t := range tuples {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: tuple %d has distance %d and length %d", ErrFormat, i, t.Distance, t.Length)
		}
		if t.Distance > len(dst) {
			return nil, fmt.Errorf("%w: tuple %d refers %d bytes back, only %d decoded", ErrFormat, i, t.Distance, len(dst))
		}

		// Byte by byte: when Length > Distance the copy reads bytes it has
		// just written.
		from := len(dst) - t.Distance
		for j := 0; j < t.Length; j++ {
			dst = append(dst, dst[from+j])
		}
		dst = append(dst, t.Literal)
	}
	return dst, nil
}

// Decompress decodes a text tuple stream.
func Decompress(src []byte) ([]byte, error) {
	tuples, err := Parse(src)
	if err != nil {
		return nil, err
	}

	// Every tuple yields at least one byte.
	return Expand(make([]byte, 0, len(tuples)), tuples)
}

// DecompressString is Decompress for strings.
func DecompressString(src string) (string, error) {
	out, err := Decompress([]byte(src))
	return string(out), err
}
