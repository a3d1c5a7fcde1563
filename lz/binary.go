package lz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/icza/bitio"
)

// EncodeBinary packs tuples into a compact bit stream. The stream starts with
// the tuple count (uvarint) and the bit widths used for distances and
// lengths, one byte each, sized to the largest value present. Each tuple then
// takes width(distance) + width(length) + 8 bits; the last byte is padded
// with zeros.
func EncodeBinary(tuples []Tuple) ([]byte, error) {
	maxDistance, maxLength := 0, 0
	for i, t := range tuples {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: tuple %d has distance %d and length %d", ErrInvalidArgument, i, t.Distance, t.Length)
		}
		if t.Distance > maxDistance {
			maxDistance = t.Distance
		}
		if t.Length > maxLength {
			maxLength = t.Length
		}
	}
	distanceBits := uint8(bits.Len(uint(maxDistance)))
	lengthBits := uint8(bits.Len(uint(maxLength)))

	buf := new(bytes.Buffer)
	var header [binary.MaxVarintLen64 + 2]byte
	n := binary.PutUvarint(header[:], uint64(len(tuples)))
	header[n] = distanceBits
	header[n+1] = lengthBits
	buf.Write(header[:n+2])

	w := bitio.NewWriter(buf)
	for _, t := range tuples {
		if distanceBits > 0 {
			w.TryWriteBits(uint64(t.Distance), distanceBits)
			w.TryWriteBits(uint64(t.Length), lengthBits)
		}
		w.TryWriteByte(t.Literal)
	}
	if w.TryError != nil {
		return nil, w.TryError
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBinary unpacks a stream written by EncodeBinary.
func DecodeBinary(data []byte) ([]Tuple, error) {
	r := bitio.NewReader(bytes.NewReader(data))
	count, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading tuple count: %v", ErrFormat, err)
	}
	distanceBits := r.TryReadByte()
	lengthBits := r.TryReadByte()
	if r.TryError != nil {
		return nil, fmt.Errorf("%w: truncated header", ErrFormat)
	}
	if distanceBits > 63 || lengthBits > 63 || (distanceBits == 0) != (lengthBits == 0) {
		return nil, fmt.Errorf("%w: bad field widths %d and %d", ErrFormat, distanceBits, lengthBits)
	}

	tupleBits := uint64(distanceBits) + uint64(lengthBits) + 8
	if count > uint64(len(data))*8/tupleBits {
		return nil, fmt.Errorf("%w: %d tuples cannot fit in %d bytes", ErrFormat, count, len(data))
	}

	tuples := make([]Tuple, count)
	for i := range tuples {
		t := &tuples[i]
		if distanceBits > 0 {
			t.Distance = int(r.TryReadBits(distanceBits))
			t.Length = int(r.TryReadBits(lengthBits))
		}
		t.Literal = r.TryReadByte()
		if r.TryError != nil {
			return nil, fmt.Errorf("%w: truncated at tuple %d", ErrFormat, i)
		}
		if !t.Valid() {
			return nil, fmt.Errorf("%w: tuple %d has distance %d and length %d", ErrFormat, i, t.Distance, t.Length)
		}
	}
	return tuples, nil
}
