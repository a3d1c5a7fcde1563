// Package container seals a compressed tuple stream for storage: the stream
// is compressed again with a general purpose byte codec and protected by an
// xxHash32 checksum.
//
// A sealed container is laid out as
//
//	magic "LZT\x01" | method (1 byte) | xxHash32 of payload (4 bytes, LE) | body
//
// where body is the payload compressed with the given method.
package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lztext/pack/lz"
	"github.com/pierrec/xxHash/xxHash32"
)

var magic = []byte("LZT\x01")

const headerSize = 4 + 1 + 4

var (
	ErrMagic         = errors.New("container: bad magic")
	ErrUnknownMethod = errors.New("container: unknown method")
	ErrChecksum      = errors.New("container: checksum mismatch")
)

// Seal compresses payload with m and wraps it in a container.
func Seal(m Method, payload []byte) ([]byte, error) {
	c, ok := codecs[m]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, m)
	}

	dst := make([]byte, headerSize, headerSize+len(payload)/2)
	copy(dst, magic)
	dst[4] = byte(m)
	binary.LittleEndian.PutUint32(dst[5:], checksum(payload))

	dst, err := c.compress(dst, payload)
	if err != nil {
		return nil, fmt.Errorf("container: %v: %w", m, err)
	}
	return dst, nil
}

// Open checks a container and returns its payload and the method it was
// compressed with.
func Open(data []byte) (payload []byte, m Method, err error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], magic) {
		return nil, 0, ErrMagic
	}
	m = Method(data[4])
	c, ok := codecs[m]
	if !ok {
		return nil, m, fmt.Errorf("%w: %d", ErrUnknownMethod, data[4])
	}

	payload, err = c.decompress(data[headerSize:])
	if err != nil {
		return nil, m, fmt.Errorf("container: %v: %w", m, err)
	}
	if checksum(payload) != binary.LittleEndian.Uint32(data[5:]) {
		return nil, m, ErrChecksum
	}
	return payload, m, nil
}

// Pack compresses input to a tuple stream and seals it with m.
func Pack(m Method, input []byte) ([]byte, error) {
	stream, err := lz.Compress(input)
	if err != nil {
		return nil, err
	}
	return Seal(m, stream)
}

// Unpack opens a container made by Pack and decompresses its tuple stream.
func Unpack(data []byte) ([]byte, error) {
	stream, _, err := Open(data)
	if err != nil {
		return nil, err
	}
	return lz.Decompress(stream)
}

func checksum(b []byte) uint32 {
	h := xxHash32.New(0)
	h.Write(b)
	return h.Sum32()
}
