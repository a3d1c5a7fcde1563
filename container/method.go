package container

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// A Method is the byte codec applied to a container's payload.
type Method uint8

const (
	Stored Method = iota
	Snappy
	S2
	Zstd
	Gzip
	Brotli
	LZ4
)

var methodNames = [...]string{
	Stored: "stored",
	Snappy: "snappy",
	S2:     "s2",
	Zstd:   "zstd",
	Gzip:   "gzip",
	Brotli: "brotli",
	LZ4:    "lz4",
}

func (m Method) String() string {
	if int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("method(%d)", uint8(m))
}

// ParseMethod returns the Method with the given name, ignoring case.
func ParseMethod(name string) (Method, error) {
	for m, n := range methodNames {
		if strings.EqualFold(name, n) {
			return Method(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Methods returns all the methods a container can use.
func Methods() []Method {
	ms := make([]Method, len(methodNames))
	for i := range ms {
		ms[i] = Method(i)
	}
	return ms
}

type codec struct {
	compress   func(dst, src []byte) ([]byte, error)
	decompress func(src []byte) ([]byte, error)
}

var codecs = map[Method]codec{
	Stored: {
		compress: func(dst, src []byte) ([]byte, error) {
			return append(dst, src...), nil
		},
		decompress: func(src []byte) ([]byte, error) {
			return append([]byte(nil), src...), nil
		},
	},
	Snappy: {
		compress: func(dst, src []byte) ([]byte, error) {
			return append(dst, snappy.Encode(nil, src)...), nil
		},
		decompress: func(src []byte) ([]byte, error) {
			return snappy.Decode(nil, src)
		},
	},
	S2: {
		compress: func(dst, src []byte) ([]byte, error) {
			return append(dst, s2.Encode(nil, src)...), nil
		},
		decompress: func(src []byte) ([]byte, error) {
			return s2.Decode(nil, src)
		},
	},
	Zstd: {
		compress: func(dst, src []byte) ([]byte, error) {
			enc, err := zstd.NewWriter(nil)
			if err != nil {
				return nil, err
			}
			defer enc.Close()
			return enc.EncodeAll(src, dst), nil
		},
		decompress: func(src []byte) ([]byte, error) {
			dec, err := zstd.NewReader(nil)
			if err != nil {
				return nil, err
			}
			defer dec.Close()
			return dec.DecodeAll(src, nil)
		},
	},
	Gzip: {
		compress: func(dst, src []byte) ([]byte, error) {
			buf := bytes.NewBuffer(dst)
			w, err := gzip.NewWriterLevel(buf, gzip.BestCompression)
			if err != nil {
				return nil, err
			}
			return finish(buf, w, src)
		},
		decompress: func(src []byte) ([]byte, error) {
			r, err := gzip.NewReader(bytes.NewReader(src))
			if err != nil {
				return nil, err
			}
			defer r.Close()
			return io.ReadAll(r)
		},
	},
	Brotli: {
		compress: func(dst, src []byte) ([]byte, error) {
			buf := bytes.NewBuffer(dst)
			return finish(buf, brotli.NewWriterLevel(buf, brotli.BestCompression), src)
		},
		decompress: func(src []byte) ([]byte, error) {
			return io.ReadAll(brotli.NewReader(bytes.NewReader(src)))
		},
	},
	LZ4: {
		compress: func(dst, src []byte) ([]byte, error) {
			buf := bytes.NewBuffer(dst)
			return finish(buf, lz4.NewWriter(buf), src)
		},
		decompress: func(src []byte) ([]byte, error) {
			return io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
		},
	},
}

// finish writes src to w, closes it, and returns the contents of buf.
func finish(buf *bytes.Buffer, w io.WriteCloser, src []byte) ([]byte, error) {
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
