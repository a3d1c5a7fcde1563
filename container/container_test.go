package container

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/lztext/pack/lz"
)

func sample(t testing.TB) []byte {
	data, err := os.ReadFile("../testdata/sample.txt")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestPackUnpack(t *testing.T) {
	data := sample(t)
	for _, m := range Methods() {
		t.Run(m.String(), func(t *testing.T) {
			sealed, err := Pack(m, data)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Unpack(sealed)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, data) {
				t.Fatal("unpacked output doesn't match")
			}

			stream, method, err := Open(sealed)
			if err != nil {
				t.Fatal(err)
			}
			if method != m {
				t.Errorf("Open method = %v, want %v", method, m)
			}
			want, _ := lz.Compress(data)
			if !bytes.Equal(stream, want) {
				t.Error("payload is not the tuple stream")
			}
		})
	}
}

func TestChecksum(t *testing.T) {
	data := sample(t)
	sealed, err := Seal(Stored, data)
	if err != nil {
		t.Fatal(err)
	}
	sealed[len(sealed)-10] ^= 0x20
	if _, _, err := Open(sealed); !errors.Is(err, ErrChecksum) {
		t.Errorf("Open error = %v, want ErrChecksum", err)
	}
}

func TestCorruptBody(t *testing.T) {
	data := sample(t)
	for _, m := range []Method{Snappy, S2, Zstd, Gzip, Brotli, LZ4} {
		sealed, err := Seal(m, data)
		if err != nil {
			t.Fatal(err)
		}
		truncated := sealed[:headerSize+(len(sealed)-headerSize)/2]
		if _, _, err := Open(truncated); err == nil {
			t.Errorf("%v: Open accepted a truncated body", m)
		}
	}
}

func TestOpenErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrMagic},
		{"short", []byte("LZT"), ErrMagic},
		{"wrong magic", []byte("LZT\x02\x00\x00\x00\x00\x00"), ErrMagic},
		{"unknown method", []byte("LZT\x01\x63\x00\x00\x00\x00"), ErrUnknownMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Open(tt.data); !errors.Is(err, tt.want) {
				t.Errorf("Open error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSealUnknownMethod(t *testing.T) {
	if _, err := Seal(Method(99), []byte("x")); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Seal error = %v, want ErrUnknownMethod", err)
	}
}

func TestPackEmpty(t *testing.T) {
	if _, err := Pack(Zstd, nil); !errors.Is(err, lz.ErrInvalidArgument) {
		t.Errorf("Pack error = %v, want lz.ErrInvalidArgument", err)
	}
}

func TestUnpackMalformedStream(t *testing.T) {
	sealed, err := Seal(Snappy, []byte("[0|0|a][5|1|b]"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unpack(sealed); !errors.Is(err, lz.ErrFormat) {
		t.Errorf("Unpack error = %v, want lz.ErrFormat", err)
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods() {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParseMethod("ZSTD"); err != nil || got != Zstd {
		t.Errorf("ParseMethod(\"ZSTD\") = %v, %v", got, err)
	}
	if _, err := ParseMethod("lzma"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("ParseMethod(\"lzma\") error = %v, want ErrUnknownMethod", err)
	}
	if s := Method(42).String(); s != "method(42)" {
		t.Errorf("Method(42).String() = %q", s)
	}
}

func BenchmarkPack(b *testing.B) {
	data := sample(b)
	for _, m := range Methods() {
		b.Run(m.String(), func(b *testing.B) {
			sealed, err := Pack(m, data)
			if err != nil {
				b.Fatal(err)
			}
			b.ReportMetric(float64(len(data))/float64(len(sealed)), "ratio")
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Pack(m, data)
			}
		})
	}
}
