package lz

import (
	"bytes"
	"os"
	"reflect"
	"testing"

	"github.com/lztext/pack"
)

func readSample(t testing.TB) []byte {
	data, err := os.ReadFile("../testdata/sample.txt")
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestEncoderReproducesCompress(t *testing.T) {
	data := readSample(t)
	want, err := Compress(data)
	if err != nil {
		t.Fatal(err)
	}

	var mf MatchFinder
	matches := mf.FindMatches(nil, data)
	var e Encoder
	got := e.Encode(nil, data, matches, true)
	if !bytes.Equal(got, want) {
		t.Fatal("MatchFinder + Encoder output differs from Compress")
	}
}

func TestMatchFinderCustomSearch(t *testing.T) {
	data := readSample(t)
	naive := MatchFinder{
		Search: func(pattern, text []byte) int {
			if len(pattern) > len(text) {
				return -1
			}
			return bytes.Index(text, pattern)
		},
	}
	var kmp MatchFinder

	got := naive.FindMatches(nil, data)
	want := kmp.FindMatches(nil, data)
	if !reflect.DeepEqual(got, want) {
		t.Fatal("bytes.Index search found different matches from KMP")
	}
}

func TestAppendTuples(t *testing.T) {
	tests := []struct {
		src     string
		matches []pack.Match
		want    string
	}{
		{"abcabc", []pack.Match{{Unmatched: 3, Length: 3, Distance: 3}}, "[0|0|a][0|0|b][0|0|c][3|2|c]"},
		{"aa", []pack.Match{{Unmatched: 1, Length: 1, Distance: 1}}, "[0|0|a][0|0|a]"},
		{"abcabcx", []pack.Match{{Unmatched: 3, Length: 3, Distance: 3}, {Unmatched: 1}}, "[0|0|a][0|0|b][0|0|c][3|3|x]"},
		{"abababab", []pack.Match{{Unmatched: 2, Length: 2, Distance: 2}, {Length: 4, Distance: 2}}, "[0|0|a][0|0|b][2|1|b][2|3|b]"},
		{"aaaaaaaaaz", []pack.Match{{Unmatched: 1, Length: 8, Distance: 1}, {Unmatched: 1}}, "[0|0|a][1|8|z]"},
		{"xyz", nil, "[0|0|x][0|0|y][0|0|z]"},
	}

	for _, tt := range tests {
		var e Encoder
		got := string(e.Encode(nil, []byte(tt.src), tt.matches, true))
		if got != tt.want {
			t.Errorf("Encode(%q, %v) = %q, want %q", tt.src, tt.matches, got, tt.want)
			continue
		}
		if back, err := DecompressString(got); err != nil || back != tt.src {
			t.Errorf("DecompressString(%q) = %q, %v; want %q", got, back, err, tt.src)
		}
	}
}

func TestWriter(t *testing.T) {
	data := readSample(t)
	whole, err := Compress(data)
	if err != nil {
		t.Fatal(err)
	}

	for _, blockSize := range []int{1, 7, WindowSize, 1000, 1 << 16} {
		buf := new(bytes.Buffer)
		w := NewWriter(buf)
		w.BlockSize = blockSize
		for p := data; len(p) > 0; {
			n := 13
			if n > len(p) {
				n = len(p)
			}
			if _, err := w.Write(p[:n]); err != nil {
				t.Fatal(err)
			}
			p = p[n:]
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}

		got, err := Decompress(buf.Bytes())
		if err != nil {
			t.Fatalf("block size %d: %v", blockSize, err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("block size %d: decompressed output doesn't match", blockSize)
		}
		if blockSize >= len(data) && !bytes.Equal(buf.Bytes(), whole) {
			t.Errorf("block size %d: single-block output differs from Compress", blockSize)
		}
	}
}

func TestWriterReset(t *testing.T) {
	data := readSample(t)
	first := new(bytes.Buffer)
	w := NewWriter(first)
	w.Write(data)
	w.Close()

	if _, err := w.Write(data); err == nil {
		t.Error("Write after Close succeeded")
	}

	second := new(bytes.Buffer)
	w.Reset(second)
	w.Write(data)
	w.Close()
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("output after Reset differs from the first stream")
	}
}

func TestWriterAutoReset(t *testing.T) {
	data := readSample(t)
	buf := new(bytes.Buffer)
	w := &pack.Writer{
		Dest:        buf,
		MatchFinder: pack.AutoReset{MatchFinder: &MatchFinder{}},
		Encoder:     &Encoder{},
		BlockSize:   64,
	}
	w.Write(data)
	w.Close()

	tuples, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	// No tuple may refer to a previous block.
	pos := 0
	for _, tp := range tuples {
		if tp.Distance > pos%64 {
			t.Fatalf("tuple %v at offset %d reaches into the previous block", tp, pos)
		}
		pos += tp.Size()
	}

	got, err := Expand(nil, tuples)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("decompressed output doesn't match")
	}
}

func BenchmarkWriter(b *testing.B) {
	data := readSample(b)
	buf := new(bytes.Buffer)
	w := NewWriter(buf)
	w.Write(data)
	w.Close()
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		w.Reset(buf)
		w.Write(data)
		w.Close()
	}
}
