package lz

import (
	"github.com/lztext/pack"
	"github.com/lztext/pack/kmp"
)

// MatchFinder is an implementation of pack.MatchFinder that finds the same
// matches as Tokenize. The last WindowSize bytes of each block are kept as
// history for the next one, but no match extends past the end of a block.
type MatchFinder struct {
	// Search finds the first occurrence of a pattern in a text, returning -1
	// if there is none or if the pattern is longer than the text.
	// The default is kmp.Search.
	Search func(pattern, text []byte) int

	history []byte
	tuples  []Tuple
}

func (m *MatchFinder) Reset() {
	m.history = m.history[:0]
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
func (m *MatchFinder) FindMatches(dst []pack.Match, src []byte) []pack.Match {
	search := m.Search
	if search == nil {
		search = kmp.Search
	}

	start := len(m.history)
	buf := append(m.history, src...)
	m.tuples = appendTuples(m.tuples[:0], buf, start, search)

	if len(buf) > WindowSize {
		n := copy(buf, buf[len(buf)-WindowSize:])
		buf = buf[:n]
	}
	m.history = buf

	return AppendMatches(dst, m.tuples)
}

// AppendMatches converts tuples to matches and appends them to dst. Lone
// literals are gathered into Unmatched; the literal that ends a copy becomes
// the first unmatched byte of the following match.
func AppendMatches(dst []pack.Match, tuples []Tuple) []pack.Match {
	unmatched := 0
	for _, t := range tuples {
		if t.Length == 0 {
			unmatched++
			continue
		}
		dst = append(dst, pack.Match{
			Unmatched: unmatched,
			Length:    t.Length,
			Distance:  t.Distance,
		})
		unmatched = 1
	}

	if unmatched > 0 {
		dst = append(dst, pack.Match{
			Unmatched: unmatched,
		})
	}
	return dst
}
