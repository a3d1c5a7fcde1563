package pack

const (
	minHistory = 1 << 16
	maxHistory = 1 << 18

	hashBits     = 14
	maxTableSize = 1 << hashBits
	tableMask    = maxTableSize - 1

	// hashMinLength is the shortest match HashGreedy will report.
	hashMinLength = 3
)

// HashGreedy is an implementation of the MatchFinder interface that indexes
// every position by a hash of its first three bytes, and takes the longest
// match at each position it reaches (greedy parsing). Matches can overlap the
// data they copy from (Distance < Length), so a long run of one byte becomes
// a single match with Distance 1.
type HashGreedy struct {
	// MaxDistance is the maximum distance (in bytes) to look back for
	// a match. The default is 65535.
	MaxDistance int

	// table holds the most recent position+1 for each hash; 0 means empty.
	table [maxTableSize]uint32

	history []byte
}

func (q *HashGreedy) Reset() {
	q.table = [maxTableSize]uint32{}
	q.history = q.history[:0]
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
func (q *HashGreedy) FindMatches(dst []Match, src []byte) []Match {
	if q.MaxDistance == 0 {
		q.MaxDistance = 65535
	}

	if len(q.history) > maxHistory {
		// Trim down the history buffer.
		delta := len(q.history) - minHistory
		copy(q.history, q.history[delta:])
		q.history = q.history[:minHistory]

		for i, v := range q.table {
			newV := int(v) - delta
			if newV < 0 {
				newV = 0
			}
			q.table[i] = uint32(newV)
		}
	}

	// Append src to the history buffer.
	start := len(q.history)
	q.history = append(q.history, src...)

	return q.parse(dst, start, len(q.history))
}

func (q *HashGreedy) parse(dst []Match, start, end int) []Match {
	s := start
	nextEmit := start

	for s < end {
		m := q.search(s, end)
		if m.End-m.Start < hashMinLength {
			s++
			continue
		}

		dst = append(dst, Match{
			Unmatched: m.Start - nextEmit,
			Length:    m.End - m.Start,
			Distance:  m.Start - m.Match,
		})

		// Index the positions covered by the match, so later data can refer
		// back into it.
		for i := m.Start + 1; i < m.End && i+hashMinLength <= end; i++ {
			q.table[hash3(q.history[i:])&tableMask] = uint32(i + 1)
		}
		nextEmit = m.End
		s = nextEmit
	}

	if nextEmit < end {
		dst = append(dst, Match{
			Unmatched: end - nextEmit,
		})
	}
	return dst
}

// search looks for the longest match starting at pos that ends by max.
func (q *HashGreedy) search(pos, max int) AbsoluteMatch {
	if pos+hashMinLength > max {
		return AbsoluteMatch{}
	}
	src := q.history

	h := hash3(src[pos:]) & tableMask
	candidate := int(q.table[h]) - 1
	q.table[h] = uint32(pos + 1)

	if candidate < 0 || pos-candidate > q.MaxDistance {
		return AbsoluteMatch{}
	}

	end := extendMatch(src[:max], candidate, pos)
	return AbsoluteMatch{
		Start: pos,
		End:   end,
		Match: candidate,
	}
}

// An AbsoluteMatch is like a Match, but it stores indexes into the byte
// stream instead of lengths.
type AbsoluteMatch struct {
	// Start is the index of the first byte.
	Start int

	// End is the index of the byte after the last byte
	// (so that End - Start = Length).
	End int

	// Match is the index of the previous data that matches
	// (Start - Match = Distance).
	Match int
}

func hash3(b []byte) uint32 {
	u := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	return (u * 0x1e35a7bd) >> (32 - hashBits)
}

// extendMatch returns the largest k such that k <= len(src) and that
// src[i:i+k-j] and src[j:k] have the same contents. The two ranges may
// overlap.
//
// It assumes that:
//
//	0 <= i && i < j && j <= len(src)
func extendMatch(src []byte, i, j int) int {
	for ; j < len(src) && src[i] == src[j]; i, j = i+1, j+1 {
	}
	return j
}
