// Package kmp implements Knuth-Morris-Pratt exact substring search.
//
// A failure table is built over the pattern for every search, so a search
// costs O(len(text) + len(pattern)) and keeps no state between calls.
package kmp

import (
	"errors"
	"fmt"
)

// NotFound is returned by Search when the pattern does not occur in the text.
const NotFound = -1

// ErrInvalidArgument is returned by Find when the pattern or text is empty, or
// when the pattern is longer than the text.
var ErrInvalidArgument = errors.New("kmp: invalid argument")

// Table returns the failure table for pattern. It has len(pattern)+1 entries;
// entry i is the length of the longest proper prefix of pattern[:i] that is
// also a suffix of it, and entry 0 is -1.
func Table(pattern []byte) []int {
	table := make([]int, len(pattern)+1)
	table[0] = -1

	prefix := 0
	i := 1
	for i < len(pattern) {
		switch {
		case pattern[prefix] == pattern[i]:
			prefix++
			i++
			table[i] = prefix
		case prefix > 0:
			prefix = table[prefix]
		default:
			i++
			table[i] = 0
		}
	}
	return table
}

// Find returns the index of the first occurrence of pattern in text, or
// NotFound.
func Find(pattern, text []byte) (int, error) {
	switch {
	case len(pattern) == 0:
		return NotFound, fmt.Errorf("%w: empty pattern", ErrInvalidArgument)
	case len(text) == 0:
		return NotFound, fmt.Errorf("%w: empty text", ErrInvalidArgument)
	case len(pattern) > len(text):
		return NotFound, fmt.Errorf("%w: pattern longer than text", ErrInvalidArgument)
	}

	table := Table(pattern)
	t, p := 0, 0
	for t < len(text) {
		if pattern[p] == text[t] {
			t++
			p++
			if p == len(pattern) {
				return t - p, nil
			}
			continue
		}
		p = table[p]
		if p < 0 {
			t++
			p++
		}
	}
	return NotFound, nil
}

// Search is like Find, but an invalid argument is reported as NotFound.
// It is meant for loops that grow a pattern until it stops matching.
func Search(pattern, text []byte) int {
	i, err := Find(pattern, text)
	if err != nil {
		return NotFound
	}
	return i
}

// Index is Search for strings.
func Index(pattern, text string) int {
	return Search([]byte(pattern), []byte(text))
}
