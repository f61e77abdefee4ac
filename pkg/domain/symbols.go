package domain

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SymbolSet is the ordered alphabet of an automaton.
// The position of a representation is its symbol identifier.
type SymbolSet struct {
	reps  []string
	index map[string]int
}

// NewSymbolSet builds a symbol set from external representations.
// When a representation appears more than once, lookups resolve to its first index.
func NewSymbolSet(reps []string) SymbolSet {
	s := SymbolSet{
		reps:  append([]string(nil), reps...),
		index: make(map[string]int, len(reps)),
	}
	for i, r := range reps {
		if _, seen := s.index[r]; !seen {
			s.index[r] = i
		}
	}
	return s
}

// NumberedSymbolSet builds a symbol set of n symbols represented as "0".."n-1".
func NumberedSymbolSet(n int) SymbolSet {
	reps := make([]string, n)
	for i := range reps {
		reps[i] = strconv.Itoa(i)
	}
	return NewSymbolSet(reps)
}

// Len returns the number of symbols.
func (s SymbolSet) Len() int {
	return len(s.reps)
}

// Representations returns a copy of the ordered representations.
func (s SymbolSet) Representations() []string {
	return append([]string(nil), s.reps...)
}

// Representation returns the external form of a symbol identifier.
func (s SymbolSet) Representation(id int) (string, error) {
	if id < 0 || id >= len(s.reps) {
		return "", fmt.Errorf("%w: %d (symbols: %d)", ErrOutOfRangeSymbol, id, len(s.reps))
	}
	return s.reps[id], nil
}

// Index returns the identifier of a representation.
func (s SymbolSet) Index(rep string) (int, bool) {
	id, ok := s.index[rep]
	return id, ok
}

// Encode maps representations to identifiers.
// The returned error wraps ErrUnknownSymbol and names the offending position.
func (s SymbolSet) Encode(reps []string) ([]int, error) {
	ids := make([]int, len(reps))
	for pos, r := range reps {
		id, ok := s.index[r]
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownSymbol, r, pos)
		}
		ids[pos] = id
	}
	return ids, nil
}

// Parse splits a textual word into representations and encodes it.
// Whitespace separates symbols. A word without whitespace is split per character
// when every representation is a single character.
func (s SymbolSet) Parse(word string) ([]int, error) {
	fields := strings.Fields(word)
	if len(fields) == 1 && s.singleRune() {
		single := fields[0]
		fields = fields[:0]
		for _, r := range single {
			fields = append(fields, string(r))
		}
	}
	return s.Encode(fields)
}

func (s SymbolSet) singleRune() bool {
	for _, r := range s.reps {
		if utf8.RuneCountInString(r) != 1 {
			return false
		}
	}
	return len(s.reps) > 0
}

// Format renders identifiers as a quoted, space separated word, e.g. "1 0 1".
// Identifiers outside the set are rendered as "?".
func (s SymbolSet) Format(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		rep, err := s.Representation(id)
		if err != nil {
			rep = "?"
		}
		parts[i] = rep
	}
	return strconv.Quote(strings.Join(parts, " "))
}

// IsSubset reports whether every representation of s is also in other.
func (s SymbolSet) IsSubset(other SymbolSet) bool {
	for _, r := range s.reps {
		if _, ok := other.index[r]; !ok {
			return false
		}
	}
	return true
}

// SignatureSize is the number of words of length 0..k over the set.
func (s SymbolSet) SignatureSize(k int) int {
	total, pow := 0, 1
	for i := 0; i <= k; i++ {
		total += pow
		pow *= len(s.reps)
	}
	return total
}

// IndexOf returns the position of a word in the shortlex order produced by Enumerate.
func (s SymbolSet) IndexOf(ids []int) int {
	idx := 0
	for _, id := range ids {
		idx = idx*len(s.reps) + id + 1
	}
	return idx
}

// ElementAt is the inverse of IndexOf.
func (s SymbolSet) ElementAt(idx int) []int {
	n := len(s.reps)
	if n == 0 {
		return []int{}
	}
	var word []int
	for idx > 0 {
		idx--
		word = append(word, idx%n)
		idx /= n
	}
	for i, j := 0, len(word)-1; i < j; i, j = i+1, j-1 {
		word[i], word[j] = word[j], word[i]
	}
	if word == nil {
		word = []int{}
	}
	return word
}

// Enumerate yields every word of length 0..k in shortlex order.
// Nothing is yielded when k is negative.
// The yielded slice is reused between iterations; copy it to retain it.
func (s SymbolSet) Enumerate(k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 {
			return
		}
		n := len(s.reps)
		word := make([]int, 0, k)
		for {
			if !yield(word) {
				return
			}
			i := len(word) - 1
			for i >= 0 && word[i] == n-1 {
				word[i] = 0
				i--
			}
			if i >= 0 {
				word[i]++
				continue
			}
			if len(word) == k || n == 0 {
				return
			}
			word = append(word, 0)
		}
	}
}
