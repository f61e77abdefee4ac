package domain_test

import (
	"slices"
	"testing"

	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolSet_Encode(t *testing.T) {
	s := domain.NewSymbolSet([]string{"a", "bb", "c"})

	ids, err := s.Encode([]string{"c", "a", "bb"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, ids)

	_, err = s.Encode([]string{"a", "d"})
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}

func TestSymbolSet_Parse(t *testing.T) {
	binary := domain.NumberedSymbolSet(2)

	ids, err := binary.Parse("1101")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 0, 1}, ids)

	ids, err = binary.Parse("1 1 0")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 0}, ids)

	ids, err = binary.Parse("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	words := domain.NewSymbolSet([]string{"up", "down"})
	ids, err = words.Parse("up down  up")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0}, ids)

	_, err = words.Parse("updown")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)

	t.Run("Surrounding whitespace", func(t *testing.T) {
		for _, word := range []string{" 101 ", "101\t", "101 ", "\n101"} {
			ids, err := binary.Parse(word)
			require.NoError(t, err, "%q", word)
			assert.Equal(t, []int{1, 0, 1}, ids, "%q", word)
		}
	})
}

func TestSymbolSet_Format(t *testing.T) {
	s := domain.NumberedSymbolSet(3)

	assert.Equal(t, `"2 0 1"`, s.Format([]int{2, 0, 1}))
	assert.Equal(t, `""`, s.Format(nil))
	assert.Equal(t, `"0 ?"`, s.Format([]int{0, 9}))
}

func TestSymbolSet_Representation(t *testing.T) {
	s := domain.NewSymbolSet([]string{"x"})

	rep, err := s.Representation(0)
	require.NoError(t, err)
	assert.Equal(t, "x", rep)

	_, err = s.Representation(1)
	assert.ErrorIs(t, err, domain.ErrOutOfRangeSymbol)
}

func TestSymbolSet_Enumerate(t *testing.T) {
	s := domain.NumberedSymbolSet(2)

	var words [][]int
	for w := range s.Enumerate(2) {
		words = append(words, slices.Clone(w))
	}
	assert.Equal(t, [][]int{{}, {0}, {1}, {0, 0}, {0, 1}, {1, 0}, {1, 1}}, words)
	assert.Len(t, words, s.SignatureSize(2))

	t.Run("Zero length", func(t *testing.T) {
		count := 0
		for range s.Enumerate(0) {
			count++
		}
		assert.Equal(t, 1, count)
	})

	t.Run("Negative length", func(t *testing.T) {
		count := 0
		for range s.Enumerate(-1) {
			count++
		}
		assert.Zero(t, count)
	})

	t.Run("Early stop", func(t *testing.T) {
		count := 0
		for range s.Enumerate(10) {
			count++
			if count == 3 {
				break
			}
		}
		assert.Equal(t, 3, count)
	})
}

func TestSymbolSet_IndexBijection(t *testing.T) {
	s := domain.NumberedSymbolSet(3)

	i := 0
	for w := range s.Enumerate(3) {
		assert.Equal(t, i, s.IndexOf(w), "word %v", w)
		assert.Equal(t, w, s.ElementAt(i))
		i++
	}
	assert.Equal(t, 1+3+9+27, i)
}

func TestSymbolSet_IsSubset(t *testing.T) {
	small := domain.NewSymbolSet([]string{"0", "1"})
	large := domain.NewSymbolSet([]string{"1", "2", "0"})

	assert.True(t, small.IsSubset(large))
	assert.False(t, large.IsSubset(small))
	assert.True(t, domain.NewSymbolSet(nil).IsSubset(small))
}
