package domain_test

import (
	"testing"

	"github.com/aretw0/turnstile/internal/testutils"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDFA_Accepts_ContainsOne(t *testing.T) {
	dfa, err := domain.New(testutils.ContainsOne())
	require.NoError(t, err)

	tests := []struct {
		name  string
		input []string
		want  bool
	}{
		{"Mixed word ending accepted", []string{"1", "1", "0", "0", "1", "1"}, true},
		{"Empty word", []string{}, false},
		{"Nil word", nil, false},
		{"Only zeros", []string{"0", "0"}, false},
		{"Zeros after a one", []string{"1", "0", "0"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dfa.Accepts(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDFA_Accepts_UnknownSymbol(t *testing.T) {
	dfa := domain.MustNew(testutils.ContainsOne())

	_, err := dfa.Accepts([]string{"1", "2"})
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
	assert.Contains(t, err.Error(), "position 1")
}

func TestDFA_Accepts_DoesNotModifyInput(t *testing.T) {
	dfa := domain.MustNew(testutils.ContainsOne())
	input := []string{"0", "1"}

	_, err := dfa.Accepts(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, input)
}

func TestDFA_AcceptsIdentifiers(t *testing.T) {
	dfa := domain.MustNew(testutils.StartsWithOne())

	ok, err := dfa.AcceptsIdentifiers([]int{1, 0, 0})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dfa.AcceptsIdentifiers([]int{0, 1})
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("Out of range symbol", func(t *testing.T) {
		_, err := dfa.AcceptsIdentifiers([]int{1, 2})
		assert.ErrorIs(t, err, domain.ErrOutOfRangeSymbol)

		_, err = dfa.AcceptsIdentifiers([]int{-1})
		assert.ErrorIs(t, err, domain.ErrOutOfRangeSymbol)
	})

	t.Run("Deterministic", func(t *testing.T) {
		word := []int{1, 0, 1, 1}
		first, err := dfa.AcceptsIdentifiers(word)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := dfa.AcceptsIdentifiers(word)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})
}

func TestDFA_EmptyWordMatchesStartingState(t *testing.T) {
	for name, desc := range map[string]domain.Description{
		"contains_one":    testutils.ContainsOne(),
		"even_ones":       testutils.EvenOnes(),
		"starts_with_one": testutils.StartsWithOne(),
		"one_peg":         testutils.OnePeg(),
	} {
		t.Run(name, func(t *testing.T) {
			dfa := domain.MustNew(desc)
			got, err := dfa.Accepts([]string{})
			require.NoError(t, err)
			assert.Equal(t, dfa.IsAccepting(dfa.StartingState()), got)
		})
	}
}

func TestDFA_AcceptsFrom(t *testing.T) {
	dfa := domain.MustNew(testutils.StartsWithOne())

	ok, err := dfa.AcceptsFrom(1, []int{0, 0})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = dfa.AcceptsFrom(7, nil)
	assert.ErrorIs(t, err, domain.ErrOutOfRangeState)
}

func TestDFA_ZeroValueReportsOutOfRangeState(t *testing.T) {
	var dfa domain.DFA

	_, err := dfa.AcceptsIdentifiers(nil)
	assert.ErrorIs(t, err, domain.ErrOutOfRangeState)
}

func TestDFA_FinalState(t *testing.T) {
	dfa := domain.MustNew(testutils.StartsWithOne())

	state, err := dfa.FinalState([]int{0, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, state)
}

func TestDFA_NumberedSymbolSet(t *testing.T) {
	dfa := domain.MustNew(testutils.EvenOnes())

	assert.Equal(t, []string{"0", "1"}, dfa.Symbols().Representations())
	ok, err := dfa.Accepts([]string{"1", "0", "1"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDFA_DuplicateRepresentationResolvesToFirst(t *testing.T) {
	dfa := domain.MustNew(domain.Description{
		SymbolSet:        domain.SymbolSetDescription{Representations: []string{"a", "a"}},
		StateTransitions: [][]int{{0, 1}, {1, 1}},
		AcceptingStates:  []int{1},
	})

	ok, err := dfa.Accepts([]string{"a", "a"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *domain.Description)
	}{
		{"No symbols", func(d *domain.Description) { d.SymbolSet = domain.SymbolSetDescription{} }},
		{"Negative length", func(d *domain.Description) { d.SymbolSet = domain.SymbolSetDescription{Length: -1} }},
		{"Length disagrees with representations", func(d *domain.Description) { d.SymbolSet.Length = 3 }},
		{"No states", func(d *domain.Description) { d.StateTransitions = nil }},
		{"Starting state out of range", func(d *domain.Description) { d.StartingState = 2 }},
		{"Negative starting state", func(d *domain.Description) { d.StartingState = -1 }},
		{"Short row", func(d *domain.Description) { d.StateTransitions[1] = []int{1} }},
		{"Long row", func(d *domain.Description) { d.StateTransitions[0] = []int{0, 1, 1} }},
		{"Destination out of range", func(d *domain.Description) { d.StateTransitions[0][1] = 5 }},
		{"Accepting state out of range", func(d *domain.Description) { d.AcceptingStates = []int{1, 2} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := testutils.ContainsOne()
			tt.mutate(&desc)

			dfa, err := domain.New(desc)
			assert.Nil(t, dfa)
			assert.ErrorIs(t, err, domain.ErrMalformedDescription)
		})
	}
}

func TestNew_CopiesDescription(t *testing.T) {
	desc := testutils.ContainsOne()
	dfa := domain.MustNew(desc)

	desc.StateTransitions[0][1] = 0
	desc.SymbolSet.Representations[1] = "x"

	ok, err := dfa.Accepts([]string{"1"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() {
		domain.MustNew(domain.Description{})
	})
}

func TestDFA_DescriptionRoundTrip(t *testing.T) {
	for name, desc := range map[string]domain.Description{
		"contains_one":    testutils.ContainsOne(),
		"even_ones":       testutils.EvenOnes(),
		"starts_with_one": testutils.StartsWithOne(),
		"one_peg":         testutils.OnePeg(),
	} {
		t.Run(name, func(t *testing.T) {
			original := domain.MustNew(desc)
			rebuilt, err := domain.New(original.Description())
			require.NoError(t, err)

			assert.True(t, domain.Equivalent(original, rebuilt))
			for word := range original.Symbols().Enumerate(8) {
				want, err := original.AcceptsIdentifiers(word)
				require.NoError(t, err)
				got, err := rebuilt.AcceptsIdentifiers(word)
				require.NoError(t, err)
				require.Equal(t, want, got, "word %v", word)
			}
		})
	}
}

func TestDFA_Description(t *testing.T) {
	desc := domain.MustNew(testutils.EvenOnes()).Description()

	assert.Equal(t, 2, desc.SymbolSet.Length)
	assert.Equal(t, []string{"0", "1"}, desc.SymbolSet.Representations)
	assert.Equal(t, 0, desc.StartingState)
	assert.Equal(t, [][]int{{0, 1}, {1, 0}}, desc.StateTransitions)
	assert.Equal(t, []int{0}, desc.AcceptingStates)
}

func TestDFA_Description_AcceptingStatesAscending(t *testing.T) {
	dfa := domain.MustNew(domain.Description{
		SymbolSet:        domain.SymbolSetDescription{Length: 1},
		StateTransitions: [][]int{{1}, {2}, {0}},
		AcceptingStates:  []int{2, 0, 2},
	})

	assert.Equal(t, []int{0, 2}, dfa.Description().AcceptingStates)
}
