package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractAutomaton() *domain.DFA {
	return domain.MustNew(domain.Description{
		SymbolSet:        domain.SymbolSetDescription{Representations: []string{"a", "b"}},
		StartingState:    0,
		StateTransitions: [][]int{{1, 0}, {1, 0}},
		AcceptingStates:  []int{1},
	})
}

// RunAutomatonStoreContract runs a suite of tests to verify that an AutomatonStore
// implementation adheres to the defined interface contract.
func RunAutomatonStoreContract(t *testing.T, store AutomatonStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")
	dfa := contractAutomaton()

	t.Run("Save and Load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, dfa), "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, domain.Equivalent(dfa, loaded))
		assert.Equal(t, dfa.Symbols().Representations(), loaded.Symbols().Representations())

		ok, err := loaded.Accepts([]string{"b", "a"})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Overwrite", func(t *testing.T) {
		replacement := domain.MustNew(domain.Description{
			SymbolSet:        domain.SymbolSetDescription{Length: 1},
			StateTransitions: [][]int{{0}},
			AcceptingStates:  []int{0},
		})
		require.NoError(t, store.Save(ctx, name, replacement))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, 1, loaded.Symbols().Len())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, ErrAutomatonNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, dfa))
		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, ErrAutomatonNotFound, "Load after Delete should return ErrAutomatonNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, id2, dfa))
		require.NoError(t, store.Save(ctx, id1, dfa))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.IsIncreasing(t, names)
	})
}
