/*
Package domain contains the core model of the Turnstile engine: a deterministic
finite automaton and the symbol set it reads.

It is kept pure and free of I/O, following the same Hexagonal split as the rest of
the module. Loading, storage and rendering live in codec, ports and adapters.

# Key Entities

  - SymbolSet: Ordered list of symbol representations. The index of a representation is its identifier.
  - Description: The external, serialisable shape of an automaton (symbol set, start, table, accepting states).
  - DFA: The validated, immutable automaton built from a Description. Safe for concurrent readers.

# Usage

	dfa, err := domain.New(domain.Description{
		SymbolSet:        domain.SymbolSetDescription{Representations: []string{"0", "1"}},
		StartingState:    0,
		StateTransitions: [][]int{{0, 1}, {1, 1}},
		AcceptingStates:  []int{1},
	})
	if err != nil {
		return err
	}
	ok, err := dfa.Accepts([]string{"0", "1"})
*/
package domain
