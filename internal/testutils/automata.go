package testutils

import "github.com/aretw0/turnstile/pkg/domain"

// ContainsOneJSON accepts binary words containing at least one "1".
const ContainsOneJSON = `{
  "symbol_set": {"length": 2, "representations": ["0", "1"]},
  "starting_state": 0,
  "state_transitions": [[0, 1], [1, 1]],
  "accepting_states": [1]
}`

// ContainsOne returns the description behind ContainsOneJSON.
func ContainsOne() domain.Description {
	return domain.Description{
		SymbolSet:        domain.SymbolSetDescription{Length: 2, Representations: []string{"0", "1"}},
		StartingState:    0,
		StateTransitions: [][]int{{0, 1}, {1, 1}},
		AcceptingStates:  []int{1},
	}
}

// StartsWithOne accepts binary words whose first symbol is "1".
// State 2 is a rejecting sink.
func StartsWithOne() domain.Description {
	return domain.Description{
		SymbolSet:        domain.SymbolSetDescription{Representations: []string{"0", "1"}},
		StartingState:    0,
		StateTransitions: [][]int{{2, 1}, {1, 1}, {2, 2}},
		AcceptingStates:  []int{1},
	}
}

// EvenOnes accepts binary words with an even number of "1" symbols.
func EvenOnes() domain.Description {
	return domain.Description{
		SymbolSet:        domain.SymbolSetDescription{Length: 2},
		StartingState:    0,
		StateTransitions: [][]int{{0, 1}, {1, 0}},
		AcceptingStates:  []int{0},
	}
}

// EvenOnesRedundant is EvenOnes with every state duplicated.
func EvenOnesRedundant() domain.Description {
	return domain.Description{
		SymbolSet:        domain.SymbolSetDescription{Length: 2},
		StartingState:    0,
		StateTransitions: [][]int{{2, 1}, {3, 0}, {0, 3}, {1, 2}},
		AcceptingStates:  []int{0, 2},
	}
}

// OnePeg is the 18 state one-dimensional peg solitaire automaton.
func OnePeg() domain.Description {
	return domain.Description{
		SymbolSet:     domain.SymbolSetDescription{Length: 2, Representations: []string{"0", "1"}},
		StartingState: 0,
		StateTransitions: [][]int{
			{1, 2}, {1, 3}, {4, 5}, {4, 6}, {7, 8}, {3, 9}, {3, 9}, {7, 10}, {11, 4},
			{12, 13}, {10, 10}, {10, 14}, {10, 15}, {8, 16}, {11, 7}, {10, 11}, {12, 17}, {14, 16},
		},
		AcceptingStates: []int{2, 3, 4, 6, 7},
	}
}
