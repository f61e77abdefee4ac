package domain

import "fmt"

// DFA is a deterministic finite automaton.
// It is immutable after New and may be shared between goroutines without locking.
type DFA struct {
	symbols   SymbolSet
	start     int
	table     [][]int
	accepting []bool
}

// New validates a description and builds the automaton from it.
// Validation failures wrap ErrMalformedDescription.
func New(desc Description) (*DFA, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	symbols, _ := desc.Symbols()

	table := make([][]int, len(desc.StateTransitions))
	for i, row := range desc.StateTransitions {
		table[i] = append([]int(nil), row...)
	}
	accepting := make([]bool, len(table))
	for _, s := range desc.AcceptingStates {
		accepting[s] = true
	}

	return &DFA{
		symbols:   symbols,
		start:     desc.StartingState,
		table:     table,
		accepting: accepting,
	}, nil
}

// MustNew is like New but panics on error. Intended for fixtures and tests.
func MustNew(desc Description) *DFA {
	d, err := New(desc)
	if err != nil {
		panic(err)
	}
	return d
}

// Symbols returns the alphabet of the automaton.
func (d *DFA) Symbols() SymbolSet {
	return d.symbols
}

// StartingState returns the initial state.
func (d *DFA) StartingState() int {
	return d.start
}

// NumStates returns the number of states.
func (d *DFA) NumStates() int {
	return len(d.table)
}

// IsAccepting reports whether state is accepting. Unknown states are not.
func (d *DFA) IsAccepting(state int) bool {
	return state >= 0 && state < len(d.accepting) && d.accepting[state]
}

// AcceptingStates lists the accepting states in ascending order.
func (d *DFA) AcceptingStates() []int {
	var states []int
	for s, ok := range d.accepting {
		if ok {
			states = append(states, s)
		}
	}
	if states == nil {
		states = []int{}
	}
	return states
}

// Transition returns the destination of a single step.
func (d *DFA) Transition(state, symbol int) (int, error) {
	if state < 0 || state >= len(d.table) {
		return 0, fmt.Errorf("%w: %d (states: %d)", ErrOutOfRangeState, state, len(d.table))
	}
	if symbol < 0 || symbol >= d.symbols.Len() {
		return 0, fmt.Errorf("%w: %d (symbols: %d)", ErrOutOfRangeSymbol, symbol, d.symbols.Len())
	}
	row := d.table[state]
	if symbol >= len(row) {
		return 0, fmt.Errorf("%w: state %d has no transition for symbol %d", ErrOutOfRangeState, state, symbol)
	}
	next := row[symbol]
	if next < 0 || next >= len(d.table) {
		return 0, fmt.Errorf("%w: transition (%d, %d) targets %d", ErrOutOfRangeState, state, symbol, next)
	}
	return next, nil
}

// FinalState runs ids from the starting state and returns the state reached.
func (d *DFA) FinalState(ids []int) (int, error) {
	return d.run(d.start, ids)
}

// AcceptsIdentifiers reports whether the word of symbol identifiers is in the language.
// The empty word is accepted iff the starting state is accepting.
func (d *DFA) AcceptsIdentifiers(ids []int) (bool, error) {
	return d.AcceptsFrom(d.start, ids)
}

// AcceptsFrom is AcceptsIdentifiers with an explicit initial state.
func (d *DFA) AcceptsFrom(start int, ids []int) (bool, error) {
	state, err := d.run(start, ids)
	if err != nil {
		return false, err
	}
	return d.IsAccepting(state), nil
}

// Accepts maps representations to identifiers and reports membership.
// An unknown representation fails with ErrUnknownSymbol; the argument is not modified.
func (d *DFA) Accepts(reps []string) (bool, error) {
	ids, err := d.symbols.Encode(reps)
	if err != nil {
		return false, err
	}
	return d.AcceptsIdentifiers(ids)
}

func (d *DFA) run(state int, ids []int) (int, error) {
	if state < 0 || state >= len(d.table) {
		return 0, fmt.Errorf("%w: %d (states: %d)", ErrOutOfRangeState, state, len(d.table))
	}
	for pos, id := range ids {
		next, err := d.Transition(state, id)
		if err != nil {
			return 0, fmt.Errorf("at position %d: %w", pos, err)
		}
		state = next
	}
	return state, nil
}
