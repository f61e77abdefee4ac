package domain

import "fmt"

// SymbolSetDescription is the serialised form of a symbol set.
// Either Representations or Length must be set; Length alone numbers symbols "0".."Length-1".
type SymbolSetDescription struct {
	Length          int      `json:"length,omitempty" yaml:"length,omitempty" mapstructure:"length"`
	Representations []string `json:"representations,omitempty" yaml:"representations,omitempty" mapstructure:"representations"`
}

// Description is the external shape an automaton is built from and saved as.
type Description struct {
	SymbolSet        SymbolSetDescription `json:"symbol_set" yaml:"symbol_set" mapstructure:"symbol_set"`
	StartingState    int                  `json:"starting_state" yaml:"starting_state" mapstructure:"starting_state"`
	StateTransitions [][]int              `json:"state_transitions" yaml:"state_transitions" mapstructure:"state_transitions"`
	AcceptingStates  []int                `json:"accepting_states" yaml:"accepting_states" mapstructure:"accepting_states"`
}

// Symbols resolves the symbol set, applying the numbered variant when only Length is given.
func (d Description) Symbols() (SymbolSet, error) {
	reps := d.SymbolSet.Representations
	switch {
	case len(reps) > 0:
		if d.SymbolSet.Length != 0 && d.SymbolSet.Length != len(reps) {
			return SymbolSet{}, fmt.Errorf("%w: symbol_set.length is %d but %d representations are listed",
				ErrMalformedDescription, d.SymbolSet.Length, len(reps))
		}
		return NewSymbolSet(reps), nil
	case d.SymbolSet.Length > 0:
		return NumberedSymbolSet(d.SymbolSet.Length), nil
	case d.SymbolSet.Length < 0:
		return SymbolSet{}, fmt.Errorf("%w: symbol_set.length is negative", ErrMalformedDescription)
	default:
		return SymbolSet{}, fmt.Errorf("%w: symbol_set is empty", ErrMalformedDescription)
	}
}

// Validate checks the dimensional invariants of the description.
func (d Description) Validate() error {
	symbols, err := d.Symbols()
	if err != nil {
		return err
	}
	states := len(d.StateTransitions)
	if states == 0 {
		return fmt.Errorf("%w: state_transitions is empty", ErrMalformedDescription)
	}
	if d.StartingState < 0 || d.StartingState >= states {
		return fmt.Errorf("%w: starting_state %d outside [0, %d)", ErrMalformedDescription, d.StartingState, states)
	}
	for state, row := range d.StateTransitions {
		if len(row) != symbols.Len() {
			return fmt.Errorf("%w: state %d has %d transitions, want %d",
				ErrMalformedDescription, state, len(row), symbols.Len())
		}
		for sym, dest := range row {
			if dest < 0 || dest >= states {
				return fmt.Errorf("%w: transition (%d, %d) targets %d outside [0, %d)",
					ErrMalformedDescription, state, sym, dest, states)
			}
		}
	}
	for _, s := range d.AcceptingStates {
		if s < 0 || s >= states {
			return fmt.Errorf("%w: accepting state %d outside [0, %d)", ErrMalformedDescription, s, states)
		}
	}
	return nil
}

// Description re-derives the external description of the automaton.
// Accepting states are listed in ascending order.
func (d *DFA) Description() Description {
	table := make([][]int, len(d.table))
	for i, row := range d.table {
		table[i] = append([]int(nil), row...)
	}
	accepting := d.AcceptingStates()
	return Description{
		SymbolSet: SymbolSetDescription{
			Length:          d.symbols.Len(),
			Representations: d.symbols.Representations(),
		},
		StartingState:    d.start,
		StateTransitions: table,
		AcceptingStates:  accepting,
	}
}
