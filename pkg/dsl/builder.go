package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/turnstile/pkg/domain"
)

// Builder manages the automaton construction.
type Builder struct {
	symbols   domain.SymbolSet
	order     []string
	states    map[string]*StateBuilder
	start     string
	otherwise string
	errs      []error
}

// New creates a builder over the given symbol representations.
func New(symbols ...string) *Builder {
	return &Builder{
		symbols: domain.NewSymbolSet(symbols),
		states:  make(map[string]*StateBuilder),
	}
}

// Add creates a new state. States are numbered in the order they are first added.
// If the state already exists, it returns the existing builder.
func (b *Builder) Add(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		name:        name,
		transitions: make(map[int]string),
		builder:     b,
	}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Otherwise routes every transition left unset, in any state, to target.
// A per-state Otherwise takes precedence.
func (b *Builder) Otherwise(target string) *Builder {
	b.otherwise = target
	return b
}

// Names returns state names indexed by state identifier.
func (b *Builder) Names() []string {
	return append([]string(nil), b.order...)
}

// ID returns the identifier a state will be given.
func (b *Builder) ID(name string) (int, bool) {
	for i, n := range b.order {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Build compiles the states into an automaton.
// Without an explicit Start the first added state is the starting state.
func (b *Builder) Build() (*domain.DFA, error) {
	desc, err := b.Description()
	if err != nil {
		return nil, err
	}
	return domain.New(desc)
}

// Description compiles the states into a description without validating it further.
func (b *Builder) Description() (domain.Description, error) {
	if len(b.errs) > 0 {
		return domain.Description{}, errors.Join(b.errs...)
	}
	if len(b.order) == 0 {
		return domain.Description{}, fmt.Errorf("%w: no states", domain.ErrMalformedDescription)
	}

	ids := make(map[string]int, len(b.order))
	for i, name := range b.order {
		ids[name] = i
	}
	resolve := func(from, target string) (int, error) {
		id, ok := ids[target]
		if !ok {
			return 0, fmt.Errorf("%w: state %q moves to undefined state %q", domain.ErrMalformedDescription, from, target)
		}
		return id, nil
	}

	desc := domain.Description{
		SymbolSet: domain.SymbolSetDescription{Representations: b.symbols.Representations()},
	}
	if b.start != "" {
		desc.StartingState = ids[b.start]
	}

	desc.StateTransitions = make([][]int, len(b.order))
	for i, name := range b.order {
		sb := b.states[name]
		if sb.accepting {
			desc.AcceptingStates = append(desc.AcceptingStates, i)
		}

		row := make([]int, b.symbols.Len())
		for sym := range row {
			target, ok := sb.transitions[sym]
			if !ok {
				target = sb.otherwise
			}
			if target == "" {
				target = b.otherwise
			}
			if target == "" {
				rep, _ := b.symbols.Representation(sym)
				return domain.Description{}, fmt.Errorf("%w: state %q has no transition on %q",
					domain.ErrMalformedDescription, name, rep)
			}
			id, err := resolve(name, target)
			if err != nil {
				return domain.Description{}, err
			}
			row[sym] = id
		}
		desc.StateTransitions[i] = row
	}
	return desc, nil
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	name        string
	accepting   bool
	transitions map[int]string
	otherwise   string
	builder     *Builder
}

// Start marks the state as the starting state.
func (s *StateBuilder) Start() *StateBuilder {
	b := s.builder
	if b.start != "" && b.start != s.name {
		b.errs = append(b.errs, fmt.Errorf("%w: both %q and %q are marked as start",
			domain.ErrMalformedDescription, b.start, s.name))
		return s
	}
	b.start = s.name
	return s
}

// Accept marks the state as accepting.
func (s *StateBuilder) Accept() *StateBuilder {
	s.accepting = true
	return s
}

// On sets the transition taken on each of the given symbols.
func (s *StateBuilder) On(target string, symbols ...string) *StateBuilder {
	for _, rep := range symbols {
		id, ok := s.builder.symbols.Index(rep)
		if !ok {
			s.builder.errs = append(s.builder.errs, fmt.Errorf("state %q: %w: %q", s.name, domain.ErrUnknownSymbol, rep))
			continue
		}
		s.transitions[id] = target
	}
	return s
}

// Loop keeps the state on each of the given symbols.
func (s *StateBuilder) Loop(symbols ...string) *StateBuilder {
	return s.On(s.name, symbols...)
}

// Otherwise routes every symbol without an explicit transition to target.
func (s *StateBuilder) Otherwise(target string) *StateBuilder {
	s.otherwise = target
	return s
}
