package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/aretw0/turnstile/pkg/ports"
)

// Store implements ports.AutomatonStore in memory.
// Safe for concurrent use. Automata are immutable, so pointers are shared as-is.
type Store struct {
	data map[string]*domain.DFA
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.DFA),
	}
}

// NewFromAutomata creates a store preloaded with named automata.
func NewFromAutomata(automata map[string]*domain.DFA) (*Store, error) {
	s := NewStore()
	for name, dfa := range automata {
		if err := s.Save(context.Background(), name, dfa); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save stores the automaton in memory.
func (s *Store) Save(ctx context.Context, name string, dfa *domain.DFA) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = dfa
	return nil
}

// Load retrieves the automaton from memory.
func (s *Store) Load(ctx context.Context, name string) (*domain.DFA, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dfa, ok := s.data[name]
	if !ok {
		return nil, ports.ErrAutomatonNotFound
	}
	return dfa, nil
}

// Delete removes the automaton.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
