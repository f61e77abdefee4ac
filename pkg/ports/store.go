package ports

import (
	"context"
	"errors"

	"github.com/aretw0/turnstile/pkg/domain"
)

// ErrAutomatonNotFound is returned when no automaton is stored under a name.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrInvalidName is returned for names that cannot be used as storage keys.
var ErrInvalidName = errors.New("invalid automaton name")

// AutomatonStore defines how named automata are persisted.
// Implementations must be safe for concurrent use.
type AutomatonStore interface {
	// Save stores the automaton under name, replacing any previous one.
	Save(ctx context.Context, name string, dfa *domain.DFA) error

	// Load retrieves an automaton by name.
	// Returns ErrAutomatonNotFound if the name does not exist.
	Load(ctx context.Context, name string) (*domain.DFA, error)

	// Delete removes an automaton. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
}
