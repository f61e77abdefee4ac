package turnstile

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/turnstile/internal/logging"
	"github.com/aretw0/turnstile/pkg/adapters/memory"
	"github.com/aretw0/turnstile/pkg/codec"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/aretw0/turnstile/pkg/ports"
)

// Version is the release of the module.
//
//go:embed VERSION
var Version string

// Registry is the high-level entry point for Turnstile.
// It resolves named automata from a store and answers membership queries on them.
type Registry struct {
	store  ports.AutomatonStore
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Registry.
type Option func(*Registry)

// WithStore injects the AutomatonStore. Defaults to an in-memory store.
func WithStore(s ports.AutomatonStore) Option {
	return func(r *Registry) {
		r.store = s
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Registry) {
		r.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates a Registry.
func New(opts ...Option) *Registry {
	r := &Registry{}
	for _, opt := range opts {
		opt(r)
	}
	if r.store == nil {
		r.store = memory.NewStore()
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Load reads a single automaton from a JSON or YAML file.
func Load(path string) (*domain.DFA, error) {
	return codec.Load(path)
}

// Store returns the underlying AutomatonStore.
func (r *Registry) Store() ports.AutomatonStore {
	return r.store
}

// Put stores an automaton under name.
func (r *Registry) Put(ctx context.Context, name string, dfa *domain.DFA) error {
	if err := r.store.Save(ctx, name, dfa); err != nil {
		r.logger.Error("failed to store automaton", "automaton", name, "error", err)
		return err
	}
	r.logger.Debug("automaton stored", "automaton", name, "states", dfa.NumStates())
	if r.hooks.OnStore != nil {
		r.hooks.OnStore(ctx, &domain.StoreEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStore, Automaton: name},
			Operation: "save",
			States:    dfa.NumStates(),
		})
	}
	return nil
}

// PutDescription builds an automaton from desc and stores it.
func (r *Registry) PutDescription(ctx context.Context, name string, desc domain.Description) (*domain.DFA, error) {
	dfa, err := domain.New(desc)
	if err != nil {
		return nil, err
	}
	if err := r.Put(ctx, name, dfa); err != nil {
		return nil, err
	}
	return dfa, nil
}

// Get resolves an automaton by name.
func (r *Registry) Get(ctx context.Context, name string) (*domain.DFA, error) {
	dfa, err := r.store.Load(ctx, name)
	if err != nil {
		if !errors.Is(err, ports.ErrAutomatonNotFound) {
			r.logger.Error("failed to load automaton", "automaton", name, "error", err)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return dfa, nil
}

// Delete removes an automaton.
func (r *Registry) Delete(ctx context.Context, name string) error {
	if err := r.store.Delete(ctx, name); err != nil {
		return err
	}
	if r.hooks.OnStore != nil {
		r.hooks.OnStore(ctx, &domain.StoreEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStore, Automaton: name},
			Operation: "delete",
		})
	}
	return nil
}

// List returns the stored names.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	return r.store.List(ctx)
}

// Accepts runs a word of symbol representations against the named automaton.
func (r *Registry) Accepts(ctx context.Context, name string, word []string) (bool, error) {
	dfa, err := r.Get(ctx, name)
	if err != nil {
		return false, err
	}
	return r.observe(ctx, name, len(word), func() (bool, error) {
		return dfa.Accepts(word)
	})
}

// AcceptsIdentifiers runs a word of symbol identifiers against the named automaton.
func (r *Registry) AcceptsIdentifiers(ctx context.Context, name string, ids []int) (bool, error) {
	dfa, err := r.Get(ctx, name)
	if err != nil {
		return false, err
	}
	return r.observe(ctx, name, len(ids), func() (bool, error) {
		return dfa.AcceptsIdentifiers(ids)
	})
}

// AcceptsWord parses a textual word against the named automaton's symbols and runs it.
// The automaton is loaded once, so parsing and the query see the same version.
// The second result is the number of symbols parsed.
func (r *Registry) AcceptsWord(ctx context.Context, name, word string) (bool, int, error) {
	dfa, err := r.Get(ctx, name)
	if err != nil {
		return false, 0, err
	}
	ids, err := dfa.Symbols().Parse(word)
	if err != nil {
		return false, 0, err
	}
	accepted, err := r.observe(ctx, name, len(ids), func() (bool, error) {
		return dfa.AcceptsIdentifiers(ids)
	})
	return accepted, len(ids), err
}

func (r *Registry) observe(ctx context.Context, name string, length int, query func() (bool, error)) (bool, error) {
	start := time.Now()
	accepted, err := query()
	elapsed := time.Since(start)

	if err != nil {
		r.logger.Debug("query rejected", "automaton", name, "length", length, "error", err)
	} else {
		r.logger.Debug("query", "automaton", name, "length", length, "accepted", accepted)
	}
	if r.hooks.OnQuery != nil {
		r.hooks.OnQuery(ctx, &domain.QueryEvent{
			EventBase: domain.EventBase{Timestamp: start, Type: domain.EventQuery, Automaton: name},
			Length:    length,
			Accepted:  accepted,
			Err:       err,
			Duration:  elapsed,
		})
	}
	return accepted, err
}
