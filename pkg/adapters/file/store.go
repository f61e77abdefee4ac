package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/turnstile/pkg/codec"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/aretw0/turnstile/pkg/ports"
)

// DefaultPath is the directory used when none is configured.
var DefaultPath = filepath.Join(".turnstile", "automata")

// DefaultExtension is used when saving automata.
const DefaultExtension = ".dfa"

// extensions are probed in order by Load.
var extensions = []string{DefaultExtension, ".json", ".yaml", ".yml"}

// Store implements ports.AutomatonStore on a directory of description files.
// Hand written ".json", ".yaml" and ".yml" files are readable next to saved ".dfa" files.
type Store struct {
	BasePath string
}

// NewStore creates a new Store with the given base path.
// If basePath is empty, it defaults to ".turnstile/automata".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = DefaultPath
	}
	return &Store{BasePath: basePath}
}

// Save writes the automaton as JSON to <name>.dfa.
func (s *Store) Save(ctx context.Context, name string, dfa *domain.DFA) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure automata directory: %w", err)
	}
	// Drop stale files in other formats so Load does not resolve an older version.
	for _, ext := range extensions[1:] {
		_ = os.Remove(filepath.Join(s.BasePath, name+ext))
	}
	return codec.Save(filepath.Join(s.BasePath, name+DefaultExtension), dfa)
}

// Load reads the first existing <name>.<ext> file.
func (s *Store) Load(ctx context.Context, name string) (*domain.DFA, error) {
	if err := ports.ValidateName(name); err != nil {
		return nil, err
	}
	for _, ext := range extensions {
		path := filepath.Join(s.BasePath, name+ext)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat automaton file: %w", err)
		}
		return codec.Load(path)
	}
	return nil, ports.ErrAutomatonNotFound
}

// Delete removes every file stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ports.ValidateName(name); err != nil {
		return err
	}
	for _, ext := range extensions {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete automaton file: %w", err)
		}
	}
	return nil
}

// List returns the names of all description files in the directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read automata directory: %w", err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !supported(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if ports.ValidateName(name) != nil || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func supported(ext string) bool {
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}
