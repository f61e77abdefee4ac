// Command gen-automata writes a catalogue of sample automata into a file store.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/turnstile/pkg/adapters/file"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/aretw0/turnstile/pkg/dsl"
)

func main() {
	targetDir := "examples/automata"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	fmt.Printf("Generating sample automata in: %s\n", targetDir)
	if err := generate(context.Background(), file.NewStore(targetDir)); err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Done.")
}

type saver interface {
	Save(ctx context.Context, name string, dfa *domain.DFA) error
}

func generate(ctx context.Context, store saver) error {
	catalogue, err := catalogue()
	if err != nil {
		return err
	}
	for _, entry := range catalogue {
		if err := store.Save(ctx, entry.name, entry.dfa); err != nil {
			return fmt.Errorf("%s: %w", entry.name, err)
		}
		fmt.Printf("  %-16s %2d states\n", entry.name, entry.dfa.NumStates())
	}
	return nil
}

type sample struct {
	name string
	dfa  *domain.DFA
}

func catalogue() ([]sample, error) {
	builders := []struct {
		name  string
		build func() (*domain.DFA, error)
	}{
		{"one-peg", onePeg},
		{"all-zero", allZero},
		{"only-one-1", onlyOneOne},
		{"only-one-2", onlyOneTwo},
		{"divisible-by-3", func() (*domain.DFA, error) { return divisibleBy(3) }},
	}

	var out []sample
	for _, b := range builders {
		dfa, err := b.build()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.name, err)
		}
		out = append(out, sample{name: b.name, dfa: dfa})
	}
	return out, nil
}

// onePeg recognises the one-dimensional peg solitaire positions that can be
// reduced to a single peg.
func onePeg() (*domain.DFA, error) {
	return domain.New(domain.Description{
		SymbolSet:     domain.SymbolSetDescription{Representations: []string{"0", "1"}},
		StartingState: 0,
		StateTransitions: [][]int{
			{1, 2}, {1, 3}, {4, 5}, {4, 6}, {7, 8}, {3, 9}, {3, 9}, {7, 10}, {11, 4},
			{12, 13}, {10, 10}, {10, 14}, {10, 15}, {8, 16}, {11, 7}, {10, 11}, {12, 17}, {14, 16},
		},
		AcceptingStates: []int{2, 3, 4, 6, 7},
	})
}

// allZero accepts every word over the single symbol "0".
func allZero() (*domain.DFA, error) {
	b := dsl.New("0")
	b.Add("any").Accept().Loop("0")
	return b.Build()
}

// onlyOneOne accepts binary words with exactly one "1".
func onlyOneOne() (*domain.DFA, error) {
	b := dsl.New("0", "1")
	b.Add("none").Loop("0").On("one", "1")
	b.Add("one").Accept().Loop("0").On("many", "1")
	b.Add("many").Loop("0", "1")
	return b.Build()
}

// onlyOneTwo accepts ternary words with exactly one "2" and no "1".
func onlyOneTwo() (*domain.DFA, error) {
	b := dsl.New("0", "1", "2")
	b.Add("none").Loop("0").On("one", "2").On("dead", "1")
	b.Add("one").Accept().Loop("0").On("dead", "1", "2")
	b.Add("dead").Loop("0", "1", "2")
	return b.Build()
}

// divisibleBy accepts binary numbers, most significant bit first, divisible by n.
// The empty word reads as zero.
func divisibleBy(n int) (*domain.DFA, error) {
	b := dsl.New("0", "1")
	name := func(r int) string { return "r" + strconv.Itoa(r) }
	for r := 0; r < n; r++ {
		sb := b.Add(name(r)).On(name((2*r)%n), "0").On(name((2*r+1)%n), "1")
		if r == 0 {
			sb.Start().Accept()
		}
	}
	return b.Build()
}
