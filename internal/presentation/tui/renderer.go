// Package tui renders automata and query results for the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// Verdict formats a membership result as a coloured ACCEPT or REJECT.
func Verdict(accepted bool) string {
	p := termenv.ColorProfile()
	if accepted {
		return termenv.String("ACCEPT").Foreground(p.Color("#22c55e")).Bold().String()
	}
	return termenv.String("REJECT").Foreground(p.Color("#ef4444")).Bold().String()
}

// Describe builds a markdown summary of the automaton: its alphabet, states and
// transition table. Accepting states are marked with an asterisk and the
// starting state with an arrow.
func Describe(name string, dfa *domain.DFA) string {
	var sb strings.Builder
	symbols := dfa.Symbols()

	if name == "" {
		name = "automaton"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "- **Symbols:** %d (%s)\n", symbols.Len(), symbols.Format(allSymbols(symbols.Len())))
	fmt.Fprintf(&sb, "- **States:** %d\n", dfa.NumStates())
	fmt.Fprintf(&sb, "- **Starting state:** q%d\n", dfa.StartingState())
	fmt.Fprintf(&sb, "- **Accepting states:** %s\n", stateList(dfa.AcceptingStates()))
	if unreachable := dfa.Unreachable(); len(unreachable) > 0 {
		fmt.Fprintf(&sb, "- **Unreachable states:** %s\n", stateList(unreachable))
	}
	sb.WriteString("\n## Transitions\n\n")

	sb.WriteString("| state |")
	for _, rep := range symbols.Representations() {
		fmt.Fprintf(&sb, " %s |", escapeCell(rep))
	}
	sb.WriteString("\n|---|")
	sb.WriteString(strings.Repeat("---|", symbols.Len()))
	sb.WriteString("\n")

	for s := 0; s < dfa.NumStates(); s++ {
		label := fmt.Sprintf("q%d", s)
		if s == dfa.StartingState() {
			label = "→ " + label
		}
		if dfa.IsAccepting(s) {
			label += " *"
		}
		fmt.Fprintf(&sb, "| %s |", label)
		for sym := 0; sym < symbols.Len(); sym++ {
			dest, _ := dfa.Transition(s, sym)
			fmt.Fprintf(&sb, " q%d |", dest)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func allSymbols(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func stateList(states []int) string {
	if len(states) == 0 {
		return "none"
	}
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = fmt.Sprintf("q%d", s)
	}
	return strings.Join(parts, ", ")
}

func escapeCell(s string) string {
	if s == "" {
		return "ε"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
