package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turnstile/pkg/domain"
)

// GraphOverlay contains traversal data to highlight on the graph.
type GraphOverlay struct {
	VisitedStates []int
	CurrentState  int
}

// Trace runs ids through the automaton and returns the overlay of the states it visits.
// Traversal stops at the first invalid symbol.
func Trace(dfa *domain.DFA, ids []int) *GraphOverlay {
	state := dfa.StartingState()
	overlay := &GraphOverlay{VisitedStates: []int{state}, CurrentState: state}
	for _, id := range ids {
		next, err := dfa.Transition(state, id)
		if err != nil {
			break
		}
		state = next
		overlay.VisitedStates = append(overlay.VisitedStates, state)
	}
	overlay.CurrentState = state
	return overlay
}

// GenerateMermaid produces a Mermaid flowchart of the automaton.
// It applies semantic styling:
// - Accepting: (((Double circle)))
// - Other: ((Circle))
// - Start: pointed to by an unlabeled entry node
// Parallel edges are merged into one edge whose label lists every symbol.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(dfa *domain.DFA, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString(fmt.Sprintf("    entry[ ] --> %s\n", stateID(dfa.StartingState())))

	symbols := dfa.Symbols()
	for state := 0; state < dfa.NumStates(); state++ {
		opener, closer := "((", "))"
		if dfa.IsAccepting(state) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", stateID(state), opener, stateID(state), closer))
	}

	for state := 0; state < dfa.NumStates(); state++ {
		// Group symbols by destination, keeping destinations in first-seen order.
		var order []int
		labels := make(map[int][]string)
		for sym := 0; sym < symbols.Len(); sym++ {
			dest, err := dfa.Transition(state, sym)
			if err != nil {
				continue
			}
			if _, ok := labels[dest]; !ok {
				order = append(order, dest)
			}
			rep, _ := symbols.Representation(sym)
			labels[dest] = append(labels[dest], escapeLabel(rep))
		}
		for _, dest := range order {
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n",
				stateID(state), strings.Join(labels[dest], ", "), stateID(dest)))
		}
	}

	sb.WriteString("    style entry fill:none,stroke:none\n")

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, s := range overlay.VisitedStates {
			if seen[s] || s == overlay.CurrentState || s < 0 || s >= dfa.NumStates() {
				continue
			}
			seen[s] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", stateID(s)))
		}
		sb.WriteString(fmt.Sprintf("    class %s current;\n", stateID(overlay.CurrentState)))
	}

	return sb.String()
}

func stateID(state int) string {
	return fmt.Sprintf("q%d", state)
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	if s == "" {
		return "ε"
	}
	return s
}
