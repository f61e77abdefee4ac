// Package jflap reads and writes automata in the JFLAP ".jff" XML format.
package jflap

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/aretw0/turnstile/pkg/domain"
)

// Extension is the conventional file extension of JFLAP documents.
const Extension = ".jff"

type structure struct {
	XMLName   xml.Name  `xml:"structure"`
	Type      string    `xml:"type"`
	Automaton automaton `xml:"automaton"`
}

type automaton struct {
	States      []state      `xml:"state"`
	Transitions []transition `xml:"transition"`
}

type marker struct{}

type state struct {
	ID      int     `xml:"id,attr"`
	Name    string  `xml:"name,attr"`
	Initial *marker `xml:"initial"`
	Final   *marker `xml:"final"`
}

type transition struct {
	From int    `xml:"from"`
	To   int    `xml:"to"`
	Read string `xml:"read"`
}

// Export writes the automaton as a JFLAP finite automaton document.
// States are named q<id>; every table cell becomes one transition.
func Export(w io.Writer, dfa *domain.DFA) error {
	doc := structure{Type: "fa"}
	for s := 0; s < dfa.NumStates(); s++ {
		st := state{ID: s, Name: "q" + strconv.Itoa(s)}
		if s == dfa.StartingState() {
			st.Initial = &marker{}
		}
		if dfa.IsAccepting(s) {
			st.Final = &marker{}
		}
		doc.Automaton.States = append(doc.Automaton.States, st)
	}

	symbols := dfa.Symbols()
	for s := 0; s < dfa.NumStates(); s++ {
		for sym := 0; sym < symbols.Len(); sym++ {
			dest, err := dfa.Transition(s, sym)
			if err != nil {
				return err
			}
			rep, _ := symbols.Representation(sym)
			doc.Automaton.Transitions = append(doc.Automaton.Transitions, transition{From: s, To: dest, Read: rep})
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode jflap document: %w", err)
	}
	return enc.Close()
}

// Import reads a JFLAP finite automaton document.
// State ids are renumbered densely in ascending order and symbols are sorted, so the
// document must be complete and deterministic: exactly one transition per state and symbol.
func Import(r io.Reader) (*domain.DFA, error) {
	var doc structure
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: invalid jflap document: %v", domain.ErrMalformedDescription, err)
	}
	if doc.Type != "fa" {
		return nil, fmt.Errorf("%w: jflap type %q is not a finite automaton", domain.ErrMalformedDescription, doc.Type)
	}

	ids := make([]int, 0, len(doc.Automaton.States))
	for _, st := range doc.Automaton.States {
		ids = append(ids, st.ID)
	}
	sort.Ints(ids)
	index := make(map[int]int, len(ids))
	for i, id := range ids {
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate jflap state %d", domain.ErrMalformedDescription, id)
		}
		index[id] = i
	}

	desc := domain.Description{StartingState: -1}
	for _, st := range doc.Automaton.States {
		if st.Initial != nil {
			if desc.StartingState != -1 {
				return nil, fmt.Errorf("%w: more than one initial state", domain.ErrMalformedDescription)
			}
			desc.StartingState = index[st.ID]
		}
		if st.Final != nil {
			desc.AcceptingStates = append(desc.AcceptingStates, index[st.ID])
		}
	}
	if desc.StartingState == -1 {
		return nil, fmt.Errorf("%w: no initial state", domain.ErrMalformedDescription)
	}

	symbolSet := make(map[string]bool)
	for _, t := range doc.Automaton.Transitions {
		symbolSet[t.Read] = true
	}
	reps := make([]string, 0, len(symbolSet))
	for rep := range symbolSet {
		reps = append(reps, rep)
	}
	sort.Strings(reps)
	symbols := domain.NewSymbolSet(reps)
	desc.SymbolSet.Representations = reps

	desc.StateTransitions = make([][]int, len(ids))
	for i := range desc.StateTransitions {
		row := make([]int, len(reps))
		for j := range row {
			row[j] = -1
		}
		desc.StateTransitions[i] = row
	}
	for _, t := range doc.Automaton.Transitions {
		from, ok := index[t.From]
		if !ok {
			return nil, fmt.Errorf("%w: transition from unknown state %d", domain.ErrMalformedDescription, t.From)
		}
		to, ok := index[t.To]
		if !ok {
			return nil, fmt.Errorf("%w: transition to unknown state %d", domain.ErrMalformedDescription, t.To)
		}
		sym, _ := symbols.Index(t.Read)
		if desc.StateTransitions[from][sym] != -1 {
			return nil, fmt.Errorf("%w: state %d has more than one transition on %q",
				domain.ErrMalformedDescription, t.From, t.Read)
		}
		desc.StateTransitions[from][sym] = to
	}
	for i, row := range desc.StateTransitions {
		for j, dest := range row {
			if dest == -1 {
				return nil, fmt.Errorf("%w: state %d has no transition on %q",
					domain.ErrMalformedDescription, ids[i], reps[j])
			}
		}
	}

	return domain.New(desc)
}
