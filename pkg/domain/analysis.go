package domain

import "slices"

// ShortestPathTo returns the shortest word leading from the starting state to target.
// Ties are broken by the lowest symbol identifier. The second result is false when
// target is unreachable.
func (d *DFA) ShortestPathTo(target int) ([]int, bool) {
	if target < 0 || target >= len(d.table) {
		return nil, false
	}
	if target == d.start {
		return []int{}, true
	}

	type step struct{ from, symbol int }
	back := make([]step, len(d.table))
	seen := make([]bool, len(d.table))
	seen[d.start] = true
	queue := []int{d.start}

	for len(queue) > 0 && !seen[target] {
		cur := queue[0]
		queue = queue[1:]
		for sym, next := range d.table[cur] {
			if seen[next] {
				continue
			}
			seen[next] = true
			back[next] = step{from: cur, symbol: sym}
			queue = append(queue, next)
		}
	}
	if !seen[target] {
		return nil, false
	}

	var path []int
	for s := target; s != d.start; s = back[s].from {
		path = append(path, back[s].symbol)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// Unreachable lists states that no word reaches from the starting state.
func (d *DFA) Unreachable() []int {
	seen := make([]bool, len(d.table))
	seen[d.start] = true
	stack := []int{d.start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range d.table[cur] {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	var out []int
	for s, ok := range seen {
		if !ok {
			out = append(out, s)
		}
	}
	return out
}

// Accepted returns every accepted word of length 0..k in shortlex order.
func (d *DFA) Accepted(k int) [][]int {
	var words [][]int
	for word := range d.symbols.Enumerate(k) {
		state, err := d.FinalState(word)
		if err == nil && d.IsAccepting(state) {
			words = append(words, append([]int(nil), word...))
		}
	}
	return words
}

// Equivalent reports whether a and b accept the same language over symbol identifiers.
// Automata with different alphabet sizes are never equivalent.
func Equivalent(a, b *DFA) bool {
	if a.symbols.Len() != b.symbols.Len() {
		return false
	}
	_, differ := Distinguish(a, b)
	return !differ
}

// Distinguish returns the shortest word, lowest symbols first, that exactly one of
// a and b accepts. It reports false when the automata are equivalent or their
// alphabet sizes differ.
func Distinguish(a, b *DFA) ([]int, bool) {
	if a.symbols.Len() != b.symbols.Len() {
		return nil, false
	}
	type pair struct{ a, b int }
	type step struct {
		prev   pair
		symbol int
	}
	start := pair{a.start, b.start}
	parent := map[pair]step{start: {symbol: -1}}
	queue := []pair{start}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if a.IsAccepting(p.a) != b.IsAccepting(p.b) {
			var word []int
			for cur := p; cur != start; cur = parent[cur].prev {
				word = append(word, parent[cur].symbol)
			}
			slices.Reverse(word)
			if word == nil {
				word = []int{}
			}
			return word, true
		}
		for sym := 0; sym < a.symbols.Len(); sym++ {
			next := pair{a.table[p.a][sym], b.table[p.b][sym]}
			if _, seen := parent[next]; !seen {
				parent[next] = step{prev: p, symbol: sym}
				queue = append(queue, next)
			}
		}
	}
	return nil, false
}

// IsReversalSymmetric reports whether, for every word of length 0..k, the automaton
// accepts the word iff it accepts its reverse. This holds only for particular automata
// and is not a general property of a DFA.
func IsReversalSymmetric(d *DFA, k int) bool {
	reversed := make([]int, 0, max(k, 0))
	for word := range d.symbols.Enumerate(k) {
		reversed = reversed[:0]
		for i := len(word) - 1; i >= 0; i-- {
			reversed = append(reversed, word[i])
		}
		fwd, err1 := d.AcceptsIdentifiers(word)
		rev, err2 := d.AcceptsIdentifiers(reversed)
		if err1 != nil || err2 != nil || fwd != rev {
			return false
		}
	}
	return true
}
