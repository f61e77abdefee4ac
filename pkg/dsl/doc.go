// Package dsl builds automata in Go code with named states.
//
// Example:
//
//	b := dsl.New("0", "1")
//	b.Add("even").Start().Accept().Loop("0").On("odd", "1")
//	b.Add("odd").Loop("0").On("even", "1")
//	dfa, err := b.Build()
//
// States get identifiers in the order they are added, so "even" is state 0.
package dsl
