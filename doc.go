/*
Package turnstile is a deterministic finite automaton (DFA) engine for membership testing.

An automaton is described by a symbol set, a starting state, a transition table and a
set of accepting states. Turnstile validates the description once, builds an immutable
automaton and answers whether a finite word is in its language.

# Concept

The model lives in pkg/domain and is free of I/O. Descriptions are read and written by
pkg/codec (JSON or YAML). Named automata are kept behind the ports.AutomatonStore
interface, with memory, file and Redis adapters, and the Registry type in this package
ties a store to logging and lifecycle hooks. The same registry is served over HTTP, MCP
and the turnstile CLI.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/turnstile"
	)

	func main() {
		dfa, err := turnstile.Load("1dpeg.dfa")
		if err != nil {
			log.Fatal(err)
		}

		ok, err := dfa.Accepts([]string{"1", "1", "0", "0", "1", "1"})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Is 110011 in the language:", ok)
	}
*/
package turnstile
