/*
Package ports defines the driven ports (interfaces) of the Turnstile engine.

These interfaces decouple the automaton model from where automata are kept,
allowing the same registry to run on memory, the filesystem or Redis.

# Key Interfaces

  - AutomatonStore: Persists named automata (Save, Load, Delete, List).
*/
package ports
