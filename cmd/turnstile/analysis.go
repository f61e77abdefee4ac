package main

import (
	"fmt"
	"strconv"

	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/spf13/cobra"
)

var enumerateCmd = &cobra.Command{
	Use:   "enumerate <automaton>",
	Short: "List the accepted words up to a length",
	Long:  `Prints every accepted word of length at most --max in shortlex order.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxLen, _ := cmd.Flags().GetInt("max")
		if maxLen < 0 {
			return fmt.Errorf("--max must not be negative")
		}

		dfa, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		symbols := dfa.Symbols()
		for _, word := range dfa.Accepted(maxLen) {
			fmt.Fprintln(out, symbols.Format(word))
		}
		return nil
	},
}

var equalCmd = &cobra.Command{
	Use:   "equal <automaton> <automaton>",
	Short: "Check whether two automata accept the same words",
	Long: `Compares two automata over the same number of symbols by searching their
product for a distinguishing word. Prints the shortest one when they differ.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		b, err := resolve(cmd.Context(), args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if domain.Equivalent(a, b) {
			fmt.Fprintln(out, "equivalent")
			return nil
		}
		if word, ok := domain.Distinguish(a, b); ok {
			fmt.Fprintf(out, "different: %s\n", a.Symbols().Format(word))
		} else {
			fmt.Fprintf(out, "different: %d and %d symbols\n", a.Symbols().Len(), b.Symbols().Len())
		}
		return errRejected
	},
}

var pathCmd = &cobra.Command{
	Use:   "path <automaton> <state>",
	Short: "Print the shortest word that reaches a state",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("%w: %q", domain.ErrOutOfRangeState, args[1])
		}
		dfa, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if state < 0 || state >= dfa.NumStates() {
			return fmt.Errorf("%w: %d", domain.ErrOutOfRangeState, state)
		}

		word, ok := dfa.ShortestPathTo(state)
		if !ok {
			return fmt.Errorf("state %d is unreachable", state)
		}
		fmt.Fprintln(cmd.OutOrStdout(), dfa.Symbols().Format(word))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enumerateCmd, equalCmd, pathCmd)
	enumerateCmd.Flags().IntP("max", "k", 4, "maximum word length")
}
