package main

import (
	"fmt"

	"github.com/aretw0/turnstile/pkg/codec"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check automaton descriptions",
	Long: `Validates each description file and reports whether it builds a complete
automaton. States that no word reaches from the starting state are listed as
warnings.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			dfa, err := codec.Load(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "✗ %v\n", err)
				continue
			}
			fmt.Fprintf(out, "✓ %s: %d states, %d symbols\n", path, dfa.NumStates(), dfa.Symbols().Len())
			for _, state := range dfa.Unreachable() {
				fmt.Fprintf(out, "  warning: state %d is unreachable\n", state)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d descriptions are invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
