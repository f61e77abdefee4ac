package main

import (
	"fmt"

	"github.com/aretw0/turnstile/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <automaton>",
	Short: "Export the automaton as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the automaton. Accepting states are
drawn as double circles. With --word the path the word takes is highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dfa, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if cmd.Flags().Changed("word") {
			word, _ := cmd.Flags().GetString("word")
			ids, err := dfa.Symbols().Parse(word)
			if err != nil {
				return err
			}
			overlay = graph.Trace(dfa, ids)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(dfa, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("word", "", "highlight the path of this word")
}
