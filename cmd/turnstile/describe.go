package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/turnstile/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <automaton>",
	Short: "Summarise an automaton and print its transition table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")

		dfa, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		md := tui.Describe(name, dfa)

		out := cmd.OutOrStdout()
		if raw || !isTerminal(out) {
			fmt.Fprint(out, md)
			return nil
		}
		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		rendered, err := render(md)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("raw", false, "print markdown without terminal rendering")
}
