package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/turnstile/pkg/codec"
	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stored automata",
}

var storePutCmd = &cobra.Command{
	Use:   "put <file> [name]",
	Short: "Validate a description file and store it",
	Long:  `Stores the automaton under name, or under the file name without extension.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		if len(args) == 2 {
			name = args[1]
		}

		dfa, err := codec.Load(args[0])
		if err != nil {
			return err
		}

		reg, done, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer done()
		if err := reg.Put(cmd.Context(), name, dfa); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s: %d states, %d symbols\n", name, dfa.NumStates(), dfa.Symbols().Len())
		return nil
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a stored automaton",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("format")
		format, err := codec.ParseFormat(name)
		if err != nil {
			return err
		}

		reg, done, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer done()
		dfa, err := reg.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := codec.Encode(dfa, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var storeRmCmd = &cobra.Command{
	Use:     "rm <name>...",
	Aliases: []string{"delete"},
	Short:   "Remove stored automata",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, done, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer done()
		for _, name := range args {
			if err := reg.Delete(cmd.Context(), name); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		return nil
	},
}

var storeLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List stored automata",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, done, err := openRegistry(cmd.Context())
		if err != nil {
			return err
		}
		defer done()
		names, err := reg.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeRmCmd, storeLsCmd)
	storeGetCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
}
