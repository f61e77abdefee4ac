package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/turnstile/internal/presentation/tui"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/spf13/cobra"
)

// errRejected makes the process exit non-zero when a word is rejected.
var errRejected = errors.New("word rejected")

var acceptsCmd = &cobra.Command{
	Use:   "accepts <automaton> [symbol...]",
	Short: "Test whether an automaton accepts a word",
	Long: `Runs a word through the automaton and prints ACCEPT or REJECT.

The automaton is a description file (.dfa, .json, .yaml) or the name of a stored
automaton. Each argument after it is one symbol representation; with --ids they
are symbol identifiers instead. With --stdin every input line is tested as a
separate word, split on whitespace or per character when all symbols are one
character long.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, _ := cmd.Flags().GetBool("ids")
		stdin, _ := cmd.Flags().GetBool("stdin")

		dfa, err := resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if stdin {
			return acceptLines(dfa, cmd.InOrStdin(), out)
		}

		var accepted bool
		if ids {
			word, err := parseIdentifiers(args[1:])
			if err != nil {
				return err
			}
			accepted, err = dfa.AcceptsIdentifiers(word)
			if err != nil {
				return err
			}
		} else {
			accepted, err = dfa.Accepts(args[1:])
			if err != nil {
				return err
			}
		}
		printVerdict(out, accepted)
		if !accepted {
			return errRejected
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(acceptsCmd)
	acceptsCmd.Flags().Bool("ids", false, "treat symbols as identifiers")
	acceptsCmd.Flags().Bool("stdin", false, "test one word per line of standard input")
}

func acceptLines(dfa *domain.DFA, in io.Reader, out io.Writer) error {
	symbols := dfa.Symbols()
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		word, err := symbols.Parse(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		accepted, err := dfa.AcceptsIdentifiers(word)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		fmt.Fprintf(out, "%s\t%s\n", verdictText(out, accepted), text)
	}
	return scanner.Err()
}

func parseIdentifiers(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("%w: %q at position %d is not an identifier", domain.ErrOutOfRangeSymbol, arg, i)
		}
		ids[i] = id
	}
	return ids, nil
}

func printVerdict(out io.Writer, accepted bool) {
	fmt.Fprintln(out, verdictText(out, accepted))
}

func verdictText(out io.Writer, accepted bool) string {
	if isTerminal(out) {
		return tui.Verdict(accepted)
	}
	if accepted {
		return "ACCEPT"
	}
	return "REJECT"
}
