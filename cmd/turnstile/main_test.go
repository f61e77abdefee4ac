package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/turnstile/internal/presentation/jflap"
	"github.com/aretw0/turnstile/internal/testutils"
	"github.com/aretw0/turnstile/pkg/codec"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with fresh flag values, using a file store under dir.
func run(t *testing.T, dir string, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--store", "file", "--store-path", filepath.Join(dir, "store")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFixture(t *testing.T, dir, name string, desc domain.Description) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, codec.Save(path, domain.MustNew(desc)))
	return path
}

func TestAcceptsCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFixture(t, dir, "contains-one.dfa", testutils.ContainsOne())

	out, err := run(t, dir, "", "accepts", path, "1", "1", "0", "0", "1", "1")
	require.NoError(t, err)
	assert.Equal(t, "ACCEPT\n", out)

	out, err = run(t, dir, "", "accepts", path)
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, "REJECT\n", out)

	_, err = run(t, dir, "", "accepts", path, "2")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)

	out, err = run(t, dir, "", "accepts", "--ids", path, "0", "1")
	require.NoError(t, err)
	assert.Equal(t, "ACCEPT\n", out)

	_, err = run(t, dir, "", "accepts", "--ids", path, "7")
	assert.ErrorIs(t, err, domain.ErrOutOfRangeSymbol)
}

func TestAcceptsCommand_Stdin(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFixture(t, dir, "contains-one.yaml", testutils.ContainsOne())

	out, err := run(t, dir, "0010\n000\n1 1\n", "accepts", "--stdin", path)
	require.NoError(t, err)
	assert.Equal(t, "ACCEPT\t0010\nREJECT\t000\nACCEPT\t1 1\n", out)

	_, err = run(t, dir, "01\n0x\n", "accepts", "--stdin", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestStoreCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFixture(t, dir, "starts.json", testutils.StartsWithOne())

	out, err := run(t, dir, "", "store", "put", path)
	require.NoError(t, err)
	assert.Contains(t, out, "stored starts: 3 states, 2 symbols")

	_, err = run(t, dir, "", "store", "put", path, "second")
	require.NoError(t, err)

	out, err = run(t, dir, "", "store", "ls")
	require.NoError(t, err)
	assert.Equal(t, "second\nstarts\n", out)

	out, err = run(t, dir, "", "accepts", "starts", "1", "0")
	require.NoError(t, err)
	assert.Equal(t, "ACCEPT\n", out)

	out, err = run(t, dir, "", "store", "get", "-f", "yaml", "starts")
	require.NoError(t, err)
	assert.Contains(t, out, "starting_state: 0")

	_, err = run(t, dir, "", "store", "rm", "second")
	require.NoError(t, err)
	out, err = run(t, dir, "", "store", "ls")
	require.NoError(t, err)
	assert.Equal(t, "starts\n", out)

	_, err = run(t, dir, "", "accepts", "second")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	good := writeFixture(t, dir, "good.dfa", domain.Description{
		SymbolSet:        domain.SymbolSetDescription{Length: 1},
		StateTransitions: [][]int{{0}, {0}},
	})
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"symbol_set": {"length": 1}}`), 0644))

	out, err := run(t, dir, "", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "2 states, 1 symbols")
	assert.Contains(t, out, "warning: state 1 is unreachable")

	out, err = run(t, dir, "", "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, "✗")
}

func TestDescribeAndGraphCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFixture(t, dir, "contains-one.dfa", testutils.ContainsOne())

	out, err := run(t, dir, "", "describe", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# contains-one")
	assert.Contains(t, out, "| → q0 | q0 | q1 |")

	out, err = run(t, dir, "", "graph", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR"))

	out, err = run(t, dir, "", "graph", "--word", "01", path)
	require.NoError(t, err)
	assert.Contains(t, out, "classDef current")
}

func TestExportImportCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFixture(t, dir, "peg.dfa", testutils.OnePeg())
	jff := filepath.Join(dir, "peg"+jflap.Extension)

	_, err := run(t, dir, "", "export", "-f", "jflap", "-o", jff, path)
	require.NoError(t, err)

	out, err := run(t, dir, "", "import", jff)
	require.NoError(t, err)
	assert.Contains(t, out, "stored peg: 18 states")

	out, err = run(t, dir, "", "equal", path, "peg")
	require.NoError(t, err)
	assert.Equal(t, "equivalent\n", out)

	out, err = run(t, dir, "", "export", "-f", "yaml", "peg")
	require.NoError(t, err)
	assert.Contains(t, out, "state_transitions:")

	_, err = run(t, dir, "", "export", "-f", "toml", "peg")
	assert.ErrorIs(t, err, codec.ErrUnsupportedFormat)
}

func TestAnalysisCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	starts := writeFixture(t, dir, "starts.dfa", testutils.StartsWithOne())
	contains := writeFixture(t, dir, "contains.dfa", testutils.ContainsOne())

	out, err := run(t, dir, "", "enumerate", "--max", "2", starts)
	require.NoError(t, err)
	assert.Equal(t, "\"1\"\n\"1 0\"\n\"1 1\"\n", out)

	out, err = run(t, dir, "", "equal", contains, starts)
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, "different: \"0 1\"\n", out)

	out, err = run(t, dir, "", "path", starts, "2")
	require.NoError(t, err)
	assert.Equal(t, "\"0\"\n", out)

	_, err = run(t, dir, "", "path", starts, "9")
	assert.ErrorIs(t, err, domain.ErrOutOfRangeState)
}

func TestConfigPreload(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cfgPath := filepath.Join(dir, "turnstile.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
automata:
  parity:
    symbol_set:
      representations: ["a", "b"]
    starting_state: 0
    state_transitions: [[1, 0], [0, 1]]
    accepting_states: [0]
`), 0644))

	out, err := run(t, dir, "", "--config", cfgPath, "accepts", "parity", "a", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "ACCEPT\n", out)
}

func TestVersionCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, dir, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "turnstile version "))
}
