package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/turnstile"
	"github.com/aretw0/turnstile/internal/config"
	"github.com/aretw0/turnstile/internal/logging"
	"github.com/aretw0/turnstile/pkg/codec"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	cfgFile string
	verbose bool

	v      *viper.Viper
	cfg    *config.Config
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "turnstile",
	Short: "Turnstile runs deterministic finite automata",
	Long: `Turnstile loads deterministic finite automata from JSON or YAML descriptions,
stores them by name and answers membership queries from the command line,
over HTTP or as MCP tools.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./turnstile.yaml or $HOME/turnstile.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.String("store", "", "automaton store: memory, file or redis (default file)")
	flags.String("store-path", "", "directory of the file store")
	flags.String("redis-addr", "", "address of the redis store")
}

// initConfig points viper at the config file, the environment and the store flags.
func initConfig() {
	v = config.New(cfgFile)

	flags := rootCmd.PersistentFlags()
	_ = v.BindPFlag("store.driver", flags.Lookup("store"))
	_ = v.BindPFlag("store.path", flags.Lookup("store-path"))
	_ = v.BindPFlag("redis.addr", flags.Lookup("redis-addr"))
}

func setup() error {
	var err error
	cfg, err = config.Read(v)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	if cfg.Log.Format == "json" {
		logger = logging.NewJSON(os.Stderr, level)
	} else {
		logger = logging.New(level)
	}
	slog.SetDefault(logger)

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", "file", used)
	}
	return nil
}

// openRegistry opens the configured store and preloads inline automata.
func openRegistry(ctx context.Context, opts ...turnstile.Option) (*turnstile.Registry, func(), error) {
	store, closeStore, err := cfg.OpenStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]turnstile.Option{turnstile.WithStore(store), turnstile.WithLogger(logger)}, opts...)
	reg := turnstile.New(opts...)
	if err := cfg.Preload(ctx, reg); err != nil {
		closeStore()
		return nil, nil, err
	}
	return reg, func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}, nil
}

// resolve loads an automaton from a description file when ref names one,
// and from the store otherwise.
func resolve(ctx context.Context, ref string) (*domain.DFA, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return codec.Load(ref)
	}
	reg, done, err := openRegistry(ctx)
	if err != nil {
		return nil, err
	}
	defer done()
	return reg.Get(ctx, ref)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
