package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/turnstile"
	"github.com/aretw0/turnstile/internal/metrics"
	"github.com/aretw0/turnstile/internal/presentation/tui"
	httpAdapter "github.com/aretw0/turnstile/pkg/adapters/http"
	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the stored automata over a JSON API. Queries and store changes are
streamed to /events and counted at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		streams := httpAdapter.NewStreamManager()
		hooks := []domain.LifecycleHooks{streams.Hooks()}
		opts := []httpAdapter.Option{httpAdapter.WithLogger(logger), httpAdapter.WithStreams(streams)}
		if cfg.Server.Metrics {
			m := metrics.New()
			hooks = append(hooks, m.Hooks())
			opts = append(opts, httpAdapter.WithMetrics(m.Handler()))
		}

		reg, done, err := openRegistry(cmd.Context(), turnstile.WithLifecycleHooks(domain.CombineHooks(hooks...)))
		if err != nil {
			return err
		}
		defer done()

		handler, err := httpAdapter.NewHandler(reg, opts...)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		if isTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting turnstile server", "address", srv.Addr, "store", cfg.Store.Driver)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("failed to close server: %w", err)
				}
			}
			logger.Info("turnstile server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "address to listen on (overrides server.addr)")
}
