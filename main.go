package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"mockapi/internal/auth"
	"mockapi/internal/logging"
	"mockapi/internal/mockgen"
	"mockapi/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by all commands.
type rootOptions struct {
	configPath string
	logLevel   string
}

// newRootCmd builds the mockapi command tree. Running it without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "mockapi",
		Short: "Serve schema-driven mock REST endpoints",
		Long: `mockapi serves synthetic JSON records for endpoints described by a
list of {name, type} fields.

Environment Variables:
  HTTP_ADDR        Listen address (default :9090)
  API_KEYS         Comma-separated bearer keys, "subject:key" or bare key
  REDIS_ADDR       Redis address for the redis store
  MOCKAPI_STORE    Store driver: memory, file, redis, sqlite, postgres
  MOCKAPI_AUTH     Auth mode: apikey, jwt, none`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the mock API server (default command)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), opts)
			},
		},
		newGenerateCmd(),
		newTypesCmd(),
	)
	return root
}

// runServe loads configuration, wires the store, verifier and router, and
// serves until SIGINT or SIGTERM.
func runServe(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts.configPath, os.LookupEnv)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	logger := logging.New(cfg.Log)

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer st.Close()

	verifier, err := auth.New(cfg.Auth)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	engine := mockgen.NewEngine(mockgen.WithNameHeuristics(cfg.Generator.NameHeuristics))
	handler := NewHandler(st, engine, logger, newMetrics(reg), cfg.Generator.DefaultCount)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      newRouter(handler, verifier, reg, cfg.HTTP.BasePath),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is listening",
			"addr", server.Addr, "base_path", cfg.HTTP.BasePath,
			"store", cfg.Store.Driver, "auth", cfg.Auth.Mode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("could not listen: %w", err)
	case <-ctx.Done():
	}
	logger.Info("server is shutting down")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
