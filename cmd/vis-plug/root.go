package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kornellapacz/vis-plug/internal/config"
	"github.com/kornellapacz/vis-plug/internal/plugin"
)

var (
	cfgFile string
	verbose bool
)

// isVerbose reports whether --verbose was requested.
func isVerbose() bool { return verbose }

var rootCmd = &cobra.Command{
	Use:           "vis-plug",
	Short:         "Declarative git plugin manager",
	Long:          "vis-plug resolves a declarative list of plugin sources into git working trees,\nkeeps them in sync, and reports their status.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with signal-aware cancellation.
func Execute(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/vis-plug/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newListCommand(),
		newInstallCommand(),
		newUpdateCommand(),
		newOutdatedCommand(),
		newRemoveCommand(),
		newCleanCommand(),
		newCheckoutCommand(),
		newSelfUpdateCommand(),
	)
}

// app bundles everything a subcommand needs.
type app struct {
	cfg     *config.Config
	manager *plugin.Manager
	logger  *slog.Logger
}

// buildApp loads configuration, resolves the plugin list into a registry,
// and wires the manager with a notifier that writes through the command.
func buildApp(cmd *cobra.Command) (*app, error) {
	loader := config.NewLoader(config.NewValidator())
	cfg, err := loader.LoadWithDefaults(cfgFile)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Logging)

	registry := plugin.NewRegistry(cfg.Root, logger)
	registry.Init(cfg.Plugins)

	// Same derived name and category means the same directory on disk.
	// The manager does not repair this; it only warns.
	for path, urls := range registry.Collisions() {
		logger.Warn("plugins collide on disk", "path", path, "urls", urls)
	}

	notifier := plugin.NotifierFunc(func(message string) {
		cmd.Println(message)
	})

	manager := plugin.NewManager(registry,
		plugin.WithLogger(logger),
		plugin.WithNotifier(notifier),
		plugin.WithParallelLimit(cfg.ParallelLimit),
		plugin.WithOperationTimeout(cfg.OperationTimeout),
		plugin.WithCloneDepth(cfg.CloneDepth),
	)

	return &app{cfg: cfg, manager: manager, logger: logger}, nil
}

// newLogger builds the slog logger from the logging config; --verbose
// forces debug level.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
