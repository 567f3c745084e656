// Package main provides the CLI entrypoint for modalstack.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/content"
	"github.com/jmylchreest/modalstack/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// demoContents are the content references registered for demo, preview and serve.
var demoContents = []content.Ref{
	"demo.Confirm",
	"demo.Settings",
	"demo.Welcome",
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "modalstack",
	Short: "Modal dialog stack manager",
	Long: `modalstack manages a stack of modal dialogs: it opens, resizes, recolors
and closes them with timed show and remove transitions, keeps a single
dimmed or blurred backdrop, and resolves the current dialog.

Run "modalstack preview" for an interactive terminal preview or
"modalstack serve" to expose the stack on the session bus.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(slog.LevelWarn)

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if !globalOpts.verbose {
			level, err := cfg.SlogLevel()
			if err != nil {
				return err
			}
			setupLogger(level)
		}

		if cfg.Appearance.ThemesDir == "" {
			if dir, err := theme.ThemesDir(); err == nil {
				cfg.Appearance.ThemesDir = dir
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/modalstack/config.toml)")
}

// setupLogger configures the global slog logger. --verbose always wins.
func setupLogger(level slog.Level) {
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}

// newRegistry returns a registry holding the demo content.
func newRegistry() *content.Registry {
	registry := content.NewRegistry(logger)
	for _, ref := range demoContents {
		if err := registry.RegisterRef(ref); err != nil {
			logger.Warn("failed to register content", "ref", ref, "error", err)
		}
	}
	return registry
}
