package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/modalstack/internal/daemon"
)

var serveOpts struct {
	noWatch bool
	notices bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dialog stack on the session bus",
	Long: `Run the dialog stack as the org.modalstack.Dialogs1 D-Bus service.

A renderer or any other client drives the stack over the bus and listens
for the Changed signal. The config file is reloaded when it changes unless
--no-watch is given. Runs until SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveOpts.noWatch, "no-watch", false,
		"Do not reload the config file when it changes")
	serveCmd.Flags().BoolVar(&serveOpts.notices, "notices", false,
		"Open notice dialogs for startup and config reloads")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := daemon.New(getConfig(), newRegistry(), daemon.Options{
		ConfigPath: globalOpts.configPath,
		Version:    version,
		Notices:    serveOpts.notices,
		Watch:      !serveOpts.noWatch,
	}, logger)

	logger.Info("starting modalstack", "version", version)
	return d.Run(ctx)
}
