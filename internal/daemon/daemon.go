package daemon

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/content"
	"github.com/jmylchreest/modalstack/internal/dbus"
	"github.com/jmylchreest/modalstack/internal/display"
	"github.com/jmylchreest/modalstack/internal/interop"
)

// Options configures a Daemon.
type Options struct {
	// ConfigPath is the file to watch. Empty uses config.ConfigPath.
	ConfigPath string
	// Version is reported in the startup notice.
	Version string
	// Notices enables notice dialogs about the daemon's own events.
	Notices bool
	// Watch enables config hot reload.
	Watch bool
}

// Daemon owns a dialog manager and the services around it.
type Daemon struct {
	opts   Options
	logger *slog.Logger

	manager  *display.Manager
	router   *interop.EscapeRouter
	server   *dbus.DialogServer
	notifier *Notifier
}

// New creates a daemon for cfg. A nil registry gets a registry holding only
// the notice content.
func New(cfg *config.Config, registry *content.Registry, opts Options, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = content.NewRegistry(logger)
	}
	if err := registry.RegisterRef(NoticeContent); err != nil {
		logger.Debug("notice content already registered", "error", err)
	}

	manager := display.NewManager(cfg, registry, logger)
	router := interop.NewEscapeRouter(logger)
	manager.SetAsCurrent(router)

	notifier := NewNotifier(manager, logger)
	notifier.SetEnabled(opts.Notices)

	return &Daemon{
		opts:     opts,
		logger:   logger,
		manager:  manager,
		router:   router,
		server:   dbus.NewDialogServer(manager, router, logger),
		notifier: notifier,
	}
}

// Manager returns the daemon's dialog manager.
func (d *Daemon) Manager() *display.Manager {
	return d.manager
}

// Notifier returns the daemon's notice source.
func (d *Daemon) Notifier() *Notifier {
	return d.notifier
}

// Reload applies a reloaded config and reports it.
func (d *Daemon) Reload(cfg *config.Config) {
	d.manager.ApplyConfig(cfg)
	d.notifier.NotifyConfigReloaded()
}

// Run starts every component and blocks until ctx is done, then stops them
// in reverse order.
func (d *Daemon) Run(ctx context.Context) error {
	d.manager.Start()
	defer d.manager.Stop()

	if err := d.server.Start(); err != nil {
		return fmt.Errorf("failed to start D-Bus server: %w", err)
	}
	defer func() {
		if err := d.server.Stop(); err != nil {
			d.logger.Warn("error stopping D-Bus server", "error", err)
		}
	}()

	if d.opts.Watch {
		watcher, err := d.startWatcher()
		if err != nil {
			return err
		}
		if watcher != nil {
			defer func() {
				if err := watcher.Stop(); err != nil {
					d.logger.Warn("error stopping config watcher", "error", err)
				}
			}()
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.server.Run(gctx)
	})

	d.notifier.NotifyStartup(d.opts.Version)
	d.logger.Info("modalstack daemon ready", "version", d.opts.Version)

	err := g.Wait()
	d.logger.Info("modalstack daemon stopping")
	return err
}

// startWatcher starts config hot reload. A watcher that cannot start is
// closed and nil is returned; hot reload is then disabled.
func (d *Daemon) startWatcher() (*config.Watcher, error) {
	watcher, err := config.NewWatcher(d.opts.ConfigPath, d.Reload, d.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}
	watcher.SetErrorCallback(func(err error) { d.notifier.NotifyConfigError(err) })

	if err := watcher.Start(); err != nil {
		d.logger.Warn("config hot reload disabled", "error", err)
		if err := watcher.Stop(); err != nil {
			d.logger.Warn("error closing config watcher", "error", err)
		}
		return nil, nil
	}
	return watcher, nil
}
