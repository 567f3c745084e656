package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	logger   *slog.Logger
	onChange func(*Config)
	onError  func(error)

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewWatcher creates a watcher for the config file at path. onChange receives
// every successfully reloaded config; files that fail to parse are logged
// and skipped, leaving the previous config in effect.
func NewWatcher(path string, onChange func(*Config), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = ConfigPath()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  fw,
		path:     path,
		logger:   logger,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// SetErrorCallback sets a function called when a changed file fails to load.
func (w *Watcher) SetErrorCallback(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// Start begins watching. The directory is watched rather than the file so
// editors that replace the file on save are still seen.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.running = true

	go w.watch()
	w.logger.Debug("config watcher started", "path", w.path)
	return nil
}

func (w *Watcher) watch() {
	defer close(w.done)
	filename := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			// A file renamed away is not a new config; the rename that
			// replaces it arrives as Create.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.logger.Warn("failed to reload config, keeping previous", "path", w.path, "error", err)
		w.mu.Lock()
		onError := w.onError
		w.mu.Unlock()
		if onError != nil {
			onError(err)
		}
		return
	}
	w.logger.Info("config reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

// Stop stops watching and waits for the watch loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	err := w.watcher.Close()
	if running {
		<-w.done
	}
	return err
}
