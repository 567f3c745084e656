// Package display owns the dialog stack: it opens, mutates and closes dialogs,
// runs their timed transitions and tells observers when anything changed.
package display

import (
	"log/slog"
	"sync"

	"github.com/jmylchreest/modalstack/internal/config"
	"github.com/jmylchreest/modalstack/internal/content"
	"github.com/jmylchreest/modalstack/internal/interop"
	"github.com/jmylchreest/modalstack/internal/model"
	"github.com/jmylchreest/modalstack/internal/scheduler"
	"github.com/jmylchreest/modalstack/internal/stack"
)

// TargetCurrent addresses the current dialog instead of a dialog ID.
const TargetCurrent = "current"

const propertyBuffer = 64

// Manager is the single owner of a dialog stack.
//
// Every read and write of the stack and its dialogs happens under one mutex.
// Timed transitions run on scheduler goroutines, take the same mutex when they
// fire and re-check that their dialog still exists.
type Manager struct {
	logger    *slog.Logger
	registry  *content.Registry
	scheduler *scheduler.Scheduler

	mu        sync.Mutex
	stack     *stack.Stack
	theme     model.Theme
	animation model.Animation
	themesDir string
	defaults  model.Options
	router    *interop.EscapeRouter
	stopped   bool

	// Observers
	subscribers     []chan struct{}
	propSubscribers []chan model.PropertyChange
}

// NewManager creates a Manager. A nil cfg uses config.DefaultConfig, a nil
// registry an empty one.
func NewManager(cfg *config.Config, registry *content.Registry, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if registry == nil {
		registry = content.NewRegistry(logger)
	}

	return &Manager{
		logger:    logger,
		registry:  registry,
		scheduler: scheduler.New(cfg.Delays(), logger),
		stack:     stack.New(),
		theme:     cfg.Appearance.Theme,
		animation: cfg.Appearance.Animation,
		themesDir: cfg.Appearance.ThemesDir,
		defaults:  cfg.DialogOptions(),
	}
}

// Start schedules the warm-up notification that lets observers initialize.
func (m *Manager) Start() {
	m.scheduler.Schedule(scheduler.TransitionWarmUp, "", func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.notifyLocked()
	})
	m.logger.Debug("dialog manager started")
}

// Stop drops pending transitions, releases escape routing, clears the stack
// and closes all subscriber channels. The Manager must not be used afterwards.
func (m *Manager) Stop() {
	m.scheduler.Stop()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.stopped = true

	if m.router != nil {
		m.router.Release(m)
		m.router = nil
	}
	m.stack.Clear()

	for _, ch := range m.subscribers {
		close(ch)
	}
	m.subscribers = nil
	for _, ch := range m.propSubscribers {
		close(ch)
	}
	m.propSubscribers = nil

	m.logger.Debug("dialog manager stopped")
}

// Registry returns the content registry used for name lookups.
func (m *Manager) Registry() *content.Registry {
	return m.registry
}

// DefaultOptions returns the options for a dialog opened without explicit
// settings, with the configured defaults applied.
func (m *Manager) DefaultOptions() model.Options {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaults
}

// Open adds a hidden dialog built from opts and schedules it to become
// visible. It returns the new dialog's ID, or "" once the Manager is stopped.
func (m *Manager) Open(opts model.Options) string {
	d := model.NewDialog(opts)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		m.logger.Debug("open ignored, manager stopped", "content", d.Content)
		return ""
	}

	d.SetChangeHook(m.propertyChangedLocked)
	downgraded := m.stack.Insert(d)
	m.notifyLocked()

	id := d.ID
	m.scheduler.Schedule(scheduler.TransitionShow, id, func() { m.show(id) })

	m.logger.Debug("dialog opened",
		"id", id,
		"content", d.Content,
		"size", d.Size.String(),
		"effect", d.BackgroundEffect.String(),
		"effect_downgraded", downgraded,
		"stack_size", m.stack.Len(),
	)
	return id
}

// OpenContent opens a dialog showing ref with the default options.
func (m *Manager) OpenContent(ref content.Ref, params map[string]any, onClose func()) string {
	opts := m.DefaultOptions()
	opts.Content = string(ref)
	opts.Parameters = params
	opts.OnClose = onClose
	return m.Open(opts)
}

// OpenNamed resolves name through the registry and opens it. If the name
// does not resolve, nothing is opened and ok is false.
func (m *Manager) OpenNamed(name string, params map[string]any, onClose func()) (id string, ok bool) {
	ref, ok := m.registry.Resolve(name)
	if !ok {
		return "", false
	}
	return m.OpenContent(ref, params, onClose), true
}

// show is the show transition.
func (m *Manager) show(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.stack.Find(id)
	if !ok || d.Removing {
		return
	}
	d.SetVisible(true)
	m.notifyLocked()
}

// Close marks a dialog as removing and schedules its eviction. Unknown IDs
// are ignored; closing a dialog twice only re-schedules the eviction.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}

	d, ok := m.stack.Find(id)
	if !ok {
		m.logger.Debug("close ignored, unknown dialog", "id", id)
		return
	}
	d.SetRemoving(true)
	m.notifyLocked()

	m.scheduler.Schedule(scheduler.TransitionRemove, id, func() { m.evict(id) })
	m.logger.Debug("dialog closing", "id", id)
}

// evict is the remove transition. A dialog that is already gone is a no-op.
func (m *Manager) evict(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.stack.Remove(id) {
		return
	}
	m.notifyLocked()
	m.logger.Debug("dialog removed", "id", id, "stack_size", m.stack.Len())
}

// CloseAll closes every dialog present when it is called. Dialogs opened
// while it runs are left alone.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	ids := m.stack.IDs()
	m.mu.Unlock()

	for _, id := range ids {
		m.Close(id)
	}
}

// HandleEscapeKey treats an escape press on a dialog as Close.
func (m *Manager) HandleEscapeKey(id string) {
	m.Close(id)
}

// SetAsCurrent makes m the receiver of escape presses routed through router.
func (m *Manager) SetAsCurrent(router *interop.EscapeRouter) {
	m.mu.Lock()
	if m.router != nil && m.router != router {
		m.router.Release(m)
	}
	m.router = router
	m.mu.Unlock()

	router.SetActive(m)
}

// resolveLocked finds target, which is a dialog ID or TargetCurrent.
// Nothing resolves once the Manager is stopped.
func (m *Manager) resolveLocked(target string) (*model.Dialog, bool) {
	if m.stopped {
		return nil, false
	}
	if target == TargetCurrent {
		return m.stack.Current()
	}
	return m.stack.Find(target)
}

// Resize changes a dialog's size and marks it resizing until the resize
// transition settles. Unresolved targets are ignored.
func (m *Manager) Resize(target string, size model.Size, customSize string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.resolveLocked(target)
	if !ok {
		m.logger.Debug("resize ignored, no target", "target", target)
		return
	}
	d.SetResizing(true)
	d.SetSize(size, customSize)
	m.notifyLocked()

	id := d.ID
	m.scheduler.Schedule(scheduler.TransitionResizeSettle, id, func() { m.settleResize(id) })
	m.logger.Debug("dialog resizing", "id", id, "size", size.String(), "custom_size", customSize)
}

// ResizeCustom resizes target to a custom size descriptor.
func (m *Manager) ResizeCustom(target string, customSize string) {
	m.Resize(target, model.SizeCustom, customSize)
}

func (m *Manager) settleResize(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.stack.Find(id)
	if !ok {
		return
	}
	d.SetResizing(false)
	m.notifyLocked()
}

// Recolor changes a dialog's accent color. Unresolved targets are ignored.
func (m *Manager) Recolor(target string, color model.Color, outlineColor string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.resolveLocked(target)
	if !ok {
		m.logger.Debug("recolor ignored, no target", "target", target)
		return
	}
	d.SetColor(color, outlineColor)
	m.notifyLocked()
	m.logger.Debug("dialog recolored", "id", d.ID, "color", color.String())
}

// UpdateContent replaces a dialog's content and parameters. Unresolved
// targets are ignored.
func (m *Manager) UpdateContent(target string, ref content.Ref, params map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.resolveLocked(target)
	if !ok {
		m.logger.Debug("content update ignored, no target", "target", target)
		return
	}
	d.SetContent(string(ref), params)
	m.notifyLocked()
	m.logger.Debug("dialog content updated", "id", d.ID, "content", ref)
}

// UpdateContentByName resolves name through the registry, then behaves like
// UpdateContent. A name that does not resolve changes nothing.
func (m *Manager) UpdateContentByName(target string, name string, params map[string]any) {
	ref, ok := m.registry.Resolve(name)
	if !ok {
		return
	}
	m.UpdateContent(target, ref, params)
}

// ApplyConfig applies a reloaded configuration. Existing dialogs keep their
// fields; only presentation settings, defaults and future delays change.
func (m *Manager) ApplyConfig(cfg *config.Config) {
	m.scheduler.SetDelays(cfg.Delays())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = cfg.Appearance.Theme
	m.animation = cfg.Appearance.Animation
	m.themesDir = cfg.Appearance.ThemesDir
	m.defaults = cfg.DialogOptions()
	m.notifyLocked()

	m.logger.Debug("dialog manager config applied",
		"theme", m.theme.String(),
		"animation", m.animation.String(),
	)
}

// Pending returns the number of transitions waiting to fire.
func (m *Manager) Pending() int {
	return m.scheduler.Pending()
}
