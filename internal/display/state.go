package display

import (
	"slices"

	"github.com/jmylchreest/modalstack/internal/interop"
	"github.com/jmylchreest/modalstack/internal/model"
	"github.com/jmylchreest/modalstack/internal/theme"
)

// Subscribe returns a channel that receives a signal after every change.
//
// The signal carries no payload: receivers re-read the whole stack with
// Dialogs. The channel holds one pending signal, so a slow receiver sees
// several changes folded into one. Call cancel to unsubscribe; the channel is
// closed on cancel or Stop.
func (m *Manager) Subscribe() (ch <-chan struct{}, cancel func()) {
	c := make(chan struct{}, 1)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		close(c)
		return c, func() {}
	}
	m.subscribers = append(m.subscribers, c)

	return c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subscribers {
			if s == c {
				m.subscribers = slices.Delete(m.subscribers, i, i+1)
				close(c)
				return
			}
		}
	}
}

// SubscribeProperties returns a channel of field-level changes for
// fine-grained redraws. Changes are dropped if the receiver falls behind.
func (m *Manager) SubscribeProperties() (ch <-chan model.PropertyChange, cancel func()) {
	c := make(chan model.PropertyChange, propertyBuffer)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		close(c)
		return c, func() {}
	}
	m.propSubscribers = append(m.propSubscribers, c)

	return c, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.propSubscribers {
			if s == c {
				m.propSubscribers = slices.Delete(m.propSubscribers, i, i+1)
				close(c)
				return
			}
		}
	}
}

// notifyLocked signals every subscriber. Caller must hold the lock.
func (m *Manager) notifyLocked() {
	for _, ch := range m.subscribers {
		select {
		case ch <- struct{}{}:
		default:
			// A signal is already pending.
		}
	}
}

// propertyChangedLocked is the change hook installed on every dialog.
// Dialog setters only run under the lock.
func (m *Manager) propertyChangedLocked(change model.PropertyChange) {
	for _, ch := range m.propSubscribers {
		select {
		case ch <- change:
		default:
			// Channel full, skip
		}
	}
}

// Dialogs returns a snapshot of the stack, oldest first.
func (m *Manager) Dialogs() []model.Dialog {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.stack.All()
	out := make([]model.Dialog, 0, len(all))
	for _, d := range all {
		out = append(out, d.Clone())
	}
	return out
}

// Get returns a snapshot of the dialog with the given ID.
func (m *Manager) Get(id string) (model.Dialog, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.stack.Find(id)
	if !ok {
		return model.Dialog{}, false
	}
	return d.Clone(), true
}

// CurrentDialog returns a snapshot of the current dialog: the newest one
// that is visible and not being removed.
func (m *Manager) CurrentDialog() (model.Dialog, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.stack.Current()
	if !ok {
		return model.Dialog{}, false
	}
	return d.Clone(), true
}

// Count returns the number of dialogs in the stack, including removing ones.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stack.Len()
}

// SetTheme changes the theme used for style derivation.
func (m *Manager) SetTheme(t model.Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = t
	m.notifyLocked()
	m.logger.Debug("theme changed", "theme", t.String())
}

// Theme returns the current theme.
func (m *Manager) Theme() model.Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.theme
}

// SetAnimation changes the animation used by the renderer.
func (m *Manager) SetAnimation(a model.Animation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.animation = a
	m.notifyLocked()
	m.logger.Debug("animation changed", "animation", a.String())
}

// Animation returns the current animation.
func (m *Manager) Animation() model.Animation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.animation
}

// StyleFor returns the inline CSS for d under the current theme.
func (m *Manager) StyleFor(d model.Dialog) string {
	return theme.StyleFor(m.Theme(), d)
}

// CloseButtonColor returns the close button color for the current theme.
func (m *Manager) CloseButtonColor() string {
	return theme.CloseButtonColor(m.Theme())
}

// ClassesFor returns the CSS class list for d under the current animation.
func (m *Manager) ClassesFor(d model.Dialog) string {
	return theme.DialogClasses(d, m.Animation())
}

// Stylesheet returns the resolved stylesheet for the current theme.
func (m *Manager) Stylesheet() string {
	m.mu.Lock()
	t, dir := m.theme, m.themesDir
	m.mu.Unlock()
	return theme.LoadStylesheet(t, dir).CSS
}

// Hooks returns the interop setup for the dialog with the given ID.
func (m *Manager) Hooks(id string) (interop.DialogHooks, bool) {
	d, ok := m.Get(id)
	if !ok {
		return interop.DialogHooks{}, false
	}
	return interop.Hooks(d), true
}
