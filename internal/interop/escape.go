// Package interop is the boundary with the focus-trap and scroll-lock
// collaborator that runs next to the renderer.
package interop

import (
	"log/slog"
	"sync"
)

// Closer closes a dialog by ID. display.Manager implements it.
type Closer interface {
	Close(id string)
}

// EscapeRouter delivers escape-key presses to the one controller that
// currently claims them.
//
// The host creates a router, hands it to the key-listening collaborator, and
// lets at most one controller mark itself active at a time.
type EscapeRouter struct {
	mu     sync.RWMutex
	active Closer
	logger *slog.Logger
}

// NewEscapeRouter creates a router with no active receiver.
func NewEscapeRouter(logger *slog.Logger) *EscapeRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &EscapeRouter{logger: logger}
}

// SetActive makes c the receiver of escape presses, replacing any previous one.
func (r *EscapeRouter) SetActive(c Closer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = c
}

// Release clears the receiver if it is still c. A controller that was
// replaced by another does not unregister its successor.
func (r *EscapeRouter) Release(c Closer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == c {
		r.active = nil
	}
}

// Active returns the current receiver, or nil.
func (r *EscapeRouter) Active() Closer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// HandleEscapeKey closes dialogID on the active receiver. It reports whether
// a receiver was registered.
func (r *EscapeRouter) HandleEscapeKey(dialogID string) bool {
	c := r.Active()
	if c == nil {
		r.logger.Debug("escape key ignored, no active controller", "dialog_id", dialogID)
		return false
	}
	c.Close(dialogID)
	return true
}
