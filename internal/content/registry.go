// Package content maps textual content-type names to content references.
//
// The host application registers every renderable content type at startup.
// Lookups never fail loudly: a missing, ambiguous or misbehaving entry is
// reported as not found so callers can treat it as a no-op.
package content

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Ref is an opaque reference to renderable content, usually the fully
// qualified name the renderer knows the component by.
type Ref string

// Factory produces the Ref for a registered name.
type Factory func() (Ref, error)

// Registry errors.
var (
	ErrEmptyName     = errors.New("content name cannot be empty")
	ErrDuplicateName = errors.New("content name already registered")
	ErrNilFactory    = errors.New("content factory cannot be nil")
)

// Registry is a concurrency-safe name to Factory mapping.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	logger    *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		factories: make(map[string]Factory),
		logger:    logger,
	}
}

// Register adds a factory under name. Names are case-sensitive; the segment
// after the last '.' also serves as a case-insensitive short name.
func (r *Registry) Register(name string, factory Factory) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if factory == nil {
		return ErrNilFactory
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	r.factories[name] = factory
	return nil
}

// RegisterRef registers a factory that always returns ref, named after ref.
func (r *Registry) RegisterRef(ref Ref) error {
	return r.Register(string(ref), Static(ref))
}

// MustRegister is like Register but panics on error. Intended for startup wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Static returns a Factory that always yields ref.
func Static(ref Ref) Factory {
	return func() (Ref, error) { return ref, nil }
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve looks up name and runs its factory.
//
// An exact match wins. Otherwise name is compared case-insensitively against
// the short name of every entry, and exactly one entry must match. Factory
// errors and panics are logged and reported as not found.
func (r *Registry) Resolve(name string) (Ref, bool) {
	factory, key, ok := r.lookup(strings.TrimSpace(name))
	if !ok {
		r.logger.Debug("content not found", "name", name)
		return "", false
	}
	return r.invoke(key, factory)
}

func (r *Registry) lookup(name string) (Factory, string, bool) {
	if name == "" {
		return nil, "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.factories[name]; ok {
		return f, name, true
	}

	var (
		match    Factory
		matchKey string
		matches  int
	)
	for key, f := range r.factories {
		if strings.EqualFold(shortName(key), name) || strings.EqualFold(key, name) {
			match, matchKey = f, key
			matches++
		}
	}
	if matches != 1 {
		if matches > 1 {
			r.logger.Warn("ambiguous content name", "name", name, "matches", matches)
		}
		return nil, "", false
	}
	return match, matchKey, true
}

func (r *Registry) invoke(key string, factory Factory) (ref Ref, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("content factory panicked", "name", key, "panic", rec)
			ref, ok = "", false
		}
	}()

	ref, err := factory()
	if err != nil {
		r.logger.Warn("content factory failed", "name", key, "error", err)
		return "", false
	}
	if ref == "" {
		return "", false
	}
	return ref, true
}

func shortName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
