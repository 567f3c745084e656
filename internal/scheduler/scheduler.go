// Package scheduler runs delayed dialog transitions without blocking the caller.
package scheduler

import (
	"log/slog"
	"sync"
	"time"
)

// Transition identifies a timed state change.
type Transition int

const (
	// TransitionShow makes a newly opened dialog visible.
	TransitionShow Transition = iota
	// TransitionRemove evicts a closing dialog from the stack.
	TransitionRemove
	// TransitionResizeSettle clears the resizing flag.
	TransitionResizeSettle
	// TransitionWarmUp emits one no-op change so observers can initialize.
	TransitionWarmUp
)

// String returns the name of the transition.
func (t Transition) String() string {
	switch t {
	case TransitionShow:
		return "show"
	case TransitionRemove:
		return "remove"
	case TransitionResizeSettle:
		return "resize-settle"
	case TransitionWarmUp:
		return "warm-up"
	default:
		return "unknown"
	}
}

// Default transition delays. They match the renderer's CSS transition durations.
const (
	DefaultShowDelay   = 50 * time.Millisecond
	DefaultRemoveDelay = 300 * time.Millisecond
	DefaultResizeDelay = 300 * time.Millisecond
	DefaultWarmUpDelay = 200 * time.Millisecond
)

// Delays holds the delay for each transition. Zero means the default.
type Delays struct {
	Show   time.Duration
	Remove time.Duration
	Resize time.Duration
	WarmUp time.Duration
}

// DefaultDelays returns the canonical delays.
func DefaultDelays() Delays {
	return Delays{
		Show:   DefaultShowDelay,
		Remove: DefaultRemoveDelay,
		Resize: DefaultResizeDelay,
		WarmUp: DefaultWarmUpDelay,
	}
}

// For returns the delay configured for t.
func (d Delays) For(t Transition) time.Duration {
	var v, def time.Duration
	switch t {
	case TransitionShow:
		v, def = d.Show, DefaultShowDelay
	case TransitionRemove:
		v, def = d.Remove, DefaultRemoveDelay
	case TransitionResizeSettle:
		v, def = d.Resize, DefaultResizeDelay
	case TransitionWarmUp:
		v, def = d.WarmUp, DefaultWarmUpDelay
	}
	if v <= 0 {
		return def
	}
	return v
}

// Scheduler fires callbacks after per-transition delays.
//
// Callbacks run on their own goroutine and must do their own locking. The
// scheduler makes no promise that the target still exists when a callback
// fires; callers re-check before mutating.
type Scheduler struct {
	logger *slog.Logger

	mu      sync.Mutex
	delays  Delays
	pending int
	stopped bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a Scheduler using delays.
func New(delays Delays, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		logger: logger,
		delays: delays,
		stopCh: make(chan struct{}),
	}
}

// SetDelays replaces the delays used for transitions scheduled from now on.
func (s *Scheduler) SetDelays(delays Delays) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = delays
}

// Delays returns the current delays.
func (s *Scheduler) Delays() Delays {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delays
}

// Schedule runs fn once the delay for t has elapsed. It returns immediately,
// and returns false without scheduling anything after Stop.
func (s *Scheduler) Schedule(t Transition, target string, fn func()) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	delay := s.delays.For(t)
	s.pending++
	s.wg.Add(1)
	stopCh := s.stopCh
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			s.done()
			s.logger.Debug("transition fired", "transition", t.String(), "target", target)
			fn()
		case <-stopCh:
			s.done()
			s.logger.Debug("transition dropped", "transition", t.String(), "target", target)
		}
	}()
	return true
}

func (s *Scheduler) done() {
	s.mu.Lock()
	s.pending--
	s.mu.Unlock()
}

// Pending returns the number of transitions waiting for their delay.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Stop drops every pending transition without running it and waits for
// callbacks already running to return. It must not be called from inside a
// callback. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		close(s.stopCh)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
