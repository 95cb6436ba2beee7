package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/curvemark/internal/domain"
	"github.com/bft-labs/curvemark/internal/ports"
)

// ShutdownTimeout bounds how long Stop waits for the cycle in progress.
const ShutdownTimeout = 30 * time.Second

// State is the lifecycle state of a service.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// canMoveTo reports whether to is reachable from s in one step.
// Running goes straight to Stopped when the source runs dry.
func (s State) canMoveTo(to State) bool {
	switch s {
	case StateStopped, StateCrashed:
		return to == StateStarting
	case StateStarting:
		return to == StateRunning || to == StateStopping || to == StateCrashed
	case StateRunning:
		return to == StateStopping || to == StateStopped || to == StateCrashed
	case StateStopping:
		return to == StateStopped || to == StateCrashed
	}
	return false
}

// EventEmitter is told about every state change.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Lifecycle is the state machine of a service and owns the handle of its
// ingest loop. At most one loop is tracked at a time.
type Lifecycle struct {
	mu      sync.RWMutex
	state   State
	cancel  context.CancelFunc
	loop    chan struct{}
	logger  ports.Logger
	emitter EventEmitter
}

// NewLifecycle returns a lifecycle in StateStopped. emitter may be nil.
func NewLifecycle(logger ports.Logger, emitter EventEmitter) *Lifecycle {
	return &Lifecycle{
		state:   StateStopped,
		logger:  logger,
		emitter: emitter,
	}
}

func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo moves to next. Leaving Stopped or Crashed for anything but
// Starting fails with ErrNotRunning; any other illegal move fails with
// ErrAlreadyRunning.
func (l *Lifecycle) TransitionTo(next State, reason string) error {
	l.mu.Lock()
	prev := l.state
	if !prev.canMoveTo(next) {
		l.mu.Unlock()
		if prev == StateStopped || prev == StateCrashed {
			return fmt.Errorf("%w: cannot go from %s to %s", domain.ErrNotRunning, prev, next)
		}
		return fmt.Errorf("%w: cannot go from %s to %s", domain.ErrAlreadyRunning, prev, next)
	}
	l.state = next
	l.mu.Unlock()

	if l.emitter != nil {
		l.emitter.OnStateChange(prev, next, reason)
	}
	l.logger.Info("state transition",
		ports.String("from", prev.String()),
		ports.String("to", next.String()),
		ports.String("reason", reason),
	)
	return nil
}

func (l *Lifecycle) CanStart() bool {
	s := l.State()
	return s == StateStopped || s == StateCrashed
}

func (l *Lifecycle) CanStop() bool {
	s := l.State()
	return s == StateRunning || s == StateStarting
}

// Track registers a new ingest loop that is stopped through cancel.
// The loop must call the returned func exactly once when it exits.
func (l *Lifecycle) Track(cancel context.CancelFunc) (exited func()) {
	loop := make(chan struct{})
	l.mu.Lock()
	l.cancel = cancel
	l.loop = loop
	l.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(loop) }) }
}

// Shutdown cancels the tracked loop and waits for it to exit.
// Returns ErrShutdownTimeout if it is still running after timeout.
func (l *Lifecycle) Shutdown(timeout time.Duration) error {
	l.mu.RLock()
	cancel, loop := l.cancel, l.loop
	l.mu.RUnlock()

	if loop == nil {
		return nil
	}
	if cancel != nil {
		cancel()
	}

	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-loop:
		return nil
	case <-t.C:
		l.logger.Warn("ingest loop did not exit in time",
			ports.Duration("timeout", timeout),
		)
		return domain.ErrShutdownTimeout
	}
}
