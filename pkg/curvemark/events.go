package curvemark

import (
	"time"

	"github.com/bft-labs/curvemark/internal/app"
)

// State represents the lifecycle state of a Service.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	return app.State(s).String()
}

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// CycleEvent summarizes one processed path.
type CycleEvent struct {
	Poses      int
	Flagged    int
	Degenerate int
	Markers    int
	Duration   time.Duration
	// Err joins every publish failure of the cycle; nil when all succeeded.
	Err error
}

// EventHandler receives service notifications.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnCycle(event CycleEvent)
}

// BaseEventHandler implements EventHandler with no-ops. Embed it to
// override only the events you need.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnCycle(CycleEvent)             {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: State(previous),
		Current:  State(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnCycle(result app.CycleResult, err error) {
	if e.handler == nil {
		return
	}
	ev := CycleEvent{
		Poses:      result.Poses,
		Flagged:    len(result.Analysis.Flagged),
		Degenerate: len(result.Analysis.Degenerate),
		Duration:   result.Duration,
		Err:        err,
	}
	if result.Batch != nil {
		ev.Markers = result.Batch.Size()
	}
	e.handler.OnCycle(ev)
}
