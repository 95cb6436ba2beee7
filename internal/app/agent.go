package app

import (
	"context"
	"errors"
	"time"

	"github.com/bft-labs/curvemark/internal/domain"
	"github.com/bft-labs/curvemark/internal/ports"
)

// AgentConfig contains configuration for the ingest loop.
type AgentConfig struct {
	// Once stops the loop after the first processed path.
	Once bool

	// RetryInterval bounds the backoff applied after source read errors.
	RetryInterval time.Duration
}

// Agent pulls paths from a source and refreshes markers for each, one cycle
// at a time. A new path is not read until the previous cycle has published.
type Agent struct {
	config    AgentConfig
	source    ports.PathSource
	refresher *Refresher
	recorder  ports.CycleRecorder
	logger    ports.Logger
	emitter   CycleEventEmitter
}

// CycleEventEmitter is called after every cycle.
type CycleEventEmitter interface {
	OnCycle(result CycleResult, err error)
}

// NewAgent creates a new agent with the given dependencies.
func NewAgent(
	config AgentConfig,
	source ports.PathSource,
	refresher *Refresher,
	recorder ports.CycleRecorder,
	logger ports.Logger,
	emitter CycleEventEmitter,
) *Agent {
	if config.RetryInterval <= 0 {
		config.RetryInterval = DefaultBackoffMax
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Agent{
		config:    config,
		source:    source,
		refresher: refresher,
		recorder:  recorder,
		logger:    logger,
		emitter:   emitter,
	}
}

// Run executes the ingest loop.
// Returns nil when the source is exhausted (or after one path in Once mode),
// ctx.Err() when the context is canceled.
func (a *Agent) Run(ctx context.Context) error {
	defer a.source.Close()

	backoff := newBackoff(DefaultBackoffInitial, a.config.RetryInterval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		path, err := a.source.Next(ctx)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSourceClosed):
				a.logger.Info("path source closed")
				return nil
			case ctx.Err() != nil:
				return ctx.Err()
			case errors.Is(err, domain.ErrInvalidPath):
				a.recorder.PathRejected()
				a.logger.Warn("dropping undecodable path", ports.Err(err))
				continue
			}

			a.logger.Error("read error", ports.Err(err))
			if !backoff.Wait(ctx) {
				return ctx.Err()
			}
			continue
		}
		backoff.Reset()

		result, err := a.refresher.Refresh(ctx, path)
		if a.emitter != nil {
			a.emitter.OnCycle(result, err)
		}

		if a.config.Once {
			return nil
		}
	}
}
