package curvemark

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bft-labs/curvemark/internal/app"
	"github.com/bft-labs/curvemark/internal/domain"
	"github.com/bft-labs/curvemark/internal/ports"
	"github.com/bft-labs/curvemark/pkg/log"
)

// Service is a curvature inspector that can be embedded in other applications.
// Use New() to create an instance, then Start() to begin processing paths.
type Service struct {
	config    Config
	lifecycle *app.Lifecycle
	agent     *app.Agent
	refresher *app.Refresher
	logger    ports.Logger

	mu     sync.Mutex
	done   chan struct{}
	runErr error
}

// New creates a new Service with the given configuration.
// The instance is created in StateStopped; call Start() to begin.
// Returns an error if configuration is invalid or no source is given.
func New(cfg Config, opts ...Option) (*Service, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil {
		return nil, fmt.Errorf("%w: a path source is required", domain.ErrInvalidConfig)
	}

	logger := o.logger
	if logger == nil {
		logger = log.Discard
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	refresher := app.NewRefresher(cfg.Marker, o.publishers, o.recorder, logger)
	agent := app.NewAgent(app.AgentConfig{
		Once:          cfg.Once,
		RetryInterval: cfg.RetryInterval,
	}, o.source, refresher, o.recorder, logger, emitter)

	return &Service{
		config:    cfg,
		lifecycle: app.NewLifecycle(logger, emitter),
		agent:     agent,
		refresher: refresher,
		logger:    logger,
	}, nil
}

// Start begins processing in the background and returns immediately.
// Returns ErrAlreadyRunning if already running.
// The provided context bounds the lifetime of the ingest loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	exited := s.lifecycle.Track(cancel)
	done := make(chan struct{})
	s.done = done
	s.runErr = nil

	s.logger.Info("curvemark starting",
		ports.Float64("threshold", s.config.Marker.Threshold),
		ports.String("frame_id", s.config.Marker.FrameID),
		ports.Bool("labels", s.config.Marker.ShowLabels),
		ports.Bool("once", s.config.Once),
	)

	go func() {
		defer close(done)
		defer exited()
		defer cancel()

		if err := s.lifecycle.TransitionTo(app.StateRunning, "ingest loop starting"); err != nil {
			s.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		err := s.agent.Run(runCtx)
		switch {
		case err == nil:
			// Source exhausted or once mode; Stop() may race us here.
			_ = s.lifecycle.TransitionTo(app.StateStopped, "path source finished")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			_ = s.lifecycle.TransitionTo(app.StateStopped, "context done")
		default:
			s.logger.Error("ingest loop error", ports.Err(err))
			s.mu.Lock()
			s.runErr = err
			s.mu.Unlock()
			_ = s.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop gracefully shuts down the service. The cycle in progress completes.
// Waits up to 30 seconds before giving up.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced,
// ErrNotRunning if the service is not running.
func (s *Service) Stop() error {
	s.mu.Lock()

	if !s.lifecycle.CanStop() {
		s.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := s.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	err := s.lifecycle.Shutdown(app.ShutdownTimeout)
	if err != nil {
		_ = s.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = s.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// Done is closed when the ingest loop of the current run exits.
// Returns nil before the first Start.
func (s *Service) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Err returns the error that crashed the last run, or nil.
func (s *Service) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runErr
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (s *Service) Status() State {
	return State(s.lifecycle.State())
}

// Config returns the configuration in use.
func (s *Service) Config() Config {
	return s.config
}

// Result is the marker output for one path.
type Result struct {
	// Clear is the delete-all directive, always published first.
	Clear MarkerBatch
	// Batch holds the markers; nil when nothing was flagged.
	Batch    *MarkerBatch
	Analysis Analysis
}

// Evaluate analyses a single path and composes its markers without
// publishing anything.
func Evaluate(path Path, cfg MarkerConfig) Result {
	clearAll, batch, analysis := app.OnPath(path, cfg)
	return Result{Clear: clearAll, Batch: batch, Analysis: analysis}
}
