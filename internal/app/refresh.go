package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bft-labs/curvemark/internal/domain"
	"github.com/bft-labs/curvemark/internal/ports"
)

// OnPath derives the full marker state for one path.
//
// clearAll is always the delete-all directive and must be published first.
// batch is nil when the path is empty or no point exceeds the threshold;
// otherwise it holds one sphere per flagged point (ids 0..N-1 in path order)
// and, when labels are enabled, a label with the same id.
func OnPath(path domain.Path, cfg domain.MarkerConfig) (clearAll domain.MarkerBatch, batch *domain.MarkerBatch, analysis domain.Analysis) {
	hdr := domain.Header{FrameID: cfg.FrameID, Stamp: path.Header.Stamp}
	clearAll = domain.ClearAll(cfg.FrameID, path.Header.Stamp)

	if path.Empty() {
		return clearAll, nil, analysis
	}

	analysis = Analyze(path, cfg.Threshold)
	if analysis.OK() {
		return clearAll, nil, analysis
	}

	per := 1
	if cfg.ShowLabels {
		per = 2
	}
	batch = domain.NewMarkerBatch(per * len(analysis.Flagged))
	for id, pt := range analysis.Flagged {
		batch.Add(ComposeSphere(pt, id, cfg, hdr))
		if cfg.ShowLabels {
			batch.Add(ComposeLabel(pt, id, cfg, hdr))
		}
	}
	return clearAll, batch, analysis
}

// CycleResult summarizes one refresh.
type CycleResult struct {
	Poses    int
	Analysis domain.Analysis
	Clear    domain.MarkerBatch
	Batch    *domain.MarkerBatch
	Duration time.Duration
}

// Refresher runs OnPath and publishes its output: the clear directive to every
// publisher, then the batch to every publisher whose clear succeeded.
type Refresher struct {
	cfg        domain.MarkerConfig
	publishers []ports.MarkerPublisher
	recorder   ports.CycleRecorder
	logger     ports.Logger
}

// NewRefresher creates a refresher. recorder may be nil.
func NewRefresher(
	cfg domain.MarkerConfig,
	publishers []ports.MarkerPublisher,
	recorder ports.CycleRecorder,
	logger ports.Logger,
) *Refresher {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Refresher{
		cfg:        cfg,
		publishers: publishers,
		recorder:   recorder,
		logger:     logger,
	}
}

// Config returns the marker configuration in use.
func (r *Refresher) Config() domain.MarkerConfig {
	return r.cfg
}

// Refresh processes one path. The returned error joins every publish failure;
// the result is valid even when err is non-nil.
func (r *Refresher) Refresh(ctx context.Context, path domain.Path) (CycleResult, error) {
	start := time.Now()
	clearAll, batch, analysis := OnPath(path, r.cfg)

	var errs []error
	cleared := make([]ports.MarkerPublisher, 0, len(r.publishers))
	for _, p := range r.publishers {
		if err := p.Publish(ctx, clearAll); err != nil {
			errs = append(errs, r.publishFailed(p, "clear", err))
			continue
		}
		cleared = append(cleared, p)
	}

	switch {
	case path.Empty():
		r.logger.Debug("empty path, markers cleared")
	case analysis.OK():
		r.logger.Info("all points in the path were OK",
			ports.Int("poses", path.Len()),
			ports.Float64("length", path.Length()),
		)
	default:
		for _, p := range cleared {
			if err := p.Publish(ctx, *batch); err != nil {
				errs = append(errs, r.publishFailed(p, "batch", err))
			}
		}
		r.logger.Info("published curvature markers",
			ports.Int("poses", path.Len()),
			ports.Int("flagged", len(analysis.Flagged)),
			ports.Int("markers", batch.Size()),
			ports.Float64("max_kappa", maxKappa(analysis.Flagged)),
		)
	}

	if len(analysis.Degenerate) > 0 {
		r.logger.Debug("skipped poses on zero-length segments",
			ports.Ints("indexes", analysis.Degenerate),
		)
	}

	res := CycleResult{
		Poses:    path.Len(),
		Analysis: analysis,
		Clear:    clearAll,
		Batch:    batch,
		Duration: time.Since(start),
	}
	r.recorder.ObserveCycle(path.Len(), len(analysis.Flagged), len(analysis.Degenerate), res.Duration)
	return res, errors.Join(errs...)
}

func (r *Refresher) publishFailed(p ports.MarkerPublisher, what string, err error) error {
	r.recorder.PublishFailed(p.Name())
	r.logger.Error("publish failed",
		ports.String("publisher", p.Name()),
		ports.String("batch", what),
		ports.Err(err),
	)
	return fmt.Errorf("%s: publish %s: %w", p.Name(), what, err)
}

func maxKappa(pts []domain.CurvaturePoint) float64 {
	var m float64
	for _, p := range pts {
		if p.Kappa > m {
			m = p.Kappa
		}
	}
	return m
}

type nopRecorder struct{}

func (nopRecorder) ObserveCycle(int, int, int, time.Duration) {}
func (nopRecorder) PublishFailed(string)                      {}
func (nopRecorder) PathRejected()                             {}
