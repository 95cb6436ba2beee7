// Package curvemark flags high-curvature points on planned paths and
// publishes visual markers for them.
//
// Example usage:
//
//	cfg := curvemark.DefaultConfig()
//	cfg.Marker.Threshold = 0.5
//	err := curvemark.Run(ctx, cfg,
//	    curvemark.WithSource(source),
//	    curvemark.WithPublisher(publisher),
//	)
//
// For finer control over the lifecycle use pkg/curvemark directly.
package curvemark

import (
	"context"
	"errors"

	service "github.com/bft-labs/curvemark/pkg/curvemark"
)

// Config holds the configuration for the inspector.
type Config = service.Config

// Option configures optional behavior.
type Option = service.Option

// Options re-exported from pkg/curvemark.
var (
	WithLogger       = service.WithLogger
	WithSource       = service.WithSource
	WithPublisher    = service.WithPublisher
	WithRecorder     = service.WithRecorder
	WithEventHandler = service.WithEventHandler
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return service.DefaultConfig()
}

// Run processes paths until ctx is canceled or the source is exhausted
// (after one path when cfg.Once is set). It returns nil on a clean finish
// and the crash error otherwise.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	svc, err := service.New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		if err := svc.Stop(); !errors.Is(err, service.ErrNotRunning) {
			return err
		}
		// Finished on its own while ctx was being canceled.
		<-svc.Done()
		return svc.Err()
	case <-svc.Done():
		return svc.Err()
	}
}
