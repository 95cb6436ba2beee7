package ports

import (
	"context"

	"github.com/bft-labs/curvemark/internal/domain"
)

// PathSource delivers incoming paths to the ingest loop.
// Implementations keep at most one undelivered path: a newer path replaces an
// older one that has not been picked up yet.
type PathSource interface {
	// Next blocks until a path is available or ctx is done.
	// Returns domain.ErrSourceClosed once the source is exhausted.
	// Returns an error wrapping domain.ErrInvalidPath for undecodable input;
	// the caller should skip it and call Next again.
	Next(ctx context.Context) (domain.Path, error)

	// Close releases all resources held by the source.
	Close() error
}
