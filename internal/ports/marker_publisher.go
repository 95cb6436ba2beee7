package ports

import (
	"context"
	"net/http"

	"github.com/bft-labs/curvemark/internal/domain"
)

// MarkerPublisher delivers marker batches to a renderer.
// Each call publishes one batch atomically; a delete-all directive is just a
// batch for which IsClear() is true.
type MarkerPublisher interface {
	// Name identifies the publisher in logs and metrics.
	Name() string

	// Publish sends the batch. Returns nil on success.
	Publish(ctx context.Context, batch domain.MarkerBatch) error
}

// HTTPClient carries the webhook publisher's POST of each batch. An
// *http.Client with a timeout is used in production; tests pass the client of
// an httptest server or a stub returning canned responses.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
