package curvemark

import (
	"github.com/bft-labs/curvemark/internal/domain"
	"github.com/bft-labs/curvemark/internal/ports"
	"github.com/bft-labs/curvemark/pkg/log"
)

// Re-exported domain and port types, so embedders never import internal packages.
type (
	Path           = domain.Path
	Pose           = domain.Pose
	Header         = domain.Header
	Marker         = domain.Marker
	MarkerBatch    = domain.MarkerBatch
	MarkerConfig   = domain.MarkerConfig
	CurvaturePoint = domain.CurvaturePoint
	Analysis       = domain.Analysis

	PathSource      = ports.PathSource
	MarkerPublisher = ports.MarkerPublisher
	CycleRecorder   = ports.CycleRecorder
	HTTPClient      = ports.HTTPClient

	Logger   = log.Logger
	LogField = log.Field
)

// Errors returned by the service.
var (
	ErrAlreadyRunning  = domain.ErrAlreadyRunning
	ErrNotRunning      = domain.ErrNotRunning
	ErrShutdownTimeout = domain.ErrShutdownTimeout
	ErrInvalidConfig   = domain.ErrInvalidConfig
	ErrInvalidPath     = domain.ErrInvalidPath
	ErrSourceClosed    = domain.ErrSourceClosed
)

// DecodePath parses a JSON path message.
func DecodePath(data []byte) (Path, error) {
	return domain.DecodePath(data)
}

// EncodeBatch serializes a marker batch as a MarkerArray JSON message.
func EncodeBatch(b MarkerBatch) ([]byte, error) {
	return domain.EncodeBatch(b)
}
