package ports

import "time"

// CycleRecorder receives per-cycle measurements.
type CycleRecorder interface {
	// ObserveCycle records one completed analysis-and-publish cycle.
	ObserveCycle(poses, flagged, degenerate int, duration time.Duration)

	// PublishFailed records a failed publish on the named publisher.
	PublishFailed(publisher string)

	// PathRejected records an incoming message that could not be decoded.
	PathRejected()
}
