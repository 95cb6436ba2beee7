// Package ports declares what the curvature core needs from the outside:
//
//   - [PathSource] hands over the latest incoming path
//   - [MarkerPublisher] receives clear directives and marker batches
//   - [CycleRecorder] takes per-cycle measurements
//   - [Logger] writes structured log lines
//   - [HTTPClient] sends webhook requests
//
// internal/app depends only on these interfaces. The implementations live in
// internal/adapters (NATS, fsnotify inbox, webhook, snapshot file, PNG plot,
// Prometheus) and are chosen in cmd/curvemark.
package ports
