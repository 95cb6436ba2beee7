package curvemark

// Option configures optional behavior of a Service.
type Option func(*options)

// options holds the optional configuration for a Service instance.
type options struct {
	logger       Logger
	source       PathSource
	publishers   []MarkerPublisher
	recorder     CycleRecorder
	eventHandler EventHandler
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource sets where paths come from. Required.
func WithSource(source PathSource) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithPublisher adds a marker sink. Publishers receive every batch in
// registration order.
func WithPublisher(p MarkerPublisher) Option {
	return func(o *options) {
		o.publishers = append(o.publishers, p)
	}
}

// WithRecorder sets a metrics recorder.
func WithRecorder(r CycleRecorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithEventHandler sets a handler for service events.
// Events are called synchronously from the ingest goroutine.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}
