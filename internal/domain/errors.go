package domain

import "errors"

// Domain errors represent error conditions in the curvemark domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("curvemark: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("curvemark: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("curvemark: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("curvemark: invalid configuration")

	// ErrInvalidPath is returned when an incoming path message cannot be decoded.
	ErrInvalidPath = errors.New("curvemark: invalid path message")

	// ErrSourceClosed is returned by a PathSource once it will deliver no more paths.
	ErrSourceClosed = errors.New("curvemark: path source closed")
)
