package curvemark

import (
	"fmt"
	"time"

	"github.com/bft-labs/curvemark/internal/app"
	"github.com/bft-labs/curvemark/internal/domain"
)

// Config holds the configuration for a Service.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// Marker controls flagging and rendering.
	Marker MarkerConfig

	// Once stops the service after the first path.
	Once bool

	// RetryInterval caps the backoff after source read errors.
	// Default: 10 seconds
	RetryInterval time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Marker:        domain.DefaultMarkerConfig(),
		RetryInterval: app.DefaultBackoffMax,
	}
}

// SetDefaults fills zero-valued fields that have a default.
func (c *Config) SetDefaults() {
	if c.RetryInterval <= 0 {
		c.RetryInterval = app.DefaultBackoffMax
	}
	if c.Marker.FrameID == "" {
		c.Marker.FrameID = domain.DefaultMarkerConfig().FrameID
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Marker.Validate(); err != nil {
		return fmt.Errorf("marker config: %w", err)
	}
	return nil
}
