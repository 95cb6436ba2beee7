package cliconfig

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/curvemark/internal/domain"
)

// Path sources.
const (
	SourceNATS = "nats"
	SourceDir  = "dir"
)

// Defaults for the transport settings.
const (
	DefaultNATSURL       = "nats://127.0.0.1:4222"
	DefaultPathSubject   = "sPath"
	DefaultMarkerSubject = "bad_kappa"
)

// Config holds CLI configuration for curvemark.
type Config struct {
	Threshold   float64
	ShowLabels  bool
	ShowRadius  bool
	FrameID     string
	SphereColor []float64
	TextColor   []float64
	SphereSize  float64
	TextSize    float64
	TextOffset  []float64 // Derived from ShowRadius during Validate when unset

	Source        string
	NATSURL       string
	PathSubject   string
	MarkerSubject string
	InboxDir      string
	HTTPURL       string
	HTTPTimeout   time.Duration
	SnapshotFile  string
	PlotFile      string
	MetricsAddr   string
	LogLevel      string
	Once          bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Threshold:     0.2,
		ShowLabels:    true,
		ShowRadius:    true,
		FrameID:       "map",
		SphereColor:   []float64{0.996, 0.426, 0.641, 0.5},
		TextColor:     []float64{1, 1, 1, 1},
		SphereSize:    0.6,
		TextSize:      0.8,
		Source:        SourceNATS,
		NATSURL:       DefaultNATSURL,
		PathSubject:   DefaultPathSubject,
		MarkerSubject: DefaultMarkerSubject,
		HTTPTimeout:   10 * time.Second,
		LogLevel:      "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
// Every error wraps domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.ValidateMarker(); err != nil {
		return err
	}

	switch c.Source {
	case SourceNATS:
		if c.NATSURL == "" || c.PathSubject == "" {
			return invalid("nats source needs nats-url and path-subject")
		}
	case SourceDir:
		if c.InboxDir == "" {
			return invalid("dir source needs inbox-dir")
		}
	default:
		return invalid("unknown source %q (want %s or %s)", c.Source, SourceNATS, SourceDir)
	}

	// Ensure no trailing slash
	c.HTTPURL = strings.TrimRight(c.HTTPURL, "/")

	if c.HTTPURL != "" && c.HTTPTimeout <= 0 {
		return invalid("http timeout must be positive")
	}

	return nil
}

// ValidateMarker checks only the flagging and rendering settings and derives
// the text offset default. Transport settings are not looked at, so offline
// analysis works whatever source is configured.
func (c *Config) ValidateMarker() error {
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) || c.Threshold < 0 {
		return invalid("threshold must be a finite number >= 0, got %v", c.Threshold)
	}
	if c.FrameID == "" {
		return invalid("frame-id is required")
	}
	if c.SphereSize <= 0 {
		return invalid("sphere-size must be positive")
	}
	if c.TextSize <= 0 {
		return invalid("text-size must be positive")
	}
	if err := checkColor("sphere-color", c.SphereColor); err != nil {
		return err
	}
	if err := checkColor("text-color", c.TextColor); err != nil {
		return err
	}

	if len(c.TextOffset) == 0 {
		off := domain.DefaultTextOffset(c.ShowRadius)
		c.TextOffset = []float64{off.X, off.Y, off.Z}
	}
	if len(c.TextOffset) != 3 {
		return invalid("text-offset needs 3 components, got %d", len(c.TextOffset))
	}
	return nil
}

// PublishesToNATS reports whether markers go out on the NATS subject.
// Markers are published to NATS whenever a NATS connection is configured.
func (c *Config) PublishesToNATS() bool {
	return c.NATSURL != "" && c.MarkerSubject != ""
}

// MarkerConfig converts the validated settings into the immutable domain form.
func (c *Config) MarkerConfig() domain.MarkerConfig {
	return domain.MarkerConfig{
		Threshold:   c.Threshold,
		ShowLabels:  c.ShowLabels,
		ShowRadius:  c.ShowRadius,
		FrameID:     c.FrameID,
		SphereColor: toColor(c.SphereColor),
		TextColor:   toColor(c.TextColor),
		SphereSize:  c.SphereSize,
		TextSize:    c.TextSize,
		TextOffset:  domain.Vector3{X: c.TextOffset[0], Y: c.TextOffset[1], Z: c.TextOffset[2]},
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func checkColor(name string, c []float64) error {
	if len(c) != 4 {
		return invalid("%s needs 4 components (r,g,b,a), got %d", name, len(c))
	}
	for _, v := range c {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return invalid("%s components must be in [0,1], got %v", name, v)
		}
	}
	return nil
}

func toColor(c []float64) domain.Color {
	return domain.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value from a pointer if not nil and flag not changed.
// Zero is a meaningful value, so presence is carried by the pointer.
func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setFloats sets a float slice if not empty and flag not changed.
func (s *configSetter) setFloats(flag string, value []float64, dst *[]float64) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]float64(nil), value...)
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setFloatFromString parses a string to float64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setFloatsFromString parses a comma-separated list such as "1,0,0.5".
func (s *configSetter) setFloatsFromString(flag, value string, dst *[]float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", flag, err)
		}
		out = append(out, f)
	}
	*dst = out
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
