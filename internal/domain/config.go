package domain

import (
	"fmt"
	"math"
)

// MarkerConfig holds the flagging and rendering parameters. It is resolved once
// at startup and never mutated, so it is passed by value.
type MarkerConfig struct {
	// Threshold is the curvature above which a point is flagged.
	Threshold float64

	// ShowLabels enables a text label next to every sphere.
	ShowLabels bool

	// ShowRadius labels points with 1/kappa instead of kappa.
	ShowRadius bool

	// FrameID is stamped on every marker.
	FrameID string

	SphereColor Color
	TextColor   Color
	SphereSize  float64
	TextSize    float64

	// TextOffset moves a label away from its sphere.
	TextOffset Vector3
}

// DefaultTextOffset returns the label offset used when none is configured.
// Radius labels are shorter than curvature labels, so they sit closer.
func DefaultTextOffset(showRadius bool) Vector3 {
	if showRadius {
		return Vector3{X: 1.0, Y: 0, Z: 0.5}
	}
	return Vector3{X: 1.5, Y: 0, Z: 0.5}
}

// DefaultMarkerConfig returns the stock parameters: threshold 0.2, labels
// showing turning radius, pink spheres and white text in the "map" frame.
func DefaultMarkerConfig() MarkerConfig {
	return MarkerConfig{
		Threshold:   0.2,
		ShowLabels:  true,
		ShowRadius:  true,
		FrameID:     "map",
		SphereColor: Color{R: 0.996, G: 0.426, B: 0.641, A: 0.5},
		TextColor:   Color{R: 1, G: 1, B: 1, A: 1},
		SphereSize:  0.6,
		TextSize:    0.8,
		TextOffset:  DefaultTextOffset(true),
	}
}

// Validate checks the parameters. Errors wrap ErrInvalidConfig.
func (c MarkerConfig) Validate() error {
	switch {
	case math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) || c.Threshold < 0:
		return fmt.Errorf("%w: threshold must be a finite number >= 0", ErrInvalidConfig)
	case c.FrameID == "":
		return fmt.Errorf("%w: frame id is required", ErrInvalidConfig)
	case !(c.SphereSize > 0) || !(c.TextSize > 0):
		return fmt.Errorf("%w: marker sizes must be positive", ErrInvalidConfig)
	case !c.SphereColor.valid() || !c.TextColor.valid():
		return fmt.Errorf("%w: color components must be in [0,1]", ErrInvalidConfig)
	}
	return nil
}

func (c Color) valid() bool {
	for _, v := range [...]float64{c.R, c.G, c.B, c.A} {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}
