package app

import (
	"math"
	"strconv"

	"github.com/bft-labs/curvemark/internal/domain"
)

// Significant digits used for label text.
const (
	radiusDigits    = 3
	curvatureDigits = 4
)

// ComposeSphere builds the sphere marker for a flagged point.
func ComposeSphere(pt domain.CurvaturePoint, id int, cfg domain.MarkerConfig, hdr domain.Header) domain.Marker {
	return domain.Marker{
		Header:    hdr,
		Namespace: domain.NamespaceSphere,
		ID:        id,
		Type:      domain.MarkerSphere,
		Action:    domain.ActionAdd,
		Pose:      pt.Pose,
		Scale:     domain.Vector3{X: cfg.SphereSize, Y: cfg.SphereSize, Z: cfg.SphereSize},
		Color:     cfg.SphereColor,
	}
}

// ComposeLabel builds the text marker paired with the sphere of the same id.
// The label sits at the point's pose shifted by cfg.TextOffset.
func ComposeLabel(pt domain.CurvaturePoint, id int, cfg domain.MarkerConfig, hdr domain.Header) domain.Marker {
	return domain.Marker{
		Header:    hdr,
		Namespace: domain.NamespaceLabel,
		ID:        id,
		Type:      domain.MarkerTextViewFacing,
		Action:    domain.ActionAdd,
		Pose:      pt.Pose.Translate(cfg.TextOffset),
		Scale:     domain.Vector3{Z: cfg.TextSize},
		Color:     cfg.TextColor,
		Text:      LabelText(pt.Kappa, cfg.ShowRadius),
	}
}

// LabelText formats kappa for display: as a turning radius (1/kappa, three
// significant digits) when showRadius is set, otherwise as the raw curvature
// with four significant digits.
func LabelText(kappa float64, showRadius bool) string {
	if !showRadius {
		return strconv.FormatFloat(kappa, 'g', curvatureDigits, 64)
	}
	if kappa == 0 {
		return "inf"
	}
	r := 1 / kappa
	if math.IsInf(r, 0) {
		return "inf"
	}
	return strconv.FormatFloat(r, 'g', radiusDigits, 64)
}
