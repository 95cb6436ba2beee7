package app

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/bft-labs/curvemark/internal/domain"
)

// Curvature returns the discrete curvature at cur: the turning angle between
// the incoming segment (prev->cur) and the outgoing segment (cur->next),
// divided by the incoming segment length.
//
// The angle is atan2(|u1 x u2|, u1 . u2) on the unit segment directions,
// which equals acos of the normalized dot product without underflowing on
// very short segments.
//
// ok is false when either segment has zero length, or the result is not a
// finite number. The returned value must be ignored in that case.
func Curvature(prev, cur, next domain.Pose) (kappa float64, ok bool) {
	v1 := r2.Sub(planar(cur), planar(prev))
	v2 := r2.Sub(planar(next), planar(cur))

	n1, n2 := r2.Norm(v1), r2.Norm(v2)
	if n1 == 0 || n2 == 0 {
		return 0, false
	}

	u1, u2 := r2.Unit(v1), r2.Unit(v2)
	theta := math.Atan2(math.Abs(r2.Cross(u1, u2)), r2.Dot(u1, u2))

	kappa = theta / n1
	if math.IsNaN(kappa) || math.IsInf(kappa, 0) {
		return 0, false
	}
	return kappa, true
}

// Analyze inspects every interior pose of path and returns those whose
// curvature is strictly greater than threshold, in path order.
//
// Interior poses are indexes 1 through len-2 inclusive. Poses adjacent to a
// zero-length segment are skipped and listed in Analysis.Degenerate.
func Analyze(path domain.Path, threshold float64) domain.Analysis {
	var a domain.Analysis
	poses := path.Poses
	if len(poses) < 3 {
		return a
	}

	a.Interior = len(poses) - 2
	for i := 1; i <= len(poses)-2; i++ {
		kappa, ok := Curvature(poses[i-1], poses[i], poses[i+1])
		if !ok {
			a.Degenerate = append(a.Degenerate, i)
			continue
		}
		if kappa > threshold {
			a.Flagged = append(a.Flagged, domain.CurvaturePoint{
				Index: i,
				Pose:  poses[i],
				Kappa: kappa,
			})
		}
	}
	return a
}

func planar(p domain.Pose) r2.Vec {
	return r2.Vec{X: p.Position.X, Y: p.Position.Y}
}
