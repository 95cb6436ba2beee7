package domain

// CurvaturePoint pairs a path pose with its discrete curvature (1/length units).
// Kappa is never negative.
type CurvaturePoint struct {
	// Index is the pose's position in the source path.
	Index int

	// Pose is the source pose, unmodified.
	Pose Pose

	// Kappa is the turning angle at the pose divided by the incoming segment length.
	Kappa float64
}

// Analysis is the outcome of inspecting one path.
type Analysis struct {
	// Flagged holds the points whose curvature exceeds the threshold, in path order.
	Flagged []CurvaturePoint

	// Interior is the number of poses that have both a predecessor and a successor.
	Interior int

	// Degenerate lists indexes skipped because an adjacent segment had zero length.
	Degenerate []int
}

// OK returns true if no point exceeded the threshold.
func (a Analysis) OK() bool {
	return len(a.Flagged) == 0
}
