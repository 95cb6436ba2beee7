package domain

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a position in the path's frame.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion is an orientation. It is carried through to markers untouched.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Pose is a single path sample. Only Position.X and Position.Y take part in
// curvature math; the rest is payload for rendering.
type Pose struct {
	Position    Point      `json:"position"`
	Orientation Quaternion `json:"orientation"`
}

// Header identifies the frame and time a message refers to. Its JSON form is
// std_msgs/Header; see MarshalJSON.
type Header struct {
	FrameID string
	Stamp   time.Time
}

// Path is an ordered sequence of poses in direction of travel. It may be empty.
type Path struct {
	Header Header
	Poses  []Pose
}

// Len returns the number of poses.
func (p Path) Len() int {
	return len(p.Poses)
}

// Empty returns true if the path has no poses.
func (p Path) Empty() bool {
	return len(p.Poses) == 0
}

// LineString returns the planar projection of the path.
func (p Path) LineString() orb.LineString {
	ls := make(orb.LineString, len(p.Poses))
	for i, pose := range p.Poses {
		ls[i] = orb.Point{pose.Position.X, pose.Position.Y}
	}
	return ls
}

// Length returns the planar arc length of the path.
func (p Path) Length() float64 {
	if len(p.Poses) < 2 {
		return 0
	}
	return planar.Length(p.LineString())
}

// Bound returns the planar bounding box of the path.
func (p Path) Bound() orb.Bound {
	return p.LineString().Bound()
}

// Translate returns a copy of the pose moved by the given offset.
func (p Pose) Translate(off Vector3) Pose {
	p.Position.X += off.X
	p.Position.Y += off.Y
	p.Position.Z += off.Z
	return p
}
