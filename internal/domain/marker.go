package domain

import "time"

// Marker namespaces. A sphere and its label share an id, so identity is the
// (namespace, id) pair.
const (
	NamespaceSphere = "sphere"
	NamespaceLabel  = "label"
)

// MarkerType is the geometry of a marker. Values match visualization_msgs/Marker.
type MarkerType int

const (
	MarkerSphere         MarkerType = 2
	MarkerTextViewFacing MarkerType = 9
)

// String returns a human-readable representation of the type.
func (t MarkerType) String() string {
	switch t {
	case MarkerSphere:
		return "sphere"
	case MarkerTextViewFacing:
		return "text_view_facing"
	default:
		return "unknown"
	}
}

// MarkerAction tells the renderer what to do with a marker.
// Values match visualization_msgs/Marker.
type MarkerAction int

const (
	ActionAdd       MarkerAction = 0
	ActionDeleteAll MarkerAction = 3
)

// String returns a human-readable representation of the action.
func (a MarkerAction) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionDeleteAll:
		return "delete_all"
	default:
		return "unknown"
	}
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Vector3 is used for marker scale and label offsets.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Marker is a single renderable primitive.
type Marker struct {
	Header    Header       `json:"header"`
	Namespace string       `json:"ns"`
	ID        int          `json:"id"`
	Type      MarkerType   `json:"type"`
	Action    MarkerAction `json:"action"`
	Pose      Pose         `json:"pose"`
	Scale     Vector3      `json:"scale"`
	Color     Color        `json:"color"`
	Text      string       `json:"text,omitempty"`
}

// MarkerBatch is an ordered set of markers published atomically.
type MarkerBatch struct {
	Markers []Marker `json:"markers"`
}

// NewMarkerBatch creates a new empty batch with room for n markers.
func NewMarkerBatch(n int) *MarkerBatch {
	return &MarkerBatch{Markers: make([]Marker, 0, n)}
}

// ClearAll returns the delete-all directive for the given frame.
func ClearAll(frameID string, stamp time.Time) MarkerBatch {
	return MarkerBatch{Markers: []Marker{{
		Header: Header{FrameID: frameID, Stamp: stamp},
		Action: ActionDeleteAll,
	}}}
}

// Add appends a marker to the batch.
func (b *MarkerBatch) Add(m Marker) {
	b.Markers = append(b.Markers, m)
}

// Size returns the number of markers in the batch.
func (b MarkerBatch) Size() int {
	return len(b.Markers)
}

// Empty returns true if the batch has no markers.
func (b MarkerBatch) Empty() bool {
	return len(b.Markers) == 0
}

// IsClear returns true if the batch is a delete-all directive.
func (b MarkerBatch) IsClear() bool {
	return len(b.Markers) == 1 && b.Markers[0].Action == ActionDeleteAll
}

// Namespace returns the markers in ns, preserving batch order.
func (b MarkerBatch) Namespace(ns string) []Marker {
	var out []Marker
	for _, m := range b.Markers {
		if m.Namespace == ns {
			out = append(out, m)
		}
	}
	return out
}
