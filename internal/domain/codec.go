package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// pathMessage is the JSON layout of an incoming path (nav_msgs/Path).
type pathMessage struct {
	Header Header        `json:"header"`
	Poses  []poseMessage `json:"poses"`
}

// poseMessage accepts both stamped poses ({"pose": {...}}) and bare poses.
type poseMessage struct {
	Pose        *Pose       `json:"pose,omitempty"`
	Position    *Point      `json:"position,omitempty"`
	Orientation *Quaternion `json:"orientation,omitempty"`
}

func (m poseMessage) toPose() Pose {
	if m.Pose != nil {
		return *m.Pose
	}
	var p Pose
	if m.Position != nil {
		p.Position = *m.Position
	}
	if m.Orientation != nil {
		p.Orientation = *m.Orientation
	}
	return p
}

// DecodePath parses a JSON path message.
func DecodePath(data []byte) (Path, error) {
	var msg pathMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return Path{}, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	path := Path{
		Header: msg.Header,
		Poses:  make([]Pose, len(msg.Poses)),
	}
	for i, pm := range msg.Poses {
		path.Poses[i] = pm.toPose()
	}
	return path, nil
}

// EncodePath serializes a path as stamped poses.
func EncodePath(p Path) ([]byte, error) {
	msg := pathMessage{
		Header: p.Header,
		Poses:  make([]poseMessage, len(p.Poses)),
	}
	for i := range p.Poses {
		msg.Poses[i] = poseMessage{Pose: &p.Poses[i]}
	}
	return json.Marshal(msg)
}

// EncodeBatch serializes a batch as a MarkerArray message.
func EncodeBatch(b MarkerBatch) ([]byte, error) {
	if b.Markers == nil {
		b.Markers = []Marker{}
	}
	return json.Marshal(b)
}

// DecodeBatch parses a MarkerArray message.
func DecodeBatch(data []byte) (MarkerBatch, error) {
	var b MarkerBatch
	if err := json.Unmarshal(data, &b); err != nil {
		return MarkerBatch{}, fmt.Errorf("decode marker batch: %w", err)
	}
	return b, nil
}

// headerMessage is the ROS std_msgs/Header layout. Stamps are written in the
// ROS 1 form {"secs","nsecs"}.
type headerMessage struct {
	FrameID string          `json:"frame_id"`
	Stamp   json.RawMessage `json:"stamp,omitempty"`
}

type stampMessage struct {
	Secs  int64 `json:"secs"`
	Nsecs int64 `json:"nsecs"`
}

// MarshalJSON writes the stamp as {"secs","nsecs"}. A zero stamp is 0/0.
func (h Header) MarshalJSON() ([]byte, error) {
	var st stampMessage
	if !h.Stamp.IsZero() {
		st = stampMessage{Secs: h.Stamp.Unix(), Nsecs: int64(h.Stamp.Nanosecond())}
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	return json.Marshal(headerMessage{FrameID: h.FrameID, Stamp: raw})
}

// UnmarshalJSON accepts the stamp as {"secs","nsecs"} (ROS 1),
// {"sec","nanosec"} (ROS 2) or an RFC 3339 string. A missing, null or 0/0
// stamp decodes to the zero time.
func (h *Header) UnmarshalJSON(data []byte) error {
	var msg headerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return err
	}
	stamp, err := decodeStamp(msg.Stamp)
	if err != nil {
		return err
	}
	*h = Header{FrameID: msg.FrameID, Stamp: stamp}
	return nil
}

func decodeStamp(raw json.RawMessage) (time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}, nil
	}
	if raw[0] == '"' {
		var t time.Time
		if err := json.Unmarshal(raw, &t); err != nil {
			return time.Time{}, fmt.Errorf("stamp: %w", err)
		}
		return t, nil
	}

	var st struct {
		Secs    *int64 `json:"secs"`
		Nsecs   *int64 `json:"nsecs"`
		Sec     *int64 `json:"sec"`
		Nanosec *int64 `json:"nanosec"`
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return time.Time{}, fmt.Errorf("stamp: %w", err)
	}
	sec, nsec := firstOf(st.Secs, st.Sec), firstOf(st.Nsecs, st.Nanosec)
	if sec == 0 && nsec == 0 {
		return time.Time{}, nil
	}
	return time.Unix(sec, nsec), nil
}

func firstOf(vs ...*int64) int64 {
	for _, v := range vs {
		if v != nil {
			return *v
		}
	}
	return 0
}
