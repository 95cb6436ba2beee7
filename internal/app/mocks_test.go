package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bft-labs/curvemark/internal/domain"
	"github.com/bft-labs/curvemark/internal/ports"
)

// mockLogger records messages per level.
type mockLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (m *mockLogger) record(level, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, level+": "+msg)
}

func (m *mockLogger) Debug(msg string, fields ...ports.Field) { m.record("debug", msg) }
func (m *mockLogger) Info(msg string, fields ...ports.Field)  { m.record("info", msg) }
func (m *mockLogger) Warn(msg string, fields ...ports.Field)  { m.record("warn", msg) }
func (m *mockLogger) Error(msg string, fields ...ports.Field) { m.record("error", msg) }

func (m *mockLogger) Has(line string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.msgs {
		if l == line {
			return true
		}
	}
	return false
}

// recordingPublisher stores every batch it receives.
type recordingPublisher struct {
	name string
	mu   sync.Mutex
	got  []domain.MarkerBatch
	// failClear / failBatch make the matching publish calls return an error.
	failClear bool
	failBatch bool
}

func (p *recordingPublisher) Name() string { return p.name }

func (p *recordingPublisher) Publish(ctx context.Context, b domain.MarkerBatch) error {
	if b.IsClear() && p.failClear {
		return errors.New("clear rejected")
	}
	if !b.IsClear() && p.failBatch {
		return errors.New("batch rejected")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, b)
	return nil
}

func (p *recordingPublisher) Batches() []domain.MarkerBatch {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.MarkerBatch{}, p.got...)
}

// sliceSource delivers a fixed list of paths and errors, then closes.
type sliceSource struct {
	items  []sourceItem
	closed bool
}

type sourceItem struct {
	path domain.Path
	err  error
}

func (s *sliceSource) Next(ctx context.Context) (domain.Path, error) {
	if err := ctx.Err(); err != nil {
		return domain.Path{}, err
	}
	if len(s.items) == 0 {
		return domain.Path{}, domain.ErrSourceClosed
	}
	it := s.items[0]
	s.items = s.items[1:]
	return it.path, it.err
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

// countingRecorder implements ports.CycleRecorder.
type countingRecorder struct {
	mu       sync.Mutex
	cycles   int
	flagged  int
	failures map[string]int
	rejected int
}

func (r *countingRecorder) ObserveCycle(poses, flagged, degenerate int, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cycles++
	r.flagged += flagged
}

func (r *countingRecorder) PublishFailed(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures == nil {
		r.failures = map[string]int{}
	}
	r.failures[name]++
}

func (r *countingRecorder) PathRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

// mockEmitter tracks state change events for testing.
type mockEmitter struct {
	mu     sync.Mutex
	events []stateChangeEvent
}

type stateChangeEvent struct {
	previous State
	current  State
	reason   string
}

func (m *mockEmitter) OnStateChange(previous, current State, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, stateChangeEvent{previous, current, reason})
}

func (m *mockEmitter) Events() []stateChangeEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]stateChangeEvent{}, m.events...)
}

func pose(x, y float64) domain.Pose {
	return domain.Pose{
		Position:    domain.Point{X: x, Y: y},
		Orientation: domain.Quaternion{W: 1},
	}
}

func pathOf(pts ...[2]float64) domain.Path {
	p := domain.Path{Header: domain.Header{FrameID: "map"}}
	for _, pt := range pts {
		p.Poses = append(p.Poses, pose(pt[0], pt[1]))
	}
	return p
}

func defaultMarkerConfig() domain.MarkerConfig {
	return domain.DefaultMarkerConfig()
}
