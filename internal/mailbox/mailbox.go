// Package mailbox provides a single-slot, latest-value handoff between a
// producer callback and the ingest loop.
//
// Put never blocks: a value that has not been taken yet is replaced and
// counted as dropped. Get blocks until a value arrives, the mailbox is
// closed or the context ends.
package mailbox

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Get once the mailbox is closed and drained.
var ErrClosed = errors.New("mailbox closed")

// Latest holds at most one pending value of type T.
type Latest[T any] struct {
	mu      sync.Mutex
	val     T
	has     bool
	closed  bool
	dropped uint64
	notify  chan struct{}
}

// New creates an empty mailbox.
func New[T any]() *Latest[T] {
	return &Latest[T]{notify: make(chan struct{}, 1)}
}

// Put stores v, replacing any value not yet taken.
// Returns true if a pending value was replaced. Put on a closed mailbox is a no-op.
func (m *Latest[T]) Put(v T) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	replaced := m.has
	if replaced {
		m.dropped++
	}
	m.val = v
	m.has = true
	m.mu.Unlock()

	m.signal()
	return replaced
}

// Get returns the pending value, waiting for one if necessary.
// A value put before Close is still delivered.
func (m *Latest[T]) Get(ctx context.Context) (T, error) {
	var zero T
	for {
		m.mu.Lock()
		if m.has {
			v := m.val
			m.val = zero
			m.has = false
			m.mu.Unlock()
			return v, nil
		}
		if m.closed {
			m.mu.Unlock()
			return zero, ErrClosed
		}
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-m.notify:
		}
	}
}

// Close wakes any waiting Get. Safe to call more than once.
func (m *Latest[T]) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.signal()
}

// Dropped returns how many values were replaced before being taken.
func (m *Latest[T]) Dropped() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

func (m *Latest[T]) signal() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}
