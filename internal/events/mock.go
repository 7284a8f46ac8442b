package events

import (
	"context"
	"sync"
)

// MockPublisher collects events in memory. Used in tests and as the
// fallback when no brokers are configured.
type MockPublisher struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// PublishedEvents returns a copy of everything published so far.
func (m *MockPublisher) PublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// ClearEvents drops the recorded events.
func (m *MockPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
