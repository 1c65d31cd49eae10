package shared

import (
	"sync"
	"time"
)

// Clock is the source of ledger and snapshot timestamps
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock returns the system clock in UTC
func NewRealClock() Clock {
	return realClock{}
}

// MockClock is a manually driven Clock, safe for use by concurrent handlers
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock starts a MockClock at start, or at the current time when start is zero
func NewMockClock(start time.Time) *MockClock {
	if start.IsZero() {
		start = time.Now().UTC()
	}
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set moves the clock to t
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
