package termgrid

import (
	"sync"
	"time"
)

// Clock abstracts time for the frame loop so timing behavior can be
// tested deterministically.
type Clock interface {
	Now() time.Time
}

// systemClock is the real clock used by default.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// MockClock is a settable clock for tests. The zero value starts at
// the zero time; use NewMockClock to start elsewhere.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock returns a MockClock reading start.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

// Now implements Clock.
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t.
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
