// Package clock abstracts the wall clock so migration reports carry
// deterministic timestamps in tests.
package clock

import "time"

// Clock provides the current time.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system time.
type RealClock struct{}

// New returns the system clock.
func New() Clock {
	return &RealClock{}
}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FakeClock implements Clock with a manually driven time for testing.
type FakeClock struct {
	current time.Time
	step    time.Duration
}

// NewFakeClock creates a new FakeClock with the given time.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the current fake time, then advances it by the configured step.
func (c *FakeClock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Tick makes every call to Now advance the time by d.
func (c *FakeClock) Tick(d time.Duration) {
	c.step = d
}
