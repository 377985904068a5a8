// Package internal holds helpers shared by the todomvc packages.
package internal

import (
	"sync"
	"time"
)

// Clock reports the current time. The scenario runner measures durations
// through it so reports are deterministic under test.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// SystemClock reads the system monotonic clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Since(t time.Time) time.Duration { return time.Since(t) }

// StepClock is a Clock that advances by a fixed step on every Now call.
// It is safe for concurrent use.
type StepClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

// NewStepClock returns a clock starting at start that advances by step per
// reading. A zero start uses 2001-09-09.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	if start.IsZero() {
		start = time.Unix(1000000000, 0)
	}
	if step < 0 {
		panic("StepClock: step must be non-negative")
	}
	return &StepClock{current: start, step: step}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.step)
	return now
}

// Since returns the distance between t and the next reading.
func (c *StepClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}
