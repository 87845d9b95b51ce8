package testutil

import (
	"sync"
	"time"
)

// DeterministicEpoch is the first instant a DeterministicClock reports.
var DeterministicEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DeterministicClock is a wall-clock stand-in for tests.
//
// Each call to Now returns DeterministicEpoch plus one second per previous
// call, so timestamps recorded in run history are reproducible.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	ticks int64
}

// NewDeterministicClock creates a clock whose first Now() is DeterministicEpoch.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Now returns the next instant and advances the clock by one second.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := DeterministicEpoch.Add(time.Duration(c.ticks) * time.Second)
	c.ticks++
	return t
}
