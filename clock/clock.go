// Package clock provides the playback reference clock.
//
// The clock measures elapsed playback time in seconds. While running it follows
// the wall clock, while paused it holds its value. Speed is not a concern of the
// clock; it always advances in real time.
package clock

import (
	"sync"
	"time"
)

// Source returns the current wall-clock reading.
type Source func() time.Time

// Clock is safe for concurrent use.
type Clock struct {
	mu      sync.Mutex
	now     Source
	origin  time.Time
	offset  time.Duration
	running bool
}

// New returns a stopped clock at zero reading time from source.
// A nil source defaults to time.Now.
func New(source Source) *Clock {
	if source == nil {
		source = time.Now
	}

	return &Clock{now: source}
}

// Start runs the clock from its current offset. Starting a running clock does nothing.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}

	c.origin = c.now().Add(-c.offset)
	c.running = true
}

// Pause freezes the clock at its current reading.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	c.offset = c.now().Sub(c.origin)
	c.running = false
}

// SeekTo moves the clock to seconds, keeping its running state.
func (c *Clock) SeekTo(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.offset = toDuration(seconds)
	if c.running {
		c.origin = c.now().Add(-c.offset)
	}
}

// Reset stops the clock and sets it to zero.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.offset = 0
	c.running = false
}

// Now returns the current reading in seconds.
func (c *Clock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return c.offset.Seconds()
	}

	return c.now().Sub(c.origin).Seconds()
}

// Running reports whether the clock is advancing.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

func toDuration(seconds float64) time.Duration {
	if seconds < 0 {
		seconds = 0
	}

	return time.Duration(seconds * float64(time.Second))
}
