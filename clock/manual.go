package clock

import (
	"sync"
	"time"
)

// Manual is a Source that only moves when told to.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual returns a manual source starting at an arbitrary fixed instant.
func NewManual() *Manual {
	return &Manual{now: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)}
}

// Now implements Source.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

// Advance moves the source forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = m.now.Add(d)
}
