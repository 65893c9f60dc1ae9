// Package scheduler paces decoded frames against the playback clock.
//
// A Session owns the media source of one load. Its Run loop pulls frames,
// waits until each one is due and hands it to a presenter. Transport commands
// (pause, seek, speed) act on the session from other goroutines.
//
// Two locks guard a session. srcMu serializes use of the source; mu guards
// the clock, the timeline, the seek generation, the paused flag and the
// published position. When both are needed srcMu is taken first.
package scheduler

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/flicker-player/flicker/clock"
	"github.com/flicker-player/flicker/log"
	"github.com/flicker-player/flicker/media"
	"github.com/flicker-player/flicker/util"
)

type Session struct {
	srcMu  sync.Mutex
	source media.Source

	// seeking counts Seek calls between entry and return.
	seeking atomic.Int32

	mu       sync.Mutex
	clock    *clock.Clock
	timeline Timeline
	gen      uint64
	paused   bool
	position float64

	info media.Info
	log  *log.Entry
}

// NewSession wraps an opened source. The session starts paused at zero.
func NewSession(source media.Source, clk *clock.Clock, speed float64, entry *log.Entry) *Session {
	if clk == nil {
		clk = clock.New(nil)
	}
	if entry == nil {
		entry = log.With("component", "scheduler")
	}

	return &Session{
		source:   source,
		clock:    clk,
		timeline: NewTimeline(speed),
		paused:   true,
		info:     source.Info(),
		log:      entry,
	}
}

func (s *Session) Info() media.Info {
	return s.info
}

// Source gives exclusive access to the source for the duration of fn.
func (s *Session) Source(fn func(media.Source) error) error {
	s.srcMu.Lock()
	defer s.srcMu.Unlock()

	return fn(s.source)
}

// Resume starts the clock and lets the loop deliver frames.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock.Start()
	s.paused = false
}

// Pause freezes the clock. The loop stops consuming frames until Resume.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clock.Pause()
	s.paused = true
}

func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.paused
}

// Seek repositions the source and the clock to seconds, clamped to the media
// duration. Frames decoded before the seek are never presented after it returns.
// When the source refuses the seek nothing changes and the current position is returned.
func (s *Session) Seek(seconds float64) (float64, error) {
	s.seeking.Add(1)
	defer s.seeking.Add(-1)

	seconds = s.clamp(seconds)

	s.srcMu.Lock()
	defer s.srcMu.Unlock()

	if err := s.source.Seek(seconds); err != nil {
		return s.Position(), fmt.Errorf("seek to %s: %w", util.FormatTime(seconds), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.clock.SeekTo(seconds)
	s.timeline.Anchor(seconds, seconds)
	s.position = seconds
	return seconds, nil
}

// Rewind returns the session to zero with the clock stopped, as after a fresh load.
func (s *Session) Rewind() error {
	s.srcMu.Lock()
	defer s.srcMu.Unlock()

	err := s.source.Seek(0)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.clock.Reset()
	s.timeline.Anchor(0, 0)
	s.paused = true
	s.position = 0

	if err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	return nil
}

// SetSpeed changes the playback rate without a jump in media time.
func (s *Session) SetSpeed(speed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timeline.SetSpeed(s.clock.Now(), speed)
}

func (s *Session) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.timeline.Speed()
}

// Now returns the current media time.
func (s *Session) Now() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.now()
}

// Position returns the timestamp of the last presented frame, or the last seek target.
func (s *Session) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.position
}

// Close releases the source. The loop must have exited.
func (s *Session) Close() error {
	s.srcMu.Lock()
	defer s.srcMu.Unlock()

	return s.source.Close()
}

func (s *Session) now() float64 {
	return s.timeline.At(s.clock.Now())
}

// Generation counts the seeks applied so far.
func (s *Session) Generation() uint64 {
	return s.generation()
}

func (s *Session) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gen
}

func (s *Session) clamp(seconds float64) float64 {
	if s.info.Duration <= 0 {
		return util.Max(seconds, 0)
	}
	return util.Clamp(seconds, 0, s.info.Duration)
}
