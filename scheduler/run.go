package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/flicker-player/flicker/media"
)

// seekWait is the poll interval while a seek is pending at end of stream.
const seekWait = time.Millisecond

// Reason tells why a loop exited.
type Reason int

const (
	Ended Reason = iota
	Cancelled
	Failed
)

func (r Reason) String() string {
	switch r {
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type Stats struct {
	Delivered int
	Dropped   int

	// Stale counts frames discarded because a seek happened while they were held.
	Stale int
}

func (s Stats) String() string {
	return fmt.Sprintf("delivered=%d dropped=%d stale=%d", s.Delivered, s.Dropped, s.Stale)
}

type Outcome struct {
	Reason Reason
	Err    error
	Stats  Stats

	// Generation is the seek generation the loop ended or failed at.
	Generation uint64
}

// Presenter receives frames that are due. It is called with the session
// state locked and must not block or call back into the session.
type Presenter func(media.Frame)

// Run paces frames until the stream ends, the source fails or ctx is cancelled.
// Only one Run may be active per session.
func (s *Session) Run(ctx context.Context, t Thresholds, present Presenter) (out Outcome) {
	s.log.Debugf("loop started at %.3fs", s.Position())
	defer func() {
		if out.Err != nil {
			s.log.Errorf("loop %s: %s (%s)", out.Reason, out.Err, out.Stats)
		} else {
			s.log.Infof("loop %s (%s)", out.Reason, out.Stats)
		}
	}()

	for {
		if ctx.Err() != nil {
			out.Reason = Cancelled
			return out
		}

		if s.Paused() {
			if !sleep(ctx, t.PausePoll) {
				out.Reason = Cancelled
				return out
			}
			continue
		}

		frame, gen, err := s.next()
		if ctx.Err() != nil {
			out.Reason = Cancelled
			return out
		}
		if err != nil {
			if s.superseded(ctx, gen) {
				continue
			}
			out.Generation = gen
			if errors.Is(err, io.EOF) {
				out.Reason = Ended
				return out
			}
			out.Reason, out.Err = Failed, err
			return out
		}

		if !s.pace(ctx, t, frame, gen, present, &out.Stats) {
			out.Reason = Cancelled
			return out
		}
	}
}

func (s *Session) next() (media.Frame, uint64, error) {
	s.srcMu.Lock()
	defer s.srcMu.Unlock()

	gen := s.generation()
	frame, err := s.source.Next()
	return frame, gen, err
}

// superseded waits for seeks in flight and reports whether any seek was applied
// since gen. A source that ran out or failed before a seek is read again from the target.
func (s *Session) superseded(ctx context.Context, gen uint64) bool {
	for s.seeking.Load() > 0 {
		if !sleep(ctx, seekWait) {
			return true
		}
	}
	return s.generation() != gen
}

// pace holds frame until it is due, dropped or made stale by a seek.
// It returns false when ctx is cancelled.
func (s *Session) pace(ctx context.Context, t Thresholds, frame media.Frame, gen uint64, present Presenter, stats *Stats) bool {
	for {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			stats.Stale++
			return true
		}

		if s.paused {
			s.mu.Unlock()
			if !sleep(ctx, t.PausePoll) {
				return false
			}
			continue
		}

		decision := Decide(frame.PTS, s.now(), s.timeline.Speed(), t)
		switch decision.Action {
		case Deliver:
			present(frame)
			s.position = frame.PTS
			s.mu.Unlock()
			stats.Delivered++
			return true
		case Drop:
			s.mu.Unlock()
			stats.Dropped++
			s.log.Debugf("dropped late frame %d at %.3fs", frame.Index, frame.PTS)
			return true
		default:
			s.mu.Unlock()
			if !sleep(ctx, decision.Sleep) {
				return false
			}
		}
	}
}

// sleep waits for d or until ctx is done, reporting whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
