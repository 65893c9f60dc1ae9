package player

import (
	"context"
	"errors"
	"io"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/flicker-player/flicker/filesystem"
	"github.com/flicker-player/flicker/media"
	. "github.com/smartystreets/goconvey/convey"
)

const tenSeconds = "pattern:?duration=10&fps=30&audio=true"

type screen struct {
	mu     sync.Mutex
	frames []media.Frame
}

func (s *screen) Present(f media.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, f)
}

func (s *screen) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = nil
}

func (s *screen) first() (media.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return media.Frame{}, false
	}
	return s.frames[0], true
}

// stuckSource refuses every seek.
type stuckSource struct {
	media.Source
}

func (stuckSource) Seek(float64) error {
	return errors.New("demuxer refused seek")
}

// stallingSource holds its first end of stream until release is closed.
type stallingSource struct {
	media.Source
	stalled chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *stallingSource) Next() (media.Frame, error) {
	frame, err := s.Source.Next()
	if errors.Is(err, io.EOF) {
		s.once.Do(func() {
			close(s.stalled)
			<-s.release
		})
	}
	return frame, err
}

func newPlayer(display Display) *Player {
	opts := DefaultOptions()
	opts.Display = display
	return New(media.Mux{}, opts)
}

// waitFor drains events until one of kind arrives, returning every event seen.
func waitFor(p *Player, kind EventKind, timeout time.Duration) ([]Event, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var seen []Event
	for {
		e, err := p.Next(ctx)
		if err != nil {
			return seen, false
		}
		seen = append(seen, e)
		if e.Kind == kind {
			return seen, true
		}
	}
}

func count(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestPlayer(t *testing.T) {
	filesystem.SetOsFs()

	Convey("Given a player", t, func() {
		display := &screen{}
		p := newPlayer(display)
		Reset(func() { _ = p.Close() })

		Convey("Commands should fail without media", func() {
			So(p.HasMedia(), ShouldBeFalse)
			So(errors.Is(p.Play(), ErrNoMedia), ShouldBeTrue)
			So(errors.Is(p.Pause(), ErrNoMedia), ShouldBeTrue)
			So(errors.Is(p.Stop(), ErrNoMedia), ShouldBeTrue)
			So(errors.Is(p.Seek(3, false), ErrNoMedia), ShouldBeTrue)
		})

		Convey("Loading a missing file should fail and leave nothing loaded", func() {
			err := p.Load("/definitely/not/here.mkv")
			So(errors.Is(err, media.ErrSourceNotFound), ShouldBeTrue)
			So(p.HasMedia(), ShouldBeFalse)

			events := p.Poll()
			So(count(events, Error), ShouldEqual, 1)
		})

		Convey("When a ten second clip is loaded", func() {
			So(p.Load(tenSeconds), ShouldBeNil)
			So(p.HasMedia(), ShouldBeTrue)
			So(p.State(), ShouldEqual, Stopped)
			So(p.Duration(), ShouldEqual, 10.0)
			So(p.HasAudio(), ShouldBeTrue)

			events := p.Poll()
			So(count(events, Loaded), ShouldEqual, 1)
			So(count(events, DurationChanged), ShouldEqual, 1)

			Convey("It should keep time, seek and end exactly once", func() {
				So(p.Play(), ShouldBeNil)
				time.Sleep(2 * time.Second)
				So(p.CurrentTime(), ShouldAlmostEqual, 2.0, 0.1)

				So(p.Seek(8, false), ShouldBeNil)
				time.Sleep(100 * time.Millisecond)
				So(p.CurrentTime(), ShouldAlmostEqual, 8.1, 0.1)

				seen, ok := waitFor(p, Ended, 4*time.Second)
				So(ok, ShouldBeTrue)
				So(count(seen, Ended), ShouldEqual, 1)
				So(count(seen, Error), ShouldEqual, 0)
				So(p.State(), ShouldEqual, Stopped)
				So(p.HasEnded(), ShouldBeTrue)
				So(p.Position(), ShouldBeGreaterThan, 9.9)

				time.Sleep(200 * time.Millisecond)
				So(count(p.Poll(), Ended), ShouldEqual, 0)
			})

			Convey("Play while playing should not reset the clock", func() {
				So(p.Play(), ShouldBeNil)
				time.Sleep(300 * time.Millisecond)
				before := p.CurrentTime()

				So(p.Play(), ShouldBeNil)
				So(p.CurrentTime(), ShouldBeGreaterThanOrEqualTo, before)
				So(p.IsPlaying(), ShouldBeTrue)
			})

			Convey("Pause then play should resume where it paused", func() {
				So(p.Play(), ShouldBeNil)
				time.Sleep(300 * time.Millisecond)

				So(p.Pause(), ShouldBeNil)
				So(p.IsPaused(), ShouldBeTrue)
				paused := p.CurrentTime()

				time.Sleep(200 * time.Millisecond)
				So(p.CurrentTime(), ShouldEqual, paused)

				So(p.Play(), ShouldBeNil)
				So(math.Abs(p.CurrentTime()-paused), ShouldBeLessThan, 0.05)
			})

			Convey("TogglePause should alternate", func() {
				So(p.TogglePause(), ShouldBeNil)
				So(p.IsPlaying(), ShouldBeTrue)
				So(p.TogglePause(), ShouldBeNil)
				So(p.IsPaused(), ShouldBeTrue)
			})

			Convey("Stop should reset to the start", func() {
				So(p.Play(), ShouldBeNil)
				time.Sleep(300 * time.Millisecond)

				So(p.Stop(), ShouldBeNil)
				So(p.State(), ShouldEqual, Stopped)
				So(p.CurrentTime(), ShouldEqual, 0.0)
				So(p.Position(), ShouldEqual, 0.0)

				display.reset()
				So(p.Play(), ShouldBeNil)
				time.Sleep(100 * time.Millisecond)

				frame, ok := display.first()
				So(ok, ShouldBeTrue)
				So(frame.PTS, ShouldEqual, 0.0)
			})

			Convey("A seek while stopped should be where play begins", func() {
				So(p.Seek(5, false), ShouldBeNil)
				So(p.CurrentTime(), ShouldEqual, 5.0)

				So(p.Play(), ShouldBeNil)
				time.Sleep(100 * time.Millisecond)

				frame, ok := display.first()
				So(ok, ShouldBeTrue)
				So(frame.PTS, ShouldBeGreaterThanOrEqualTo, 5.0)
			})

			Convey("Relative seeks should clamp to the media bounds", func() {
				So(p.Seek(-5, true), ShouldBeNil)
				So(p.Position(), ShouldEqual, 0.0)

				So(p.Seek(4, true), ShouldBeNil)
				So(p.Position(), ShouldEqual, 4.0)

				So(p.Seek(60, true), ShouldBeNil)
				So(p.Position(), ShouldEqual, 10.0)
			})

			Convey("Double speed should reach the end in about half the time", func() {
				began := time.Now()
				So(p.Play(), ShouldBeNil)
				p.SetSpeed(2)

				_, ok := waitFor(p, Ended, 8*time.Second)
				So(ok, ShouldBeTrue)
				So(time.Since(began), ShouldBeBetween, 4500*time.Millisecond, 5800*time.Millisecond)
			})

			Convey("A failed load should keep the current media", func() {
				So(p.Load("/missing/clip.mp4"), ShouldNotBeNil)
				So(p.HasMedia(), ShouldBeTrue)
				So(p.Duration(), ShouldEqual, 10.0)
			})

			Convey("Loading again should stop and replace the media", func() {
				So(p.Play(), ShouldBeNil)
				id := p.SessionID()

				So(p.Load("pattern:?duration=3&fps=25"), ShouldBeNil)
				So(p.State(), ShouldEqual, Stopped)
				So(p.Duration(), ShouldEqual, 3.0)
				So(p.SessionID(), ShouldNotEqual, id)
			})

			Convey("Play after the end should start over", func() {
				So(p.Seek(9.8, false), ShouldBeNil)
				So(p.Play(), ShouldBeNil)
				_, ok := waitFor(p, Ended, 2*time.Second)
				So(ok, ShouldBeTrue)

				display.reset()
				So(p.Play(), ShouldBeNil)
				time.Sleep(100 * time.Millisecond)

				frame, ok := display.first()
				So(ok, ShouldBeTrue)
				So(frame.PTS, ShouldEqual, 0.0)
			})
		})

		Convey("A source failing mid-stream should report one error", func() {
			So(p.Load("pattern:?duration=2&fps=30&fail=0.3"), ShouldBeNil)
			So(p.Play(), ShouldBeNil)

			seen, ok := waitFor(p, Error, 2*time.Second)
			So(ok, ShouldBeTrue)
			So(count(seen, Ended), ShouldEqual, 0)
			So(p.State(), ShouldEqual, Stopped)
			So(p.HasMedia(), ShouldBeTrue)
		})

		Convey("Parameters should be clamped", func() {
			p.SetVolume(150)
			So(p.Params().Volume, ShouldEqual, 100)

			p.SetSpeed(10)
			So(p.Params().Speed, ShouldEqual, MaxSpeed)

			p.ToggleMute()
			So(p.Params().Muted, ShouldBeTrue)
			p.ToggleMute()
			So(p.Params().Muted, ShouldBeFalse)
		})

		Convey("Close should refuse further loads", func() {
			So(p.Close(), ShouldBeNil)
			So(errors.Is(p.Load(tenSeconds), ErrClosed), ShouldBeTrue)
		})
	})

	Convey("Concurrent loads should be rejected", t, func() {
		release := make(chan struct{})
		opener := media.OpenerFunc(func(location string) (media.Source, error) {
			<-release
			return media.OpenPattern(location)
		})
		p := New(opener, DefaultOptions())

		first := make(chan error, 1)
		go func() { first <- p.Load("pattern:") }()
		time.Sleep(50 * time.Millisecond)

		So(errors.Is(p.Load("pattern:"), ErrAlreadyLoading), ShouldBeTrue)

		close(release)
		So(<-first, ShouldBeNil)
		So(p.HasMedia(), ShouldBeTrue)
		So(p.Close(), ShouldBeNil)
	})

	Convey("A refused seek should move neither the clock nor the audio", t, func() {
		opener := media.OpenerFunc(func(location string) (media.Source, error) {
			src, err := media.OpenPattern(location)
			if err != nil {
				return nil, err
			}
			return stuckSource{src}, nil
		})
		p := New(opener, DefaultOptions())
		defer func() { _ = p.Close() }()

		So(p.Load(tenSeconds), ShouldBeNil)
		p.Poll()

		So(p.Seek(8, false), ShouldNotBeNil)
		So(p.CurrentTime(), ShouldEqual, 0.0)
		So(p.Position(), ShouldEqual, 0.0)
		So(p.sink.Position(), ShouldEqual, 0.0)
		So(count(p.Poll(), TimeUpdate), ShouldEqual, 0)
	})

	Convey("A seek issued while the last frame decodes should keep playing from the target", t, func() {
		src := &stallingSource{stalled: make(chan struct{}), release: make(chan struct{})}
		opener := media.OpenerFunc(func(location string) (media.Source, error) {
			pattern, err := media.OpenPattern(location)
			src.Source = pattern
			return src, err
		})
		display := &screen{}
		opts := DefaultOptions()
		opts.Display = display
		p := New(opener, opts)
		defer func() { _ = p.Close() }()

		So(p.Load("pattern:?duration=0.5&fps=20"), ShouldBeNil)
		So(p.Play(), ShouldBeNil)
		<-src.stalled
		display.reset()
		p.Poll()

		seeked := make(chan error, 1)
		go func() { seeked <- p.Seek(0.1, false) }()
		time.Sleep(50 * time.Millisecond)
		close(src.release)
		So(<-seeked, ShouldBeNil)

		seen, ok := waitFor(p, Ended, 2*time.Second)
		So(ok, ShouldBeTrue)
		So(count(seen, Ended), ShouldEqual, 1)
		So(p.HasEnded(), ShouldBeTrue)

		frame, shown := display.first()
		So(shown, ShouldBeTrue)
		So(frame.PTS, ShouldBeGreaterThanOrEqualTo, 0.1)
		So(frame.PTS, ShouldBeLessThan, 0.2)
	})
}
