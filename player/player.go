// Package player is the transport controller of the playback core.
//
// A Player owns at most one loaded source at a time. Load replaces it, and
// Play, Pause, Stop, Seek and the parameter setters drive it. Frames go to a
// Display and state changes are reported through an event Queue.
package player

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/flicker-player/flicker/audio"
	"github.com/flicker-player/flicker/clock"
	"github.com/flicker-player/flicker/log"
	"github.com/flicker-player/flicker/media"
	"github.com/flicker-player/flicker/scheduler"
	"github.com/flicker-player/flicker/util"
	"github.com/google/uuid"
)

type Player struct {
	// ctl serializes transport commands. The playback loop never takes it.
	ctl sync.Mutex

	opener  media.Opener
	sink    *audio.Sink
	display Display
	events  *Queue
	opts    Options
	loading atomic.Bool

	// mu guards the fields below and orders before session and sink locks.
	mu      sync.Mutex
	session *scheduler.Session
	id      string
	log     *log.Entry
	state   State
	ended   bool
	params  Parameters
	cancel  context.CancelFunc
	done    chan struct{}
	closed  bool
}

// New returns a player with nothing loaded.
func New(opener media.Opener, opts Options) *Player {
	if opts.Display == nil {
		opts.Display = DisplayFunc(func(media.Frame) {})
	}
	if opts.StopTimeout <= 0 {
		opts.StopTimeout = time.Second
	}

	params := opts.Parameters.normalize()
	sink := audio.NewSink(opts.Device)
	sink.SetVolume(params.Volume)
	sink.SetMuted(params.Muted)

	return &Player{
		opener:  opener,
		sink:    sink,
		display: opts.Display,
		events:  NewQueue(),
		opts:    opts,
		params:  params,
		log:     log.With("component", "player"),
	}
}

// Load opens location and makes it the current media. Playback of the previous
// media stops. If location cannot be opened the previous media is left as it was.
func (p *Player) Load(location string) error {
	if !p.loading.CompareAndSwap(false, true) {
		return ErrAlreadyLoading
	}
	defer p.loading.Store(false)

	src, err := p.opener.Open(location)
	if err != nil {
		err = fmt.Errorf("load %s: %w", location, err)
		p.log.Errorf("%s", err)
		p.emit(Event{Kind: Error, Err: err})
		return err
	}

	p.ctl.Lock()
	defer p.ctl.Unlock()

	if p.isClosed() {
		util.Ignore(src.Close)
		return ErrClosed
	}

	if err := p.halt(); err != nil {
		util.Ignore(src.Close)
		p.emit(Event{Kind: Error, Err: err})
		return err
	}

	id := uuid.NewString()
	entry := log.With("session", id)
	sess := scheduler.NewSession(src, clock.New(p.opts.Clock), p.Params().Speed, entry.With("component", "scheduler"))

	p.mu.Lock()
	previous, old := p.state, p.session
	p.session = sess
	p.id = id
	p.log = entry.With("component", "player")
	p.state = Stopped
	p.ended = false
	p.done, p.cancel = nil, nil
	p.mu.Unlock()

	p.sink.Unload()
	if old != nil {
		if err := old.Close(); err != nil {
			p.log.Warnf("close previous source: %s", err)
		}
	}

	info := sess.Info()
	if p.opts.Audio {
		p.sink.WithLog(entry)
		p.sink.Load(src)
	}

	p.log.Infof("loaded %s (%s, %s)", info.Path, util.FormatTime(info.Duration), info.VideoCodec)

	if previous != Stopped {
		p.emit(Event{Kind: StateChanged, State: Stopped})
	}
	p.emit(Event{Kind: Loaded, Info: info})
	p.emit(Event{Kind: DurationChanged, Duration: info.Duration})
	return nil
}

// Play starts or resumes playback. Playing again is a no-op.
func (p *Player) Play() error {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	p.mu.Lock()
	sess, state, ended := p.session, p.state, p.ended
	p.mu.Unlock()

	if sess == nil {
		return ErrNoMedia
	}

	switch state {
	case Playing:
		return nil
	case Paused:
		p.mu.Lock()
		sess.Resume()
		p.sink.Play()
		p.state = Playing
		p.mu.Unlock()
	case Stopped:
		if err := p.halt(); err != nil {
			return err
		}
		if ended {
			if err := sess.Rewind(); err != nil {
				return err
			}
			p.sink.Stop()
		}
		p.start(sess)
	}

	p.emit(Event{Kind: StateChanged, State: Playing})
	return nil
}

// start launches the playback loop of sess.
func (p *Player) start(sess *scheduler.Session) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.mu.Lock()
	p.cancel, p.done = cancel, done
	p.ended = false
	sess.Resume()
	p.sink.Play()
	p.state = Playing
	id := p.id
	p.mu.Unlock()

	go p.run(ctx, sess, id, done)
}

func (p *Player) run(ctx context.Context, sess *scheduler.Session, id string, done chan struct{}) {
	defer close(done)

	out := sess.Run(ctx, p.opts.Thresholds, func(frame media.Frame) {
		p.display.Present(frame)
		p.emit(Event{Kind: TimeUpdate, Session: id, Position: frame.PTS})
	})
	if out.Reason == scheduler.Cancelled {
		return
	}

	p.mu.Lock()
	if p.session != sess || p.done != done {
		p.mu.Unlock()
		return
	}

	// A seek that landed after the loop ran out continues from its target.
	if sess.Generation() != out.Generation && p.state != Stopped {
		if p.cancel != nil {
			p.cancel()
		}
		ctx, cancel := context.WithCancel(context.Background())
		next := make(chan struct{})
		p.cancel, p.done = cancel, next
		p.mu.Unlock()

		p.log.Debugf("loop %s before a seek, continuing", out.Reason)
		go p.run(ctx, sess, id, next)
		return
	}

	sess.Pause()
	p.sink.Pause()
	p.state = Stopped
	p.ended = sess.Generation() == out.Generation
	ended := p.ended
	p.mu.Unlock()

	p.emit(Event{Kind: StateChanged, Session: id, State: Stopped})
	if out.Reason == scheduler.Failed {
		p.emit(Event{Kind: Error, Session: id, Err: fmt.Errorf("playback: %w", out.Err)})
		return
	}
	if ended {
		p.emit(Event{Kind: Ended, Session: id, Position: sess.Position()})
	}
}

// halt cancels the playback loop and waits for it to exit. A loop that hands
// over to a successor on its way out is followed until none is left.
func (p *Player) halt() error {
	for {
		p.mu.Lock()
		cancel, done := p.cancel, p.done
		p.mu.Unlock()

		if done == nil {
			return nil
		}
		if cancel != nil {
			cancel()
		}

		select {
		case <-done:
		case <-time.After(p.opts.StopTimeout):
			p.log.Errorf("playback loop still running after %s", p.opts.StopTimeout)
			return fmt.Errorf("stop playback: %w", ErrCancellationTimeout)
		}

		p.mu.Lock()
		if p.done == done {
			p.cancel, p.done = nil, nil
			p.mu.Unlock()
			return nil
		}
		p.mu.Unlock()
	}
}

// Pause freezes playback. It only has an effect while playing.
func (p *Player) Pause() error {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	p.mu.Lock()
	if p.session == nil {
		p.mu.Unlock()
		return ErrNoMedia
	}
	if p.state != Playing {
		p.mu.Unlock()
		return nil
	}
	p.session.Pause()
	p.sink.Pause()
	p.state = Paused
	p.mu.Unlock()

	p.emit(Event{Kind: StateChanged, State: Paused})
	return nil
}

// TogglePause pauses while playing and plays otherwise.
func (p *Player) TogglePause() error {
	if p.IsPlaying() {
		return p.Pause()
	}
	return p.Play()
}

// Stop ends playback and returns to the beginning of the media.
func (p *Player) Stop() error {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	p.mu.Lock()
	sess, previous := p.session, p.state
	p.mu.Unlock()

	if sess == nil {
		return ErrNoMedia
	}

	if err := p.halt(); err != nil {
		p.emit(Event{Kind: Error, Err: err})
		return err
	}

	p.sink.Stop()
	err := sess.Rewind()

	p.mu.Lock()
	p.state = Stopped
	p.ended = false
	p.mu.Unlock()

	if previous != Stopped {
		p.emit(Event{Kind: StateChanged, State: Stopped})
	}
	p.emit(Event{Kind: TimeUpdate, Position: 0})
	return err
}

// Seek moves playback to seconds, or by seconds when relative is set.
// The target is clamped to the media duration.
func (p *Player) Seek(seconds float64, relative bool) error {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	p.mu.Lock()
	sess := p.session
	p.mu.Unlock()

	if sess == nil {
		return ErrNoMedia
	}

	if relative {
		seconds += sess.Position()
	}

	target, err := sess.Seek(seconds)
	if err != nil {
		p.log.Warnf("%s", err)
		return err
	}
	p.sink.Seek(target)

	p.mu.Lock()
	p.ended = false
	p.mu.Unlock()

	p.log.Debugf("seek to %s", util.FormatTime(target))
	p.emit(Event{Kind: TimeUpdate, Position: target})
	return nil
}

// SetSpeed sets the playback rate, clamped to [MinSpeed, MaxSpeed].
// Audio keeps playing at normal rate.
func (p *Player) SetSpeed(speed float64) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	speed = util.Clamp(speed, MinSpeed, MaxSpeed)

	p.mu.Lock()
	p.params.Speed = speed
	sess := p.session
	p.mu.Unlock()

	if sess != nil {
		sess.SetSpeed(speed)
	}
}

// SetVolume sets the volume percentage, clamped to [0, 100].
func (p *Player) SetVolume(volume int) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	volume = util.Clamp(volume, 0, 100)

	p.mu.Lock()
	p.params.Volume = volume
	p.mu.Unlock()

	p.sink.SetVolume(volume)
}

func (p *Player) SetMuted(muted bool) {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	p.mu.Lock()
	p.params.Muted = muted
	p.mu.Unlock()

	p.sink.SetMuted(muted)
}

func (p *Player) ToggleMute() {
	p.SetMuted(!p.Params().Muted)
}

// Close stops playback and releases the current media. The audio device is left open.
func (p *Player) Close() error {
	p.ctl.Lock()
	defer p.ctl.Unlock()

	if err := p.halt(); err != nil {
		return err
	}

	p.mu.Lock()
	sess := p.session
	p.session = nil
	p.state = Stopped
	p.closed = true
	p.mu.Unlock()

	util.Ignore(p.sink.Close)
	if sess != nil {
		return sess.Close()
	}
	return nil
}

func (p *Player) emit(e Event) {
	if e.Session == "" {
		p.mu.Lock()
		e.Session = p.id
		p.mu.Unlock()
	}
	p.events.push(e)
}

func (p *Player) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.closed
}
