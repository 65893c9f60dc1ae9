package player

import (
	"context"

	"github.com/flicker-player/flicker/media"
)

// Position returns the timestamp of the last presented frame in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	sess := p.session
	p.mu.Unlock()

	if sess == nil {
		return 0
	}
	return sess.Position()
}

// CurrentTime returns the playback clock reading in media seconds.
func (p *Player) CurrentTime() float64 {
	p.mu.Lock()
	sess := p.session
	p.mu.Unlock()

	if sess == nil {
		return 0
	}
	return sess.Now()
}

// Duration returns the media duration in seconds, zero when unknown or nothing is loaded.
func (p *Player) Duration() float64 {
	info, ok := p.Info()
	if !ok {
		return 0
	}
	return info.Duration
}

func (p *Player) Info() (media.Info, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return media.Info{}, false
	}
	return p.session.Info(), true
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

func (p *Player) IsPlaying() bool {
	return p.State() == Playing
}

func (p *Player) IsPaused() bool {
	return p.State() == Paused
}

// HasEnded reports whether playback stopped at the end of the stream.
func (p *Player) HasEnded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ended
}

func (p *Player) HasMedia() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.session != nil
}

// HasAudio reports whether an audio track of the current media is loaded.
func (p *Player) HasAudio() bool {
	return p.sink.Loaded()
}

// AudioPosition is the audible position of the audio track, for drift diagnostics.
func (p *Player) AudioPosition() float64 {
	return p.sink.Position()
}

func (p *Player) Params() Parameters {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.params
}

// SessionID identifies the current load in logs and events.
func (p *Player) SessionID() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.id
}

func (p *Player) Events() *Queue {
	return p.events
}

// Poll removes and returns all pending events.
func (p *Player) Poll() []Event {
	return p.events.Poll()
}

// Next waits for the next event.
func (p *Player) Next(ctx context.Context) (Event, error) {
	return p.events.Next(ctx)
}

// Notify wakes when events are pending.
func (p *Player) Notify() <-chan struct{} {
	return p.events.Notify()
}
