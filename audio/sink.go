// Package audio plays the audio track of the loaded media alongside the video.
//
// The sink runs on its own device clock and is not a timing source for the
// video scheduler. Playback speed is not applied to audio.
package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/flicker-player/flicker/log"
	"github.com/flicker-player/flicker/media"
	"github.com/flicker-player/flicker/util"
)

// Sink is safe for concurrent use.
type Sink struct {
	mu     sync.Mutex
	device Device
	log    *log.Entry

	stream  media.AudioStream
	format  media.PCMFormat
	player  DevicePlayer
	segment *segment

	// segmentStart is the stream position, in seconds, at which the current segment began.
	segmentStart float64

	volume int
	muted  bool

	// disabled is set once the device failed; the sink then stays silent.
	disabled bool
	closed   bool
}

// NewSink returns a sink writing to device. A nil device behaves like NullDevice.
func NewSink(device Device) *Sink {
	if device == nil {
		device = NullDevice{}
	}

	return &Sink{
		device: device,
		volume: 100,
		log:    log.With("component", "audio"),
	}
}

// WithLog tags the sink's log lines with the given entry.
func (s *Sink) WithLog(entry *log.Entry) *Sink {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log = entry.With("component", "audio")
	return s
}

// Load opens the audio track of src, replacing any previously loaded track.
// It reports whether audio is available. A missing track is not an error.
func (s *Sink) Load(src media.Source) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unload()
	if s.closed {
		return false
	}

	stream, err := src.OpenAudio()
	if err != nil {
		if errors.Is(err, media.ErrAudioUnavailable) {
			s.log.Infof("no audio track: %s", err)
		} else {
			s.log.Warnf("%s: %s", media.ErrAudioUnavailable, err)
		}
		return false
	}

	s.stream = stream
	s.format = stream.Format()
	s.segmentStart = 0
	return true
}

// Loaded reports whether an audio track is loaded.
func (s *Sink) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stream != nil
}

// Play starts output, or resumes it from where Pause left off.
func (s *Sink) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil || s.disabled {
		return
	}

	if s.player == nil {
		if err := s.open(); err != nil {
			s.disabled = true
			s.log.Warnf("audio disabled: %s", err)
			return
		}
	}

	s.player.Play()
}

// Pause holds output at its current position.
func (s *Sink) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil {
		s.player.Pause()
	}
}

// Stop ends output and rewinds the track to the beginning.
func (s *Sink) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reposition(0)
}

// Seek moves the track to seconds. Output continues from there if it was playing.
func (s *Sink) Seek(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream == nil {
		return
	}

	playing := s.player != nil && s.player.IsPlaying()
	s.reposition(seconds)

	if playing && !s.disabled {
		if err := s.open(); err != nil {
			s.disabled = true
			s.log.Warnf("audio disabled: %s", err)
			return
		}
		s.player.Play()
	}
}

// Position returns the audible position of the track in seconds.
func (s *Sink) Position() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return s.segmentStart
	}

	played := s.segment.consumed() - int64(s.player.BufferedSize())
	if played < 0 {
		played = 0
	}
	return s.segmentStart + s.format.Seconds(played)
}

// SetVolume sets the output volume in percent, clamped to [0, 100].
func (s *Sink) SetVolume(volume int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = util.Clamp(volume, 0, 100)
	s.applyGain()
}

// SetMuted silences output without forgetting the volume.
func (s *Sink) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = muted
	s.applyGain()
}

func (s *Sink) Volume() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.volume
}

func (s *Sink) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.muted
}

// Unload stops output and releases the track.
func (s *Sink) Unload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unload()
}

// Close unloads the track. The sink cannot be loaded again afterwards.
// The device belongs to the caller and stays open.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unload()
	s.closed = true
	return nil
}

func (s *Sink) gain() float64 {
	if s.muted {
		return 0
	}
	return float64(s.volume) / 100
}

func (s *Sink) applyGain() {
	if s.player != nil {
		s.player.SetVolume(s.gain())
	}
}

// open starts a new segment at the current stream position.
func (s *Sink) open() error {
	seg := &segment{r: s.stream}
	player, err := s.device.NewPlayer(seg)
	if err != nil {
		if !errors.Is(err, ErrDeviceUnavailable) {
			err = fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
		}
		return err
	}

	s.segment = seg
	s.player = player
	s.applyGain()
	return nil
}

func (s *Sink) closePlayer() {
	if s.player == nil {
		return
	}

	s.segment.detach()
	if err := s.player.Close(); err != nil {
		s.log.Warnf("close output: %s", err)
	}
	s.player = nil
	s.segment = nil
}

func (s *Sink) reposition(seconds float64) {
	s.closePlayer()
	if s.stream == nil {
		return
	}

	if err := s.stream.Seek(seconds); err != nil {
		s.log.Warnf("seek audio to %.3fs: %s", seconds, err)
	}
	s.segmentStart = seconds
}

func (s *Sink) unload() {
	s.closePlayer()
	if s.stream == nil {
		return
	}

	if err := s.stream.Close(); err != nil {
		s.log.Warnf("close audio stream: %s", err)
	}
	s.stream = nil
	s.segmentStart = 0
}
