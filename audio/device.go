package audio

import (
	"errors"
	"io"
)

// ErrDeviceUnavailable is returned when the output device cannot be initialized.
// It disables audio only; video playback continues.
var ErrDeviceUnavailable = errors.New("audio: output device unavailable")

// Device turns PCM readers into playable outputs.
type Device interface {
	// NewPlayer returns a paused player pulling interleaved 44.1kHz stereo s16 PCM from r.
	NewPlayer(r io.Reader) (DevicePlayer, error)

	Close() error
}

// DevicePlayer is a single output stream.
type DevicePlayer interface {
	Play()
	Pause()
	IsPlaying() bool

	// SetVolume sets the linear gain in [0, 1].
	SetVolume(volume float64)

	// BufferedSize is the number of bytes read from the source but not yet audible.
	BufferedSize() int

	Close() error
}

// NullDevice is used when audio output is disabled.
type NullDevice struct{}

func (NullDevice) NewPlayer(io.Reader) (DevicePlayer, error) {
	return nil, ErrDeviceUnavailable
}

func (NullDevice) Close() error {
	return nil
}
