// Package media defines the demux/decode capabilities the playback core is built on.
//
// A Source is an opened container with a selected video stream. It yields decoded
// frames in decode order and can be repositioned with Seek. Its audio track, when
// present, is opened as an independent AudioStream producing interleaved PCM.
// Concrete backends live in subpackages (libav) or in this package (Pattern).
package media

import (
	"image"
	"io"
	"math"
)

// Frame is a decoded video picture and the time at which it should be shown.
type Frame struct {
	Image image.Image

	// PTS is the presentation timestamp in seconds from stream start.
	PTS float64

	// Index is the position of the frame in decode order since the last seek.
	Index int
}

// Info describes the selected streams of an opened container.
type Info struct {
	Path       string  `json:"path"`
	Duration   float64 `json:"duration"`
	FrameRate  float64 `json:"frame_rate"`
	TimeBase   float64 `json:"time_base"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	VideoCodec string  `json:"video_codec"`
	AudioCodec string  `json:"audio_codec,omitempty"`
	HasAudio   bool    `json:"has_audio"`
}

// FrameInterval returns the nominal time between two frames, or zero when the rate is unknown.
func (i Info) FrameInterval() float64 {
	if i.FrameRate <= 0 {
		return 0
	}
	return 1 / i.FrameRate
}

// Source is an opened container positioned somewhere in its video stream.
// Implementations are not safe for concurrent use.
type Source interface {
	// Info returns the stream metadata gathered when the source was opened.
	Info() Info

	// Next decodes and returns the next frame. It returns io.EOF at end of stream.
	// Frames that fail to decode are skipped; any other error is irrecoverable.
	Next() (Frame, error)

	// Seek repositions the source so that the next frame returned has a
	// presentation timestamp at or after seconds. Seeking to the current
	// position is a no-op.
	Seek(seconds float64) error

	// OpenAudio opens an independent PCM stream of the container's audio track.
	// It returns ErrAudioUnavailable when there is nothing to play.
	OpenAudio() (AudioStream, error)

	Close() error
}

// AudioStream produces interleaved PCM in the format reported by Format.
type AudioStream interface {
	io.Reader

	// Seek repositions the stream so that the next byte read belongs to the sample at seconds.
	Seek(seconds float64) error

	Format() PCMFormat
	Close() error
}

// Opener opens a location, either a filesystem path or a URL, as a Source.
type Opener interface {
	Open(location string) (Source, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(location string) (Source, error)

func (f OpenerFunc) Open(location string) (Source, error) {
	return f(location)
}

// PCMFormat describes interleaved signed little-endian PCM.
type PCMFormat struct {
	SampleRate     int
	Channels       int
	BytesPerSample int
}

// StandardPCM is the format every audio track is converted to: 44.1kHz stereo 16-bit.
var StandardPCM = PCMFormat{SampleRate: 44100, Channels: 2, BytesPerSample: 2}

// FrameSize is the size in bytes of one sample across all channels.
func (f PCMFormat) FrameSize() int {
	return f.Channels * f.BytesPerSample
}

// BytesPerSecond is the data rate of the format.
func (f PCMFormat) BytesPerSecond() int {
	return f.SampleRate * f.FrameSize()
}

// Offset converts a time to a byte offset aligned to a sample frame boundary.
func (f PCMFormat) Offset(seconds float64) int64 {
	if seconds <= 0 {
		return 0
	}
	samples := int64(math.Round(seconds * float64(f.SampleRate)))
	return samples * int64(f.FrameSize())
}

// Seconds converts a byte count to a duration in seconds.
func (f PCMFormat) Seconds(bytes int64) float64 {
	if f.BytesPerSecond() == 0 {
		return 0
	}
	return float64(bytes) / float64(f.BytesPerSecond())
}
