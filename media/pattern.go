package media

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/flicker-player/flicker/constant"
	"github.com/samber/mo"
)

// PatternOptions configures the synthetic test-pattern backend.
type PatternOptions struct {
	Duration float64
	FPS      float64
	Width    int
	Height   int

	// Audio enables a sine tone track of frequency Tone.
	Audio bool
	Tone  float64

	// FailAt makes Next fail irrecoverably once this presentation time is reached.
	FailAt mo.Option[float64]
}

// DefaultPatternOptions is a ten second, 30fps clip with a 440Hz tone.
var DefaultPatternOptions = PatternOptions{
	Duration: 10,
	FPS:      30,
	Width:    64,
	Height:   36,
	Audio:    true,
	Tone:     440,
}

// IsPattern reports whether location addresses the test-pattern backend.
func IsPattern(location string) bool {
	return strings.HasPrefix(location, constant.PatternScheme+":")
}

// ParsePattern reads pattern options from a location such as
// "pattern:?duration=10&fps=30&audio=false". Unset parameters keep their defaults.
func ParsePattern(location string) (PatternOptions, error) {
	opts := DefaultPatternOptions
	if !IsPattern(location) {
		return opts, fmt.Errorf("%w: %s is not a pattern location", ErrSourceNotFound, location)
	}

	u, err := url.Parse(location)
	if err != nil {
		return opts, fmt.Errorf("parse pattern: %w", err)
	}

	q := u.Query()
	floats := map[string]*float64{"duration": &opts.Duration, "fps": &opts.FPS, "tone": &opts.Tone}
	for name, dst := range floats {
		if v := q.Get(name); v != "" {
			if *dst, err = strconv.ParseFloat(v, 64); err != nil {
				return opts, fmt.Errorf("pattern %s: %w", name, err)
			}
		}
	}

	ints := map[string]*int{"width": &opts.Width, "height": &opts.Height}
	for name, dst := range ints {
		if v := q.Get(name); v != "" {
			if *dst, err = strconv.Atoi(v); err != nil {
				return opts, fmt.Errorf("pattern %s: %w", name, err)
			}
		}
	}

	if v := q.Get("audio"); v != "" {
		if opts.Audio, err = strconv.ParseBool(v); err != nil {
			return opts, fmt.Errorf("pattern audio: %w", err)
		}
	}

	if v := q.Get("fail"); v != "" {
		at, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("pattern fail: %w", err)
		}
		opts.FailAt = mo.Some(at)
	}

	return opts, nil
}

// Pattern is a synthetic Source producing a moving color bar at a fixed frame rate.
type Pattern struct {
	opts   PatternOptions
	frames int
	next   int
	closed bool
}

// NewPattern returns a test-pattern source.
func NewPattern(opts PatternOptions) (*Pattern, error) {
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("%w: pattern frame rate must be positive", ErrNoVideoStream)
	}
	if opts.Duration < 0 || opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid pattern geometry", ErrDecodeInit)
	}

	return &Pattern{
		opts:   opts,
		frames: int(math.Round(opts.Duration * opts.FPS)),
	}, nil
}

// OpenPattern parses location and opens the matching test pattern.
func OpenPattern(location string) (Source, error) {
	opts, err := ParsePattern(location)
	if err != nil {
		return nil, err
	}

	p, err := NewPattern(opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pattern) Info() Info {
	info := Info{
		Path:       constant.PatternScheme + ":",
		Duration:   p.opts.Duration,
		FrameRate:  p.opts.FPS,
		TimeBase:   1 / p.opts.FPS,
		Width:      p.opts.Width,
		Height:     p.opts.Height,
		VideoCodec: "rawvideo",
		HasAudio:   p.opts.Audio,
	}
	if p.opts.Audio {
		info.AudioCodec = "pcm_s16le"
	}
	return info
}

func (p *Pattern) Next() (Frame, error) {
	if p.closed {
		return Frame{}, ErrClosed
	}
	if p.next >= p.frames {
		return Frame{}, io.EOF
	}

	pts := float64(p.next) / p.opts.FPS
	if at, ok := p.opts.FailAt.Get(); ok && pts >= at {
		return Frame{}, fmt.Errorf("pattern: stream corrupted at %.3fs", pts)
	}

	frame := Frame{
		Image: p.render(pts),
		PTS:   pts,
		Index: p.next,
	}
	p.next++
	return frame, nil
}

func (p *Pattern) Seek(seconds float64) error {
	if p.closed {
		return ErrClosed
	}

	idx := int(math.Ceil(seconds*p.opts.FPS - 1e-9))
	if idx < 0 {
		idx = 0
	}
	if idx > p.frames {
		idx = p.frames
	}
	p.next = idx
	return nil
}

func (p *Pattern) OpenAudio() (AudioStream, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if !p.opts.Audio {
		return nil, ErrAudioUnavailable
	}

	return &Tone{
		format:    StandardPCM,
		frequency: p.opts.Tone,
		samples:   int64(math.Round(p.opts.Duration * float64(StandardPCM.SampleRate))),
	}, nil
}

func (p *Pattern) Close() error {
	p.closed = true
	return nil
}

// render draws a hue that cycles once per second and a bar sweeping across the frame once per second.
func (p *Pattern) render(pts float64) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, p.opts.Width, p.opts.Height))
	_, frac := math.Modf(pts)
	bg := hue(frac)
	bar := int(frac * float64(p.opts.Width))

	for y := 0; y < p.opts.Height; y++ {
		for x := 0; x < p.opts.Width; x++ {
			if x == bar {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
				continue
			}
			img.SetRGBA(x, y, bg)
		}
	}
	return img
}

func hue(h float64) color.RGBA {
	channel := func(offset float64) uint8 {
		v := math.Abs(math.Mod(h*6+offset, 6)-3) - 1
		return uint8(math.Max(0, math.Min(1, v)) * 255)
	}
	return color.RGBA{R: channel(0), G: channel(4), B: channel(2), A: 255}
}

// Tone is a sine wave AudioStream.
type Tone struct {
	format    PCMFormat
	frequency float64
	samples   int64
	pos       int64

	// partial holds the unread bytes of a sample frame split across reads.
	partial []byte
	closed  bool
}

func (t *Tone) Read(b []byte) (int, error) {
	if t.closed {
		return 0, ErrClosed
	}
	if len(t.partial) == 0 && t.pos >= t.samples {
		return 0, io.EOF
	}

	n := copy(b, t.partial)
	t.partial = t.partial[n:]

	frameSize := t.format.FrameSize()
	for n+frameSize <= len(b) && t.pos < t.samples {
		t.sample(b[n : n+frameSize])
		n += frameSize
	}

	if n < len(b) && t.pos < t.samples {
		frame := make([]byte, frameSize)
		t.sample(frame)
		copied := copy(b[n:], frame)
		t.partial = frame[copied:]
		n += copied
	}
	return n, nil
}

// sample writes the frame at pos to b and advances pos.
func (t *Tone) sample(b []byte) {
	v := math.Sin(2 * math.Pi * t.frequency * float64(t.pos) / float64(t.format.SampleRate))
	sample := uint16(int16(v * 0.25 * math.MaxInt16))
	for c := 0; c < t.format.Channels; c++ {
		binary.LittleEndian.PutUint16(b[c*2:], sample)
	}
	t.pos++
}

func (t *Tone) Seek(seconds float64) error {
	if t.closed {
		return ErrClosed
	}
	pos := int64(math.Round(seconds * float64(t.format.SampleRate)))
	if pos < 0 {
		pos = 0
	}
	if pos > t.samples {
		pos = t.samples
	}
	t.pos = pos
	t.partial = nil
	return nil
}

func (t *Tone) Format() PCMFormat {
	return t.format
}

func (t *Tone) Close() error {
	t.closed = true
	return nil
}
