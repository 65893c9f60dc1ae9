package libav

import (
	"errors"
	"fmt"
	"math"

	"github.com/asticode/go-astiav"
	"github.com/flicker-player/flicker/media"
	"github.com/samber/mo"
)

// Source decodes the first video stream of a container.
type Source struct {
	location string
	video    *decoder
	info     media.Info

	// floor drops frames decoded between the keyframe a seek landed on and its target.
	floor    float64
	seekedTo mo.Option[float64]
	lastPTS  mo.Option[float64]
	index    int
	closed   bool
}

// Open opens location and selects its first decodable video stream.
func Open(location string) (media.Source, error) {
	video, err := openDecoder(location, astiav.MediaTypeVideo, media.ErrNoVideoStream)
	if err != nil {
		return nil, err
	}

	params := video.stream.CodecParameters()
	info := media.Info{
		Path:       location,
		Duration:   video.duration(),
		TimeBase:   video.timeBase,
		Width:      params.Width(),
		Height:     params.Height(),
		VideoCodec: video.codec.Name(),
	}
	if rate := video.stream.AvgFrameRate(); rate.Den() != 0 {
		info.FrameRate = float64(rate.Num()) / float64(rate.Den())
	}

	for _, s := range video.fc.Streams() {
		if s.CodecParameters().MediaType() == astiav.MediaTypeAudio {
			info.HasAudio = true
			if codec := astiav.FindDecoder(s.CodecParameters().CodecID()); codec != nil {
				info.AudioCodec = codec.Name()
			}
			break
		}
	}

	video.log.Infof("opened %s: %.2fs, %.3f fps, %dx%d %s", location, info.Duration, info.FrameRate, info.Width, info.Height, info.VideoCodec)

	return &Source{
		location: location,
		video:    video,
		info:     info,
		seekedTo: mo.Some(0.0),
	}, nil
}

func (s *Source) Info() media.Info {
	return s.info
}

func (s *Source) Next() (media.Frame, error) {
	if s.closed {
		return media.Frame{}, media.ErrClosed
	}

	for {
		f, err := s.video.receive()
		if err != nil {
			return media.Frame{}, err
		}

		pts, ok := s.video.pts(f.Pts())
		if !ok {
			pts = s.estimatePTS()
		}

		if belowFloor(pts, s.floor, s.info.FrameInterval()) {
			continue
		}

		img, err := f.Data().GuessImageFormat()
		if err == nil {
			err = f.Data().ToImage(img)
		}
		if err != nil {
			s.video.log.Warnf("%v: frame at %.3fs: %v", media.ErrDecodeFrame, pts, err)
			continue
		}

		frame := media.Frame{Image: img, PTS: pts, Index: s.index}
		s.index++
		s.lastPTS = mo.Some(pts)
		s.seekedTo = mo.None[float64]()
		return frame, nil
	}
}

// belowFloor reports whether a frame at pts precedes the seek target floor.
// Half a frame of tolerance keeps the frame that straddles the target.
func belowFloor(pts, floor, interval float64) bool {
	return pts < floor-interval/2
}

// estimatePTS extrapolates a timestamp for frames the demuxer left unstamped.
func (s *Source) estimatePTS() float64 {
	last, ok := s.lastPTS.Get()
	if !ok {
		return s.floor
	}
	return last + s.info.FrameInterval()
}

func (s *Source) Seek(seconds float64) error {
	if s.closed {
		return media.ErrClosed
	}

	seconds = math.Max(0, seconds)
	if at, ok := s.seekedTo.Get(); ok && math.Abs(at-seconds) < 1e-6 {
		return nil
	}

	if err := s.video.seek(seconds); err != nil {
		return err
	}

	s.floor = seconds
	s.seekedTo = mo.Some(seconds)
	s.lastPTS = mo.None[float64]()
	s.index = 0
	return nil
}

func (s *Source) OpenAudio() (media.AudioStream, error) {
	if s.closed {
		return nil, media.ErrClosed
	}
	if !s.info.HasAudio {
		return nil, media.ErrAudioUnavailable
	}
	return openAudio(s.location)
}

func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.video.close()
	return nil
}

// AudioStream decodes the first audio stream of a container and resamples it to media.StandardPCM.
type AudioStream struct {
	audio     *decoder
	swr       *astiav.SoftwareResampleContext
	resampled *astiav.Frame
	format    media.PCMFormat
	pending   []byte

	// skip is the number of bytes still to discard to reach the last seek target.
	skip   mo.Option[float64]
	closed bool
}

func openAudio(location string) (*AudioStream, error) {
	audio, err := openDecoder(location, astiav.MediaTypeAudio, media.ErrAudioUnavailable)
	if err != nil {
		if errors.Is(err, media.ErrAudioUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", media.ErrAudioUnavailable, err)
	}

	swr := astiav.AllocSoftwareResampleContext()
	if swr == nil {
		audio.close()
		return nil, fmt.Errorf("%w: allocate resampler", media.ErrAudioUnavailable)
	}

	return &AudioStream{
		audio:     audio,
		swr:       swr,
		resampled: astiav.AllocFrame(),
		format:    media.StandardPCM,
	}, nil
}

func (a *AudioStream) Read(p []byte) (int, error) {
	if a.closed {
		return 0, media.ErrClosed
	}

	for len(a.pending) == 0 {
		if err := a.fill(); err != nil {
			return 0, err
		}
	}

	n := copy(p, a.pending)
	a.pending = a.pending[n:]
	return n, nil
}

// fill decodes and resamples one audio frame into pending.
func (a *AudioStream) fill() error {
	f, err := a.audio.receive()
	if err != nil {
		return err
	}

	a.resampled.Unref()
	a.resampled.SetChannelLayout(astiav.ChannelLayoutStereo)
	a.resampled.SetSampleFormat(astiav.SampleFormatS16)
	a.resampled.SetSampleRate(a.format.SampleRate)

	if err := a.swr.ConvertFrame(f, a.resampled); err != nil {
		a.audio.log.Warnf("%v: resample: %v", media.ErrDecodeFrame, err)
		return nil
	}

	data, err := a.resampled.Data().Bytes(1)
	if err != nil {
		a.audio.log.Warnf("%v: read samples: %v", media.ErrDecodeFrame, err)
		return nil
	}

	if target, ok := a.skip.Get(); ok {
		a.skip = mo.None[float64]()
		if pts, ok := a.audio.pts(f.Pts()); ok {
			if drop := a.format.Offset(target) - a.format.Offset(pts); drop > 0 {
				if drop >= int64(len(data)) {
					a.skip = mo.Some(target)
					return nil
				}
				data = data[drop:]
			}
		}
	}

	a.pending = append(a.pending[:0], data...)
	return nil
}

func (a *AudioStream) Seek(seconds float64) error {
	if a.closed {
		return media.ErrClosed
	}

	seconds = math.Max(0, seconds)
	if err := a.audio.seek(seconds); err != nil {
		return err
	}

	// The resampler buffers samples internally; start over with an empty one.
	a.swr.Free()
	a.swr = astiav.AllocSoftwareResampleContext()
	a.pending = nil
	a.skip = mo.Some(seconds)
	return nil
}

func (a *AudioStream) Format() media.PCMFormat {
	return a.format
}

func (a *AudioStream) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.resampled.Free()
	a.swr.Free()
	a.audio.close()
	return nil
}

var (
	_ media.Source      = (*Source)(nil)
	_ media.AudioStream = (*AudioStream)(nil)
)
