// Package libav is the production demux/decode backend, built on FFmpeg through go-astiav.
package libav

import (
	"errors"
	"fmt"
	"io"

	"github.com/asticode/go-astiav"
	"github.com/flicker-player/flicker/log"
	"github.com/flicker-player/flicker/media"
)

// avTimeBase is AV_TIME_BASE, the unit of container level durations.
const avTimeBase = 1_000_000

func init() {
	astiav.SetLogLevel(astiav.LogLevelQuiet)
}

// decoder owns one demuxer and the codec context of a single selected stream.
type decoder struct {
	fc       *astiav.FormatContext
	stream   *astiav.Stream
	codec    *astiav.Codec
	cc       *astiav.CodecContext
	pkt      *astiav.Packet
	frame    *astiav.Frame
	timeBase float64
	draining bool
	log      *log.Entry
}

// openDecoder opens location and selects the first stream of the given type that has a usable decoder.
// It returns notFound, wrapped, when no such stream exists.
func openDecoder(location string, mediaType astiav.MediaType, notFound error) (*decoder, error) {
	fc := astiav.AllocFormatContext()
	if fc == nil {
		return nil, fmt.Errorf("%w: allocate format context", media.ErrDecodeInit)
	}

	if err := fc.OpenInput(location, nil, nil); err != nil {
		fc.Free()
		return nil, fmt.Errorf("%w: open %s: %v", media.ErrDecodeInit, location, err)
	}

	d := &decoder{fc: fc, log: log.With("location", location)}

	if err := fc.FindStreamInfo(nil); err != nil {
		d.close()
		return nil, fmt.Errorf("%w: find stream info: %v", media.ErrDecodeInit, err)
	}

	d.stream, d.cc = firstDecodable(fc.Streams(), func(s *astiav.Stream) (*astiav.CodecContext, error) {
		if s.CodecParameters().MediaType() != mediaType {
			return nil, errSkip
		}

		codec := astiav.FindDecoder(s.CodecParameters().CodecID())
		if codec == nil {
			return nil, fmt.Errorf("stream %d: no decoder for codec %s", s.Index(), s.CodecParameters().CodecID())
		}

		cc, err := newCodecContext(s, codec)
		if err != nil {
			return nil, fmt.Errorf("stream %d: %w", s.Index(), err)
		}
		d.codec = codec
		return cc, nil
	}, d.log)

	if d.stream == nil {
		d.close()
		return nil, fmt.Errorf("%w: %s", notFound, location)
	}

	tb := d.stream.TimeBase()
	if tb.Den() != 0 {
		d.timeBase = float64(tb.Num()) / float64(tb.Den())
	}
	d.pkt = astiav.AllocPacket()
	d.frame = astiav.AllocFrame()
	d.log = d.log.With("stream", d.stream.Index())

	return d, nil
}

// errSkip marks a stream of another media type.
var errSkip = errors.New("skip")

// firstDecodable returns the first stream open accepts along with what it opened.
// Streams open rejects with anything but errSkip are logged.
func firstDecodable[S comparable, C any](streams []S, open func(S) (C, error), entry *log.Entry) (S, C) {
	for _, s := range streams {
		c, err := open(s)
		if err == nil {
			return s, c
		}
		if !errors.Is(err, errSkip) {
			entry.Warnf("%v", err)
		}
	}

	var (
		none S
		zero C
	)
	return none, zero
}

func newCodecContext(s *astiav.Stream, codec *astiav.Codec) (*astiav.CodecContext, error) {
	cc := astiav.AllocCodecContext(codec)
	if cc == nil {
		return nil, fmt.Errorf("%w: allocate codec context", media.ErrDecodeInit)
	}

	if err := s.CodecParameters().ToCodecContext(cc); err != nil {
		cc.Free()
		return nil, fmt.Errorf("%w: copy codec parameters: %v", media.ErrDecodeInit, err)
	}

	if err := cc.Open(codec, nil); err != nil {
		cc.Free()
		return nil, fmt.Errorf("%w: open codec %s: %v", media.ErrDecodeInit, codec.Name(), err)
	}

	return cc, nil
}

// duration is the stream duration, falling back to the container duration, else zero.
func (d *decoder) duration() float64 {
	return mediaDuration(d.stream.Duration(), d.timeBase, d.fc.Duration())
}

// mediaDuration converts stream ticks, or failing that container microseconds, to seconds.
func mediaDuration(streamTicks int64, timeBase float64, containerMicros int64) float64 {
	if streamTicks > 0 && timeBase > 0 {
		return float64(streamTicks) * timeBase
	}
	if containerMicros > 0 {
		return float64(containerMicros) / avTimeBase
	}
	return 0
}

// step is what receive does after asking the codec for a frame.
type step int

const (
	deliver step = iota
	finish
	feed
)

// afterReceive classifies a ReceiveFrame result. Errors other than EOF are
// treated like EAGAIN so that a codec stuck on bad data gets the next packet.
func afterReceive(err error) step {
	switch {
	case err == nil:
		return deliver
	case errors.Is(err, astiav.ErrEof):
		return finish
	default:
		return feed
	}
}

// receive returns the next decoded frame of the selected stream, io.EOF once the
// decoder is fully drained. The returned frame is valid until the next call.
// Packets or frames the codec rejects are logged and skipped; demuxer failures are returned.
func (d *decoder) receive() (*astiav.Frame, error) {
	for {
		d.frame.Unref()

		err := d.cc.ReceiveFrame(d.frame)
		switch afterReceive(err) {
		case deliver:
			return d.frame, nil
		case finish:
			return nil, io.EOF
		}
		if !errors.Is(err, astiav.ErrEagain) {
			d.log.Warnf("%v: receive: %v", media.ErrDecodeFrame, err)
		}

		if d.draining {
			return nil, io.EOF
		}

		if err := d.fc.ReadFrame(d.pkt); err != nil {
			if errors.Is(err, astiav.ErrEof) {
				d.draining = true
				if err := d.cc.SendPacket(nil); err != nil && !errors.Is(err, astiav.ErrEof) {
					d.log.Warnf("flush decoder: %v", err)
					return nil, io.EOF
				}
				continue
			}
			return nil, fmt.Errorf("read packet: %w", err)
		}

		if d.pkt.StreamIndex() != d.stream.Index() {
			d.pkt.Unref()
			continue
		}

		err = d.cc.SendPacket(d.pkt)
		d.pkt.Unref()
		if err != nil && !errors.Is(err, astiav.ErrEagain) {
			d.log.Warnf("%v: send: %v", media.ErrDecodeFrame, err)
		}
	}
}

// seek moves the demuxer to the keyframe at or before seconds and resets the codec.
func (d *decoder) seek(seconds float64) error {
	var ts int64
	if d.timeBase > 0 {
		ts = int64(seconds / d.timeBase)
	}

	if err := d.fc.SeekFrame(d.stream.Index(), ts, astiav.NewSeekFlags(astiav.SeekFlagBackward)); err != nil {
		return fmt.Errorf("seek to %.3fs: %w", seconds, err)
	}

	// A fresh codec context drops every frame buffered before the seek point.
	cc, err := newCodecContext(d.stream, d.codec)
	if err != nil {
		return err
	}
	d.cc.Free()
	d.cc = cc
	d.draining = false

	return nil
}

// pts converts a raw timestamp to seconds; ok is false when the frame carries none.
func (d *decoder) pts(raw int64) (seconds float64, ok bool) {
	if raw == astiav.NoPtsValue {
		return 0, false
	}
	return float64(raw) * d.timeBase, true
}

func (d *decoder) close() {
	if d.frame != nil {
		d.frame.Free()
		d.frame = nil
	}
	if d.pkt != nil {
		d.pkt.Free()
		d.pkt = nil
	}
	if d.cc != nil {
		d.cc.Free()
		d.cc = nil
	}
	if d.fc != nil {
		d.fc.CloseInput()
		d.fc.Free()
		d.fc = nil
	}
}
