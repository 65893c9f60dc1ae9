// Package speaker provides the system audio output device.
package speaker

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/flicker-player/flicker/audio"
	"github.com/flicker-player/flicker/log"
	"github.com/flicker-player/flicker/media"
)

// ErrOutputTaken is returned by a Device when another Device already owns the
// output. The platform allows a single output context per process.
var ErrOutputTaken = errors.New("audio output already owned by another device")

// claimed is set by the first Device to create an output context.
var claimed atomic.Bool

// Device plays through the default system output. The output context is
// created on the first NewPlayer call and lives as long as the process.
type Device struct {
	mu        sync.Mutex
	buffer    time.Duration
	ctx       *oto.Context
	err       error
	tried     bool
	suspended bool
}

// New returns a device with the given output buffer length.
func New(buffer time.Duration) *Device {
	return &Device{buffer: buffer}
}

// context returns the output context, creating it on first use. d.mu must be held.
func (d *Device) context() (*oto.Context, error) {
	if d.tried {
		return d.ctx, d.err
	}
	d.tried = true

	if !claimed.CompareAndSwap(false, true) {
		d.err = fmt.Errorf("%w: %w", audio.ErrDeviceUnavailable, ErrOutputTaken)
		return nil, d.err
	}

	format := media.StandardPCM
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   d.buffer,
	})
	if err != nil {
		d.err = fmt.Errorf("%w: %w", audio.ErrDeviceUnavailable, err)
		return nil, d.err
	}
	<-ready

	log.Infof("audio output ready: %d Hz, %d channels", format.SampleRate, format.Channels)
	d.ctx = ctx
	return ctx, nil
}

func (d *Device) NewPlayer(r io.Reader) (audio.DevicePlayer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, err := d.context()
	if err != nil {
		return nil, err
	}

	if d.suspended {
		if err := ctx.Resume(); err != nil {
			return nil, fmt.Errorf("%w: resume: %w", audio.ErrDeviceUnavailable, err)
		}
		d.suspended = false
	}

	return ctx.NewPlayer(r), nil
}

// Close suspends the output context. A later NewPlayer resumes it.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctx == nil || d.suspended {
		return nil
	}

	if err := d.ctx.Suspend(); err != nil {
		return fmt.Errorf("suspend audio output: %w", err)
	}
	d.suspended = true
	return nil
}

var _ audio.Device = (*Device)(nil)
