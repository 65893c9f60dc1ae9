package player

import (
	"time"

	"github.com/flicker-player/flicker/audio"
	"github.com/flicker-player/flicker/clock"
	"github.com/flicker-player/flicker/key"
	"github.com/flicker-player/flicker/media"
	"github.com/flicker-player/flicker/scheduler"
	"github.com/spf13/viper"
)

// Display receives frames as they become due. Present must not block.
type Display interface {
	Present(frame media.Frame)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(media.Frame)

func (f DisplayFunc) Present(frame media.Frame) {
	f(frame)
}

type Options struct {
	Parameters

	// Audio enables the audio track of loaded media.
	Audio bool

	// Device is the audio output. It is owned by the caller.
	Device audio.Device

	Display    Display
	Thresholds scheduler.Thresholds

	// StopTimeout bounds how long Stop waits for the playback loop to exit.
	StopTimeout time.Duration

	// Clock is the time source of session clocks, time.Now when nil.
	Clock clock.Source
}

func DefaultOptions() Options {
	return Options{
		Parameters:  Parameters{Volume: 100, Speed: 1},
		Audio:       true,
		Device:      audio.NullDevice{},
		Thresholds:  scheduler.DefaultThresholds,
		StopTimeout: time.Second,
	}
}

// OptionsFromConfig builds options from the player.* and scheduler.* keys.
func OptionsFromConfig() Options {
	opts := DefaultOptions()
	opts.Volume = viper.GetInt(key.PlayerVolume)
	opts.Muted = viper.GetBool(key.PlayerMuted)
	opts.Speed = viper.GetFloat64(key.PlayerSpeed)
	opts.Audio = viper.GetBool(key.PlayerAudio)
	opts.Thresholds = scheduler.ThresholdsFromConfig()

	if ms := viper.GetInt(key.PlayerStopTimeout); ms > 0 {
		opts.StopTimeout = time.Duration(ms) * time.Millisecond
	}

	return opts
}
