package scheduler

import (
	"time"

	"github.com/flicker-player/flicker/key"
	"github.com/spf13/viper"
)

// Thresholds tune frame pacing.
type Thresholds struct {
	// Early is how far ahead of the timeline a frame may be and still be shown at once.
	Early time.Duration

	// Late is how far behind the timeline a frame may fall before it is dropped.
	Late time.Duration

	// MaxSleep caps a single wait so stop, pause and seek are noticed promptly.
	MaxSleep time.Duration

	// PausePoll is the idle interval while paused.
	PausePoll time.Duration
}

var DefaultThresholds = Thresholds{
	Early:     time.Millisecond,
	Late:      500 * time.Millisecond,
	MaxSleep:  100 * time.Millisecond,
	PausePoll: 10 * time.Millisecond,
}

// ThresholdsFromConfig reads the scheduler.* keys, falling back to defaults for non-positive values.
func ThresholdsFromConfig() Thresholds {
	ms := func(k string, fallback time.Duration) time.Duration {
		if v := viper.GetInt(k); v > 0 {
			return time.Duration(v) * time.Millisecond
		}
		return fallback
	}

	return Thresholds{
		Early:     ms(key.SchedulerEarlyThreshold, DefaultThresholds.Early),
		Late:      ms(key.SchedulerLateThreshold, DefaultThresholds.Late),
		MaxSleep:  ms(key.SchedulerMaxSleep, DefaultThresholds.MaxSleep),
		PausePoll: ms(key.SchedulerPausePoll, DefaultThresholds.PausePoll),
	}
}

type Action int

const (
	Deliver Action = iota
	Wait
	Drop
)

func (a Action) String() string {
	switch a {
	case Deliver:
		return "deliver"
	case Wait:
		return "wait"
	case Drop:
		return "drop"
	default:
		return "unknown"
	}
}

// Decision is what to do with a frame right now.
type Decision struct {
	Action Action

	// Sleep is set for Wait and is always positive.
	Sleep time.Duration
}

// Decide paces a frame with timestamp pts against the media time now.
// Early frames wait in wall time, scaled by speed and capped at MaxSleep.
// Frames later than Late are dropped. Everything else is delivered.
func Decide(pts, now, speed float64, t Thresholds) Decision {
	delta := pts - now

	switch {
	case delta > t.Early.Seconds():
		if speed <= 0 {
			speed = 1
		}
		sleep := time.Duration(delta / speed * float64(time.Second))
		if sleep > t.MaxSleep {
			sleep = t.MaxSleep
		}
		if sleep <= 0 {
			return Decision{Action: Deliver}
		}
		return Decision{Action: Wait, Sleep: sleep}
	case delta < -t.Late.Seconds():
		return Decision{Action: Drop}
	default:
		return Decision{Action: Deliver}
	}
}
