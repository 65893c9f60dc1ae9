package player

import (
	"fmt"

	"github.com/flicker-player/flicker/util"
)

// State is the transport state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

const (
	MinSpeed = 0.1
	MaxSpeed = 4.0
)

// Parameters are the user-controlled playback settings.
type Parameters struct {
	// Volume is a percentage in [0, 100].
	Volume int
	Muted  bool

	// Speed is the playback rate in [MinSpeed, MaxSpeed].
	Speed float64
}

func (p Parameters) normalize() Parameters {
	p.Volume = util.Clamp(p.Volume, 0, 100)
	if p.Speed == 0 {
		p.Speed = 1
	}
	p.Speed = util.Clamp(p.Speed, MinSpeed, MaxSpeed)
	return p
}
