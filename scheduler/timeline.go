package scheduler

// Timeline maps clock readings to media time at a playback speed.
// At speed 1 media time equals the clock reading.
type Timeline struct {
	anchorMedia float64
	anchorClock float64
	speed       float64
}

func NewTimeline(speed float64) Timeline {
	return Timeline{speed: speed}
}

// At returns the media time for a clock reading.
func (t Timeline) At(clock float64) float64 {
	return t.anchorMedia + (clock-t.anchorClock)*t.speed
}

func (t Timeline) Speed() float64 {
	return t.speed
}

// SetSpeed changes the rate while keeping media time continuous at clock.
func (t *Timeline) SetSpeed(clock, speed float64) {
	t.anchorMedia = t.At(clock)
	t.anchorClock = clock
	t.speed = speed
}

// Anchor pins media time to clock.
func (t *Timeline) Anchor(clock, media float64) {
	t.anchorClock = clock
	t.anchorMedia = media
}
