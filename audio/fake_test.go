package audio

import (
	"errors"
	"io"
	"sync"
)

// fakeDevice records the players it hands out. Players pull from their reader
// only when the test calls pull, which stands in for the hardware.
type fakeDevice struct {
	mu      sync.Mutex
	players []*fakePlayer
	fail    bool
}

func (d *fakeDevice) NewPlayer(r io.Reader) (DevicePlayer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.fail {
		return nil, errors.New("no sound card")
	}

	p := &fakePlayer{r: r, volume: 1}
	d.players = append(d.players, p)
	return p, nil
}

func (d *fakeDevice) Close() error { return nil }

func (d *fakeDevice) last() *fakePlayer {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.players) == 0 {
		return nil
	}
	return d.players[len(d.players)-1]
}

func (d *fakeDevice) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.players)
}

type fakePlayer struct {
	mu       sync.Mutex
	r        io.Reader
	playing  bool
	closed   bool
	volume   float64
	buffered int
}

func (p *fakePlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
}

func (p *fakePlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

func (p *fakePlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *fakePlayer) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = v
}

func (p *fakePlayer) gain() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *fakePlayer) BufferedSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buffered
}

func (p *fakePlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.playing = false
	return nil
}

// pull reads n bytes from the source as the device would, keeping buffered of them unplayed.
func (p *fakePlayer) pull(n, buffered int) int {
	buf := make([]byte, n)
	read, _ := io.ReadFull(p.r, buf)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.buffered = buffered
	return read
}
