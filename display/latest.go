// Package display receives presented frames and turns them into terminal output.
package display

import (
	"sync"

	"github.com/flicker-player/flicker/media"
)

// Stats counts frames handed to a Latest holder.
type Stats struct {
	Presented uint64

	// Overwritten counts frames replaced before anyone took them.
	Overwritten uint64
}

// Latest keeps only the most recent frame. Present never blocks, so a slow
// renderer skips frames instead of stalling the playback loop.
type Latest struct {
	mu      sync.Mutex
	frame   media.Frame
	fresh   bool
	stats   Stats
	updated chan struct{}
}

func NewLatest() *Latest {
	return &Latest{updated: make(chan struct{}, 1)}
}

func (l *Latest) Present(frame media.Frame) {
	l.mu.Lock()
	if l.fresh {
		l.stats.Overwritten++
	}
	l.frame = frame
	l.fresh = true
	l.stats.Presented++
	l.mu.Unlock()

	select {
	case l.updated <- struct{}{}:
	default:
	}
}

// Take returns the latest frame if it has not been taken yet.
func (l *Latest) Take() (media.Frame, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.fresh {
		return media.Frame{}, false
	}
	l.fresh = false
	return l.frame, true
}

// Updated receives a value after frames are presented.
func (l *Latest) Updated() <-chan struct{} {
	return l.updated
}

func (l *Latest) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.stats
}
