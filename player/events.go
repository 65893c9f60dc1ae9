package player

import (
	"context"
	"sync"

	"github.com/flicker-player/flicker/media"
)

// EventKind identifies a notification emitted by the player.
type EventKind int

const (
	// Loaded is emitted when a new source replaced the previous one.
	Loaded EventKind = iota
	DurationChanged
	StateChanged

	// TimeUpdate is emitted as frames are presented and after seeks.
	// Pending time updates are coalesced.
	TimeUpdate

	// Ended is emitted once when playback reaches the end of the stream.
	Ended

	// Error reports a failed load or a playback failure.
	Error
)

func (k EventKind) String() string {
	switch k {
	case Loaded:
		return "loaded"
	case DurationChanged:
		return "duration-changed"
	case StateChanged:
		return "state-changed"
	case TimeUpdate:
		return "time-update"
	case Ended:
		return "ended"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a player notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Session string

	State    State
	Position float64
	Duration float64
	Info     media.Info
	Err      error
}

// Queue is a thread-safe FIFO of events.
type Queue struct {
	mu      sync.Mutex
	pending []Event
	notify  chan struct{}
}

func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

func (q *Queue) push(e Event) {
	q.mu.Lock()
	if n := len(q.pending); e.Kind == TimeUpdate && n > 0 && q.pending[n-1].Kind == TimeUpdate {
		q.pending[n-1] = e
	} else {
		q.pending = append(q.pending, e)
	}
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Poll removes and returns all pending events.
func (q *Queue) Poll() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := q.pending
	q.pending = nil
	return events
}

// Next waits for the next event or until ctx is done.
func (q *Queue) Next(ctx context.Context) (Event, error) {
	for {
		q.mu.Lock()
		if len(q.pending) > 0 {
			e := q.pending[0]
			q.pending = q.pending[1:]
			q.mu.Unlock()
			return e, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-q.notify:
		}
	}
}

// Notify returns a channel that receives a value whenever events are pushed.
func (q *Queue) Notify() <-chan struct{} {
	return q.notify
}
