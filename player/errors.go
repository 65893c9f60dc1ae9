package player

import "errors"

var (
	// ErrNoMedia is returned by transport commands when nothing is loaded.
	ErrNoMedia = errors.New("player: no media loaded")

	// ErrAlreadyLoading is returned when Load is called while another load is in progress.
	ErrAlreadyLoading = errors.New("player: load already in progress")

	// ErrCancellationTimeout is returned when the playback loop does not exit in time.
	ErrCancellationTimeout = errors.New("player: playback loop did not stop in time")

	ErrClosed = errors.New("player: closed")
)
