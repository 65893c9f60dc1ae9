package media

import "errors"

var (
	// ErrSourceNotFound is returned when a local path does not exist.
	ErrSourceNotFound = errors.New("media: source not found")

	// ErrNoVideoStream is returned when the container holds no decodable video stream.
	ErrNoVideoStream = errors.New("media: no decodable video stream")

	// ErrDecodeInit is returned when a decoder cannot be initialized or the container cannot be parsed.
	ErrDecodeInit = errors.New("media: decoder initialization failed")

	// ErrAudioUnavailable is returned when a source has no playable audio track. It is never fatal.
	ErrAudioUnavailable = errors.New("media: audio unavailable")

	// ErrDecodeFrame marks a single frame that could not be decoded. Backends log and skip it.
	ErrDecodeFrame = errors.New("media: frame decode failed")

	// ErrClosed is returned by operations on a closed source or stream.
	ErrClosed = errors.New("media: closed")
)
