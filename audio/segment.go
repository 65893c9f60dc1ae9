package audio

import (
	"io"
	"sync"
)

// segment is the reader handed to a device player. It counts the bytes the
// device pulled and can be detached, after which the device sees end of
// stream and the underlying stream may be repositioned safely.
type segment struct {
	mu       sync.Mutex
	r        io.Reader
	read     int64
	detached bool
}

func (s *segment) Read(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detached {
		return 0, io.EOF
	}

	n, err := s.r.Read(b)
	s.read += int64(n)
	return n, err
}

func (s *segment) consumed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read
}

func (s *segment) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detached = true
}
