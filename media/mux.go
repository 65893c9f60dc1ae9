package media

import (
	"fmt"
	"net/url"

	"github.com/flicker-player/flicker/filesystem"
)

// Mux routes locations to backends. Pattern locations go to the synthetic backend,
// anything else to Default. Local paths are checked for existence first so that a
// missing file is reported as ErrSourceNotFound regardless of the backend.
type Mux struct {
	Default Opener
}

func (m Mux) Open(location string) (Source, error) {
	if IsPattern(location) {
		return OpenPattern(location)
	}

	if !IsURL(location) {
		exists, err := filesystem.API().Exists(location)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", location, err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, location)
		}
	}

	if m.Default == nil {
		return nil, fmt.Errorf("%w: no decoder backend for %s", ErrDecodeInit, location)
	}
	return m.Default.Open(location)
}

// IsURL reports whether location carries a URL scheme. Single letter schemes are
// Windows drive letters, not URLs.
func IsURL(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return len(u.Scheme) > 1
}
