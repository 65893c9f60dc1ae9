package history

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/flicker-player/flicker/media"
	"github.com/flicker-player/flicker/util"
)

// Entry is a remembered playback position of a single media location.
type Entry struct {
	Location string    `json:"location"`
	Title    string    `json:"title"`
	Position float64   `json:"position"`
	Duration float64   `json:"duration"`
	Updated  time.Time `json:"updated"`
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s : %s / %s", e.Title, util.FormatTime(e.Position), util.FormatTime(e.Duration))
}

// encode returns the registry key of a location.
// Local paths are made absolute so that the same file matches from any working directory.
func encode(location string) string {
	if media.IsURL(location) || media.IsPattern(location) {
		return location
	}

	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return location
}
