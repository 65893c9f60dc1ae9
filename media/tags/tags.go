// Package tags reads descriptive metadata (title, artist, album) embedded in media containers.
package tags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhowden/tag"
	"github.com/flicker-player/flicker/filesystem"
	"github.com/flicker-player/flicker/util"
)

// Tags is the subset of container metadata shown to the user.
type Tags struct {
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Year   int    `json:"year,omitempty"`
	Format string `json:"format,omitempty"`
}

// Read parses the tags of the file at path. Files without tags yield empty Tags and no error.
func Read(path string) (Tags, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		return Tags{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer util.Ignore(f.Close)

	m, err := tag.ReadFrom(f)
	if err != nil {
		if errors.Is(err, tag.ErrNoTagsFound) {
			return Tags{}, nil
		}
		return Tags{}, fmt.Errorf("read tags: %w", err)
	}

	return Tags{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
		Year:   m.Year(),
		Format: string(m.Format()),
	}, nil
}

// Display returns "Artist - Title", the title alone, or fallback when there is no title.
func (t Tags) Display(fallback string) string {
	switch {
	case t.Title != "" && t.Artist != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return fallback
	}
}
