// Package history remembers where playback of each media location was left off.
package history

import (
	"time"

	"github.com/flicker-player/flicker/filesystem"
	"github.com/flicker-player/flicker/where"
	"github.com/metafates/gache"
)

// tail is how close to the end a position must be for the media to count as finished.
const tail = 5.0

var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every remembered position, keyed by location.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Position returns the remembered position of location, if any.
func Position(location string) (float64, bool) {
	saved, err := Get()
	if err != nil {
		return 0, false
	}

	entry, ok := saved[encode(location)]
	if !ok {
		return 0, false
	}
	return entry.Position, true
}

// Save remembers the position playback of location was left at.
// Positions before minimum and finished media forget the location instead,
// so that the next run starts from the beginning.
func Save(location, title string, position, duration, minimum float64, ended bool) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	k := encode(location)
	if ended || position < minimum || (duration > 0 && position >= duration-tail) {
		if _, ok := saved[k]; !ok {
			return nil
		}
		delete(saved, k)
		return cacher.Set(saved)
	}

	saved[k] = &Entry{
		Location: location,
		Title:    title,
		Position: position,
		Duration: duration,
		Updated:  time.Now(),
	}
	return cacher.Set(saved)
}

// Remove forgets the position of location.
func Remove(location string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, encode(location))
	return cacher.Set(saved)
}
