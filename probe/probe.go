// Package probe inspects media without playing it.
package probe

import (
	"fmt"
	"time"

	"github.com/flicker-player/flicker/filesystem"
	"github.com/flicker-player/flicker/log"
	"github.com/flicker-player/flicker/media"
	"github.com/flicker-player/flicker/media/tags"
	"github.com/flicker-player/flicker/util"
	"github.com/flicker-player/flicker/where"
)

// Result describes a probed location.
type Result struct {
	Info media.Info `json:"info"`
	Tags tags.Tags  `json:"tags"`

	// Size and ModTime identify the file version the result was taken from.
	Size    int64     `json:"size,omitempty"`
	ModTime time.Time `json:"mod_time,omitempty"`

	Cached bool `json:"-"`
}

// Title is the tagged title, or the file name without extension.
func (r Result) Title() string {
	return r.Tags.Display(util.FileStem(r.Info.Path))
}

type Prober struct {
	opener media.Opener
	cache  *cache
}

// New returns a prober. When cached is set, results for local files are kept
// in the probe cache until the file changes.
func New(opener media.Opener, cached bool) *Prober {
	p := &Prober{opener: opener}
	if cached {
		p.cache = newCache(where.Probes(), 30*24*time.Hour)
	}
	return p
}

func (p *Prober) Probe(location string) (Result, error) {
	local := !media.IsPattern(location) && !media.IsURL(location)

	var result Result
	if local {
		stat, err := filesystem.API().Stat(location)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s", media.ErrSourceNotFound, location)
		}
		result.Size = stat.Size()
		result.ModTime = stat.ModTime()

		if p.cache != nil {
			if cached, ok := p.cache.Get(location).Get(); ok && cached.Size == result.Size && cached.ModTime.Equal(result.ModTime) {
				cached.Cached = true
				return cached, nil
			}
		}
	}

	src, err := p.opener.Open(location)
	if err != nil {
		return Result{}, err
	}
	result.Info = src.Info()
	util.Ignore(src.Close)

	if local {
		t, err := tags.Read(location)
		if err != nil {
			log.Warnf("tags of %s: %s", location, err)
		}
		result.Tags = t

		if p.cache != nil {
			if err := p.cache.Set(location, result); err != nil {
				log.Warnf("probe cache: %s", err)
			}
		}
	}

	return result, nil
}
