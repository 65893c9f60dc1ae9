package probe

import (
	"sync"
	"time"

	"github.com/flicker-player/flicker/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

// cacheData is the on-disk layout of the probe cache.
type cacheData struct {
	Results map[string]Result `json:"results"`
}

// cache is a disk-backed map from locations to probe results.
type cache struct {
	internal *gache.Cache[*cacheData]
	mu       sync.RWMutex
}

func newCache(path string, lifetime time.Duration) *cache {
	return &cache{
		internal: gache.New[*cacheData](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (c *cache) Get(location string) mo.Option[Result] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[Result]()
	}

	result, ok := data.Results[location]
	if !ok {
		return mo.None[Result]()
	}
	return mo.Some(result)
}

func (c *cache) Set(location string, result Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Results == nil {
		data = &cacheData{Results: make(map[string]Result)}
	}
	data.Results[location] = result
	return c.internal.Set(data)
}
