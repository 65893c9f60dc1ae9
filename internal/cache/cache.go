// Package cache removes stale files left behind in the application directories.
package cache

import (
	"os"
	"time"

	"github.com/flicker-player/flicker/filesystem"
	"github.com/spf13/afero"
)

// CollectGarbage removes the regular files under dir that were last modified more than ttl ago.
// It returns how many files were removed.
func CollectGarbage(dir string, ttl time.Duration) (removed int, err error) {
	fs := filesystem.API()
	deadline := time.Now().Add(-ttl)

	err = afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if info.ModTime().Before(deadline) && fs.Remove(path) == nil {
			removed++
		}
		return nil
	})
	return
}
