// Package where resolves the directories flicker reads from and writes to.
package where

import (
	"os"
	"path/filepath"

	"github.com/flicker-player/flicker/constant"
	"github.com/flicker-player/flicker/filesystem"
	"github.com/samber/lo"
)

const (
	// EnvConfigPath overrides the config directory.
	EnvConfigPath = "FLICKER_CONFIG_PATH"
	// EnvCachePath overrides the cache directory.
	EnvCachePath = "FLICKER_CACHE_PATH"
)

// resolve returns the override from env if set, otherwise the flicker
// directory under base. The directory is created when missing.
func resolve(env string, base func() (string, error), fallback string) string {
	dir, ok := os.LookupEnv(env)
	if !ok {
		root, err := base()
		if err != nil {
			root = fallback
		}
		dir = filepath.Join(root, constant.Flicker)
	}

	lo.Must0(filesystem.API().MkdirAll(dir, os.ModePerm))
	return dir
}

// Config is the directory holding the config file, logs and history.
func Config() string {
	return resolve(EnvConfigPath, os.UserConfigDir, ".")
}

// Cache is the directory for data that can be regenerated.
func Cache() string {
	return resolve(EnvCachePath, os.UserCacheDir, filepath.Join(".", "cache"))
}

func Logs() string {
	dir := filepath.Join(Config(), "logs")
	lo.Must0(filesystem.API().MkdirAll(dir, os.ModePerm))
	return dir
}

// History is the file with remembered playback positions.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Probes is the file caching probed media metadata.
func Probes() string {
	return filepath.Join(Cache(), "probes.json")
}
