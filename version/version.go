package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/flicker-player/flicker/filesystem"
	"github.com/flicker-player/flicker/network"
	"github.com/flicker-player/flicker/util"
	"github.com/flicker-player/flicker/where"
	"github.com/metafates/gache"
)

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

var (
	releaseAPI  = "https://api.github.com/repos/flicker-player/flicker/releases/latest"
	releasePage = "https://github.com/flicker-player/flicker/releases/tag/"
)

// Latest returns the newest released version. Answers are cached for two days.
func Latest() (version string, err error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	version, err = fetchLatest(releaseAPI)
	if err != nil {
		return
	}

	_ = versionCacher.Set(version)
	return
}

func fetchLatest(url string) (string, error) {
	resp, err := network.Client.Get(url)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup: %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}
