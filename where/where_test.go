package where

import (
	"path/filepath"
	"testing"

	"github.com/flicker-player/flicker/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestDirectories(t *testing.T) {
	Convey("Given the default locations", t, func() {
		for _, dir := range []struct {
			name string
			path func() string
		}{
			{"config", Config},
			{"cache", Cache},
			{"logs", Logs},
		} {
			Convey("The "+dir.name+" directory should exist", func() {
				path := dir.path()
				So(path, ShouldNotBeEmpty)
				So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
			})
		}
	})

	Convey("Given overridden locations", t, func() {
		t.Setenv(EnvConfigPath, "/custom/config")
		t.Setenv(EnvCachePath, "/custom/cache")

		Convey("Then the overrides should be used as is", func() {
			So(Config(), ShouldEqual, "/custom/config")
			So(Cache(), ShouldEqual, "/custom/cache")
			So(Logs(), ShouldEqual, filepath.Join("/custom/config", "logs"))
		})
	})
}

func TestFiles(t *testing.T) {
	Convey("Data files live in their directories", t, func() {
		So(filepath.Dir(Probes()), ShouldEqual, Cache())
		So(filepath.Base(Probes()), ShouldEqual, "probes.json")
		So(filepath.Dir(History()), ShouldEqual, Config())
		So(filepath.Base(History()), ShouldEqual, "history.json")
	})
}
