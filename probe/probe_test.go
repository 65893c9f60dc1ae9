package probe

import (
	"errors"
	"testing"

	"github.com/flicker-player/flicker/filesystem"
	"github.com/flicker-player/flicker/media"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProbe(t *testing.T) {
	Convey("Given a prober with a counting backend", t, func() {
		filesystem.SetMemMapFs()

		opened := 0
		opener := media.Mux{Default: media.OpenerFunc(func(location string) (media.Source, error) {
			opened++
			opts := media.DefaultPatternOptions
			opts.Duration = 42
			return media.NewPattern(opts)
		})}
		p := New(opener, true)

		lo.Must0(filesystem.API().WriteFile("/media/clip.mkv", []byte("not really a video"), 0o644))

		Convey("A local file should be probed once and then served from cache", func() {
			first, err := p.Probe("/media/clip.mkv")
			So(err, ShouldBeNil)
			So(first.Cached, ShouldBeFalse)
			So(first.Info.Duration, ShouldEqual, 42.0)
			So(first.Title(), ShouldEqual, "pattern:")

			second, err := p.Probe("/media/clip.mkv")
			So(err, ShouldBeNil)
			So(second.Cached, ShouldBeTrue)
			So(second.Info.Duration, ShouldEqual, 42.0)
			So(opened, ShouldEqual, 1)

			Convey("A changed file should be probed again", func() {
				lo.Must0(filesystem.API().WriteFile("/media/clip.mkv", []byte("a longer replacement body"), 0o644))

				third, err := p.Probe("/media/clip.mkv")
				So(err, ShouldBeNil)
				So(third.Cached, ShouldBeFalse)
				So(opened, ShouldEqual, 2)
			})
		})

		Convey("Pattern locations should bypass the cache", func() {
			result, err := p.Probe("pattern:?duration=3")
			So(err, ShouldBeNil)
			So(result.Info.Duration, ShouldEqual, 3.0)
			So(opened, ShouldEqual, 0)
		})

		Convey("Missing files should be reported as not found", func() {
			_, err := p.Probe("/media/missing.mkv")
			So(errors.Is(err, media.ErrSourceNotFound), ShouldBeTrue)
		})
	})
}
