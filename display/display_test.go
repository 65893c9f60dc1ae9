package display

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/flicker-player/flicker/media"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLatest(t *testing.T) {
	Convey("Given a latest-frame holder", t, func() {
		l := NewLatest()

		Convey("Take should be empty before anything is presented", func() {
			_, ok := l.Take()
			So(ok, ShouldBeFalse)
		})

		Convey("Only the newest frame should be kept", func() {
			l.Present(media.Frame{PTS: 0.1})
			l.Present(media.Frame{PTS: 0.2})
			l.Present(media.Frame{PTS: 0.3})

			frame, ok := l.Take()
			So(ok, ShouldBeTrue)
			So(frame.PTS, ShouldEqual, 0.3)

			_, ok = l.Take()
			So(ok, ShouldBeFalse)

			stats := l.Stats()
			So(stats.Presented, ShouldEqual, uint64(3))
			So(stats.Overwritten, ShouldEqual, uint64(2))
		})

		Convey("Present should signal without blocking", func() {
			for i := 0; i < 10; i++ {
				l.Present(media.Frame{Index: i})
			}
			So(len(l.Updated()), ShouldEqual, 1)
		})
	})
}

func TestRender(t *testing.T) {
	Convey("Render", t, func() {
		img := image.NewRGBA(image.Rect(0, 0, 64, 36))
		for y := 0; y < 36; y++ {
			for x := 0; x < 64; x++ {
				img.SetRGBA(x, y, color.RGBA{R: 200, A: 255})
			}
		}

		Convey("Size should keep the aspect ratio in half-block rows", func() {
			cols, rows := Size(img.Bounds(), 32)
			So(cols, ShouldEqual, 32)
			So(rows, ShouldEqual, 9)
		})

		Convey("Should draw one half block per cell", func() {
			out := Render(img, 32)
			lines := strings.Split(out, "\n")
			So(len(lines), ShouldEqual, 9)
			for _, line := range lines {
				So(strings.Count(line, halfBlock), ShouldEqual, 32)
			}
		})

		Convey("Should render nothing for empty input", func() {
			So(Render(nil, 32), ShouldBeEmpty)
			So(Render(img, 0), ShouldBeEmpty)
		})
	})
}
