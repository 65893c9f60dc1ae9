package history

import (
	"testing"

	"github.com/flicker-player/flicker/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a partly watched file", t, func() {
		const location = "/videos/movie.mkv"
		So(Remove(location), ShouldBeNil)

		Convey("When saving its position", func() {
			err := Save(location, "Movie", 42.5, 600, 10, false)
			So(err, ShouldBeNil)

			Convey("Then the position should be remembered", func() {
				position, ok := Position(location)
				So(ok, ShouldBeTrue)
				So(position, ShouldEqual, 42.5)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved[location].Title, ShouldEqual, "Movie")
			})

			Convey("And saving it again should replace the position", func() {
				So(Save(location, "Movie", 30, 600, 10, false), ShouldBeNil)
				position, _ := Position(location)
				So(position, ShouldEqual, 30.0)
			})

			Convey("And finishing it should forget the location", func() {
				So(Save(location, "Movie", 598, 600, 10, false), ShouldBeNil)
				_, ok := Position(location)
				So(ok, ShouldBeFalse)
			})

			Convey("And an ended run should forget the location", func() {
				So(Save(location, "Movie", 100, 600, 10, true), ShouldBeNil)
				_, ok := Position(location)
				So(ok, ShouldBeFalse)
			})

			Convey("And removing it should forget the location", func() {
				So(Remove(location), ShouldBeNil)
				_, ok := Position(location)
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When saving a position before the minimum", func() {
			So(Save(location, "Movie", 3, 600, 10, false), ShouldBeNil)

			Convey("Then nothing should be remembered", func() {
				_, ok := Position(location)
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Generated patterns are keyed as given", t, func() {
		So(encode("pattern:?duration=10"), ShouldEqual, "pattern:?duration=10")
		So(encode("https://example.com/a.mp4"), ShouldEqual, "https://example.com/a.mp4")
	})
}
