package log

import (
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestEntry(t *testing.T) {
	Convey("Given a session entry", t, func() {
		logrus.SetOutput(io.Discard)
		hook := test.NewGlobal()
		base := With("session", "abc")
		Reset(func() {
			enabled = false
			hook.Reset()
		})

		Convey("With should not mutate the receiver", func() {
			child := base.With("path", "movie.mkv")
			So(base.entry.Data, ShouldHaveLength, 1)
			So(child.entry.Data, ShouldHaveLength, 2)
			So(child.entry.Data["session"], ShouldEqual, "abc")
		})

		Convey("Emissions carry the fields while enabled", func() {
			enabled = true
			base.With("component", "player").Warnf("dropped %d frames", 3)

			So(hook.Entries, ShouldHaveLength, 1)
			last := hook.LastEntry()
			So(last.Message, ShouldEqual, "dropped 3 frames")
			So(last.Level, ShouldEqual, logrus.WarnLevel)
			So(last.Data["session"], ShouldEqual, "abc")
			So(last.Data["component"], ShouldEqual, "player")
		})

		Convey("Emissions are discarded while disabled", func() {
			enabled = false
			base.Errorf("boom %d", 1)
			Warnf("dropped %s", "frame")
			So(hook.Entries, ShouldBeEmpty)
		})
	})
}
