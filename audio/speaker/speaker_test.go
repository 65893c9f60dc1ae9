package speaker

import (
	"errors"
	"testing"
	"time"

	"github.com/flicker-player/flicker/audio"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDevice(t *testing.T) {
	Convey("Given the output is owned elsewhere", t, func() {
		claimed.Store(true)
		Reset(func() { claimed.Store(false) })

		d := New(100 * time.Millisecond)

		Convey("A second device should refuse to play", func() {
			_, err := d.NewPlayer(nil)
			So(errors.Is(err, audio.ErrDeviceUnavailable), ShouldBeTrue)
			So(errors.Is(err, ErrOutputTaken), ShouldBeTrue)

			_, again := d.NewPlayer(nil)
			So(again, ShouldEqual, err)
		})

		Convey("Closing it should be harmless", func() {
			So(d.Close(), ShouldBeNil)
		})
	})
}
