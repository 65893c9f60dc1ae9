package audio

import (
	"testing"

	"github.com/flicker-player/flicker/media"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

var second = media.StandardPCM.BytesPerSecond()

func patternSource(audio bool) media.Source {
	opts := media.DefaultPatternOptions
	opts.Audio = audio
	return lo.Must(media.NewPattern(opts))
}

func TestSink(t *testing.T) {
	Convey("Given a sink on a fake device", t, func() {
		device := &fakeDevice{}
		sink := NewSink(device)

		Convey("Load should report a missing audio track without failing", func() {
			So(sink.Load(patternSource(false)), ShouldBeFalse)
			So(sink.Loaded(), ShouldBeFalse)

			sink.Play()
			So(device.count(), ShouldEqual, 0)
		})

		Convey("When a track is loaded and playing", func() {
			So(sink.Load(patternSource(true)), ShouldBeTrue)
			sink.Play()

			player := device.last()
			So(player, ShouldNotBeNil)
			So(player.IsPlaying(), ShouldBeTrue)

			Convey("Position should count only audible bytes", func() {
				player.pull(second, second/2)
				So(sink.Position(), ShouldAlmostEqual, 0.5, 1e-6)
			})

			Convey("Pause then Play should resume the same output", func() {
				player.pull(second, 0)
				sink.Pause()
				So(player.IsPlaying(), ShouldBeFalse)
				So(sink.Position(), ShouldAlmostEqual, 1, 1e-6)

				sink.Play()
				So(device.count(), ShouldEqual, 1)
				So(player.IsPlaying(), ShouldBeTrue)
				So(sink.Position(), ShouldAlmostEqual, 1, 1e-6)
			})

			Convey("Seek should restart output at the new offset", func() {
				player.pull(second, 0)
				sink.Seek(5)

				So(player.closed, ShouldBeTrue)
				So(device.count(), ShouldEqual, 2)
				So(sink.Position(), ShouldAlmostEqual, 5, 1e-6)

				next := device.last()
				So(next.IsPlaying(), ShouldBeTrue)
				next.pull(second, 0)
				So(sink.Position(), ShouldAlmostEqual, 6, 1e-6)
			})

			Convey("A detached segment should read as end of stream", func() {
				sink.Seek(2)
				So(player.pull(1024, 0), ShouldEqual, 0)
			})

			Convey("Stop should rewind without restarting output", func() {
				player.pull(second, 0)
				sink.Stop()
				So(sink.Position(), ShouldEqual, 0.0)
				So(device.count(), ShouldEqual, 1)
			})

			Convey("Volume and mute should apply immediately", func() {
				sink.SetVolume(50)
				So(player.gain(), ShouldAlmostEqual, 0.5)

				sink.SetMuted(true)
				So(player.gain(), ShouldEqual, 0.0)
				So(sink.Volume(), ShouldEqual, 50)

				sink.SetMuted(false)
				So(player.gain(), ShouldAlmostEqual, 0.5)

				sink.SetVolume(250)
				So(sink.Volume(), ShouldEqual, 100)
			})

			Convey("Unload should release the output", func() {
				sink.Unload()
				So(player.closed, ShouldBeTrue)
				So(sink.Loaded(), ShouldBeFalse)
				So(sink.Position(), ShouldEqual, 0.0)
			})
		})

		Convey("Seek while paused should wait for Play", func() {
			So(sink.Load(patternSource(true)), ShouldBeTrue)
			sink.Play()
			sink.Pause()
			sink.Seek(3)

			So(device.count(), ShouldEqual, 1)
			So(sink.Position(), ShouldAlmostEqual, 3, 1e-6)

			sink.Play()
			So(device.count(), ShouldEqual, 2)
		})

		Convey("A failing device should disable audio only", func() {
			device.fail = true
			So(sink.Load(patternSource(true)), ShouldBeTrue)
			sink.Play()
			sink.Play()
			So(device.count(), ShouldEqual, 0)
			So(sink.Position(), ShouldEqual, 0.0)
		})

		Convey("Close should refuse further loads", func() {
			So(sink.Close(), ShouldBeNil)
			So(sink.Load(patternSource(true)), ShouldBeFalse)
		})
	})

	Convey("A sink on the null device should stay silent", t, func() {
		sink := NewSink(nil)
		So(sink.Load(patternSource(true)), ShouldBeTrue)
		sink.Play()
		So(sink.Position(), ShouldEqual, 0.0)
	})
}
