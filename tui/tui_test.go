package tui

import (
	"testing"

	"github.com/flicker-player/flicker/display"
	"github.com/flicker-player/flicker/media"
	"github.com/flicker-player/flicker/player"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestBubble(t *testing.T) {
	Convey("Given a bubble driving a paused pattern", t, func() {
		screen := display.NewLatest()
		opts := player.DefaultOptions()
		opts.Display = screen
		p := player.New(media.Mux{}, opts)
		Reset(func() { _ = p.Close() })

		b := newBubble(p, screen, &Options{Location: "pattern:?duration=5", Paused: true})
		b.setState(loadingState)
		b.resize(120, 40)
		So(b.title, ShouldEqual, "pattern:?duration=5")

		msg := b.load()()
		So(msg, ShouldResemble, loadedMsg{})
		b.Update(msg)
		So(b.state, ShouldEqual, playerState)
		So(b.duration, ShouldEqual, 5.0)

		Convey("Space should toggle playback", func() {
			b.Update(keyPress(' '))
			So(p.IsPlaying(), ShouldBeTrue)

			b.Update(keyPress(' '))
			So(p.IsPaused(), ShouldBeTrue)
		})

		Convey("Seek keys should move by the seek step", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyRight})
			So(p.Position(), ShouldEqual, 5.0)

			b.Update(tea.KeyMsg{Type: tea.KeyLeft})
			So(p.Position(), ShouldEqual, 0.0)
		})

		Convey("Mute should toggle and notify", func() {
			_, cmd := b.Update(keyPress('m'))
			So(p.Params().Muted, ShouldBeTrue)
			So(cmd, ShouldNotBeNil)

			b.Update(cmd())
			So(b.View(), ShouldContainSubstring, "muted")
		})

		Convey("Speed keys should change the speed", func() {
			_, cmd := b.Update(keyPress(']'))
			So(p.Params().Speed, ShouldEqual, 1.25)

			b.Update(cmd())
			So(b.notifier.Current(), ShouldEqual, "speed x1.25")
		})

		Convey("Events should update the view state", func() {
			b.Update(eventsMsg{
				{Kind: player.TimeUpdate, Position: 2.5},
				{Kind: player.Ended, Position: 4.9},
			})
			So(b.position, ShouldEqual, 4.9)
			So(b.ended, ShouldBeTrue)
			So(b.View(), ShouldContainSubstring, "ended")
		})
	})

	Convey("A failed load should end in the error state", t, func() {
		p := player.New(media.Mux{}, player.DefaultOptions())
		b := newBubble(p, display.NewLatest(), &Options{Location: "/no/such/file.mkv"})

		b.Update(b.load()())
		So(b.state, ShouldEqual, errorState)
		So(b.lastError, ShouldNotBeNil)
	})
}
