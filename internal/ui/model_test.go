package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given an empty notifier", t, func() {
		var m Model

		So(m.View("status"), ShouldEqual, "status")

		Convey("When a notification arrives", func() {
			cmd := m.Update(Notify("volume 80%")())

			Convey("Then it should be shown and scheduled for clearing", func() {
				So(m.Current(), ShouldEqual, "volume 80%")
				So(m.View("status"), ShouldContainSubstring, "volume 80%")
				So(cmd, ShouldNotBeNil)
			})

			Convey("And its clear tick should hide it", func() {
				m.Update(ClearNotificationMsg{id: m.id})
				So(m.Current(), ShouldBeEmpty)
			})

			Convey("And a stale clear tick should not hide a newer one", func() {
				stale := m.id
				m.Update(NotificationMsg{Text: "muted"})
				m.Update(ClearNotificationMsg{id: stale})
				So(m.Current(), ShouldEqual, "muted")
			})
		})
	})
}
