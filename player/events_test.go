package player

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQueue(t *testing.T) {
	Convey("Given an event queue", t, func() {
		q := NewQueue()

		Convey("Consecutive time updates should coalesce to the latest", func() {
			q.push(Event{Kind: TimeUpdate, Position: 1})
			q.push(Event{Kind: TimeUpdate, Position: 2})
			q.push(Event{Kind: StateChanged, State: Paused})
			q.push(Event{Kind: TimeUpdate, Position: 3})

			events := q.Poll()
			So(len(events), ShouldEqual, 3)
			So(events[0].Position, ShouldEqual, 2.0)
			So(events[1].Kind, ShouldEqual, StateChanged)
			So(events[2].Position, ShouldEqual, 3.0)
			So(q.Poll(), ShouldBeEmpty)
		})

		Convey("Next should wait for a push", func() {
			go func() {
				time.Sleep(20 * time.Millisecond)
				q.push(Event{Kind: Ended})
			}()

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			e, err := q.Next(ctx)
			So(err, ShouldBeNil)
			So(e.Kind, ShouldEqual, Ended)
		})

		Convey("Next should honor cancellation", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			_, err := q.Next(ctx)
			So(err, ShouldEqual, context.DeadlineExceeded)
		})

		Convey("Notify should signal pending events", func() {
			q.push(Event{Kind: Loaded})
			q.push(Event{Kind: DurationChanged})

			notified := false
			select {
			case <-q.Notify():
				notified = true
			default:
			}
			So(notified, ShouldBeTrue)
			So(len(q.Poll()), ShouldEqual, 2)
		})
	})
}
