package clock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/derekprior/seasonsim/internal/clock"
	"github.com/derekprior/seasonsim/internal/event"
	"github.com/derekprior/seasonsim/internal/state"
)

// stopOn stops after handling an event of the given type and fails on
// events of type fail.
type stopOn struct {
	stop event.Type
	fail event.Type
}

func (s stopOn) Handle(_ context.Context, st *state.State, ev event.Event) (bool, error) {
	if ev.Type == s.fail {
		return false, errors.New("handler failed")
	}
	st.Teams = append(st.Teams, state.Team{ID: string(ev.Type)})
	return ev.Type == s.stop, nil
}

func newStore() (*state.Store, *state.State) {
	st := state.New(start)
	st.Queue.Enqueue(event.Event{Date: start, Type: event.SimRound})
	st.Queue.Enqueue(event.Event{Date: start.Add(12 * time.Hour), Type: event.SkillUpdate})
	st.Queue.Enqueue(event.Event{Date: start.Add(36 * time.Hour), Type: event.SeasonEnd})
	return state.NewStore(st), st
}

func TestDriverTick(t *testing.T) {
	ctx := context.Background()

	Convey("Given a published state and a driver", t, func() {
		store, initial := newStore()
		d := clock.NewDriver(store, clock.New(stopOn{stop: event.SkillUpdate}))

		Convey("Ticks that do not stop leave the snapshot alone", func() {
			done, err := d.Tick(ctx)
			So(err, ShouldBeNil)
			So(done, ShouldBeFalse)

			snap, _ := store.Snapshot()
			So(snap, ShouldPointTo, initial)
			So(snap.Teams, ShouldBeEmpty)
			So(snap.Queue.Len(), ShouldEqual, 3)
		})

		Convey("The stopping tick publishes the working copy", func() {
			d.Tick(ctx)
			done, err := d.Tick(ctx)
			So(err, ShouldBeNil)
			So(done, ShouldBeTrue)

			snap, _ := store.Snapshot()
			So(snap, ShouldNotPointTo, initial)
			So(snap.Teams, ShouldHaveLength, 2)
			So(snap.Date, ShouldEqual, start.Add(12*time.Hour))
			So(snap.Queue.Len(), ShouldEqual, 1)

			Convey("And the published snapshot is not touched by later ticks", func() {
				d.Tick(ctx)
				So(snap.Teams, ShouldHaveLength, 2)
			})
		})

		Convey("A requested stop publishes on the next tick", func() {
			d.Tick(ctx)
			d.Stop()
			done, err := d.Tick(ctx)
			So(err, ShouldBeNil)
			So(done, ShouldBeTrue)

			snap, _ := store.Snapshot()
			So(snap.Teams, ShouldHaveLength, 1)
			So(snap.Queue.Len(), ShouldEqual, 2)
		})

		Convey("The original state is never modified", func() {
			d.Tick(ctx)
			d.Tick(ctx)
			So(initial.Teams, ShouldBeEmpty)
			So(initial.Date, ShouldEqual, start)
			So(initial.Queue.Len(), ShouldEqual, 3)
		})
	})

	Convey("Given a handler that fails", t, func() {
		store, initial := newStore()
		d := clock.NewDriver(store, clock.New(stopOn{stop: event.SeasonEnd, fail: event.SkillUpdate}))

		Convey("The failing run leaves the store untouched", func() {
			_, err := d.Tick(ctx)
			So(err, ShouldBeNil)
			_, err = d.Tick(ctx)
			So(err, ShouldNotBeNil)

			snap, _ := store.Snapshot()
			So(snap, ShouldPointTo, initial)
			So(snap.Queue.Len(), ShouldEqual, 3)
		})
	})

	Convey("Given an empty store", t, func() {
		d := clock.NewDriver(state.NewStore(nil), clock.New(stopOn{}))

		Convey("Tick reports the missing snapshot", func() {
			_, err := d.Tick(ctx)
			So(errors.Is(err, state.ErrNoSnapshot), ShouldBeTrue)
		})
	})
}

func TestDriverRun(t *testing.T) {
	Convey("Given a driver without a tick interval", t, func() {
		store, _ := newStore()
		d := clock.NewDriver(store, clock.New(stopOn{stop: event.SeasonEnd}))

		Convey("Run returns once the clock stops", func() {
			So(d.Run(context.Background()), ShouldBeNil)
			snap, _ := store.Snapshot()
			So(snap.Teams, ShouldHaveLength, 3)
			So(snap.Date, ShouldEqual, start.Add(36*time.Hour))
		})
	})

	Convey("Given an end date", t, func() {
		store, _ := newStore()
		d := clock.NewDriver(store, clock.New(stopOn{}), clock.WithUntil(start.Add(12*time.Hour)))

		Convey("Run stops when the date is reached", func() {
			So(d.Run(context.Background()), ShouldBeNil)
			snap, _ := store.Snapshot()
			So(snap.Date, ShouldEqual, start.Add(12*time.Hour))
			So(snap.Queue.Len(), ShouldEqual, 1)
		})
	})

	Convey("Given a tick interval", t, func() {
		store, _ := newStore()
		d := clock.NewDriver(store, clock.New(stopOn{stop: event.SeasonEnd}), clock.WithInterval(time.Millisecond))

		Convey("Run ticks on the interval until done", func() {
			So(d.Run(context.Background()), ShouldBeNil)
			snap, _ := store.Snapshot()
			So(snap.Teams, ShouldHaveLength, 3)
		})

		Convey("A cancelled run publishes nothing", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := d.Run(ctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			snap, _ := store.Snapshot()
			So(snap.Teams, ShouldBeEmpty)
		})
	})
}
