package clock

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/derekprior/seasonsim/internal/logging"
	"github.com/derekprior/seasonsim/internal/state"
)

// Driver runs a clock against a private copy of the published state until
// the clock asks to stop, then publishes the copy back to the store.
//
// A Driver is not safe for concurrent Tick or Run calls. Stop may be called
// from any goroutine.
type Driver struct {
	store    *state.Store
	clock    *Clock
	interval time.Duration
	until    time.Time
	logger   *slog.Logger

	working       *state.State
	stopRequested atomic.Bool
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithInterval sets the wall-clock delay between ticks in Run. Zero runs
// ticks back to back.
func WithInterval(d time.Duration) DriverOption {
	return func(dr *Driver) { dr.interval = d }
}

// WithUntil stops the run once the simulated date reaches t.
func WithUntil(t time.Time) DriverOption {
	return func(dr *Driver) { dr.until = t }
}

// WithDriverLogger sets the driver's logger. A nil logger keeps the
// discarding default.
func WithDriverLogger(logger *slog.Logger) DriverOption {
	return func(dr *Driver) {
		if logger != nil {
			dr.logger = logger
		}
	}
}

// NewDriver returns a driver that advances c against a copy of the state
// published in store.
func NewDriver(store *state.Store, c *Clock, opts ...DriverOption) *Driver {
	d := &Driver{
		store:  store,
		clock:  c,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "driver")
	return d
}

// Stop asks the driver to publish its working copy and end the run at the
// next tick.
func (d *Driver) Stop() {
	d.stopRequested.Store(true)
}

// Tick advances the clock once and reports whether the run is done. When it
// is, the working copy has been published. On error the working copy is
// discarded and the store keeps its previous snapshot.
func (d *Driver) Tick(ctx context.Context) (bool, error) {
	if d.working == nil {
		st, err := d.store.Checkout()
		if err != nil {
			return false, err
		}
		d.working = st
	}

	if d.stopRequested.Swap(false) {
		d.publish(ctx, "stop requested")
		return true, nil
	}
	if !d.until.IsZero() && !d.working.Date.Before(d.until) {
		d.publish(ctx, "reached end date")
		return true, nil
	}

	stop, err := d.clock.Process(ctx, d.working)
	if err != nil {
		d.working = nil
		return false, err
	}
	if stop {
		d.publish(ctx, "clock stopped")
		return true, nil
	}
	return false, nil
}

func (d *Driver) publish(ctx context.Context, reason string) {
	st := d.working
	d.working = nil
	d.store.Publish(st)
	d.logger.DebugContext(ctx, "simulation stopped",
		"reason", reason,
		"date", st.Date.Format(time.DateTime),
		"queued", st.Queue.Len(),
	)
}

// Run ticks until the run is done, a tick fails or ctx is cancelled. A
// cancelled run keeps its working copy so a later Run resumes it.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.DebugContext(ctx, "simulation started", "interval", d.interval)

	if d.interval <= 0 {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			done, err := d.Tick(ctx)
			if err != nil || done {
				return err
			}
		}
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.DebugContext(ctx, "simulation paused (context cancelled)")
			return ctx.Err()
		case <-ticker.C:
			done, err := d.Tick(ctx)
			if err != nil || done {
				return err
			}
		}
	}
}
