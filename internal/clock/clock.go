// Package clock advances simulated time and dispatches due events.
package clock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/derekprior/seasonsim/internal/event"
	"github.com/derekprior/seasonsim/internal/logging"
	"github.com/derekprior/seasonsim/internal/metrics"
	"github.com/derekprior/seasonsim/internal/state"
)

// Dispatcher applies a due event to the state and reports whether the host
// should stop. *lifecycle.Lifecycle implements it.
type Dispatcher interface {
	Handle(ctx context.Context, st *state.State, ev event.Event) (bool, error)
}

// Clock steps the current date forward in fixed increments.
type Clock struct {
	dispatcher Dispatcher
	step       time.Duration
	steps      int
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// Option configures a Clock.
type Option func(*Clock)

// WithStep sets the increment the date advances by. Defaults to 12 hours.
func WithStep(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.step = d
		}
	}
}

// WithSteps sets how many increments one Process call may advance.
// Defaults to 2.
func WithSteps(n int) Option {
	return func(c *Clock) {
		if n > 0 {
			c.steps = n
		}
	}
}

// WithLogger sets the logger. A nil logger keeps the discarding default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Clock) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records steps, dispatched events and queue depth on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Clock) { c.metrics = r }
}

// New returns a clock dispatching through d.
func New(d Dispatcher, opts ...Option) *Clock {
	c := &Clock{
		dispatcher: d,
		step:       12 * time.Hour,
		steps:      2,
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "clock")
	return c
}

// Process runs one slice of simulated time against st.
//
// At each step the earliest queued event is dispatched if it is due, and
// the handler's stop signal is returned. Otherwise the date advances by one
// increment. At most one event is dispatched per call. Process reports stop
// when the queue is empty.
func (c *Clock) Process(ctx context.Context, st *state.State) (bool, error) {
	if st.Queue.Len() == 0 {
		return true, nil
	}

	for range c.steps {
		if ev, ok := st.Queue.DequeueDue(st.Date); ok {
			c.logger.DebugContext(ctx, "dispatching event", "event", ev.String())
			c.metrics.EventDispatched(string(ev.Type))
			stop, err := c.dispatcher.Handle(ctx, st, ev)
			c.metrics.QueueDepth(st.Queue.Len())
			if err != nil {
				return false, fmt.Errorf("dispatching %s: %w", ev, err)
			}
			return stop, nil
		}
		st.Date = st.Date.Add(c.step)
		c.metrics.ClockStep()
	}

	c.metrics.QueueDepth(st.Queue.Len())
	return st.Queue.Len() == 0, nil
}
