// Package lifecycle reacts to season events: it simulates rounds, develops
// players, rolls seasons over and maintains contracts, queueing whatever
// comes next.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"

	"github.com/derekprior/seasonsim/internal/config"
	"github.com/derekprior/seasonsim/internal/event"
	"github.com/derekprior/seasonsim/internal/league"
	"github.com/derekprior/seasonsim/internal/logging"
	"github.com/derekprior/seasonsim/internal/metrics"
	"github.com/derekprior/seasonsim/internal/state"
	"github.com/derekprior/seasonsim/internal/strategy"
)

// ErrPastCutoff is returned when a season is started on or after the
// schedule cutoff of its year.
var ErrPastCutoff = errors.New("season start is past the schedule cutoff")

// Lifecycle handles season events.
type Lifecycle struct {
	calendar  config.Calendar
	strategy  strategy.Strategy
	simulator league.Simulator
	developer league.Developer
	contracts league.Negotiator
	logger    *slog.Logger
	metrics   *metrics.Recorder
}

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithSimulator replaces the seed-0 match simulator.
func WithSimulator(s league.Simulator) Option {
	return func(l *Lifecycle) { l.simulator = s }
}

// WithDeveloper replaces the seed-0 player developer.
func WithDeveloper(d league.Developer) Option {
	return func(l *Lifecycle) { l.developer = d }
}

// WithNegotiator replaces the seed-0 contract negotiator.
func WithNegotiator(n league.Negotiator) Option {
	return func(l *Lifecycle) { l.contracts = n }
}

// WithLogger sets the logger. A nil logger keeps the discarding default.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lifecycle) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMetrics records simulated matches and started seasons on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(l *Lifecycle) { l.metrics = r }
}

// New returns a lifecycle for the given calendar and fixture strategy.
// Collaborators not supplied as options default to seed-0 implementations.
func New(cal config.Calendar, strat strategy.Strategy, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		calendar:  cal,
		strategy:  strat,
		simulator: league.NewPoissonSimulator(0),
		developer: league.NewAgeCurve(0),
		contracts: league.NewSkillThreshold(0, 50, 1, 5),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With("component", "lifecycle")
	return l
}

// FromConfig builds a lifecycle with collaborators seeded from the
// simulation seed.
func FromConfig(cfg *config.Config, logger *slog.Logger, rec *metrics.Recorder) (*Lifecycle, error) {
	strat, err := strategy.Get(cfg.Schedule.Strategy)
	if err != nil {
		return nil, err
	}
	seed := cfg.Simulation.Seed
	return New(cfg.Calendar, strat,
		WithSimulator(league.NewPoissonSimulator(seed)),
		WithDeveloper(league.NewAgeCurve(seed+1)),
		WithNegotiator(league.NewSkillThreshold(seed+2,
			cfg.Contracts.RenewMinSkill, cfg.Contracts.MinYears, cfg.Contracts.MaxYears)),
		WithLogger(logger),
		WithMetrics(rec),
	), nil
}

// Handle applies ev to st and reports whether the host should stop and
// refresh before simulating further.
func (l *Lifecycle) Handle(ctx context.Context, st *state.State, ev event.Event) (bool, error) {
	switch ev.Type {
	case event.SimRound:
		return l.simRound(ctx, st, ev)
	case event.SkillUpdate:
		return l.skillUpdate(ctx, st, ev)
	case event.SeasonEnd:
		return l.seasonEnd(ctx, st, ev)
	case event.SeasonStart:
		return l.seasonStart(ctx, st, ev)
	case event.UpdateContract:
		return l.updateContract(ctx, st, ev)
	default:
		l.logger.WarnContext(ctx, "ignoring unknown event", "type", ev.Type, "date", ev.Date)
		return false, nil
	}
}

// Bootstrap queues the first season start and skill update for a fresh
// league. A league created after this year's cutoff starts next year.
func (l *Lifecycle) Bootstrap(st *state.State) {
	year := st.Date.Year()
	if !st.Date.Before(l.calendar.ScheduleCutoff.In(year)) {
		year++
	}
	st.Queue.Enqueue(event.Event{Date: l.calendar.SeasonStart.In(year), Type: event.SeasonStart})
	st.Queue.Enqueue(event.Event{
		Date: nextSkillUpdate(st.Date, l.calendar.SkillUpdateDay),
		Type: event.SkillUpdate,
	})
}
