package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/derekprior/seasonsim/internal/strategy"
)

// matchIDSpace namespaces the name-based UUIDs used as match identifiers.
var matchIDSpace = uuid.MustParse("6f1c2a8e-3b7d-4e59-9a0c-5d2e8b4f7a13")

// Match is one fixture of a round.
type Match struct {
	ID    string
	Home  string
	Away  string
	Label string
}

// Round is the set of fixtures played on one date.
type Round struct {
	Date    time.Time
	Matches []Match
}

// Schedule is a season's fixture list.
type Schedule struct {
	Rounds []Round
}

// TeamMetrics holds per-team schedule statistics.
type TeamMetrics struct {
	Games int
	Home  int
	Away  int
}

type options struct {
	strategy     strategy.Strategy
	intervalDays int
	namespace    string
}

// Option configures Build.
type Option func(*options)

// WithStrategy selects how fixtures are generated. The default is a double
// round robin.
func WithStrategy(s strategy.Strategy) Option {
	return func(o *options) {
		if s != nil {
			o.strategy = s
		}
	}
}

// WithIntervalDays sets the number of days between rounds.
func WithIntervalDays(days int) Option {
	return func(o *options) {
		if days > 0 {
			o.intervalDays = days
		}
	}
}

// WithNamespace mixes a name (usually the season key) into every match ID so
// IDs stay unique across seasons.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// Build creates a dated schedule for the given teams. Round k is played
// start + k*interval days. Teams must be an even-length list of distinct names.
func Build(teams []string, start time.Time, opts ...Option) *Schedule {
	o := options{
		strategy:     &strategy.DoubleRoundRobin{},
		intervalDays: 7,
	}
	for _, opt := range opts {
		opt(&o)
	}

	games := o.strategy.GenerateRounds(teams)
	s := &Schedule{Rounds: make([]Round, len(games))}
	for ri, round := range games {
		matches := make([]Match, len(round))
		for gi, g := range round {
			matches[gi] = Match{
				ID:    matchID(o.namespace, ri, gi),
				Home:  g.Home,
				Away:  g.Away,
				Label: g.Label,
			}
		}
		s.Rounds[ri] = Round{
			Date:    start.AddDate(0, 0, o.intervalDays*ri),
			Matches: matches,
		}
	}
	return s
}

func matchID(namespace string, round, pairing int) string {
	name := fmt.Sprintf("%s/%d/%d", namespace, round, pairing)
	return uuid.NewSHA1(matchIDSpace, []byte(name)).String()
}

// Round returns round k, or false if the schedule has no such round.
func (s *Schedule) Round(k int) (Round, bool) {
	if s == nil || k < 0 || k >= len(s.Rounds) {
		return Round{}, false
	}
	return s.Rounds[k], true
}

// Matches returns every match in round order.
func (s *Schedule) Matches() []Match {
	var all []Match
	for _, r := range s.Rounds {
		all = append(all, r.Matches...)
	}
	return all
}

// Metrics returns per-team statistics and warnings for lopsided home/away
// splits.
func (s *Schedule) Metrics(teams []string) ([]string, map[string]*TeamMetrics) {
	var warnings []string
	metrics := make(map[string]*TeamMetrics)
	for _, team := range teams {
		metrics[team] = &TeamMetrics{}
	}

	for _, m := range s.Matches() {
		if tm, ok := metrics[m.Home]; ok {
			tm.Games++
			tm.Home++
		}
		if tm, ok := metrics[m.Away]; ok {
			tm.Games++
			tm.Away++
		}
	}

	for _, team := range teams {
		m := metrics[team]
		diff := m.Home - m.Away
		if diff > 1 || diff < -1 {
			warnings = append(warnings, fmt.Sprintf(
				"%s home/away imbalance: %d home, %d away", team, m.Home, m.Away))
		}
	}

	return warnings, metrics
}
