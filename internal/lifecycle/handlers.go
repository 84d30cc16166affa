package lifecycle

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/derekprior/seasonsim/internal/event"
	"github.com/derekprior/seasonsim/internal/league"
	"github.com/derekprior/seasonsim/internal/schedule"
	"github.com/derekprior/seasonsim/internal/state"
)

func (l *Lifecycle) simRound(ctx context.Context, st *state.State, ev event.Event) (bool, error) {
	k, ok := ev.Round()
	if !ok {
		l.logger.DebugContext(ctx, "simRound without a round number", "date", ev.Date)
		return false, nil
	}
	round, ok := st.Current.Round(k)
	if !ok {
		l.logger.DebugContext(ctx, "skipping missing round", "round", k)
		return false, nil
	}

	strength := make(map[string]float64)
	teamStrength := func(team string) float64 {
		if s, ok := strength[team]; ok {
			return s
		}
		s := league.TeamStrength(st.Roster(team))
		strength[team] = s
		return s
	}

	played := 0
	for _, id := range round.MatchIDs {
		m, ok := st.Matches[id]
		if !ok || m.Result != nil {
			continue
		}
		res := l.simulator.SimulateMatch(league.MatchInput{
			Match:        m,
			HomeStrength: teamStrength(m.Home),
			AwayStrength: teamStrength(m.Away),
		})
		m.Result = &res
		st.Matches[id] = m
		played++
		l.metrics.MatchSimulated()
	}
	l.logger.DebugContext(ctx, "round simulated", "season", st.Current.Key, "round", k, "matches", played)

	if next, ok := st.Current.Round(k + 1); ok {
		st.Queue.Enqueue(event.NewSimRound(next.Date, k+1))
	}
	return false, nil
}

func (l *Lifecycle) skillUpdate(ctx context.Context, st *state.State, ev event.Event) (bool, error) {
	for _, id := range st.PlayerIDs() {
		st.Players[id] = l.developer.Develop(st.Players[id], st.Date)
	}
	next := nextSkillUpdate(ev.Date, l.calendar.SkillUpdateDay)
	st.Queue.Enqueue(event.Event{Date: next, Type: event.SkillUpdate})
	l.logger.DebugContext(ctx, "players developed", "players", len(st.Players), "next", next)
	return true, nil
}

func (l *Lifecycle) seasonEnd(ctx context.Context, st *state.State, ev event.Event) (bool, error) {
	if key, ok := st.ArchiveCurrent(); ok {
		l.logger.InfoContext(ctx, "season ended", "season", key)
	}
	st.Queue.Enqueue(event.Event{
		Date: l.calendar.SeasonStart.In(ev.Date.Year()),
		Type: event.SeasonStart,
	})
	st.Queue.Enqueue(event.Event{
		Date: ev.Date.AddDate(0, 0, l.calendar.ContractDelayDays),
		Type: event.UpdateContract,
	})
	return true, nil
}

func (l *Lifecycle) seasonStart(ctx context.Context, st *state.State, ev event.Event) (bool, error) {
	year := st.Date.Year()
	cutoff := l.calendar.ScheduleCutoff.In(year)
	if !st.Date.Before(cutoff) {
		return false, fmt.Errorf("%w: %s is not before %s",
			ErrPastCutoff, st.Date.Format(time.DateTime), cutoff.Format(time.DateOnly))
	}

	key := schedule.SeasonKey(year)
	first := schedule.FirstWeekdayOnOrAfter(cutoff, l.calendar.MatchDay.Weekday)
	sched := schedule.Build(st.TeamIDs(), first,
		schedule.WithStrategy(l.strategy),
		schedule.WithIntervalDays(l.calendar.RoundIntervalDays),
		schedule.WithNamespace(key),
	)

	season := &state.Season{Key: key, StartYear: year, Rounds: make([]state.RoundRecord, len(sched.Rounds))}
	for i, r := range sched.Rounds {
		ids := make([]string, len(r.Matches))
		for j, m := range r.Matches {
			st.Matches[m.ID] = state.Match{ID: m.ID, Label: m.Label, Home: m.Home, Away: m.Away, Date: r.Date}
			ids[j] = m.ID
		}
		season.Rounds[i] = state.RoundRecord{Date: r.Date, MatchIDs: ids}
	}
	st.Current = season
	l.metrics.SeasonStarted()

	if r, ok := season.Round(0); ok {
		st.Queue.Enqueue(event.NewSimRound(r.Date, 0))
	}
	st.Queue.Enqueue(event.Event{Date: l.calendar.SeasonEnd.In(year + 1), Type: event.SeasonEnd})

	l.logger.InfoContext(ctx, "season started", "season", key, "rounds", len(season.Rounds), "first_round", first.Format(time.DateOnly))
	return true, nil
}

func (l *Lifecycle) updateContract(ctx context.Context, st *state.State, ev event.Event) (bool, error) {
	ids := slices.Sorted(maps.Keys(st.Contracts))
	for _, id := range ids {
		c := st.Contracts[id]
		c.Years--
		st.Contracts[id] = c
	}

	renewed := 0
	for _, team := range st.Teams {
		for _, p := range st.Roster(team.ID) {
			c, ok := st.Contracts[p.ID]
			if !ok || c.Years > 0 {
				continue
			}
			if nc, ok := l.contracts.Renew(team, p, c); ok && nc.Years > 0 {
				st.Contracts[p.ID] = nc
				renewed++
			}
		}
	}

	released := 0
	for _, id := range ids {
		if st.Contracts[id].Years > 0 {
			continue
		}
		delete(st.Contracts, id)
		if p, ok := st.Players[id]; ok {
			p.TeamID = ""
			st.Players[id] = p
		}
		released++
	}

	l.logger.InfoContext(ctx, "contracts updated", "renewed", renewed, "released", released)
	return false, nil
}

func nextSkillUpdate(from time.Time, day int) time.Time {
	return schedule.DayOfNextMonth(from, day)
}
