package league

import (
	"sort"

	"github.com/derekprior/seasonsim/internal/state"
)

// Standing is one row of a league table.
type Standing struct {
	Team                   string
	Played                 int
	Wins, Draws, Losses    int
	GoalsFor, GoalsAgainst int
	Points                 int
}

func (s Standing) GoalDiff() int {
	return s.GoalsFor - s.GoalsAgainst
}

// Standings builds the table for a season from the results recorded so far.
// Teams are ordered by points, goal difference, goals scored, then name.
func Standings(st *state.State, season *state.Season) []Standing {
	rows := make(map[string]*Standing)
	for _, id := range st.TeamIDs() {
		rows[id] = &Standing{Team: id}
	}
	row := func(team string) *Standing {
		r, ok := rows[team]
		if !ok {
			r = &Standing{Team: team}
			rows[team] = r
		}
		return r
	}

	if season != nil {
		for _, round := range season.Rounds {
			for _, id := range round.MatchIDs {
				m, ok := st.Matches[id]
				if !ok || m.Result == nil {
					continue
				}
				home, away := row(m.Home), row(m.Away)
				home.record(m.Result.Home, m.Result.Away)
				away.record(m.Result.Away, m.Result.Home)
			}
		}
	}

	table := make([]Standing, 0, len(rows))
	for _, r := range rows {
		table = append(table, *r)
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff() != b.GoalDiff() {
			return a.GoalDiff() > b.GoalDiff()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	return table
}

func (s *Standing) record(scored, conceded int) {
	s.Played++
	s.GoalsFor += scored
	s.GoalsAgainst += conceded
	switch {
	case scored > conceded:
		s.Wins++
		s.Points += 3
	case scored == conceded:
		s.Draws++
		s.Points++
	default:
		s.Losses++
	}
}
