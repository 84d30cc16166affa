package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/derekprior/seasonsim/internal/strategy"
)

func testTeams(n int) []string {
	teams := make([]string, n)
	for i := range teams {
		teams[i] = fmt.Sprintf("Team %c", 'A'+i)
	}
	return teams
}

func TestBuild(t *testing.T) {
	teams := testTeams(8)
	start := mustDate("2026-09-06")
	s := Build(teams, start, WithNamespace("2026-2027"))

	t.Run("double round robin by default", func(t *testing.T) {
		if len(s.Rounds) != 14 {
			t.Errorf("rounds = %d, want 14", len(s.Rounds))
		}
	})

	t.Run("rounds are a week apart", func(t *testing.T) {
		for k, r := range s.Rounds {
			want := start.AddDate(0, 0, 7*k)
			if !r.Date.Equal(want) {
				t.Errorf("round %d date = %s, want %s", k, r.Date.Format("2006-01-02"), want.Format("2006-01-02"))
			}
		}
	})

	t.Run("every team plays once per round", func(t *testing.T) {
		for k, r := range s.Rounds {
			seen := make(map[string]bool)
			for _, m := range r.Matches {
				if seen[m.Home] || seen[m.Away] {
					t.Errorf("round %d has a team playing twice", k)
				}
				seen[m.Home] = true
				seen[m.Away] = true
			}
			if len(seen) != len(teams) {
				t.Errorf("round %d covers %d teams, want %d", k, len(seen), len(teams))
			}
		}
	})

	t.Run("match IDs are unique across the schedule", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, m := range s.Matches() {
			if m.ID == "" {
				t.Error("match has empty ID")
			}
			if seen[m.ID] {
				t.Errorf("duplicate match ID %s", m.ID)
			}
			seen[m.ID] = true
		}
		if len(seen) != 56 {
			t.Errorf("match IDs = %d, want 56", len(seen))
		}
	})

	t.Run("match IDs are deterministic", func(t *testing.T) {
		again := Build(teams, start, WithNamespace("2026-2027"))
		for k := range s.Rounds {
			for i := range s.Rounds[k].Matches {
				if s.Rounds[k].Matches[i].ID != again.Rounds[k].Matches[i].ID {
					t.Fatalf("round %d match %d ID changed between builds", k, i)
				}
			}
		}
	})

	t.Run("namespaces keep seasons apart", func(t *testing.T) {
		next := Build(teams, start.AddDate(1, 0, 0), WithNamespace("2027-2028"))
		ids := make(map[string]bool)
		for _, m := range s.Matches() {
			ids[m.ID] = true
		}
		for _, m := range next.Matches() {
			if ids[m.ID] {
				t.Errorf("match ID %s reused across seasons", m.ID)
			}
		}
	})
}

func TestBuildOptions(t *testing.T) {
	teams := testTeams(6)
	start := mustDate("2026-09-05")
	s := Build(teams, start,
		WithStrategy(&strategy.RoundRobin{}),
		WithIntervalDays(3),
	)

	if len(s.Rounds) != 5 {
		t.Fatalf("rounds = %d, want 5", len(s.Rounds))
	}
	last := s.Rounds[4].Date
	if want := start.AddDate(0, 0, 12); !last.Equal(want) {
		t.Errorf("last round date = %s, want %s", last.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestRoundLookup(t *testing.T) {
	s := Build(testTeams(4), mustDate("2026-09-06"))

	if _, ok := s.Round(0); !ok {
		t.Error("round 0 should exist")
	}
	if r, ok := s.Round(5); !ok || len(r.Matches) != 2 {
		t.Errorf("round 5 = %v, %v; want 2 matches", r, ok)
	}
	for _, k := range []int{-1, 6, 100} {
		if _, ok := s.Round(k); ok {
			t.Errorf("round %d should not exist", k)
		}
	}

	var missing *Schedule
	if _, ok := missing.Round(0); ok {
		t.Error("nil schedule should have no rounds")
	}
}

func TestMetrics(t *testing.T) {
	teams := testTeams(8)

	t.Run("double round robin is balanced", func(t *testing.T) {
		s := Build(teams, mustDate("2026-09-06"))
		warnings, metrics := s.Metrics(teams)
		if len(warnings) != 0 {
			t.Errorf("warnings = %v, want none", warnings)
		}
		for _, team := range teams {
			m := metrics[team]
			if m.Games != 14 || m.Home != 7 || m.Away != 7 {
				t.Errorf("%s metrics = %+v, want 14 games 7/7", team, *m)
			}
		}
	})

	t.Run("single round robin reports the fixed team", func(t *testing.T) {
		s := Build(teams, mustDate("2026-09-06"), WithStrategy(&strategy.RoundRobin{}))
		warnings, metrics := s.Metrics(teams)
		if metrics["Team A"].Home != 7 {
			t.Errorf("Team A home = %d, want 7", metrics["Team A"].Home)
		}
		if len(warnings) == 0 {
			t.Error("expected a home/away imbalance warning")
		}
	})
}

func TestBuildKeepsTimeOfDay(t *testing.T) {
	start := time.Date(2026, 9, 6, 15, 0, 0, 0, time.UTC)
	s := Build(testTeams(4), start)
	if s.Rounds[1].Date.Hour() != 15 {
		t.Errorf("round 1 hour = %d, want 15", s.Rounds[1].Date.Hour())
	}
}
