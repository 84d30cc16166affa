package strategy

import (
	"fmt"
	"reflect"
	"testing"
)

func eightTeams() []string {
	return []string{"a", "b", "c", "d", "e", "f", "g", "h"}
}

func namedTeams(n int) []string {
	teams := make([]string, n)
	for i := range teams {
		teams[i] = fmt.Sprintf("Team %d", i+1)
	}
	return teams
}

func TestRotate(t *testing.T) {
	got := Rotate(eightTeams())
	want := []string{"a", "h", "b", "c", "d", "e", "f", "g"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rotate() = %v, want %v", got, want)
	}

	t.Run("input is not modified", func(t *testing.T) {
		teams := eightTeams()
		Rotate(teams)
		if !reflect.DeepEqual(teams, eightTeams()) {
			t.Errorf("input changed to %v", teams)
		}
	})

	t.Run("n rotations return to the start", func(t *testing.T) {
		teams := eightTeams()
		order := teams
		for range len(teams) - 1 {
			order = Rotate(order)
		}
		if !reflect.DeepEqual(order, teams) {
			t.Errorf("after %d rotations got %v", len(teams)-1, order)
		}
	})
}

func TestCreateRound(t *testing.T) {
	got := CreateRound(eightTeams())
	want := []Pair{{"a", "h"}, {"b", "g"}, {"c", "f"}, {"d", "e"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CreateRound() = %v, want %v", got, want)
	}
}

func TestCreateTournamentRounds(t *testing.T) {
	for _, n := range []int{2, 4, 6, 8, 10, 20} {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			teams := namedTeams(n)
			rounds := CreateTournamentRounds(teams)

			if len(rounds) != n-1 {
				t.Fatalf("rounds = %d, want %d", len(rounds), n-1)
			}

			type pair struct{ a, b string }
			seen := make(map[pair]int)
			for ri, round := range rounds {
				inRound := make(map[string]bool)
				for _, p := range round {
					inRound[p.Home] = true
					inRound[p.Away] = true
					a, b := p.Home, p.Away
					if a > b {
						a, b = b, a
					}
					seen[pair{a, b}]++
				}
				if len(inRound) != n {
					t.Errorf("round %d covers %d teams, want %d", ri, len(inRound), n)
				}
			}

			if len(seen) != n*(n-1)/2 {
				t.Errorf("distinct pairings = %d, want %d", len(seen), n*(n-1)/2)
			}
			for p, count := range seen {
				if count != 1 {
					t.Errorf("%s vs %s paired %d times", p.a, p.b, count)
				}
			}
		})
	}

	t.Run("first team never moves", func(t *testing.T) {
		for ri, round := range CreateTournamentRounds(eightTeams()) {
			if round[0].Home != "a" {
				t.Errorf("round %d first fixture home = %s, want a", ri, round[0].Home)
			}
		}
	})
}

func TestCreateDoubleRoundsTournament(t *testing.T) {
	teams := namedTeams(8)
	rounds := CreateDoubleRoundsTournament(teams)

	if len(rounds) != 14 {
		t.Fatalf("rounds = %d, want 14", len(rounds))
	}

	t.Run("no ordered pair repeats", func(t *testing.T) {
		seen := make(map[Pair]bool)
		for _, round := range rounds {
			for _, p := range round {
				if seen[p] {
					t.Errorf("%s vs %s appears twice", p.Home, p.Away)
				}
				seen[p] = true
			}
		}
		if len(seen) != 8*7 {
			t.Errorf("ordered pairs = %d, want %d", len(seen), 8*7)
		}
	})

	t.Run("second half mirrors the first", func(t *testing.T) {
		for i := range 7 {
			for j, p := range rounds[i] {
				m := rounds[i+7][j]
				if m.Home != p.Away || m.Away != p.Home {
					t.Errorf("round %d fixture %d = %v, want mirror of %v", i+7, j, m, p)
				}
			}
		}
	})

	t.Run("home and away balanced", func(t *testing.T) {
		home := make(map[string]int)
		away := make(map[string]int)
		for _, round := range rounds {
			for _, p := range round {
				home[p.Home]++
				away[p.Away]++
			}
		}
		for _, team := range teams {
			if home[team] != 7 || away[team] != 7 {
				t.Errorf("%s: %d home, %d away, want 7/7", team, home[team], away[team])
			}
		}
	})
}

func TestGet(t *testing.T) {
	t.Run("known strategies", func(t *testing.T) {
		for name, wantRounds := range map[string]int{"round_robin": 7, "double_round_robin": 14} {
			s, err := Get(name)
			if err != nil {
				t.Fatalf("Get(%q) error: %v", name, err)
			}
			if got := len(s.GenerateRounds(eightTeams())); got != wantRounds {
				t.Errorf("%s rounds = %d, want %d", name, got, wantRounds)
			}
		}
	})

	t.Run("unknown strategy", func(t *testing.T) {
		if _, err := Get("division_weighted"); err == nil {
			t.Error("expected error for unknown strategy")
		}
	})
}

func TestGameLabels(t *testing.T) {
	s := &DoubleRoundRobin{}
	seen := make(map[string]bool)
	for _, round := range s.GenerateRounds(namedTeams(6)) {
		for _, g := range round {
			if g.Label == "" {
				t.Error("game has empty label")
			}
			if seen[g.Label] {
				t.Errorf("duplicate label: %s", g.Label)
			}
			seen[g.Label] = true
		}
	}
	if len(seen) != 30 {
		t.Errorf("labels = %d, want 30", len(seen))
	}
}
