package state

import (
	"errors"
	"testing"
	"time"

	"github.com/derekprior/seasonsim/internal/event"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func populated() *State {
	st := New(day(2026, 9, 1))
	st.Teams = []Team{{ID: "harbor", Name: "Harbor"}, {ID: "ashford", Name: "Ashford"}}
	st.Players["p2"] = Player{ID: "p2", TeamID: "harbor", Skill: 60}
	st.Players["p1"] = Player{ID: "p1", TeamID: "ashford", Skill: 70}
	st.Players["p3"] = Player{ID: "p3", TeamID: "harbor", Skill: 50}
	st.Contracts["p1"] = Contract{PlayerID: "p1", TeamID: "ashford", Years: 2}
	st.Matches["m1"] = Match{ID: "m1", Home: "harbor", Away: "ashford", Result: &Result{Home: 2, Away: 1}}
	st.Current = &Season{Key: "2026-2027", StartYear: 2026, Rounds: []RoundRecord{
		{Date: day(2026, 9, 6), MatchIDs: []string{"m1"}},
	}}
	st.Archive["2025-2026"] = &Season{Key: "2025-2026", StartYear: 2025}
	st.Queue.Enqueue(event.NewSimRound(day(2026, 9, 6), 0))
	return st
}

func TestSeasonRound(t *testing.T) {
	st := populated()
	if r, ok := st.Current.Round(0); !ok || r.MatchIDs[0] != "m1" {
		t.Errorf("Round(0) = %v, %v", r, ok)
	}
	if _, ok := st.Current.Round(1); ok {
		t.Error("Round(1) should be absent")
	}
	var none *Season
	if _, ok := none.Round(0); ok {
		t.Error("nil season should have no rounds")
	}
}

func TestRosterAndOrdering(t *testing.T) {
	st := populated()

	ids := st.PlayerIDs()
	if len(ids) != 3 || ids[0] != "p1" || ids[2] != "p3" {
		t.Errorf("PlayerIDs() = %v, want sorted", ids)
	}

	roster := st.Roster("harbor")
	if len(roster) != 2 || roster[0].ID != "p2" || roster[1].ID != "p3" {
		t.Errorf("Roster(harbor) = %v", roster)
	}

	if got := st.TeamIDs(); got[0] != "harbor" || got[1] != "ashford" {
		t.Errorf("TeamIDs() = %v, want league order", got)
	}
	if _, ok := st.Team("nowhere"); ok {
		t.Error("unknown team found")
	}
}

func TestClone(t *testing.T) {
	st := populated()
	c := st.Clone()

	c.Date = c.Date.Add(12 * time.Hour)
	c.Players["p1"] = Player{ID: "p1", Skill: 1}
	c.Contracts["p1"] = Contract{PlayerID: "p1", Years: 0}
	c.Matches["m1"].Result.Home = 9
	c.Current.Rounds[0].MatchIDs[0] = "changed"
	c.Archive["2025-2026"].Key = "changed"
	c.Teams[0].Name = "changed"
	c.Queue.DequeueDue(day(2030, 1, 1))

	t.Run("original is untouched", func(t *testing.T) {
		if !st.Date.Equal(day(2026, 9, 1)) {
			t.Error("date changed")
		}
		if st.Players["p1"].Skill != 70 {
			t.Error("player changed")
		}
		if st.Contracts["p1"].Years != 2 {
			t.Error("contract changed")
		}
		if st.Matches["m1"].Result.Home != 2 {
			t.Error("match result changed")
		}
		if st.Current.Rounds[0].MatchIDs[0] != "m1" {
			t.Error("current season changed")
		}
		if st.Archive["2025-2026"].Key != "2025-2026" {
			t.Error("archive changed")
		}
		if st.Teams[0].Name != "Harbor" {
			t.Error("team changed")
		}
		if st.Queue.Len() != 1 {
			t.Error("queue changed")
		}
	})

	t.Run("empty state clones", func(t *testing.T) {
		c := (&State{}).Clone()
		if c.Players == nil || c.Contracts == nil || c.Matches == nil || c.Archive == nil {
			t.Error("clone of empty state has nil maps")
		}
	})
}

func TestStore(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		s := NewStore(nil)
		if _, err := s.Snapshot(); !errors.Is(err, ErrNoSnapshot) {
			t.Errorf("Snapshot() error = %v, want ErrNoSnapshot", err)
		}
		if _, err := s.Checkout(); !errors.Is(err, ErrNoSnapshot) {
			t.Errorf("Checkout() error = %v, want ErrNoSnapshot", err)
		}
	})

	t.Run("checkout is private until published", func(t *testing.T) {
		initial := populated()
		s := NewStore(initial)

		work, err := s.Checkout()
		if err != nil {
			t.Fatalf("Checkout() error: %v", err)
		}
		work.Date = day(2027, 1, 1)

		snap, _ := s.Snapshot()
		if snap != initial || !snap.Date.Equal(day(2026, 9, 1)) {
			t.Error("snapshot changed before publish")
		}

		s.Publish(work)
		snap, _ = s.Snapshot()
		if snap != work {
			t.Error("publish did not replace the snapshot")
		}
	})
}

func TestArchiveCurrent(t *testing.T) {
	st := populated()
	key, ok := st.ArchiveCurrent()
	if !ok || key != "2026-2027" {
		t.Fatalf("ArchiveCurrent() = %q, %v", key, ok)
	}
	archived := st.Archive["2026-2027"]
	if archived == nil || archived == st.Current {
		t.Fatal("archive should hold a separate copy")
	}
	st.Current.Rounds[0].MatchIDs[0] = "changed"
	if archived.Rounds[0].MatchIDs[0] != "m1" {
		t.Error("archived season changed with the current season")
	}

	empty := New(day(2026, 1, 1))
	if _, ok := empty.ArchiveCurrent(); ok {
		t.Error("archived without a current season")
	}
}
