// Package state holds the mutable game state the season lifecycle reads and
// writes, and the store that publishes immutable snapshots of it.
package state

import (
	"maps"
	"slices"
	"time"

	"github.com/derekprior/seasonsim/internal/event"
)

type Team struct {
	ID       string
	Name     string
	Division string
}

type Player struct {
	ID        string
	Name      string
	TeamID    string // empty for unsigned players
	Born      time.Time
	Skill     float64
	Potential float64
}

// Contract binds a player to a team for a number of remaining seasons.
type Contract struct {
	PlayerID string
	TeamID   string
	Years    int
	Salary   int
}

type Result struct {
	Home int
	Away int
}

// Match is the stored body of a fixture. Result is nil until the match has
// been simulated and is written once.
type Match struct {
	ID     string
	Label  string // "Game N", unique within a season
	Home   string
	Away   string
	Date   time.Time
	Result *Result
}

// RoundRecord is the stored form of a round: its date and the IDs of its
// matches in the match table.
type RoundRecord struct {
	Date     time.Time
	MatchIDs []string
}

// Season is a stored schedule.
type Season struct {
	Key       string
	StartYear int
	Rounds    []RoundRecord
}

// Round returns round k, or false when the season has no such round.
func (s *Season) Round(k int) (RoundRecord, bool) {
	if s == nil || k < 0 || k >= len(s.Rounds) {
		return RoundRecord{}, false
	}
	return s.Rounds[k], true
}

// State is the complete game state.
type State struct {
	Date      time.Time
	Queue     event.Queue
	Current   *Season
	Archive   map[string]*Season
	Matches   map[string]Match
	Teams     []Team
	Players   map[string]Player
	Contracts map[string]Contract // keyed by player ID
}

// New returns an empty state at the given date.
func New(date time.Time) *State {
	return &State{
		Date:      date,
		Archive:   make(map[string]*Season),
		Matches:   make(map[string]Match),
		Players:   make(map[string]Player),
		Contracts: make(map[string]Contract),
	}
}

// TeamIDs returns team IDs in league order.
func (s *State) TeamIDs() []string {
	ids := make([]string, len(s.Teams))
	for i, t := range s.Teams {
		ids[i] = t.ID
	}
	return ids
}

// Team looks up a team by ID.
func (s *State) Team(id string) (Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// PlayerIDs returns all player IDs in sorted order so callers iterate
// deterministically.
func (s *State) PlayerIDs() []string {
	return slices.Sorted(maps.Keys(s.Players))
}

// Roster returns a team's signed players sorted by ID.
func (s *State) Roster(teamID string) []Player {
	var roster []Player
	for _, id := range s.PlayerIDs() {
		if p := s.Players[id]; p.TeamID == teamID {
			roster = append(roster, p)
		}
	}
	return roster
}

// ArchiveCurrent stores the current season in the archive under its key and
// returns the key. The current season stays installed until the next one
// replaces it.
func (s *State) ArchiveCurrent() (string, bool) {
	if s.Current == nil {
		return "", false
	}
	if s.Archive == nil {
		s.Archive = make(map[string]*Season)
	}
	s.Archive[s.Current.Key] = s.Current.clone()
	return s.Current.Key, true
}

// Clone returns a deep copy that shares nothing mutable with s.
func (s *State) Clone() *State {
	c := &State{
		Date:      s.Date,
		Queue:     s.Queue.Clone(),
		Current:   s.Current.clone(),
		Archive:   make(map[string]*Season, len(s.Archive)),
		Matches:   make(map[string]Match, len(s.Matches)),
		Teams:     slices.Clone(s.Teams),
		Players:   maps.Clone(s.Players),
		Contracts: maps.Clone(s.Contracts),
	}
	if c.Players == nil {
		c.Players = make(map[string]Player)
	}
	if c.Contracts == nil {
		c.Contracts = make(map[string]Contract)
	}
	for k, season := range s.Archive {
		c.Archive[k] = season.clone()
	}
	for id, m := range s.Matches {
		if m.Result != nil {
			r := *m.Result
			m.Result = &r
		}
		c.Matches[id] = m
	}
	return c
}

func (s *Season) clone() *Season {
	if s == nil {
		return nil
	}
	c := &Season{Key: s.Key, StartYear: s.StartYear, Rounds: make([]RoundRecord, len(s.Rounds))}
	for i, r := range s.Rounds {
		c.Rounds[i] = RoundRecord{Date: r.Date, MatchIDs: slices.Clone(r.MatchIDs)}
	}
	return c
}
