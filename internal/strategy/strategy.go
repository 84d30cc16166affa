package strategy

import (
	"fmt"
)

// Game represents a single matchup between two teams.
type Game struct {
	Home  string
	Away  string
	Label string // unique identifier like "Game 1"
}

// Strategy generates the fixture rounds for a season.
type Strategy interface {
	GenerateRounds(teams []string) [][]Game
}

// Get returns a Strategy by name.
func Get(name string) (Strategy, error) {
	switch name {
	case "round_robin":
		return &RoundRobin{}, nil
	case "double_round_robin":
		return &DoubleRoundRobin{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", name)
	}
}

// RoundRobin plays every pair of teams once.
type RoundRobin struct{}

func (s *RoundRobin) GenerateRounds(teams []string) [][]Game {
	return label(CreateTournamentRounds(teams))
}

// DoubleRoundRobin plays every pair twice, with home and away reversed in
// the second half of the season.
type DoubleRoundRobin struct{}

func (s *DoubleRoundRobin) GenerateRounds(teams []string) [][]Game {
	return label(CreateDoubleRoundsTournament(teams))
}

func label(rounds [][]Pair) [][]Game {
	out := make([][]Game, len(rounds))
	gameNum := 1
	for i, round := range rounds {
		games := make([]Game, len(round))
		for j, p := range round {
			games[j] = Game{
				Home:  p.Home,
				Away:  p.Away,
				Label: fmt.Sprintf("Game %d", gameNum),
			}
			gameNum++
		}
		out[i] = games
	}
	return out
}
