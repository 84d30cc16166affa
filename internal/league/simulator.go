// Package league holds the collaborators the season lifecycle delegates to:
// match outcomes, player development, contract renewal and league seeding.
//
// Every implementation draws randomness from an explicitly seeded
// *rand.Rand so a simulation is reproducible from its seed.
package league

import (
	"math"
	"math/rand"

	"github.com/derekprior/seasonsim/internal/state"
)

// MatchInput is what a simulator needs to decide a match.
type MatchInput struct {
	Match        state.Match
	HomeStrength float64
	AwayStrength float64
}

// Simulator decides match outcomes.
type Simulator interface {
	SimulateMatch(in MatchInput) state.Result
}

// PoissonSimulator draws each side's goals from a Poisson distribution whose
// mean scales with the side's share of combined strength.
type PoissonSimulator struct {
	rng *rand.Rand

	// MeanGoals is the expected total goals in a match between equal sides.
	MeanGoals float64
	// HomeAdvantage multiplies the home side's strength.
	HomeAdvantage float64
}

// NewPoissonSimulator returns a simulator seeded with seed.
func NewPoissonSimulator(seed int64) *PoissonSimulator {
	return &PoissonSimulator{
		rng:           rand.New(rand.NewSource(seed)),
		MeanGoals:     2.6,
		HomeAdvantage: 1.1,
	}
}

func (s *PoissonSimulator) SimulateMatch(in MatchInput) state.Result {
	home := math.Max(in.HomeStrength, 1) * s.HomeAdvantage
	away := math.Max(in.AwayStrength, 1)
	total := home + away
	return state.Result{
		Home: poisson(s.rng, s.MeanGoals*home/total),
		Away: poisson(s.rng, s.MeanGoals*away/total),
	}
}

// poisson samples with Knuth's method, fine for the small means used here.
func poisson(rng *rand.Rand, mean float64) int {
	limit := math.Exp(-mean)
	k := 0
	p := rng.Float64()
	for p > limit {
		k++
		p *= rng.Float64()
	}
	return k
}

// TeamStrength is the mean skill of a roster, or zero for an empty one.
func TeamStrength(roster []state.Player) float64 {
	if len(roster) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range roster {
		total += p.Skill
	}
	return total / float64(len(roster))
}
