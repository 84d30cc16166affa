package league

import (
	"math"
	"math/rand"
	"time"

	"github.com/derekprior/seasonsim/internal/state"
)

// Developer applies one month of growth or decline to a player.
type Developer interface {
	Develop(p state.Player, asOf time.Time) state.Player
}

// AgeCurve grows young players toward their potential and declines veterans.
type AgeCurve struct {
	rng *rand.Rand

	PeakAge      int     // players grow until this age
	DeclineAge   int     // and decline from this age
	GrowthRate   float64 // share of the gap to potential closed per month
	DeclineRate  float64 // skill lost per month per year past DeclineAge
	MonthlyNoise float64 // standard deviation of the random term
}

// NewAgeCurve returns a development curve seeded with seed.
func NewAgeCurve(seed int64) *AgeCurve {
	return &AgeCurve{
		rng:          rand.New(rand.NewSource(seed)),
		PeakAge:      27,
		DeclineAge:   31,
		GrowthRate:   0.04,
		DeclineRate:  0.15,
		MonthlyNoise: 0.3,
	}
}

func (c *AgeCurve) Develop(p state.Player, asOf time.Time) state.Player {
	age := Age(p.Born, asOf)
	delta := c.rng.NormFloat64() * c.MonthlyNoise

	switch {
	case age < c.PeakAge:
		delta += (p.Potential - p.Skill) * c.GrowthRate
	case age >= c.DeclineAge:
		delta -= float64(age-c.DeclineAge+1) * c.DeclineRate
	}

	p.Skill = clamp(p.Skill+delta, 0, 100)
	return p
}

// Age returns whole years between born and asOf.
func Age(born, asOf time.Time) int {
	years := asOf.Year() - born.Year()
	if asOf.Month() < born.Month() || (asOf.Month() == born.Month() && asOf.Day() < born.Day()) {
		years--
	}
	return years
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
