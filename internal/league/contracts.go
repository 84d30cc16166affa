package league

import (
	"math/rand"

	"github.com/derekprior/seasonsim/internal/state"
)

// Negotiator decides whether a team renews an expiring contract and on what
// terms.
type Negotiator interface {
	Renew(team state.Team, p state.Player, c state.Contract) (state.Contract, bool)
}

// SkillThreshold renews contracts of players at or above MinSkill for a
// random length between MinYears and MaxYears.
type SkillThreshold struct {
	rng *rand.Rand

	MinSkill float64
	MinYears int
	MaxYears int
}

// NewSkillThreshold returns a negotiator seeded with seed.
func NewSkillThreshold(seed int64, minSkill float64, minYears, maxYears int) *SkillThreshold {
	return &SkillThreshold{
		rng:      rand.New(rand.NewSource(seed)),
		MinSkill: minSkill,
		MinYears: minYears,
		MaxYears: maxYears,
	}
}

func (n *SkillThreshold) Renew(team state.Team, p state.Player, c state.Contract) (state.Contract, bool) {
	if p.TeamID != team.ID || p.Skill < n.MinSkill {
		return c, false
	}
	c.TeamID = team.ID
	c.Years = contractYears(n.rng, n.MinYears, n.MaxYears)
	c.Salary = salaryFor(p.Skill)
	return c, true
}

func contractYears(rng *rand.Rand, minYears, maxYears int) int {
	if maxYears <= minYears {
		return minYears
	}
	return minYears + rng.Intn(maxYears-minYears+1)
}

func salaryFor(skill float64) int {
	return 10000 + int(skill*skill*10)
}
