package league

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/derekprior/seasonsim/internal/config"
	"github.com/derekprior/seasonsim/internal/state"
)

var (
	firstNames = []string{"Alex", "Ben", "Carlos", "Dmitri", "Eli", "Finn", "Gabe", "Hugo", "Ivan", "Jonah", "Kai", "Liam", "Marco", "Nils", "Oscar", "Pavel", "Quinn", "Rafa", "Sami", "Theo"}
	lastNames  = []string{"Abbott", "Brennan", "Castillo", "Doyle", "Eriksen", "Fontaine", "Garza", "Haller", "Ibarra", "Jansen", "Kovac", "Lindqvist", "Moreau", "Novak", "Okafor", "Petrov", "Quintero", "Rossi", "Sato", "Tanaka"}
)

// Seed builds the initial league state from cfg: one team per configured
// name, each with a full roster of contracted players. The same seed always
// produces the same league.
func Seed(cfg *config.Config, seed int64) (*state.State, error) {
	rng := rand.New(rand.NewSource(seed))
	start := cfg.League.StartDate.Time
	st := state.New(start)

	for _, div := range cfg.League.Divisions {
		for _, name := range div.Teams {
			st.Teams = append(st.Teams, state.Team{ID: name, Name: name, Division: div.Name})
		}
	}

	for _, team := range st.Teams {
		for range cfg.League.PlayersPerTeam {
			id, err := uuid.NewRandomFromReader(rng)
			if err != nil {
				return nil, fmt.Errorf("generating player ID: %w", err)
			}
			p := newPlayer(rng, id.String(), team.ID, start)
			st.Players[p.ID] = p
			st.Contracts[p.ID] = state.Contract{
				PlayerID: p.ID,
				TeamID:   team.ID,
				Years:    contractYears(rng, cfg.Contracts.MinYears, cfg.Contracts.MaxYears),
				Salary:   salaryFor(p.Skill),
			}
		}
	}

	return st, nil
}

func newPlayer(rng *rand.Rand, id, teamID string, asOf time.Time) state.Player {
	age := 18 + rng.Intn(18)
	born := asOf.AddDate(-age, 0, -rng.Intn(365))
	skill := 40 + rng.Float64()*40
	return state.Player{
		ID:        id,
		Name:      firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
		TeamID:    teamID,
		Born:      born,
		Skill:     skill,
		Potential: clamp(skill+rng.Float64()*25, 0, 100),
	}
}
