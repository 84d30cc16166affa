package strategy

// Pair is one fixture of a round. The first team listed is at home.
type Pair struct {
	Home string
	Away string
}

// Rotate performs one step of the circle method: the first team stays put,
// the last team moves to the second position and everyone else shifts one
// place to the right.
func Rotate(teams []string) []string {
	n := len(teams)
	if n < 3 {
		out := make([]string, n)
		copy(out, teams)
		return out
	}
	out := make([]string, 0, n)
	out = append(out, teams[0], teams[n-1])
	out = append(out, teams[1:n-1]...)
	return out
}

// CreateRound pairs the team at position i with the team at position n-1-i.
func CreateRound(teams []string) []Pair {
	n := len(teams)
	pairs := make([]Pair, 0, n/2)
	for i := 0; i < n/2; i++ {
		pairs = append(pairs, Pair{Home: teams[i], Away: teams[n-1-i]})
	}
	return pairs
}

// CreateTournamentRounds returns the n-1 rounds of a single round robin.
// Teams must be an even-length list of distinct names.
func CreateTournamentRounds(teams []string) [][]Pair {
	if len(teams) < 2 {
		return nil
	}
	order := make([]string, len(teams))
	copy(order, teams)

	rounds := make([][]Pair, 0, len(teams)-1)
	for range len(teams) - 1 {
		rounds = append(rounds, CreateRound(order))
		order = Rotate(order)
	}
	return rounds
}

// CreateDoubleRoundsTournament returns a single round robin followed by its
// mirror, in which every fixture has home and away swapped.
func CreateDoubleRoundsTournament(teams []string) [][]Pair {
	first := CreateTournamentRounds(teams)
	rounds := make([][]Pair, 0, 2*len(first))
	rounds = append(rounds, first...)
	for _, round := range first {
		mirrored := make([]Pair, len(round))
		for i, p := range round {
			mirrored[i] = Pair{Home: p.Away, Away: p.Home}
		}
		rounds = append(rounds, mirrored)
	}
	return rounds
}
