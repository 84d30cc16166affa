// Package validator re-reads an exported season workbook and checks it
// against the round-robin rules for the configured league.
package validator

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/seasonsim/internal/config"
	"github.com/derekprior/seasonsim/internal/excel"
	"github.com/derekprior/seasonsim/internal/strategy"
)

// Violation represents a rule violation found during validation.
type Violation struct {
	Row     int
	Type    string // "error" or "warning"
	Message string
}

// Validate reads a season workbook and checks it against the config.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	fixtures, err := readFixtures(f)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}

	teams := cfg.AllTeams()
	var violations []Violation

	// Hard rules
	violations = append(violations, checkUnknownTeams(teams, fixtures)...)
	violations = append(violations, checkOncePerRound(fixtures)...)
	violations = append(violations, checkRoundDates(cfg.Calendar.RoundIntervalDays, fixtures)...)
	violations = append(violations, checkRepeatedPairings(len(teams), fixtures)...)
	violations = append(violations, checkDuplicateIDs(fixtures)...)
	violations = append(violations, checkDuplicateLabels(fixtures)...)
	violations = append(violations, checkCompleteness(cfg, teams, fixtures)...)

	// Soft rules
	violations = append(violations, checkHomeAwayBalance(teams, fixtures)...)

	return violations, nil
}

type fixture struct {
	Row   int
	Round int
	Date  time.Time
	Home  string
	Away  string
	ID    string
	Label string
}

func readFixtures(f *excelize.File) ([]fixture, error) {
	rows, err := f.GetRows(excel.FixturesSheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", excel.FixturesSheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", excel.FixturesSheet)
	}

	var fixtures []fixture
	for i, row := range rows {
		if i == 0 || len(row) < 5 || row[0] == "" {
			continue
		}
		round, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		date, err := time.Parse(excel.DateFormat, row[1])
		if err != nil {
			continue
		}
		fx := fixture{Row: i + 1, Round: round, Date: date, Home: row[3], Away: row[4]}
		if len(row) > 7 {
			fx.ID = row[7]
		}
		if len(row) > 8 {
			fx.Label = row[8]
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, nil
}

func checkUnknownTeams(teams []string, fixtures []fixture) []Violation {
	var violations []Violation
	for _, fx := range fixtures {
		for _, team := range []string{fx.Home, fx.Away} {
			if !slices.Contains(teams, team) {
				violations = append(violations, Violation{
					Row:     fx.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s is not in the league", team),
				})
			}
		}
		if fx.Home == fx.Away {
			violations = append(violations, Violation{
				Row:     fx.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s plays itself", fx.Home),
			})
		}
	}
	return violations
}

func checkOncePerRound(fixtures []fixture) []Violation {
	type teamRound struct {
		team  string
		round int
	}
	seen := make(map[teamRound]int)
	var violations []Violation
	for _, fx := range fixtures {
		for _, team := range []string{fx.Home, fx.Away} {
			key := teamRound{team, fx.Round}
			if first, ok := seen[key]; ok {
				violations = append(violations, Violation{
					Row:     fx.Row,
					Type:    "error",
					Message: fmt.Sprintf("%s plays twice in round %d (rows %d and %d)", team, fx.Round, first, fx.Row),
				})
				continue
			}
			seen[key] = fx.Row
		}
	}
	return violations
}

// checkRoundDates checks every round is played on one date and rounds are
// intervalDays apart.
func checkRoundDates(intervalDays int, fixtures []fixture) []Violation {
	dates := make(map[int]time.Time)
	var violations []Violation
	for _, fx := range fixtures {
		d, ok := dates[fx.Round]
		if !ok {
			dates[fx.Round] = fx.Date
			continue
		}
		if !d.Equal(fx.Date) {
			violations = append(violations, Violation{
				Row:  fx.Row,
				Type: "error",
				Message: fmt.Sprintf("round %d is split across %s and %s",
					fx.Round, d.Format("01/02"), fx.Date.Format("01/02")),
			})
		}
	}

	if intervalDays <= 0 {
		return violations
	}
	rounds := make([]int, 0, len(dates))
	for r := range dates {
		rounds = append(rounds, r)
	}
	slices.Sort(rounds)
	for i := 1; i < len(rounds); i++ {
		prev, cur := dates[rounds[i-1]], dates[rounds[i]]
		days := int(cur.Sub(prev).Hours() / 24)
		want := intervalDays * (rounds[i] - rounds[i-1])
		if days != want {
			violations = append(violations, Violation{
				Type: "error",
				Message: fmt.Sprintf("round %d is %d days after round %d (want %d)",
					rounds[i], days, rounds[i-1], want),
			})
		}
	}
	return violations
}

// checkRepeatedPairings flags two teams meeting twice within one cycle of
// n-1 rounds, and the same home/away pairing appearing twice at all.
func checkRepeatedPairings(n int, fixtures []fixture) []Violation {
	if n < 2 {
		return nil
	}
	perCycle := n - 1

	type pairing struct {
		a, b  string
		cycle int
	}
	type ordered struct{ home, away string }
	unordered := make(map[pairing]int)
	seenOrdered := make(map[ordered]int)

	var violations []Violation
	for _, fx := range fixtures {
		a, b := fx.Home, fx.Away
		if a > b {
			a, b = b, a
		}
		cycle := (fx.Round - 1) / perCycle
		key := pairing{a, b, cycle}
		if first, ok := unordered[key]; ok {
			violations = append(violations, Violation{
				Row:     fx.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s and %s meet twice in cycle %d (rows %d and %d)", a, b, cycle+1, first, fx.Row),
			})
		} else {
			unordered[key] = fx.Row
		}

		pair := ordered{fx.Home, fx.Away}
		if first, dup := seenOrdered[pair]; dup {
			violations = append(violations, Violation{
				Row:     fx.Row,
				Type:    "error",
				Message: fmt.Sprintf("%s hosts %s twice (rows %d and %d)", fx.Home, fx.Away, first, fx.Row),
			})
		} else {
			seenOrdered[pair] = fx.Row
		}
	}
	return violations
}

func checkDuplicateIDs(fixtures []fixture) []Violation {
	seen := make(map[string]int)
	var violations []Violation
	for _, fx := range fixtures {
		if fx.ID == "" {
			violations = append(violations, Violation{Row: fx.Row, Type: "error", Message: "match has no ID"})
			continue
		}
		if first, ok := seen[fx.ID]; ok {
			violations = append(violations, Violation{
				Row:     fx.Row,
				Type:    "error",
				Message: fmt.Sprintf("match ID %s already used on row %d", fx.ID, first),
			})
			continue
		}
		seen[fx.ID] = fx.Row
	}
	return violations
}

// checkDuplicateLabels checks every fixture carries a game label that no
// other fixture in the season reuses.
func checkDuplicateLabels(fixtures []fixture) []Violation {
	seen := make(map[string]int)
	var violations []Violation
	for _, fx := range fixtures {
		if fx.Label == "" {
			violations = append(violations, Violation{Row: fx.Row, Type: "error", Message: "match has no game label"})
			continue
		}
		if first, ok := seen[fx.Label]; ok {
			violations = append(violations, Violation{
				Row:     fx.Row,
				Type:    "error",
				Message: fmt.Sprintf("game label %q already used on row %d", fx.Label, first),
			})
			continue
		}
		seen[fx.Label] = fx.Row
	}
	return violations
}

// checkCompleteness compares the workbook against the fixture list the
// configured strategy produces for the league.
func checkCompleteness(cfg *config.Config, teams []string, fixtures []fixture) []Violation {
	strat, err := strategy.Get(cfg.Schedule.Strategy)
	if err != nil {
		return []Violation{{Type: "error", Message: err.Error()}}
	}
	expected := strat.GenerateRounds(teams)
	wantRounds := len(expected)
	wantGames := 0
	if wantRounds > 0 {
		wantGames = wantRounds * len(expected[0]) * 2 / len(teams)
	}

	var violations []Violation
	rounds := make(map[int]bool)
	games := make(map[string]int)
	for _, fx := range fixtures {
		rounds[fx.Round] = true
		games[fx.Home]++
		games[fx.Away]++
	}
	if len(rounds) != wantRounds {
		violations = append(violations, Violation{
			Type:    "error",
			Message: fmt.Sprintf("found %d rounds, want %d for %s", len(rounds), wantRounds, cfg.Schedule.Strategy),
		})
	}
	for _, team := range teams {
		switch {
		case games[team] == 0:
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s has no games scheduled", team),
			})
		case games[team] != wantGames:
			violations = append(violations, Violation{
				Type:    "error",
				Message: fmt.Sprintf("%s has %d games, want %d", team, games[team], wantGames),
			})
		}
	}
	return violations
}

func checkHomeAwayBalance(teams []string, fixtures []fixture) []Violation {
	home := make(map[string]int)
	away := make(map[string]int)
	for _, fx := range fixtures {
		home[fx.Home]++
		away[fx.Away]++
	}

	var violations []Violation
	for _, team := range teams {
		if diff := home[team] - away[team]; diff > 1 || diff < -1 {
			violations = append(violations, Violation{
				Type:    "warning",
				Message: fmt.Sprintf("%s home/away imbalance: %d home, %d away", team, home[team], away[team]),
			})
		}
	}
	return violations
}
