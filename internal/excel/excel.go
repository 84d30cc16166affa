// Package excel exports a season's fixtures, results and table to a workbook.
package excel

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/seasonsim/internal/league"
	"github.com/derekprior/seasonsim/internal/state"
)

const (
	FixturesSheet  = "Fixtures"
	StandingsSheet = "Standings"

	// DateFormat is how dates are written to and read from the workbook.
	DateFormat = "01/02/2006"
)

// FixtureHeaders are the columns of the fixtures sheet, in order.
var FixtureHeaders = []string{"Round", "Date", "Day", "Home", "Away", "Home Score", "Away Score", "Match ID", "Game"}

// Generate creates a workbook with the season's fixtures, the standings so
// far and one sheet per team.
func Generate(st *state.State, season *state.Season) (*excelize.File, error) {
	if season == nil {
		return nil, errors.New("no season to export")
	}

	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	s := newStyles(f)
	if err := writeFixturesSheet(f, s, st, season); err != nil {
		return nil, fmt.Errorf("writing fixtures sheet: %w", err)
	}
	if err := writeStandingsSheet(f, s, st, season); err != nil {
		return nil, fmt.Errorf("writing standings sheet: %w", err)
	}
	if err := writeTeamSheets(f, s, st, season); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

type styles struct {
	header   int
	cell     int
	centered int
	pending  int
}

func newStyles(f *excelize.File) styles {
	var s styles
	s.header, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 16, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	s.cell, _ = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	s.centered, _ = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 16, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	s.pending, _ = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#EDEDED"}},
		Font: &excelize.Font{Size: 16, Family: "Arial"},
	})
	return s
}

func writeHeaders(f *excelize.File, s styles, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if s.header != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), s.header)
	}
}

func styleRow(f *excelize.File, sheet string, row, from, to, style int) {
	if style != 0 {
		f.SetCellStyle(sheet, cellRef(from, row), cellRef(to, row), style)
	}
}

func writeFixturesSheet(f *excelize.File, s styles, st *state.State, season *state.Season) error {
	sheet := FixturesSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	writeHeaders(f, s, sheet, FixtureHeaders)

	row := 2
	for k, round := range season.Rounds {
		for _, id := range round.MatchIDs {
			m, ok := st.Matches[id]
			if !ok {
				continue
			}
			f.SetCellValue(sheet, cellRef(1, row), k+1)
			f.SetCellValue(sheet, cellRef(2, row), round.Date.Format(DateFormat))
			f.SetCellValue(sheet, cellRef(3, row), round.Date.Format("Mon"))
			f.SetCellValue(sheet, cellRef(4, row), m.Home)
			f.SetCellValue(sheet, cellRef(5, row), m.Away)
			if m.Result != nil {
				f.SetCellValue(sheet, cellRef(6, row), m.Result.Home)
				f.SetCellValue(sheet, cellRef(7, row), m.Result.Away)
			}
			f.SetCellValue(sheet, cellRef(8, row), m.ID)
			f.SetCellValue(sheet, cellRef(9, row), m.Label)

			styleRow(f, sheet, row, 1, 5, s.cell)
			styleRow(f, sheet, row, 6, 7, s.centered)
			styleRow(f, sheet, row, 8, 9, s.cell)
			row++
		}
	}

	// Sized for Arial 16
	widths := map[string]float64{"A": 10, "B": 18, "C": 8, "D": 24, "E": 24, "F": 16, "G": 16, "H": 44, "I": 14}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}

	// Unplayed fixtures get a grey score cell.
	lastRow := row - 1
	if lastRow >= 2 && s.pending != 0 {
		pending := s.pending
		for _, col := range []string{"F", "G"} {
			f.SetConditionalFormat(sheet, fmt.Sprintf("%s2:%s%d", col, col, lastRow), []excelize.ConditionalFormatOptions{
				{
					Type:     "formula",
					Criteria: fmt.Sprintf(`AND($D2<>"",ISBLANK(%s2))`, col),
					Format:   &pending,
				},
			})
		}
	}
	return nil
}

func writeStandingsSheet(f *excelize.File, s styles, st *state.State, season *state.Season) error {
	sheet := StandingsSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Pos", "Team", "Division", "P", "W", "D", "L", "GF", "GA", "GD", "Pts"}
	writeHeaders(f, s, sheet, headers)

	for i, r := range league.Standings(st, season) {
		row := i + 2
		division := ""
		if t, ok := st.Team(r.Team); ok {
			division = t.Division
		}
		values := []any{i + 1, r.Team, division, r.Played, r.Wins, r.Draws, r.Losses,
			r.GoalsFor, r.GoalsAgainst, r.GoalDiff(), r.Points}
		for col, v := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), v)
		}
		styleRow(f, sheet, row, 1, 3, s.cell)
		styleRow(f, sheet, row, 4, len(headers), s.centered)
	}

	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "C", 24)
	f.SetColWidth(sheet, "D", colLetter(len(headers)), 8)
	return nil
}

func writeTeamSheets(f *excelize.File, s styles, st *state.State, season *state.Season) error {
	headers := []string{"Round", "Date", "Day", "Opponent", "Home/Away", "Score", "Result", "Game"}

	for _, team := range st.TeamIDs() {
		sheet := team
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("sheet %q: %w", team, err)
		}
		writeHeaders(f, s, sheet, headers)

		row := 2
		for k, round := range season.Rounds {
			for _, id := range round.MatchIDs {
				m, ok := st.Matches[id]
				if !ok || (m.Home != team && m.Away != team) {
					continue
				}
				opponent, side := m.Away, "Home"
				if m.Away == team {
					opponent, side = m.Home, "Away"
				}
				f.SetCellValue(sheet, cellRef(1, row), k+1)
				f.SetCellValue(sheet, cellRef(2, row), round.Date.Format(DateFormat))
				f.SetCellValue(sheet, cellRef(3, row), round.Date.Format("Mon"))
				f.SetCellValue(sheet, cellRef(4, row), opponent)
				f.SetCellValue(sheet, cellRef(5, row), side)
				if m.Result != nil {
					f.SetCellValue(sheet, cellRef(6, row), fmt.Sprintf("%d-%d", m.Result.Home, m.Result.Away))
					f.SetCellValue(sheet, cellRef(7, row), outcome(m, team))
				}
				f.SetCellValue(sheet, cellRef(8, row), m.Label)
				styleRow(f, sheet, row, 1, len(headers), s.cell)
				row++
			}
		}

		widths := map[string]float64{"A": 10, "B": 18, "C": 8, "D": 24, "E": 14, "F": 10, "G": 10, "H": 14}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}
	return nil
}

// outcome is W, D or L from team's point of view.
func outcome(m state.Match, team string) string {
	scored, conceded := m.Result.Home, m.Result.Away
	if m.Away == team {
		scored, conceded = conceded, scored
	}
	switch {
	case scored > conceded:
		return "W"
	case scored == conceded:
		return "D"
	default:
		return "L"
	}
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
