package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/derekprior/seasonsim/internal/clock"
	"github.com/derekprior/seasonsim/internal/config"
	"github.com/derekprior/seasonsim/internal/excel"
	"github.com/derekprior/seasonsim/internal/league"
	"github.com/derekprior/seasonsim/internal/lifecycle"
	"github.com/derekprior/seasonsim/internal/logging"
	"github.com/derekprior/seasonsim/internal/metrics"
	"github.com/derekprior/seasonsim/internal/schedule"
	"github.com/derekprior/seasonsim/internal/state"
	"github.com/derekprior/seasonsim/internal/validator"
)

type simulateOptions struct {
	untilFlag   string
	until       time.Time
	output      string
	showMetrics bool
}

// app bundles what every simulation command needs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	reg     *prometheus.Registry
	metrics *metrics.Recorder
}

func load(configPath string) (*app, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.Simulation.LogLevel), cfg.Simulation.LogFormat)
	reg := prometheus.NewRegistry()
	return &app{
		cfg:     cfg,
		logger:  logger,
		reg:     reg,
		metrics: metrics.NewRecorder(reg),
	}, nil
}

// newLeague seeds the league, queues its first events and returns the store
// holding it together with a clock wired to the season lifecycle.
func (a *app) newLeague() (*state.Store, *clock.Clock, error) {
	st, err := league.Seed(a.cfg, a.cfg.Simulation.Seed)
	if err != nil {
		return nil, nil, fmt.Errorf("seeding league: %w", err)
	}
	lc, err := lifecycle.FromConfig(a.cfg, a.logger, a.metrics)
	if err != nil {
		return nil, nil, err
	}
	lc.Bootstrap(st)

	c := clock.New(lc,
		clock.WithStep(a.cfg.Simulation.StepSize()),
		clock.WithSteps(a.cfg.Simulation.StepsPerProcess),
		clock.WithLogger(a.logger),
		clock.WithMetrics(a.metrics),
	)
	return state.NewStore(st), c, nil
}

// simulate runs the clock in driver passes until done reports true, the
// date reaches until or nothing is left to do. On interrupt the progress
// made so far is published before returning.
func (a *app) simulate(ctx context.Context, store *state.Store, c *clock.Clock, until time.Time, done func(*state.State) bool) error {
	for {
		snap, err := store.Snapshot()
		if err != nil {
			return err
		}
		switch {
		case done != nil && done(snap):
			return nil
		case snap.Queue.Len() == 0:
			return nil
		case !until.IsZero() && !snap.Date.Before(until):
			return nil
		}

		d := clock.NewDriver(store, c,
			clock.WithInterval(a.cfg.Simulation.TickInterval),
			clock.WithUntil(until),
			clock.WithDriverLogger(a.logger),
		)
		if err := d.Run(ctx); err != nil {
			if ctx.Err() != nil {
				d.Stop()
				if _, terr := d.Tick(context.WithoutCancel(ctx)); terr != nil {
					return errors.Join(err, terr)
				}
			}
			return err
		}
	}
}

func runGenerate(ctx context.Context, configPath, outputPath string) error {
	a, err := load(configPath)
	if err != nil {
		return err
	}
	store, c, err := a.newLeague()
	if err != nil {
		return err
	}

	started := func(st *state.State) bool { return st.Current != nil }
	if err := a.simulate(ctx, store, c, time.Time{}, started); err != nil {
		return err
	}
	st, _ := store.Snapshot()
	if st.Current == nil {
		return fmt.Errorf("no season was scheduled")
	}

	season := st.Current
	teams := st.TeamIDs()
	fmt.Printf("✓ %s: %d rounds for %d teams, %s strategy\n",
		season.Key, len(season.Rounds), len(teams), a.cfg.Schedule.Strategy)
	if len(season.Rounds) > 0 {
		fmt.Printf("  First round %s, last round %s\n",
			season.Rounds[0].Date.Format("Mon 01/02/2006"),
			season.Rounds[len(season.Rounds)-1].Date.Format("Mon 01/02/2006"))
	}

	warnings, teamMetrics := toSchedule(st, season).Metrics(teams)
	fmt.Println("\nPer Team Metrics:")
	fmt.Printf("  %-15s %6s %4s %4s\n", "Team", "Games", "Home", "Away")
	for _, team := range teams {
		m := teamMetrics[team]
		fmt.Printf("  %-15s %6d %4d %4d\n", team, m.Games, m.Home, m.Away)
	}

	if len(warnings) > 0 {
		fmt.Printf("\nSchedule warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("  ⚠ %s\n", w)
		}
	} else {
		fmt.Println("\n✓ Home and away games are balanced")
	}

	if err := save(st, season, outputPath); err != nil {
		return err
	}
	fmt.Printf("\n✓ Fixtures saved to %s\n", outputPath)
	return nil
}

func runValidate(configPath, seasonPath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, seasonPath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errs := 0
	warnings := 0
	for _, v := range violations {
		where := ""
		if v.Row > 0 {
			where = fmt.Sprintf(" (row %d)", v.Row)
		}
		switch v.Type {
		case "error":
			errs++
			fmt.Printf("✗ Rule violation%s: %s\n", where, v.Message)
		case "warning":
			warnings++
			fmt.Printf("⚠ Warning%s: %s\n", where, v.Message)
		}
	}

	fmt.Printf("\nValidation complete: %d rule violations, %d warnings\n", errs, warnings)
	if errs > 0 {
		return fmt.Errorf("%d rule violations found", errs)
	}
	return nil
}

func runSimulate(ctx context.Context, configPath string, opts simulateOptions) error {
	a, err := load(configPath)
	if err != nil {
		return err
	}
	store, c, err := a.newLeague()
	if err != nil {
		return err
	}

	// Without an end date, play through the first season.
	var done func(*state.State) bool
	if opts.until.IsZero() {
		done = func(st *state.State) bool { return len(st.Archive) > 0 }
	}

	begin := time.Now()
	simErr := a.simulate(ctx, store, c, opts.until, done)
	st, err := store.Snapshot()
	if err != nil {
		return err
	}
	if simErr != nil && !errors.Is(simErr, context.Canceled) {
		return fmt.Errorf("simulating: %w", simErr)
	}
	if simErr != nil {
		fmt.Printf("⚠ Interrupted on %s, exporting progress so far\n", st.Date.Format(time.DateOnly))
	}

	p := message.NewPrinter(language.English)
	p.Printf("Simulated to %s in %v (%d events queued)\n",
		st.Date.Format(time.DateOnly), time.Since(begin).Round(time.Millisecond), st.Queue.Len())

	season := st.Current
	if season == nil {
		return fmt.Errorf("no season has started by %s", st.Date.Format(time.DateOnly))
	}
	printStandings(p, st, season)

	wages := 0
	for _, ct := range st.Contracts {
		wages += ct.Salary
	}
	p.Printf("\nSigned players: %d of %d, wage bill %d\n", len(st.Contracts), len(st.Players), wages)

	if opts.showMetrics {
		printMetrics(p, a.reg)
	}

	if err := save(st, season, opts.output); err != nil {
		return err
	}
	fmt.Printf("\n✓ Season %s saved to %s\n", season.Key, opts.output)
	return nil
}

func printStandings(p *message.Printer, st *state.State, season *state.Season) {
	played, total := 0, 0
	for _, r := range season.Rounds {
		for _, id := range r.MatchIDs {
			total++
			if st.Matches[id].Result != nil {
				played++
			}
		}
	}
	p.Printf("\n%s standings (%d of %d matches played):\n", season.Key, played, total)
	p.Printf("  %3s %-15s %3s %3s %3s %3s %4s %4s %4s %4s\n", "Pos", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts")
	for i, r := range league.Standings(st, season) {
		p.Printf("  %3d %-15s %3d %3d %3d %3d %4d %4d %+4d %4d\n",
			i+1, r.Team, r.Played, r.Wins, r.Draws, r.Losses, r.GoalsFor, r.GoalsAgainst, r.GoalDiff(), r.Points)
	}
}

func printMetrics(p *message.Printer, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		fmt.Printf("⚠ gathering metrics: %v\n", err)
		return
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	fmt.Println("\nMetrics:")
	for _, f := range families {
		for _, m := range f.GetMetric() {
			var labels []string
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			name := f.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			value := m.GetGauge().GetValue()
			if c := m.GetCounter(); c != nil {
				value = c.GetValue()
			}
			p.Printf("  %-55s %v\n", name, value)
		}
	}
}

// toSchedule rebuilds the fixture list of a stored season.
func toSchedule(st *state.State, season *state.Season) *schedule.Schedule {
	s := &schedule.Schedule{Rounds: make([]schedule.Round, len(season.Rounds))}
	for i, r := range season.Rounds {
		round := schedule.Round{Date: r.Date}
		for _, id := range r.MatchIDs {
			m := st.Matches[id]
			round.Matches = append(round.Matches, schedule.Match{ID: m.ID, Home: m.Home, Away: m.Away, Label: m.Label})
		}
		s.Rounds[i] = round
	}
	return s
}

func save(st *state.State, season *state.Season, path string) error {
	f, err := excel.Generate(st, season)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	return nil
}
