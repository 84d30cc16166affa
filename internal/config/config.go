package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/seasonsim/internal/strategy"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

// MonthDay is a yearless calendar anchor written as "MM-DD".
type MonthDay struct {
	Month time.Month
	Day   int
}

func (m *MonthDay) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid month-day %q: %w", value.Value, err)
	}
	m.Month = t.Month()
	m.Day = t.Day()
	return nil
}

// In returns midnight UTC of this month and day in the given year.
func (m MonthDay) In(year int) time.Time {
	return time.Date(year, m.Month, m.Day, 0, 0, 0, 0, time.UTC)
}

func (m MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(m.Month), m.Day)
}

// Weekday parses day names like "sunday" in YAML.
type Weekday struct {
	time.Weekday
}

func (w *Weekday) UnmarshalYAML(value *yaml.Node) error {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(value.Value, d.String()) {
			w.Weekday = d
			return nil
		}
	}
	return fmt.Errorf("invalid weekday %q", value.Value)
}

type Division struct {
	Name  string   `yaml:"name"`
	Teams []string `yaml:"teams"`
}

type League struct {
	Name           string     `yaml:"name"`
	StartDate      Date       `yaml:"start_date"`
	Divisions      []Division `yaml:"divisions"`
	PlayersPerTeam int        `yaml:"players_per_team"`
}

// Calendar holds the anchors that drive the season lifecycle.
type Calendar struct {
	SeasonStart       MonthDay `yaml:"season_start"`
	ScheduleCutoff    MonthDay `yaml:"schedule_cutoff"`
	SeasonEnd         MonthDay `yaml:"season_end"`
	MatchDay          Weekday  `yaml:"match_day"`
	RoundIntervalDays int      `yaml:"round_interval_days"`
	SkillUpdateDay    int      `yaml:"skill_update_day"`
	ContractDelayDays int      `yaml:"contract_delay_days"`
}

type ScheduleSettings struct {
	Strategy string `yaml:"strategy"`
}

// Simulation holds runtime settings. These can be overridden from the
// environment, see ApplyEnv.
type Simulation struct {
	Seed            int64         `yaml:"seed" koanf:"seed"`
	TickInterval    time.Duration `yaml:"tick_interval" koanf:"tick_interval"`
	StepHours       int           `yaml:"step_hours" koanf:"step_hours"`
	StepsPerProcess int           `yaml:"steps_per_process" koanf:"steps_per_process"`
	LogLevel        string        `yaml:"log_level" koanf:"log_level"`
	LogFormat       string        `yaml:"log_format" koanf:"log_format"`
}

type Contracts struct {
	MinYears      int     `yaml:"min_years"`
	MaxYears      int     `yaml:"max_years"`
	RenewMinSkill float64 `yaml:"renew_min_skill"`
}

type Config struct {
	League     League           `yaml:"league"`
	Calendar   Calendar         `yaml:"calendar"`
	Schedule   ScheduleSettings `yaml:"schedule"`
	Simulation Simulation       `yaml:"simulation"`
	Contracts  Contracts        `yaml:"contracts"`
}

// DefaultCalendar returns the standard autumn-to-spring season calendar.
func DefaultCalendar() Calendar {
	return Calendar{
		SeasonStart:       MonthDay{time.September, 1},
		ScheduleCutoff:    MonthDay{time.September, 2},
		SeasonEnd:         MonthDay{time.June, 1},
		MatchDay:          Weekday{time.Sunday},
		RoundIntervalDays: 7,
		SkillUpdateDay:    1,
		ContractDelayDays: 1,
	}
}

// Default returns a Config with every optional setting filled in.
func Default() *Config {
	return &Config{
		League: League{
			PlayersPerTeam: 20,
		},
		Calendar: DefaultCalendar(),
		Schedule: ScheduleSettings{Strategy: "double_round_robin"},
		Simulation: Simulation{
			Seed:            42,
			StepHours:       12,
			StepsPerProcess: 2,
			LogLevel:        "info",
			LogFormat:       "text",
		},
		Contracts: Contracts{
			MinYears:      1,
			MaxYears:      5,
			RenewMinSkill: 50,
		},
	}
}

// AllTeams returns all team names across all divisions.
func (c *Config) AllTeams() []string {
	var teams []string
	for _, d := range c.League.Divisions {
		teams = append(teams, d.Teams...)
	}
	return teams
}

// StepSize is the simulated time covered by one clock step.
func (s Simulation) StepSize() time.Duration {
	return time.Duration(s.StepHours) * time.Hour
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if c.League.StartDate.Time.IsZero() {
		return fmt.Errorf("league start_date is required")
	}

	if len(c.League.Divisions) == 0 {
		return fmt.Errorf("at least one division is required")
	}

	// Check for duplicate team names
	seen := make(map[string]string)
	for _, div := range c.League.Divisions {
		if len(div.Teams) == 0 {
			return fmt.Errorf("division %q has no teams", div.Name)
		}
		for _, team := range div.Teams {
			if prevDiv, ok := seen[team]; ok {
				return fmt.Errorf("team %q appears in both %q and %q divisions", team, prevDiv, div.Name)
			}
			seen[team] = div.Name
		}
	}

	// The circle method has no bye rounds
	if n := len(seen); n < 2 || n%2 != 0 {
		return fmt.Errorf("league needs an even number of teams, got %d", n)
	}

	if c.League.PlayersPerTeam <= 0 {
		return fmt.Errorf("players_per_team must be positive")
	}

	if _, err := strategy.Get(c.Schedule.Strategy); err != nil {
		return err
	}

	if err := c.Calendar.validate(); err != nil {
		return fmt.Errorf("calendar: %w", err)
	}

	if c.Simulation.StepHours <= 0 || c.Simulation.StepsPerProcess <= 0 {
		return fmt.Errorf("step_hours and steps_per_process must be positive")
	}
	if c.Simulation.TickInterval < 0 {
		return fmt.Errorf("tick_interval must not be negative")
	}

	if c.Contracts.MinYears <= 0 || c.Contracts.MaxYears < c.Contracts.MinYears {
		return fmt.Errorf("contracts: need 0 < min_years <= max_years, got %d and %d",
			c.Contracts.MinYears, c.Contracts.MaxYears)
	}

	return nil
}

func (c Calendar) validate() error {
	// Any non-leap year works for ordering month-day anchors.
	const year = 2001
	for name, md := range map[string]MonthDay{
		"season_start":    c.SeasonStart,
		"schedule_cutoff": c.ScheduleCutoff,
		"season_end":      c.SeasonEnd,
	} {
		if md.Month < time.January || md.Month > time.December || md.Day < 1 || md.In(year).Day() != md.Day {
			return fmt.Errorf("%s %s is not a valid date", name, md)
		}
	}
	if !c.SeasonStart.In(year).Before(c.ScheduleCutoff.In(year)) {
		return fmt.Errorf("season_start %s must be before schedule_cutoff %s", c.SeasonStart, c.ScheduleCutoff)
	}
	if !c.SeasonEnd.In(year).Before(c.SeasonStart.In(year)) {
		return fmt.Errorf("season_end %s must fall before season_start %s in the calendar year", c.SeasonEnd, c.SeasonStart)
	}
	if c.RoundIntervalDays <= 0 {
		return fmt.Errorf("round_interval_days must be positive")
	}
	if c.SkillUpdateDay < 1 || c.SkillUpdateDay > 28 {
		return fmt.Errorf("skill_update_day must be between 1 and 28")
	}
	if c.ContractDelayDays < 0 {
		return fmt.Errorf("contract_delay_days must not be negative")
	}
	return nil
}
