package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "seasonsim",
		Short: "Round-robin league scheduler and season simulator",
	}

	var configFile string
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and validate season fixtures",
	}

	var outputFile string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate the first season's fixtures from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), configPath, outputFile)
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "fixtures.xlsx", "Output Excel file path")

	validateCmd := &cobra.Command{
		Use:          "validate <season.xlsx>",
		Short:        "Validate exported fixtures against the round-robin rules",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(configPath, args[0])
		},
	}

	var simOpts simulateOptions
	simulateCmd := &cobra.Command{
		Use:          "simulate",
		Short:        "Run the season clock and export the latest season with results",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			if simOpts.untilFlag != "" {
				until, err := time.Parse(time.DateOnly, simOpts.untilFlag)
				if err != nil {
					return fmt.Errorf("invalid --until date %q: %w", simOpts.untilFlag, err)
				}
				simOpts.until = until
			}
			return runSimulate(cmd.Context(), configPath, simOpts)
		},
	}
	simulateCmd.Flags().StringVar(&simOpts.untilFlag, "until", "", "Simulate up to this date, YYYY-MM-DD (default: end of the first season)")
	simulateCmd.Flags().StringVarP(&simOpts.output, "output", "o", "season.xlsx", "Output Excel file path")
	simulateCmd.Flags().BoolVar(&simOpts.showMetrics, "metrics", false, "Print simulation counters when done")

	scheduleCmd.AddCommand(generateCmd, validateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd, simulateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# seasonsim league configuration
# ==============================
# This file defines a league, its season calendar and how the simulation runs.

# League defines the competitors. Teams are grouped into divisions for
# reporting; every team plays every other team regardless of division.
# The round-robin schedule needs an even number of teams in total.
league:
  name: Northern Premier
  start_date: "2026-07-01"     # The simulation calendar starts here
  players_per_team: 20
  divisions:
    - name: East
      teams: [Harbor, Millbrook, Stonegate, Westfield]
    - name: West
      teams: [Ashford, Brookside, Crestview, Dunmore]

# Calendar anchors are month-day pairs ("MM-DD") repeated every year.
calendar:
  season_start: "09-01"        # The next season's fixtures are built on this day
  schedule_cutoff: "09-02"     # A season cannot start on or after this day
  season_end: "06-01"          # Results are archived on this day the following year
  match_day: sunday            # Rounds are played on the first one after the cutoff
  round_interval_days: 7       # Days between rounds
  skill_update_day: 1          # Players develop on this day of every month
  contract_delay_days: 1       # Contracts are reviewed this many days after season end

# Strategy determines how fixtures are generated.
# "round_robin" plays every pair once (N-1 rounds).
# "double_round_robin" plays every pair home and away (2(N-1) rounds).
schedule:
  strategy: double_round_robin

# Simulation settings. Each can be overridden from the environment,
# e.g. SEASONSIM_SEED=7 or SEASONSIM_LOG_LEVEL=debug.
simulation:
  seed: 42                     # Same seed, same league, same results
  tick_interval: 0s            # Wall-clock delay between clock ticks
  step_hours: 12               # Simulated time per clock step
  steps_per_process: 2         # Clock steps per tick
  log_level: info              # debug, info, warn or error
  log_format: text             # text or json

# Contracts expire at the end of a season. Players at or above
# renew_min_skill are offered a new contract of min_years to max_years.
contracts:
  min_years: 1
  max_years: 5
  renew_min_skill: 50
`
