package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides, e.g. SEASONSIM_SEED.
const EnvPrefix = "SEASONSIM_"

// ApplyEnv overlays SEASONSIM_* environment variables onto the simulation
// settings and re-validates the result.
//
// Keys map flat onto the koanf tags of Simulation: SEASONSIM_LOG_LEVEL ->
// log_level, SEASONSIM_TICK_INTERVAL -> tick_interval.
func (c *Config) ApplyEnv() error {
	k := koanf.New(".")
	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	sim := c.Simulation
	if err := k.UnmarshalWithConf("", &sim, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("applying environment: %w", err)
	}
	c.Simulation = sim
	return c.validate()
}
