package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/pkmbattle/internal/data"
	"github.com/udisondev/pkmbattle/internal/game/combat"
	"github.com/udisondev/pkmbattle/internal/game/stats"
)

// EnvPrefix prefixes every environment override, e.g. PKMBATTLE_DATA_DIR.
const EnvPrefix = "PKMBATTLE_"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds all configuration for battlecalc.
type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	Data    DataConfig    `yaml:"data" envPrefix:"DATA_"`
	Calc    CalcConfig    `yaml:"calc" envPrefix:"CALC_"`
	Counter CounterConfig `yaml:"counter" envPrefix:"COUNTER_"`
}

// DataConfig points at the CSV dataset.
type DataConfig struct {
	Dir             string `yaml:"dir" env:"DIR"`
	Generation      string `yaml:"generation" env:"GENERATION"`
	StatsGeneration string `yaml:"stats_generation" env:"STATS_GENERATION"`
	MovesGeneration string `yaml:"moves_generation" env:"MOVES_GENERATION"`
	Separator       string `yaml:"separator" env:"SEPARATOR"`

	// Explicit paths, override the generation-derived names
	StatsFile     string `yaml:"stats_file" env:"STATS_FILE"`
	MovesFile     string `yaml:"moves_file" env:"MOVES_FILE"`
	MovesetsFile  string `yaml:"movesets_file" env:"MOVESETS_FILE"`
	NaturesFile   string `yaml:"natures_file" env:"NATURES_FILE"`
	TypeChartFile string `yaml:"type_chart_file" env:"TYPE_CHART_FILE"`
}

// CalcConfig is the build used when a command doesn't specify one.
type CalcConfig struct {
	Level  int    `yaml:"level" env:"LEVEL"`
	Nature string `yaml:"nature" env:"NATURE"`
}

// CounterConfig tunes counter search and matchup scores.
type CounterConfig struct {
	TopKeys     int     `yaml:"top_keys" env:"TOP_KEYS"`
	AttackBias  float64 `yaml:"attack_bias" env:"ATTACK_BIAS"`
	DefenseBias float64 `yaml:"defense_bias" env:"DEFENSE_BIAS"`
}

// Default returns Config with sensible defaults.
func Default() Config {
	bias := combat.DefaultBias()
	return Config{
		LogLevel: "info",
		Data: DataConfig{
			Dir:             "data",
			Generation:      "9",
			StatsGeneration: "all",
			MovesGeneration: "all",
			Separator:       string(data.DefaultSeparator),
		},
		Calc: CalcConfig{
			Level:  stats.DefaultLevel,
			Nature: stats.DefaultNature,
		},
		Counter: CounterConfig{
			TopKeys:     combat.DefaultTopKeys,
			AttackBias:  bias.Attack,
			DefenseBias: bias.Defense,
		},
	}
}

// Load loads config from a YAML file and applies PKMBATTLE_* overrides.
// If the file doesn't exist, overrides are applied to defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ParseEnv applies PKMBATTLE_* environment variables on top of target.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks values the loader and calculator can't recover from.
func (c Config) Validate() error {
	if c.Data.Generation == "" {
		return fmt.Errorf("%w: data.generation is empty", ErrInvalid)
	}
	if c.Data.Separator != "" && utf8.RuneCountInString(c.Data.Separator) != 1 {
		return fmt.Errorf("%w: data.separator %q must be a single character", ErrInvalid, c.Data.Separator)
	}
	if c.Calc.Level != 0 && (c.Calc.Level < stats.MinLevel || c.Calc.Level > stats.MaxLevel) {
		return fmt.Errorf("%w: calc.level %d not in [%d, %d]", ErrInvalid, c.Calc.Level, stats.MinLevel, stats.MaxLevel)
	}
	if c.Counter.TopKeys < 0 {
		return fmt.Errorf("%w: counter.top_keys %d is negative", ErrInvalid, c.Counter.TopKeys)
	}
	return nil
}

// Store converts the data section for data.Load.
func (c Config) Store() data.Config {
	var sep rune
	if c.Data.Separator != "" {
		sep, _ = utf8.DecodeRuneInString(c.Data.Separator)
	}
	return data.Config{
		Dir:             c.Data.Dir,
		Generation:      c.Data.Generation,
		StatsGeneration: c.Data.StatsGeneration,
		MovesGeneration: c.Data.MovesGeneration,
		Separator:       sep,
		StatsFile:       c.Data.StatsFile,
		MovesFile:       c.Data.MovesFile,
		MovesetsFile:    c.Data.MovesetsFile,
		NaturesFile:     c.Data.NaturesFile,
		TypeChartFile:   c.Data.TypeChartFile,
	}
}

// Spec returns the default build for calculations.
func (c Config) Spec() stats.Spec {
	return stats.Spec{Nature: c.Calc.Nature, Level: c.Calc.Level}
}

// Bias returns the matchup score weights.
func (c Config) Bias() combat.Bias {
	return combat.Bias{Attack: c.Counter.AttackBias, Defense: c.Counter.DefenseBias}
}

// CounterOptions returns counter search options with the default build.
func (c Config) CounterOptions() combat.CounterOptions {
	return combat.CounterOptions{
		TopKeys: c.Counter.TopKeys,
		Spec:    c.Spec(),
		Bias:    c.Bias(),
	}
}
