package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"duel/game"
	"duel/searcher"
)

// Games and agents known to engine.Build.
const (
	Onitama = "onitama"
	Mancala = "mancala"

	HeuristicAgent = "heuristic"
	NetworkAgent   = "network"
	RandomAgent    = "random"
)

// EnvPrefix prefixes environment overrides, e.g. DUEL_FIRST_DEPTH=4.
const EnvPrefix = "DUEL"

type Config struct {
	Game     string        `mapstructure:"game"`
	Seed     uint64        `mapstructure:"seed"`
	MaxTurns int           `mapstructure:"max_turns"`
	LogLevel string        `mapstructure:"log_level"`
	Onitama  OnitamaConfig `mapstructure:"onitama"`
	Mancala  MancalaConfig `mapstructure:"mancala"`
	First    PlayerConfig  `mapstructure:"first"`
	Second   PlayerConfig  `mapstructure:"second"`
}

type OnitamaConfig struct {
	// Cards fixes the deal: first's two, second's two, then the table card.
	// Empty deals five random cards from the seed.
	Cards []string `mapstructure:"cards"`
}

type MancalaConfig struct {
	Pits  int `mapstructure:"pits"`
	Seeds int `mapstructure:"seeds"`
}

type PlayerConfig struct {
	Agent      string `mapstructure:"agent"`
	Depth      int    `mapstructure:"depth"`
	Goroutines int    `mapstructure:"goroutines"`
	// Weights is a YAML weights file for the network agent. Without one the
	// network is initialized randomly with the Hidden layer widths.
	Weights string `mapstructure:"weights"`
	Hidden  []int  `mapstructure:"hidden"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game", Onitama)
	v.SetDefault("seed", 1)
	v.SetDefault("max_turns", 300)
	v.SetDefault("log_level", "info")
	v.SetDefault("onitama.cards", []string{})
	v.SetDefault("mancala.pits", 6)
	v.SetDefault("mancala.seeds", 4)
	for _, seat := range []string{"first", "second"} {
		v.SetDefault(seat+".agent", HeuristicAgent)
		v.SetDefault(seat+".depth", 3)
		v.SetDefault(seat+".goroutines", 1)
		v.SetDefault(seat+".weights", "")
		v.SetDefault(seat+".hidden", []int{56, 28, 14})
	}
}

// Load reads defaults, then the optional YAML file at path, then DUEL_*
// environment variables, and validates the result.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return c, c.Validate()
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	c, err := Load("")
	if err != nil {
		panic(err) // defaults are valid
	}
	return c
}

func (c Config) Validate() error {
	var errs []error
	switch c.Game {
	case Onitama:
		if n := len(c.Onitama.Cards); n != 0 && n != 5 {
			errs = append(errs, game.NewConfigError("config", "onitama needs 5 cards, got %d", n))
		}
	case Mancala:
		if c.Mancala.Pits < 1 || c.Mancala.Seeds < 1 {
			errs = append(errs, game.NewConfigError("config", "mancala needs pits and seeds, got %d and %d",
				c.Mancala.Pits, c.Mancala.Seeds))
		}
	default:
		errs = append(errs, game.NewConfigError("config", "unknown game %q", c.Game))
	}
	if c.MaxTurns < 1 {
		errs = append(errs, game.NewConfigError("config", "max_turns must be positive, got %d", c.MaxTurns))
	}
	errs = append(errs, c.First.validate("first"), c.Second.validate("second"))
	return errors.Join(errs...)
}

func (p PlayerConfig) validate(seat string) error {
	switch p.Agent {
	case HeuristicAgent, NetworkAgent, RandomAgent:
	default:
		return game.NewConfigError("config", "%s: unknown agent %q", seat, p.Agent)
	}
	if p.Depth < 0 || p.Depth > searcher.MaxDepth {
		return game.NewConfigError("config", "%s: depth %d outside [0, %d]", seat, p.Depth, searcher.MaxDepth)
	}
	if p.Goroutines < 1 {
		return game.NewConfigError("config", "%s: goroutines must be positive, got %d", seat, p.Goroutines)
	}
	return nil
}
