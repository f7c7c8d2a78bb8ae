package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"duel/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "duel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := Load("")

		require.NoError(t, err)
		require.Equal(t, Onitama, c.Game)
		require.Equal(t, 300, c.MaxTurns)
		require.Equal(t, 6, c.Mancala.Pits)
		require.Equal(t, 4, c.Mancala.Seeds)
		require.Equal(t, HeuristicAgent, c.First.Agent)
		require.Equal(t, 3, c.Second.Depth)
		require.Equal(t, []int{56, 28, 14}, c.First.Hidden)
		require.Empty(t, c.Onitama.Cards)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
game: mancala
seed: 42
mancala:
  pits: 4
second:
  agent: network
  depth: 2
  hidden: [16]
`)

		c, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, Mancala, c.Game)
		require.Equal(t, uint64(42), c.Seed)
		require.Equal(t, 4, c.Mancala.Pits)
		require.Equal(t, 4, c.Mancala.Seeds, "Unset keys keep their default")
		require.Equal(t, NetworkAgent, c.Second.Agent)
		require.Equal(t, 2, c.Second.Depth)
		require.Equal(t, []int{16}, c.Second.Hidden)
		require.Equal(t, HeuristicAgent, c.First.Agent)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "first:\n  depth: 2\n")
		t.Setenv("DUEL_FIRST_DEPTH", "5")
		t.Setenv("DUEL_MAX_TURNS", "20")

		c, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 5, c.First.Depth)
		require.Equal(t, 20, c.MaxTurns)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid values are config errors", func(t *testing.T) {
		path := writeConfig(t, "game: chess\n")

		_, err := Load(path)

		var configErr *game.ConfigError
		require.True(t, errors.As(err, &configErr))
	})
}

func TestValidate(t *testing.T) {
	valid := Default()
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(c *Config){
		"four cards":     func(c *Config) { c.Onitama.Cards = []string{"tiger", "crab", "ox", "boar"} },
		"no seeds":       func(c *Config) { c.Game = Mancala; c.Mancala.Seeds = 0 },
		"no turns":       func(c *Config) { c.MaxTurns = 0 },
		"unknown agent":  func(c *Config) { c.First.Agent = "oracle" },
		"too deep":       func(c *Config) { c.Second.Depth = 99 },
		"negative depth": func(c *Config) { c.Second.Depth = -1 },
		"no goroutines":  func(c *Config) { c.First.Goroutines = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}
