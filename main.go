package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"duel/config"
	"duel/engine"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// DUEL_CONFIG names an optional YAML file, other DUEL_* variables override single keys
	c, err := config.Load(os.Getenv("DUEL_CONFIG"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	e, err := engine.Build(c)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up the game")
	}
	result, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}

	nodes := lo.SumBy(result.Moves, func(m engine.MoveMetric) int64 { return m.Metrics.Nodes })
	log.Info().
		Str("game", c.Game).
		Stringer("status", result.Status).
		Bool("turn_limit", result.TurnLimit).
		Int("moves", result.TotalMoves).
		Int64("nodes", nodes).
		Dur("duration", result.Duration).
		Msg("finished")
	log.Info().Msgf("final position:\n%v", result.Final)
}
