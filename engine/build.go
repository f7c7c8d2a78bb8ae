package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"duel/agent"
	"duel/config"
	"duel/game"
	"duel/mancala"
	"duel/network"
	"duel/onitama"
	"duel/searcher"
)

// weightScale is the standard deviation of randomly initialized network weights.
const weightScale = 0.1

type rules struct {
	start     game.State
	heuristic game.Evaluate
	encoder   game.Encoder
}

// Build sets up the game and both seats described by c. Every random choice
// is drawn from sources seeded with c.Seed.
func Build(c config.Config) (*Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(c.Seed))

	r, err := newRules(c, rng)
	if err != nil {
		return nil, err
	}
	first, err := newSeat(c.First, r, c.Seed+1)
	if err != nil {
		return nil, fmt.Errorf("first seat: %w", err)
	}
	second, err := newSeat(c.Second, r, c.Seed+2)
	if err != nil {
		return nil, fmt.Errorf("second seat: %w", err)
	}
	return LocalEngine(r.start, first, second, WithMaxTurns(c.MaxTurns))
}

func newRules(c config.Config, rng *rand.Rand) (rules, error) {
	switch c.Game {
	case config.Onitama:
		start := onitama.NewGame(rng)
		if len(c.Onitama.Cards) > 0 {
			cards, err := onitama.ParseCards(c.Onitama.Cards)
			if err != nil {
				return rules{}, err
			}
			start = onitama.FromCards(cards)
		}
		log.Info().Msgf("onitama table card: %s", start.Table())
		return rules{start: start, heuristic: onitama.EvaluateMaterial, encoder: onitama.Encoder{}}, nil
	case config.Mancala:
		start, err := mancala.NewGame(c.Mancala.Pits, c.Mancala.Seeds)
		if err != nil {
			return rules{}, err
		}
		return rules{
			start:     start,
			heuristic: mancala.EvaluateStores,
			encoder:   mancala.Encoder{PitsPerSide: c.Mancala.Pits},
		}, nil
	}
	return rules{}, game.NewConfigError("engine", "unknown game %q", c.Game)
}

func newSeat(p config.PlayerConfig, r rules, seed uint64) (Seat, error) {
	rng := rand.New(rand.NewSource(seed))
	var evaluate game.Evaluate
	switch p.Agent {
	case config.RandomAgent:
		return Seat{Agent: agent.NewRandomAgent(rng), Depth: p.Depth}, nil
	case config.HeuristicAgent:
		evaluate = r.heuristic
	case config.NetworkAgent:
		ev, err := newNetworkEvaluator(p, r.encoder, rng)
		if err != nil {
			return Seat{}, err
		}
		evaluate = ev.Evaluate
	default:
		return Seat{}, game.NewConfigError("engine", "unknown agent %q", p.Agent)
	}

	negamax, err := searcher.NewNegamax(
		searcher.WithEvaluationFn(evaluate),
		searcher.WithGoroutines(p.Goroutines),
		searcher.WithMetrics(),
	)
	if err != nil {
		return Seat{}, err
	}
	return Seat{Agent: agent.NewSearchAgent(negamax), Depth: p.Depth}, nil
}

func newNetworkEvaluator(p config.PlayerConfig, encoder game.Encoder, rng *rand.Rand) (*network.Evaluator, error) {
	var (
		net *network.Network
		err error
	)
	if p.Weights != "" {
		net, err = network.LoadFile(p.Weights)
	} else {
		widths := lo.Flatten([][]int{{encoder.Width()}, p.Hidden, {1}})
		log.Info().Msgf("no weights given, initializing a %v network", widths)
		net, err = network.New(widths, network.WithWeights(func() float64 {
			return rng.NormFloat64() * weightScale
		}))
	}
	if err != nil {
		return nil, err
	}
	return network.NewEvaluator(net, encoder)
}
