package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"duel/game"
)

type Engine struct {
	State    game.State
	Seats    [2]Seat
	MaxTurns int
}

type Option func(e *Engine)

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.MaxTurns = turns
		}
	}
}

func LocalEngine(state game.State, first, second Seat, options ...Option) (*Engine, error) {
	if state == nil {
		return nil, game.NewConfigError("engine", "no initial state")
	}
	if first.Agent == nil || second.Agent == nil {
		return nil, game.NewConfigError("engine", "both seats need an agent")
	}
	e := &Engine{
		State:    state,
		Seats:    [2]Seat{first, second},
		MaxTurns: DefaultMaxTurns,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Run plays the game to the end or until MaxTurns moves have been made.
// A side left without a legal move gets the game's blocked outcome. Errors
// come only from agents that fail or return an illegal move.
func (e *Engine) Run() (Result, error) {
	result := Result{GameMetric: GameMetric{
		StartingPlayer: e.State.Player(),
		StartTime:      time.Now(),
	}}

	log.Info().Msgf("player %s is starting", e.State.Player())

	status := e.State.Status()
	for !status.Terminal() {
		if len(e.State.LegalMoves()) == 0 {
			status = e.State.Blocked()
			log.Info().Msgf("player %s has no legal moves", e.State.Player())
			break
		}
		if result.TotalMoves >= e.MaxTurns {
			log.Info().Msgf("stopped after %d turns without a winner", e.MaxTurns)
			status = game.Draw
			result.TurnLimit = true
			break
		}

		mover := e.State.Player()
		seat := e.Seats[mover]
		found, err := seat.Agent.FindMove(e.State, seat.Depth)
		if err != nil {
			return result, fmt.Errorf("player %s failed to find a move: %w", mover, err)
		}
		next, err := game.Apply(e.State, found.Move)
		if err != nil {
			return result, fmt.Errorf("player %s: %w", mover, err)
		}

		result.TotalMoves++
		result.Moves = append(result.Moves, MoveMetric{
			Step:    result.TotalMoves,
			Player:  mover,
			Move:    found.Move,
			Score:   found.Score,
			Metrics: found.Metrics,
		})
		log.Debug().
			Int("step", result.TotalMoves).
			Stringer("player", mover).
			Stringer("move", found.Move).
			Float64("score", found.Score).
			Msg("move played")

		e.State = next
		status = next.Status()
	}

	result.Status = status
	result.Final = e.State
	result.Duration = time.Since(result.StartTime)
	log.Info().Msgf("game over after %d moves: %s", result.TotalMoves, status)
	return result, nil
}
