package agent

import (
	"golang.org/x/exp/rand"

	"duel/game"
	"duel/searcher"
)

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that ignores depth and plays a
// uniformly random legal move drawn from rng.
func NewRandomAgent(rng *rand.Rand) Agent {
	return &randomAgent{rng: rng}
}

func (a *randomAgent) FindMove(state game.State, _ int) (searcher.Result, error) {
	if state.Status().Terminal() {
		return searcher.Result{}, game.ErrGameOver
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return searcher.Result{}, game.ErrNoLegalMoves
	}
	return searcher.Result{Move: moves[a.rng.Intn(len(moves))]}, nil
}
