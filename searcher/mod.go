package searcher

import "duel/game"

// Searcher picks a move for the side to move of a running state.
type Searcher interface {
	Search(state game.State, depth int) (Result, error)
}

// Result is the chosen move and its score from the mover's point of view.
type Result struct {
	Move    game.Move
	Score   float64
	Metrics SearchMetrics
}
