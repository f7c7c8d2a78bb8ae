package agent

import (
	"duel/game"
	"duel/searcher"
)

type Agent interface {
	// FindMove returns the chosen move with its score and search metrics (if collected)
	FindMove(state game.State, depth int) (searcher.Result, error)
}

type searchAgent struct {
	searcher searcher.Searcher
}

// NewSearchAgent returns an agent that plays the move its searcher picks.
func NewSearchAgent(s searcher.Searcher) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) FindMove(state game.State, depth int) (searcher.Result, error) {
	return a.searcher.Search(state, depth)
}
