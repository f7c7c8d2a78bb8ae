package engine

import (
	"time"

	"duel/agent"
	"duel/game"
	"duel/searcher"
)

// DefaultMaxTurns ends a game as a draw when nobody has won by then.
const DefaultMaxTurns = 300

// Seat is the agent playing one side and the depth it searches to.
type Seat struct {
	Agent agent.Agent
	Depth int
}

type MoveMetric struct {
	Step    int
	Player  game.Player
	Move    game.Move
	Score   float64
	Metrics searcher.SearchMetrics
}

type GameMetric struct {
	StartingPlayer game.Player
	Status         game.Status
	TurnLimit      bool // stopped by MaxTurns rather than by the rules
	StartTime      time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Result struct {
	GameMetric
	Final game.State
	Moves []MoveMetric
}
