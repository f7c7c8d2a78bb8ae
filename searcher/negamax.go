package searcher

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"duel/game"
)

type Option func(n *Negamax)

// Negamax is a plain depth-bounded search with no pruning and no tables.
// It keeps no state between searches.
type Negamax struct {
	goroutines int
	evaluate   game.Evaluate
	collector  func() MetricsCollector
}

var _ Searcher = (*Negamax)(nil)

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(n *Negamax) {
		if evaluate != nil {
			n.evaluate = evaluate
		}
	}
}

// WithGoroutines scores root moves concurrently. The chosen move is the same
// as in a sequential search.
func WithGoroutines(goroutines int) Option {
	return func(n *Negamax) {
		if goroutines > 0 {
			n.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(n *Negamax) {
		n.collector = NewMetricsCollector
	}
}

func NewNegamax(options ...Option) (*Negamax, error) {
	n := &Negamax{ // Default values
		goroutines: DefaultGoroutines,
		collector:  NewNoMetricsCollector,
	}
	for _, option := range options {
		option(n)
	}
	if n.evaluate == nil {
		return nil, game.NewConfigError("search", "an evaluation function is required")
	}
	return n, nil
}

// Search returns the best move for the side to move. Every root move is
// played and its successor searched depth more plies, so depth 0 picks the
// move whose successor evaluates best for the mover. Ties go to the first
// move in LegalMoves order.
func (n *Negamax) Search(state game.State, depth int) (Result, error) {
	if state.Status().Terminal() {
		return Result{}, game.ErrGameOver
	}
	if depth < 0 || depth > MaxDepth {
		return Result{}, fmt.Errorf("search depth %d outside [0, %d]", depth, MaxDepth)
	}
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return Result{}, game.ErrNoLegalMoves
	}

	metrics := n.collector()
	metrics.Start(depth, n.goroutines)

	scores := make([]float64, len(moves))
	if n.goroutines > 1 && len(moves) > 1 {
		var g errgroup.Group
		g.SetLimit(n.goroutines)
		for i, move := range moves {
			g.Go(func() error {
				scores[i] = n.score(state, move, depth, metrics)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, move := range moves {
			scores[i] = n.score(state, move, depth, metrics)
		}
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	result := Result{Move: moves[best], Score: scores[best], Metrics: metrics.Complete()}
	log.Debug().
		Stringer("player", state.Player()).
		Int("depth", depth).
		Int("moves", len(moves)).
		Stringer("move", result.Move).
		Float64("score", result.Score).
		Int64("nodes", result.Metrics.Nodes).
		Msg("search complete")
	return result, nil
}

// score rates playing move in state from the mover's point of view.
func (n *Negamax) score(state game.State, move game.Move, depth int, metrics MetricsCollector) float64 {
	mover := state.Player()
	child := state.Play(move)
	metrics.AddNode()

	if depth == 0 || child.Status().Terminal() {
		metrics.AddLeaf()
		return n.evaluate(child, mover)
	}

	moves := child.LegalMoves()
	if len(moves) == 0 {
		metrics.AddLeaf()
		score, _ := game.TerminalScore(child.Blocked(), mover)
		return score
	}

	best := math.Inf(-1)
	for _, m := range moves {
		if s := n.score(child, m, depth-1, metrics); s > best {
			best = s
		}
	}
	// Extra turns keep the same side to move, so only a real turn change negates.
	if child.Player() == mover {
		return best
	}
	return -best
}
