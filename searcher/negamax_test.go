package searcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"duel/game"
	"duel/mancala"
)

type treeMove string

func (m treeMove) String() string {
	return string(m)
}

// treeNode is a hand-built game tree. value is scored from First's side.
type treeNode struct {
	name     string
	player   game.Player
	status   game.Status
	blocked  game.Status
	value    float64
	children []*treeNode
}

func (n *treeNode) Status() game.Status {
	return n.status
}

func (n *treeNode) Player() game.Player {
	return n.player
}

func (n *treeNode) LegalMoves() []game.Move {
	moves := make([]game.Move, len(n.children))
	for i, c := range n.children {
		moves[i] = treeMove(c.name)
	}
	return moves
}

func (n *treeNode) Play(move game.Move) game.State {
	for _, c := range n.children {
		if treeMove(c.name) == move {
			return c
		}
	}
	panic("unknown move " + move.String())
}

func (n *treeNode) Blocked() game.Status {
	return n.blocked
}

func (n *treeNode) ParseMove(text string) (game.Move, error) {
	return treeMove(text), nil
}

func leaf(name string, player game.Player, value float64) *treeNode {
	return &treeNode{name: name, player: player, value: value}
}

func branch(name string, player game.Player, children ...*treeNode) *treeNode {
	return &treeNode{name: name, player: player, children: children}
}

func evaluateTree(s game.State, perspective game.Player) float64 {
	if score, ok := game.TerminalScore(s.Status(), perspective); ok {
		return score
	}
	v := s.(*treeNode).value
	if perspective == game.Second {
		return -v
	}
	return v
}

func newTestNegamax(t *testing.T, options ...Option) *Negamax {
	t.Helper()
	n, err := NewNegamax(append([]Option{WithEvaluationFn(evaluateTree)}, options...)...)
	require.NoError(t, err)
	return n
}

func TestNewNegamax(t *testing.T) {
	t.Run("requires an evaluation function", func(t *testing.T) {
		_, err := NewNegamax()

		var configErr *game.ConfigError
		require.True(t, errors.As(err, &configErr))
	})

	t.Run("ignores non-positive goroutines", func(t *testing.T) {
		n := newTestNegamax(t, WithGoroutines(0))
		require.Equal(t, DefaultGoroutines, n.goroutines)
	})
}

func TestSearchDepthZero(t *testing.T) {
	t.Run("picks the best immediate successor", func(t *testing.T) {
		root := branch("root", game.First,
			leaf("a", game.Second, 1), leaf("b", game.Second, 3), leaf("c", game.Second, 2))

		result, err := newTestNegamax(t).Search(root, 0)

		require.NoError(t, err)
		require.Equal(t, treeMove("b"), result.Move)
		require.Equal(t, 3.0, result.Score)
	})

	t.Run("scores from the mover's side", func(t *testing.T) {
		root := branch("root", game.Second,
			leaf("a", game.First, 1), leaf("b", game.First, 3), leaf("c", game.First, 2))

		result, err := newTestNegamax(t).Search(root, 0)

		require.NoError(t, err)
		require.Equal(t, treeMove("a"), result.Move)
		require.Equal(t, -1.0, result.Score)
	})

	t.Run("first maximal move wins ties", func(t *testing.T) {
		root := branch("root", game.First,
			leaf("a", game.Second, 0), leaf("b", game.Second, 2), leaf("c", game.Second, 2))

		result, err := newTestNegamax(t).Search(root, 0)

		require.NoError(t, err)
		require.Equal(t, treeMove("b"), result.Move)
	})
}

func TestSearchDeeper(t *testing.T) {
	t.Run("opponent replies are negated", func(t *testing.T) {
		root := branch("root", game.First,
			branch("a", game.Second, leaf("a1", game.First, 5), leaf("a2", game.First, -4)),
			branch("b", game.Second, leaf("b1", game.First, 1), leaf("b2", game.First, 2)))

		result, err := newTestNegamax(t, WithMetrics()).Search(root, 1)

		require.NoError(t, err)
		require.Equal(t, treeMove("b"), result.Move, "Second answers a with a2, which is worse for First")
		require.Equal(t, 1.0, result.Score)
		require.Equal(t, int64(6), result.Metrics.Nodes)
		require.Equal(t, int64(4), result.Metrics.Leaves)
		require.Equal(t, 1, result.Metrics.Depth)
	})

	t.Run("extra turns are not negated", func(t *testing.T) {
		root := branch("root", game.First,
			branch("a", game.First, leaf("a1", game.Second, 5), leaf("a2", game.Second, -4)),
			branch("b", game.Second, leaf("b1", game.First, 1), leaf("b2", game.First, 2)))

		result, err := newTestNegamax(t).Search(root, 1)

		require.NoError(t, err)
		require.Equal(t, treeMove("a"), result.Move)
		require.Equal(t, 5.0, result.Score)
	})

	t.Run("finished successors are not searched further", func(t *testing.T) {
		win := leaf("win", game.Second, 0)
		win.status = game.FirstWins
		win.children = []*treeNode{leaf("never", game.First, -100)}
		root := branch("root", game.First,
			branch("a", game.Second, leaf("a1", game.First, 7)), win)

		result, err := newTestNegamax(t).Search(root, 2)

		require.NoError(t, err)
		require.Equal(t, treeMove("win"), result.Move)
		require.Equal(t, game.WinScore, result.Score)
	})

	t.Run("blocked successors use the blocked outcome", func(t *testing.T) {
		stuck := leaf("stuck", game.Second, 0)
		stuck.blocked = game.FirstWins
		root := branch("root", game.First,
			branch("a", game.Second, leaf("a1", game.First, 7)), stuck)

		result, err := newTestNegamax(t).Search(root, 1)

		require.NoError(t, err)
		require.Equal(t, treeMove("stuck"), result.Move)
		require.Equal(t, game.WinScore, result.Score)
	})
}

func TestSearchErrors(t *testing.T) {
	n := newTestNegamax(t)

	t.Run("no legal moves", func(t *testing.T) {
		_, err := n.Search(branch("root", game.First), 2)
		require.ErrorIs(t, err, game.ErrNoLegalMoves)
	})

	t.Run("finished game", func(t *testing.T) {
		root := branch("root", game.First, leaf("a", game.Second, 0))
		root.status = game.Draw

		_, err := n.Search(root, 2)

		require.ErrorIs(t, err, game.ErrGameOver)
	})

	t.Run("depth out of range", func(t *testing.T) {
		root := branch("root", game.First, leaf("a", game.Second, 0))

		_, err := n.Search(root, -1)
		require.Error(t, err)
		_, err = n.Search(root, MaxDepth+1)
		require.Error(t, err)
	})
}

func TestSearchMancala(t *testing.T) {
	newSearch := func(t *testing.T, options ...Option) *Negamax {
		n, err := NewNegamax(append([]Option{WithEvaluationFn(mancala.EvaluateStores)}, options...)...)
		require.NoError(t, err)
		return n
	}
	start, err := mancala.NewGame(4, 4)
	require.NoError(t, err)

	t.Run("depth three is deterministic", func(t *testing.T) {
		n := newSearch(t)
		first, err := n.Search(start, 3)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			again, err := n.Search(start, 3)
			require.NoError(t, err)
			require.Equal(t, first.Move, again.Move)
			require.Equal(t, first.Score, again.Score)
		}
	})

	t.Run("depth zero mirrors the evaluator", func(t *testing.T) {
		var want game.Move
		best := 0.0
		for i, m := range start.LegalMoves() {
			if s := mancala.EvaluateStores(start.Play(m), start.Player()); i == 0 || s > best {
				want, best = m, s
			}
		}

		result, err := newSearch(t).Search(start, 0)

		require.NoError(t, err)
		require.Equal(t, want, result.Move)
		require.Equal(t, best, result.Score)
	})

	t.Run("parallel search agrees with sequential search", func(t *testing.T) {
		sequential, err := newSearch(t).Search(start, 4)
		require.NoError(t, err)

		parallel, err := newSearch(t, WithGoroutines(4), WithMetrics()).Search(start, 4)

		require.NoError(t, err)
		require.Equal(t, sequential.Move, parallel.Move)
		require.Equal(t, sequential.Score, parallel.Score)
		require.Equal(t, 4, parallel.Metrics.Goroutines)
		require.Positive(t, parallel.Metrics.Nodes)
		require.LessOrEqual(t, parallel.Metrics.Leaves, parallel.Metrics.Nodes)
	})
}
