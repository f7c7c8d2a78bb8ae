package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"duel/agent"
	"duel/config"
	"duel/game"
	"duel/mancala"
	"duel/searcher"
)

type stuckState struct {
	mancala.State
	blocked game.Status
}

func (s stuckState) LegalMoves() []game.Move {
	return nil
}

func (s stuckState) Blocked() game.Status {
	return s.blocked
}

// blockingState leaves the next side without a move.
type blockingState struct {
	mancala.State
}

func (s blockingState) Play(move game.Move) game.State {
	return stuckState{State: s.State.Play(move).(mancala.State), blocked: game.FirstWins}
}

type fixedAgent struct {
	move game.Move
	err  error
}

func (a fixedAgent) FindMove(game.State, int) (searcher.Result, error) {
	return searcher.Result{Move: a.move}, a.err
}

func heuristicSeat(t *testing.T, depth int) Seat {
	t.Helper()
	negamax, err := searcher.NewNegamax(searcher.WithEvaluationFn(mancala.EvaluateStores), searcher.WithMetrics())
	require.NoError(t, err)
	return Seat{Agent: agent.NewSearchAgent(negamax), Depth: depth}
}

func randomSeat(seed uint64) Seat {
	return Seat{Agent: agent.NewRandomAgent(rand.New(rand.NewSource(seed)))}
}

func newMancala(t *testing.T) mancala.State {
	t.Helper()
	s, err := mancala.NewGame(6, 4)
	require.NoError(t, err)
	return s
}

func TestLocalEngine(t *testing.T) {
	t.Run("needs both agents", func(t *testing.T) {
		_, err := LocalEngine(newMancala(t), heuristicSeat(t, 1), Seat{})

		var configErr *game.ConfigError
		require.True(t, errors.As(err, &configErr))
	})

	t.Run("non-positive max turns keep the default", func(t *testing.T) {
		e, err := LocalEngine(newMancala(t), randomSeat(1), randomSeat(2), WithMaxTurns(0))
		require.NoError(t, err)
		require.Equal(t, DefaultMaxTurns, e.MaxTurns)
	})
}

func TestRun(t *testing.T) {
	t.Run("plays to the end", func(t *testing.T) {
		e, err := LocalEngine(newMancala(t), heuristicSeat(t, 2), randomSeat(3))
		require.NoError(t, err)

		result, err := e.Run()

		require.NoError(t, err)
		require.True(t, result.Status.Terminal())
		require.False(t, result.TurnLimit)
		require.Equal(t, result.Status, result.Final.Status())
		require.Equal(t, game.First, result.StartingPlayer)
		require.Len(t, result.Moves, result.TotalMoves)
		for i, m := range result.Moves {
			require.Equal(t, i+1, m.Step)
			if m.Player == game.First {
				require.Positive(t, m.Metrics.Nodes, "Search metrics are recorded for search agents")
			}
		}
	})

	t.Run("turn limit is a draw", func(t *testing.T) {
		e, err := LocalEngine(newMancala(t), randomSeat(1), randomSeat(2), WithMaxTurns(3))
		require.NoError(t, err)

		result, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.Draw, result.Status)
		require.True(t, result.TurnLimit)
		require.Equal(t, 3, result.TotalMoves)
		require.Equal(t, game.Running, result.Final.Status())
	})

	t.Run("blocked side", func(t *testing.T) {
		stuck := stuckState{State: newMancala(t), blocked: game.SecondWins}
		e, err := LocalEngine(stuck, randomSeat(1), randomSeat(2))
		require.NoError(t, err)

		result, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.SecondWins, result.Status)
		require.Zero(t, result.TotalMoves)
	})

	t.Run("blocked exactly at the turn limit", func(t *testing.T) {
		e, err := LocalEngine(blockingState{State: newMancala(t)}, randomSeat(1), randomSeat(2), WithMaxTurns(1))
		require.NoError(t, err)

		result, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, 1, result.TotalMoves)
		require.Equal(t, game.FirstWins, result.Status)
		require.False(t, result.TurnLimit)
	})

	t.Run("agent failure", func(t *testing.T) {
		e, err := LocalEngine(newMancala(t), Seat{Agent: fixedAgent{err: game.ErrNoLegalMoves}}, randomSeat(2))
		require.NoError(t, err)

		_, err = e.Run()

		require.ErrorIs(t, err, game.ErrNoLegalMoves)
	})

	t.Run("illegal move", func(t *testing.T) {
		e, err := LocalEngine(newMancala(t), Seat{Agent: fixedAgent{move: mancala.Move(9)}}, randomSeat(2))
		require.NoError(t, err)

		_, err = e.Run()

		require.ErrorIs(t, err, game.ErrInvalidMove)
	})
}

func TestBuild(t *testing.T) {
	t.Run("onitama with a fixed deal", func(t *testing.T) {
		c := config.Default()
		c.Onitama.Cards = []string{"tiger", "crab", "monkey", "ox", "boar"}
		c.First.Depth = 1
		c.Second.Depth = 0
		c.MaxTurns = 10

		e, err := Build(c)
		require.NoError(t, err)
		result, err := e.Run()

		require.NoError(t, err)
		require.LessOrEqual(t, result.TotalMoves, 10)
		require.Equal(t, game.First, result.StartingPlayer, "The boar on the table is a first player card")
	})

	t.Run("mancala network against random is reproducible", func(t *testing.T) {
		c := config.Default()
		c.Game = config.Mancala
		c.Mancala.Pits = 4
		c.First.Agent = config.NetworkAgent
		c.First.Hidden = []int{8}
		c.First.Depth = 1
		c.Second.Agent = config.RandomAgent
		c.Seed = 11

		play := func() []MoveMetric {
			e, err := Build(c)
			require.NoError(t, err)
			result, err := e.Run()
			require.NoError(t, err)
			require.True(t, result.Status.Terminal())
			return result.Moves
		}
		first, second := play(), play()

		require.Equal(t, len(first), len(second))
		for i := range first {
			require.Equal(t, first[i].Move, second[i].Move)
			require.Equal(t, first[i].Score, second[i].Score)
		}
	})

	t.Run("bad weights file", func(t *testing.T) {
		c := config.Default()
		c.First.Agent = config.NetworkAgent
		c.First.Weights = t.TempDir() + "/missing.yaml"

		_, err := Build(c)

		require.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		c := config.Default()
		c.Game = "go"

		_, err := Build(c)

		var configErr *game.ConfigError
		require.True(t, errors.As(err, &configErr))
	})
}
