package player

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"duel/agent"
	"duel/game"
	"duel/gamemaster"
)

// pollInterval is how often a waiting controller checks whether it is its turn.
const pollInterval = 5 * time.Millisecond

type Controller interface {
	Run(ctx context.Context) error
}

// agentController plays one side of a live game with an agent.
type agentController struct {
	side   game.Player
	agent  agent.Agent
	depth  int
	master gamemaster.Master
}

func NewAgentController(side game.Player, a agent.Agent, depth int, master gamemaster.Master) Controller {
	return &agentController{
		side:   side,
		agent:  a,
		depth:  depth,
		master: master,
	}
}

// Run moves whenever it is the controller's turn and returns once the game
// is over or ctx is done.
func (c *agentController) Run(ctx context.Context) error {
	for {
		if c.master.Status().Terminal() {
			return nil
		}
		state := c.master.State()
		if state == nil {
			return game.NewConfigError("controller", "the session must be initialized before Run")
		}
		if state.Player() != c.side {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollInterval):
			}
			continue
		}

		found, err := c.agent.FindMove(state, c.depth)
		if err != nil {
			return err
		}
		err = c.master.Play(found.Move)
		if errors.Is(err, game.ErrGameOver) {
			return nil
		}
		if err != nil {
			return err
		}
		log.Debug().Stringer("player", c.side).Stringer("move", found.Move).Msg("controller moved")
	}
}
