package network

import (
	"github.com/rs/zerolog/log"

	"duel/game"
)

// Evaluator scores states by encoding them and running the network.
type Evaluator struct {
	net     *Network
	encoder game.Encoder
}

// NewEvaluator pairs a single-output network with an encoder of matching width.
func NewEvaluator(net *Network, encoder game.Encoder) (*Evaluator, error) {
	if net == nil || encoder == nil {
		return nil, game.NewConfigError("network evaluator", "network and encoder are required")
	}
	if encoder.Width() != net.InputWidth() {
		return nil, game.NewConfigError("network evaluator", "encoder produces %d features but the network takes %d",
			encoder.Width(), net.InputWidth())
	}
	if net.OutputWidth() != 1 {
		return nil, game.NewConfigError("network evaluator", "network must produce one score, got %d outputs", net.OutputWidth())
	}
	return &Evaluator{net: net, encoder: encoder}, nil
}

// Evaluate implements game.Evaluate. Finished games score ±game.WinScore.
func (e *Evaluator) Evaluate(s game.State, perspective game.Player) float64 {
	if score, ok := game.TerminalScore(s.Status(), perspective); ok {
		return score
	}
	out, err := e.net.Forward(e.encoder.Encode(s, perspective))
	if err != nil {
		// widths were checked by NewEvaluator, so only a misbehaving encoder gets here
		log.Error().Err(err).Msg("network evaluation failed")
		return 0
	}
	return out[0]
}
