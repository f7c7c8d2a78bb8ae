package mancala

import "duel/game"

// EvaluateStores is the store difference, seeds still on a side counting as
// a quarter seed for their owner.
func EvaluateStores(s game.State, perspective game.Player) float64 {
	st := s.(State)
	if score, ok := game.TerminalScore(st.status, perspective); ok {
		return score
	}
	me, opp := perspective, perspective.Other()
	stores := float64(st.Store(me) - st.Store(opp))
	board := float64(st.sideSeeds(me) - st.sideSeeds(opp))
	return stores + 0.25*board
}

func (s State) sideSeeds(p game.Player) int {
	total := 0
	for i := 0; i < s.n; i++ {
		total += s.pits[s.pit(p, i)]
	}
	return total
}

// Buckets is the number of one-hot slots used per pit; counts of Buckets-1 and
// more share the last slot.
const Buckets = 8

// Encoder one-hot encodes every pit and store, perspective's side first.
// Six pits per side give the 112 inputs of the reference network.
type Encoder struct {
	PitsPerSide int
}

var _ game.Encoder = Encoder{}

func (e Encoder) Width() int {
	return (2*e.PitsPerSide + 2) * Buckets
}

// Encode returns nil for boards of a different size than the encoder's.
func (e Encoder) Encode(s game.State, perspective game.Player) []float64 {
	st := s.(State)
	if st.n != e.PitsPerSide {
		return nil
	}
	x := make([]float64, e.Width())
	slot := 0
	for _, p := range []game.Player{perspective, perspective.Other()} {
		counts := append(st.Pits(p), st.Store(p))
		for _, c := range counts {
			x[slot*Buckets+min(c, Buckets-1)] = 1
			slot++
		}
	}
	return x
}
