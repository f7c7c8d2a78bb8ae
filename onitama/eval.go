package onitama

import "duel/game"

// EvaluateMaterial counts pieces and rewards masters that approach the
// opposing temple. Scores stay well below game.WinScore.
func EvaluateMaterial(s game.State, perspective game.Player) float64 {
	st := s.(State)
	if score, ok := game.TerminalScore(st.status, perspective); ok {
		return score
	}
	me, opp := perspective, perspective.Other()
	material := float64(st.pieces[me].Count() - st.pieces[opp].Count())
	approach := float64(st.templeDistance(opp) - st.templeDistance(me))
	return material + 0.1*approach
}

// templeDistance is the number of king steps p's master needs to reach the
// opposing temple.
func (s State) templeDistance(p game.Player) int {
	cells := s.kings[p].Cells()
	if len(cells) == 0 {
		return 2 * Size
	}
	k, t := cells[0], temples[p.Other()]
	return max(abs(k/Size-t/Size), abs(k%Size-t%Size))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Encoder lays a position out as one-hot planes seen from the perspective
// side, which always looks up the board:
//
//	[own pieces | own master | opponent pieces | opponent master] 4*25
//	[own hand | opponent hand | table card]                       3*16
type Encoder struct{}

const encodedWidth = 4*Cells + 3*NumCards

var _ game.Encoder = Encoder{}

func (Encoder) Width() int {
	return encodedWidth
}

func (Encoder) Encode(s game.State, perspective game.Player) []float64 {
	st := s.(State)
	me, opp := perspective, perspective.Other()
	orient := func(b Bitboard) Bitboard {
		if perspective == game.Second {
			return Reverse(b)
		}
		return b
	}

	x := make([]float64, encodedWidth)
	planes := []Bitboard{
		orient(st.pieces[me]), orient(st.kings[me]),
		orient(st.pieces[opp]), orient(st.kings[opp]),
	}
	for i, plane := range planes {
		for _, cell := range plane.Cells() {
			x[i*Cells+cell] = 1
		}
	}
	offset := len(planes) * Cells
	for _, c := range st.hands[me] {
		x[offset+int(c)] = 1
	}
	for _, c := range st.hands[opp] {
		x[offset+NumCards+int(c)] = 1
	}
	x[offset+2*NumCards+int(st.table)] = 1
	return x
}
