package mancala

import (
	"fmt"
	"strconv"
	"strings"

	"duel/game"
)

// Move sows the seeds of one of the mover's pits, numbered 0..n-1 in sowing
// order.
type Move int

func (m Move) String() string {
	return strconv.Itoa(int(m))
}

// State is a Kalah position. Pits are laid out in sowing order:
//
//	[first pits 0..n-1][first store][second pits 0..n-1][second store]
type State struct {
	pits   []int
	n      int
	turn   game.Player
	status game.Status
}

var _ game.State = State{}

// NewGame places seeds in each of the pitsPerSide pits of both sides.
func NewGame(pitsPerSide, seeds int) (State, error) {
	if pitsPerSide < 1 {
		return State{}, game.NewConfigError("mancala", "need at least one pit per side, got %d", pitsPerSide)
	}
	if seeds < 1 {
		return State{}, game.NewConfigError("mancala", "need at least one seed per pit, got %d", seeds)
	}
	s := State{pits: make([]int, 2*pitsPerSide+2), n: pitsPerSide}
	for p := game.First; p <= game.Second; p++ {
		for i := 0; i < pitsPerSide; i++ {
			s.pits[s.pit(p, i)] = seeds
		}
	}
	return s, nil
}

func (s State) pit(p game.Player, i int) int {
	return int(p)*(s.n+1) + i
}

func (s State) store(p game.Player) int {
	return int(p)*(s.n+1) + s.n
}

// Pits returns a copy of p's pits in sowing order.
func (s State) Pits(p game.Player) []int {
	out := make([]int, s.n)
	copy(out, s.pits[s.pit(p, 0):s.store(p)])
	return out
}

func (s State) Store(p game.Player) int {
	return s.pits[s.store(p)]
}

func (s State) PitsPerSide() int {
	return s.n
}

func (s State) Status() game.Status {
	return s.status
}

func (s State) Player() game.Player {
	return s.turn
}

// Blocked cannot happen while running since an emptied side ends the game,
// but it is resolved by comparing stores all the same.
func (s State) Blocked() game.Status {
	return s.finalStatus()
}

// LegalMoves lists the mover's non-empty pits in ascending order.
func (s State) LegalMoves() []game.Move {
	if s.status.Terminal() {
		return nil
	}
	var moves []game.Move
	for i := 0; i < s.n; i++ {
		if s.pits[s.pit(s.turn, i)] > 0 {
			moves = append(moves, Move(i))
		}
	}
	return moves
}

func (s State) Copy() State {
	pits := make([]int, len(s.pits))
	copy(pits, s.pits)
	s.pits = pits
	return s
}

// Play sows counter-clockwise, skipping the opponent's store. A last seed in
// the own store grants another turn; a last seed in an empty own pit captures
// the opposite pit.
func (s State) Play(move game.Move) game.State {
	s = s.Copy()
	me, opp := s.turn, s.turn.Other()
	at := s.pit(me, int(move.(Move)))
	seeds := s.pits[at]
	s.pits[at] = 0
	for seeds > 0 {
		at = (at + 1) % len(s.pits)
		if at == s.store(opp) {
			continue
		}
		s.pits[at]++
		seeds--
	}

	if s.owns(me, at) && s.pits[at] == 1 {
		opposite := s.opposite(at)
		if s.pits[opposite] > 0 {
			s.pits[s.store(me)] += s.pits[opposite] + 1
			s.pits[opposite] = 0
			s.pits[at] = 0
		}
	}
	if at != s.store(me) {
		s.turn = opp
	}

	if s.sideEmpty(game.First) || s.sideEmpty(game.Second) {
		for p := game.First; p <= game.Second; p++ {
			for i := 0; i < s.n; i++ {
				s.pits[s.store(p)] += s.pits[s.pit(p, i)]
				s.pits[s.pit(p, i)] = 0
			}
		}
		s.status = s.finalStatus()
	}
	return s
}

func (s State) owns(p game.Player, at int) bool {
	return at >= s.pit(p, 0) && at < s.store(p)
}

// opposite pits face each other across the board: first pit i faces second
// pit n-1-i.
func (s State) opposite(at int) int {
	return 2*s.n - at
}

func (s State) sideEmpty(p game.Player) bool {
	for i := 0; i < s.n; i++ {
		if s.pits[s.pit(p, i)] > 0 {
			return false
		}
	}
	return true
}

func (s State) finalStatus() game.Status {
	first, second := s.Store(game.First), s.Store(game.Second)
	switch {
	case first > second:
		return game.FirstWins
	case second > first:
		return game.SecondWins
	default:
		return game.Draw
	}
}

func (s State) ParseMove(text string) (game.Move, error) {
	i, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%q is not a pit number", text)
	}
	if i < 0 || i >= s.n {
		return nil, fmt.Errorf("pit %d out of range [0, %d)", i, s.n)
	}
	return Move(i), nil
}

func (s State) String() string {
	var sb strings.Builder
	second := s.Pits(game.Second)
	sb.WriteString("    ")
	for i := len(second) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%3d", second[i])
	}
	fmt.Fprintf(&sb, "\n%3d %s %3d\n    ", s.Store(game.Second), strings.Repeat("   ", s.n), s.Store(game.First))
	for _, seeds := range s.Pits(game.First) {
		fmt.Fprintf(&sb, "%3d", seeds)
	}
	fmt.Fprintf(&sb, "\nto move: %s  status: %s\n", s.turn, s.status)
	return sb.String()
}
