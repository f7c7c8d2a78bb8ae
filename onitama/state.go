package onitama

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/rand"

	"duel/game"
)

// Starting cells of each master. Reaching the opponent's one wins the game.
var temples = [2]int{game.First: 22, game.Second: 2}

// State is a value type; copies never share memory.
type State struct {
	pieces [2]Bitboard
	kings  [2]Bitboard
	hands  [2][HandSize]Card
	table  Card
	turn   game.Player
	status game.Status
}

var _ game.State = State{}

// NewGame deals five random cards from rng.
func NewGame(rng *rand.Rand) State {
	return FromCards(DrawCards(rng))
}

// FromCards sets up the initial position with a fixed deal ordered as
// [first1 first2 second1 second2 table]. The side matching the table
// card's color moves first.
func FromCards(cards [2*HandSize + 1]Card) State {
	s := State{
		pieces: [2]Bitboard{
			game.First:  Board(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1),
			game.Second: Board(1, 1, 1, 1, 1),
		},
		table: cards[2*HandSize],
	}
	for p := range s.kings {
		s.kings[p] = Bitboard(0).Set(temples[p])
	}
	s.hands[game.First] = [HandSize]Card{cards[0], cards[1]}
	s.hands[game.Second] = [HandSize]Card{cards[2], cards[3]}
	s.sortHands()
	s.turn = s.table.Color()
	return s
}

// ParseCards reads a deal of five card names separated by spaces.
func ParseCards(names []string) ([2*HandSize + 1]Card, error) {
	var cards [2*HandSize + 1]Card
	if len(names) != len(cards) {
		return cards, fmt.Errorf("expected %d cards, got %d", len(cards), len(names))
	}
	for i, name := range names {
		c, err := ParseCard(name)
		if err != nil {
			return cards, err
		}
		if slices.Contains(cards[:i], c) {
			return cards, fmt.Errorf("card %s dealt twice", c)
		}
		cards[i] = c
	}
	return cards, nil
}

func (s *State) sortHands() {
	for p := range s.hands {
		if s.hands[p][0] > s.hands[p][1] {
			s.hands[p][0], s.hands[p][1] = s.hands[p][1], s.hands[p][0]
		}
	}
}

func (s State) Status() game.Status {
	return s.status
}

func (s State) Player() game.Player {
	return s.turn
}

func (s State) Pieces(p game.Player) Bitboard {
	return s.pieces[p]
}

func (s State) King(p game.Player) Bitboard {
	return s.kings[p]
}

// Hand returns p's cards in ascending card order.
func (s State) Hand(p game.Player) [HandSize]Card {
	return s.hands[p]
}

func (s State) Table() Card {
	return s.table
}

// Blocked: a side that cannot move loses.
func (s State) Blocked() game.Status {
	return game.WinFor(s.turn.Other())
}

func (s State) LegalMoves() []game.Move {
	moves := s.Moves()
	legal := make([]game.Move, len(moves))
	for i, m := range moves {
		legal[i] = m
	}
	return legal
}

// Play moves the piece, captures whatever stood on the destination and swaps
// the used card with the table card.
func (s State) Play(move game.Move) game.State {
	return s.apply(move.(Move))
}

func (s State) apply(m Move) State {
	me, opp := s.turn, s.turn.Other()
	from, to := int(m.From), int(m.To)

	s.pieces[me] = s.pieces[me].Clear(from).Set(to)
	if s.kings[me].Has(from) {
		s.kings[me] = Bitboard(0).Set(to)
	}
	if s.pieces[opp].Has(to) {
		s.pieces[opp] = s.pieces[opp].Clear(to)
		s.kings[opp] = s.kings[opp].Clear(to)
	}

	for i, c := range s.hands[me] {
		if c == m.Card {
			s.hands[me][i] = s.table
			s.table = c
			break
		}
	}
	s.sortHands()

	if s.kings[opp] == 0 || s.kings[me].Has(temples[opp]) {
		s.status = game.WinFor(me)
	}
	s.turn = opp
	return s
}

func (s State) ParseMove(text string) (game.Move, error) {
	m, err := ParseMove(text)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the board invariants.
func (s State) Validate() error {
	if s.pieces[game.First]&s.pieces[game.Second] != 0 {
		return fmt.Errorf("sides overlap on %v", (s.pieces[game.First] & s.pieces[game.Second]).Cells())
	}
	for p := game.First; p <= game.Second; p++ {
		if s.pieces[p]&^full != 0 || s.kings[p]&^full != 0 {
			return fmt.Errorf("%s has cells outside the board", p)
		}
		if s.kings[p]&^s.pieces[p] != 0 {
			return fmt.Errorf("%s master is not one of its pieces", p)
		}
		captured := s.status == game.WinFor(p.Other()) && s.kings[p] == 0
		if s.kings[p].Count() != 1 && !captured {
			return fmt.Errorf("%s has %d masters", p, s.kings[p].Count())
		}
	}
	return nil
}

func (s State) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d ", Size-row)
		for col := 0; col < Size; col++ {
			i := row*Size + col
			switch {
			case s.kings[game.First].Has(i):
				sb.WriteByte('W')
			case s.pieces[game.First].Has(i):
				sb.WriteByte('w')
			case s.kings[game.Second].Has(i):
				sb.WriteByte('B')
			case s.pieces[game.Second].Has(i):
				sb.WriteByte('b')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  abcde\n")
	fmt.Fprintf(&sb, "first: %s %s  second: %s %s  table: %s  to move: %s  status: %s\n",
		s.hands[game.First][0], s.hands[game.First][1],
		s.hands[game.Second][0], s.hands[game.Second][1],
		s.table, s.turn, s.status)
	return sb.String()
}
