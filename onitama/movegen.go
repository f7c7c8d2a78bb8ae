package onitama

import (
	"fmt"
	"strings"
)

// Move takes the piece on From to To using Card from the mover's hand.
type Move struct {
	From uint8
	To   uint8
	Card Card
}

func (m Move) String() string {
	return fmt.Sprintf("%s %s %s", m.Card, CellName(int(m.From)), CellName(int(m.To)))
}

// Moves generates every legal move of the side to move: pieces in ascending
// cell order, then hand cards in ascending card order, then destinations in
// ascending cell order. Captures are allowed, landing on an own piece is not.
func (s State) Moves() []Move {
	if s.status.Terminal() {
		return nil
	}
	me := s.turn
	own := s.pieces[me]
	var moves []Move
	for _, from := range own.Cells() {
		for _, card := range s.hands[me] {
			targets := Shift(card.PatternFor(me), from) &^ own
			for _, to := range targets.Cells() {
				moves = append(moves, Move{From: uint8(from), To: uint8(to), Card: card})
			}
		}
	}
	return moves
}

// CellName names a cell algebraically: files a-e left to right, ranks 1-5
// bottom to top.
func CellName(i int) string {
	return fmt.Sprintf("%c%d", 'a'+i%Size, Size-i/Size)
}

// ParseCell is the inverse of CellName.
func ParseCell(name string) (int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) != 2 {
		return 0, fmt.Errorf("%q is not a valid position", name)
	}
	col := int(name[0] - 'a')
	rank := int(name[1] - '0')
	if col < 0 || col >= Size || rank < 1 || rank > Size {
		return 0, fmt.Errorf("%q is not a valid position", name)
	}
	return (Size-rank)*Size + col, nil
}

// ParseMove reads "card from to", e.g. "tiger c1 c3".
func ParseMove(text string) (Move, error) {
	words := strings.Fields(text)
	if len(words) != 3 {
		return Move{}, fmt.Errorf("expected three words, got %d", len(words))
	}
	card, err := ParseCard(words[0])
	if err != nil {
		return Move{}, err
	}
	from, err := ParseCell(words[1])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseCell(words[2])
	if err != nil {
		return Move{}, err
	}
	return Move{From: uint8(from), To: uint8(to), Card: card}, nil
}
