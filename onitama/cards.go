package onitama

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"

	"duel/game"
)

// Card is one of the sixteen move templates.
type Card uint8

const (
	Boar Card = iota
	Cobra
	Crab
	Crane
	Dragon
	Eel
	Elephant
	Frog
	Goose
	Horse
	Mantis
	Monkey
	Ox
	Rabbit
	Rooster
	Tiger

	NumCards = int(Tiger) + 1
)

// HandSize is the number of cards each side holds.
const HandSize = 2

type template struct {
	name    string
	pattern Bitboard
	white   bool
}

// Patterns are anchored at Center and drawn with the top row first.
var templates = [NumCards]template{
	Boar: {"boar", Board(
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 1, 0, 1, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0), true},
	Cobra: {"cobra", Board(
		0, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
		0, 1, 0, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 0), true},
	Crab: {"crab", Board(
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		1, 0, 0, 0, 1,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0), false},
	Crane: {"crane", Board(
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0,
		0, 1, 0, 1, 0,
		0, 0, 0, 0, 0), false},
	Dragon: {"dragon", Board(
		0, 0, 0, 0, 0,
		1, 0, 0, 0, 1,
		0, 0, 0, 0, 0,
		0, 1, 0, 1, 0,
		0, 0, 0, 0, 0), true},
	Eel: {"eel", Board(
		0, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 0, 1, 0,
		0, 1, 0, 0, 0,
		0, 0, 0, 0, 0), false},
	Elephant: {"elephant", Board(
		0, 0, 0, 0, 0,
		0, 1, 0, 1, 0,
		0, 1, 0, 1, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0), true},
	Frog: {"frog", Board(
		0, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		1, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 0), true},
	Goose: {"goose", Board(
		0, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 1, 0, 1, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 0), false},
	Horse: {"horse", Board(
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0), true},
	Mantis: {"mantis", Board(
		0, 0, 0, 0, 0,
		0, 1, 0, 1, 0,
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0), true},
	Monkey: {"monkey", Board(
		0, 0, 0, 0, 0,
		0, 1, 0, 1, 0,
		0, 0, 0, 0, 0,
		0, 1, 0, 1, 0,
		0, 0, 0, 0, 0), false},
	Ox: {"ox", Board(
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0), false},
	Rabbit: {"rabbit", Board(
		0, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
		0, 1, 0, 0, 0,
		0, 0, 0, 0, 0), false},
	Rooster: {"rooster", Board(
		0, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
		0, 1, 0, 1, 0,
		0, 1, 0, 0, 0,
		0, 0, 0, 0, 0), true},
	Tiger: {"tiger", Board(
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0), false},
}

// Pattern returns the card's destinations relative to Center, from the
// point of view of the side the card was designed for.
func (c Card) Pattern() Bitboard {
	return templates[c].pattern
}

// Color is the side the card's pattern is oriented for. White cards belong
// to First, who starts at the bottom of the board.
func (c Card) Color() game.Player {
	if templates[c].white {
		return game.First
	}
	return game.Second
}

// PatternFor returns the pattern as seen by player, reversed when the card
// was designed for the other side.
func (c Card) PatternFor(player game.Player) Bitboard {
	if c.Color() != player {
		return Reverse(c.Pattern())
	}
	return c.Pattern()
}

func (c Card) Valid() bool {
	return int(c) < NumCards
}

func (c Card) String() string {
	if !c.Valid() {
		return fmt.Sprintf("card(%d)", uint8(c))
	}
	return templates[c].name
}

// ParseCard looks a card up by its (case insensitive) name.
func ParseCard(name string) (Card, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c := Card(0); int(c) < NumCards; c++ {
		if templates[c].name == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown card %q", name)
}

// DrawCards picks five distinct cards: two per side followed by the table card.
func DrawCards(rng *rand.Rand) [2*HandSize + 1]Card {
	var drawn [2*HandSize + 1]Card
	for i, c := range rng.Perm(NumCards)[:len(drawn)] {
		drawn[i] = Card(c)
	}
	return drawn
}
