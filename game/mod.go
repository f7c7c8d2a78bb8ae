package game

import "fmt"

// Player identifies one of the two sides of a game.
type Player int

const (
	First Player = iota
	Second
)

// Other returns the opponent of p.
func (p Player) Other() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == First {
		return "first"
	}
	return "second"
}

// Status is Running until a game ends with one of the terminal outcomes.
type Status int

const (
	Running Status = iota
	FirstWins
	SecondWins
	Draw
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case FirstWins:
		return "first wins"
	case SecondWins:
		return "second wins"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Terminal reports whether the game is over.
func (s Status) Terminal() bool {
	return s != Running
}

// WinFor returns the winning status for p.
func WinFor(p Player) Status {
	if p == First {
		return FirstWins
	}
	return SecondWins
}

// Move is a game specific move value. Moves must be comparable with ==.
type Move interface {
	fmt.Stringer
}

// State should be immutable - Play always returns a new copy
type State interface {
	Status() Status
	Player() Player
	// LegalMoves enumerates moves in a fixed, deterministic order
	LegalMoves() []Move
	// Play applies a move produced by LegalMoves without validating it
	Play(Move) State
	// Blocked is the outcome when the side to move has no legal move
	Blocked() Status
	// ParseMove reads a move in the notation produced by Move.String
	ParseMove(text string) (Move, error)
}

// Evaluate scores a state from perspective's point of view; higher is better.
// Called with the side to move it scores the position for the side to move.
type Evaluate func(state State, perspective Player) float64

// Encoder flattens a state into a fixed width feature vector for a network.
type Encoder interface {
	Width() int
	Encode(state State, perspective Player) []float64
}
