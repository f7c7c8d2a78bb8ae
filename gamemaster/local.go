package gamemaster

import (
	"sync"

	"github.com/rs/zerolog/log"

	"duel/game"
)

// updateBuffer is how many unread updates a session keeps. Older updates are
// dropped once it is full.
const updateBuffer = 16

// UpdateGetter returns the next unread move and the state it produced, or
// nils when there is none yet or the game is over and everything was read.
type UpdateGetter func() (game.Move, game.State)

// Master drives a live game from moves supplied from outside, e.g. a human
// player or a remote peer.
type Master interface {
	Init() (game.State, UpdateGetter)
	Play(game.Move) error
	PlayText(string) error
	State() game.State
	Status() game.Status
}

type update struct {
	move  game.Move
	state game.State
}

type Session struct {
	mu       sync.Mutex
	start    game.State
	state    game.State
	status   game.Status
	updateCh chan update
}

var _ Master = (*Session)(nil)

func NewSession(start game.State) *Session {
	return &Session{start: start}
}

// Init (re)starts the game from the initial state.
func (s *Session) Init() (game.State, UpdateGetter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.start
	s.status = s.resolve(s.start)
	s.updateCh = make(chan update, updateBuffer)
	if s.status.Terminal() {
		close(s.updateCh)
	}

	ch := s.updateCh
	return s.state, func() (game.Move, game.State) {
		select {
		case u, ok := <-ch:
			if !ok { // Game over
				return nil, nil
			}
			return u.move, u.state
		default:
			return nil, nil
		}
	}
}

// Play validates move against the legal moves and applies it. Illegal moves
// return game.ErrInvalidMove and leave the game unchanged.
func (s *Session) Play(move game.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.play(move)
}

// play expects s.mu to be held.
func (s *Session) play(move game.Move) error {
	if s.state == nil {
		return game.NewConfigError("session", "Init must be called before Play")
	}
	if s.status.Terminal() {
		return game.ErrGameOver
	}
	next, err := game.Apply(s.state, move)
	if err != nil {
		log.Debug().Err(err).Stringer("player", s.state.Player()).Msg("move rejected")
		return err
	}

	s.state = next
	s.status = s.resolve(next)
	s.publish(update{move: move, state: next})
	if s.status.Terminal() {
		log.Info().Msgf("game over: %s", s.status)
		close(s.updateCh)
	}
	return nil
}

// PlayText parses text with the game's own move notation and plays it.
func (s *Session) PlayText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return game.NewConfigError("session", "Init must be called before Play")
	}
	move, err := s.state.ParseMove(text)
	if err != nil {
		return err
	}
	return s.play(move)
}

// Status is the game outcome, which includes a blocked side losing.
func (s *Session) Status() game.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) resolve(state game.State) game.Status {
	if status := state.Status(); status.Terminal() {
		return status
	}
	if len(state.LegalMoves()) == 0 {
		return state.Blocked()
	}
	return game.Running
}

// publish never blocks, the oldest update makes room when nobody reads.
func (s *Session) publish(u update) {
	for {
		select {
		case s.updateCh <- u:
			return
		default:
			select {
			case <-s.updateCh:
			default:
			}
		}
	}
}
