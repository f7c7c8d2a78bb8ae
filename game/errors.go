package game

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

var (
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrInvalidMove  = errors.New("invalid move")
	ErrGameOver     = errors.New("game is over - no moves allowed")
)

// ConfigError reports malformed construction parameters. It is fatal for
// whoever tried to build the component.
type ConfigError struct {
	Component string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %s", e.Component, e.Reason)
}

// NewConfigError formats a ConfigError for component.
func NewConfigError(component, format string, args ...any) error {
	return &ConfigError{Component: component, Reason: fmt.Sprintf(format, args...)}
}

// Apply validates move against the legal move set of state and plays it.
func Apply(state State, move Move) (State, error) {
	if state.Status().Terminal() {
		return nil, ErrGameOver
	}
	if move == nil || !lo.Contains(state.LegalMoves(), move) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, move)
	}
	return state.Play(move), nil
}
