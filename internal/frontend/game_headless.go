//go:build headless

package frontend

import "github.com/retroenv/retrogolib/log"

// Game is not available in headless builds.
type Game struct{}

// NewGame returns a game that can not be run.
func NewGame(_ Emulator, _ Advancer, _ ToneOutput, _ *log.Logger) *Game {
	return &Game{}
}

// Run returns ErrUnavailable.
func Run(_ Config, _ *Game) error {
	return ErrUnavailable
}
