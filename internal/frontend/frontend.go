package frontend

import (
	"time"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
)

// Emulator is the machine state that the frontend presents.
type Emulator interface {
	FrameBuffer() *display.FrameBuffer
	Keypad() *keypad.Keypad
	ToneActive() bool
}

// Advancer runs the machine for the elapsed real time.
type Advancer interface {
	Advance(elapsed time.Duration) error
}

// ToneOutput receives the tone state every frame.
type ToneOutput interface {
	SetActive(active bool)
}
