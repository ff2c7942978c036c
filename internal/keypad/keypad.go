// Package keypad implements the state of the 16 key hexadecimal CHIP-8 keypad.
package keypad

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/fault"
)

// Count is the number of keys 0x0 to 0xF.
const Count = 16

// Keypad tracks which keys are currently held down.
type Keypad struct {
	pressed [Count]bool
}

// New returns a keypad with no keys pressed.
func New() *Keypad {
	return &Keypad{}
}

// Reset releases all keys.
func (k *Keypad) Reset() {
	k.pressed = [Count]bool{}
}

func validate(key uint8) error {
	if key >= Count {
		return fmt.Errorf("%w: key $%02X", fault.ErrValueExceedsNibble, key)
	}
	return nil
}

// Press marks the key as held down.
func (k *Keypad) Press(key uint8) error {
	if err := validate(key); err != nil {
		return err
	}
	k.pressed[key] = true
	return nil
}

// Release marks the key as released.
func (k *Keypad) Release(key uint8) error {
	if err := validate(key); err != nil {
		return err
	}
	k.pressed[key] = false
	return nil
}

// Set presses or releases the key depending on the down state.
func (k *Keypad) Set(key uint8, down bool) error {
	if down {
		return k.Press(key)
	}
	return k.Release(key)
}

// IsPressed returns whether the key is held down.
func (k *Keypad) IsPressed(key uint8) (bool, error) {
	if err := validate(key); err != nil {
		return false, err
	}
	return k.pressed[key], nil
}

// FirstPressed returns the lowest key that is held down.
func (k *Keypad) FirstPressed() (uint8, bool) {
	for key, down := range k.pressed {
		if down {
			return uint8(key), true
		}
	}
	return 0, false
}
