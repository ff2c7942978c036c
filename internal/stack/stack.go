// Package stack implements the CHIP-8 subroutine call stack.
package stack

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/fault"
	"github.com/retroenv/chip8vm/internal/memory"
)

// Depth is the number of return address slots.
const Depth = 16

// Stack is a fixed depth stack of return addresses.
type Stack struct {
	slots [Depth]uint16
	sp    int
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{}
}

// Reset empties the stack.
func (s *Stack) Reset() {
	*s = Stack{}
}

// SP returns the stack pointer, the number of used slots.
func (s *Stack) SP() int {
	return s.sp
}

// Push stores the address in the next free slot.
func (s *Stack) Push(address uint16) error {
	if s.sp >= Depth {
		return fmt.Errorf("%w: pushing $%04X with %d entries", fault.ErrStackOverflow, address, s.sp)
	}
	if !memory.Valid(int(address)) {
		return fmt.Errorf("%w: return address $%04X", fault.ErrOutOfRange, address)
	}

	s.slots[s.sp] = address
	s.sp++
	return nil
}

// Pop removes and returns the most recently pushed address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp <= 0 {
		return 0, fault.ErrStackUnderflow
	}

	address := s.slots[s.sp-1]
	if !memory.Valid(int(address)) {
		return 0, fmt.Errorf("%w: corrupted return address $%04X in slot %d",
			fault.ErrOutOfRange, address, s.sp-1)
	}

	s.sp--
	return address, nil
}
