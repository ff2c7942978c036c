// Package fault defines the error taxonomy shared by the virtual machine components.
// Every error is an invariant violation of the running program or of the VM state,
// it is returned to the caller of the CPU step and never retried.
package fault

import "errors"

var (
	// ErrOutOfRange is returned for invalid memory, stack or framebuffer addresses.
	ErrOutOfRange = errors.New("address out of range")
	// ErrValueOverflow is returned when a value written directly does not fit into a byte.
	ErrValueOverflow = errors.New("value exceeds one byte")
	// ErrValueExceedsNibble is returned when a value that selects a font glyph or key exceeds 0xF.
	ErrValueExceedsNibble = errors.New("value exceeds one nibble")
	// ErrUnknownOpcode is returned when no handler matches a decoded instruction.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrStackOverflow is returned when pushing onto a full call stack.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned when popping from an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
	// ErrInvalidSpriteHeight is returned for sprite heights outside of 1 to 15 rows.
	ErrInvalidSpriteHeight = errors.New("invalid sprite height")
)
