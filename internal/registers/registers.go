// Package registers implements the CHIP-8 register file.
package registers

import "github.com/retroenv/chip8vm/internal/memory"

const (
	// Count is the number of general purpose registers V0 to VF.
	Count = 16

	// Flag is the index of VF, the carry, borrow and collision flag register.
	Flag = 0xF
)

// Registers contains the general purpose registers, the address register I,
// the program counter and the delay and sound timers.
type Registers struct {
	v  [Count]byte
	i  uint16
	pc uint16
	dt byte
	st byte
}

// New returns registers in reset state.
func New() *Registers {
	r := &Registers{}
	r.Reset()
	return r
}

// Reset clears all registers and sets the program counter to the program start.
func (r *Registers) Reset() {
	*r = Registers{
		pc: memory.ProgramStart,
	}
}

// V returns the value of register Vx. Only the low nibble of x is used.
func (r *Registers) V(x uint8) byte {
	return r.v[x&0xF]
}

// SetV stores the low 8 bits of value in register Vx.
// Arithmetic results are truncated, never rejected.
func (r *Registers) SetV(x uint8, value int) {
	r.v[x&0xF] = byte(value)
}

// SetFlag sets VF to 1 if the condition is true, otherwise to 0.
func (r *Registers) SetFlag(condition bool) {
	if condition {
		r.v[Flag] = 1
	} else {
		r.v[Flag] = 0
	}
}

// I returns the address register.
func (r *Registers) I() uint16 {
	return r.i
}

// SetI stores the low 16 bits of value in the address register.
func (r *Registers) SetI(value int) {
	r.i = uint16(value)
}

// PC returns the program counter.
func (r *Registers) PC() uint16 {
	return r.pc
}

// SetPC sets the program counter to an absolute address.
func (r *Registers) SetPC(address uint16) {
	r.pc = address
}

// AdvancePC increments the program counter by delta bytes.
func (r *Registers) AdvancePC(delta uint16) {
	r.pc += delta
}

// DT returns the delay timer.
func (r *Registers) DT() byte {
	return r.dt
}

// SetDT sets the delay timer.
func (r *Registers) SetDT(value byte) {
	r.dt = value
}

// ST returns the sound timer.
func (r *Registers) ST() byte {
	return r.st
}

// SetST sets the sound timer.
func (r *Registers) SetST(value byte) {
	r.st = value
}

// DecrementDelayTimer decrements the delay timer if it is not zero.
func (r *Registers) DecrementDelayTimer() {
	if r.dt > 0 {
		r.dt--
	}
}

// DecrementSoundTimer decrements the sound timer if it is not zero.
func (r *Registers) DecrementSoundTimer() {
	if r.st > 0 {
		r.st--
	}
}

// ToneActive returns whether the sound timer requests a tone.
func (r *Registers) ToneActive() bool {
	return r.st != 0
}
