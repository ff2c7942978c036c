// Package cpu implements the CHIP-8 fetch, decode and execute cycle.
package cpu

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/fault"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/registers"
	"github.com/retroenv/chip8vm/internal/stack"
	"github.com/retroenv/retrogolib/log"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// CPU executes instructions and owns all state components of the machine.
type CPU struct {
	mem   *memory.Memory
	regs  *registers.Registers
	stack *stack.Stack
	fb    *display.FrameBuffer
	keys  *keypad.Keypad

	logger          *log.Logger
	rand            *rand.Rand
	trace           bool
	resumeAfterCall bool
	cycles          uint64
}

// Option configures a CPU.
type Option func(*CPU)

// WithLogger sets the logger used for instruction tracing.
func WithLogger(logger *log.Logger) Option {
	return func(c *CPU) {
		c.logger = logger
	}
}

// WithSeed sets the seed of the random number generator used by RND.
func WithSeed(seed int64) Option {
	return func(c *CPU) {
		c.rand = rand.New(rand.NewSource(seed))
	}
}

// WithTrace enables logging of every executed instruction at debug level.
func WithTrace(trace bool) Option {
	return func(c *CPU) {
		c.trace = trace
	}
}

// WithResumeAfterCall makes RET continue at the instruction following the
// CALL instead of the CALL instruction itself.
func WithResumeAfterCall(resume bool) Option {
	return func(c *CPU) {
		c.resumeAfterCall = resume
	}
}

// New returns a CPU that takes ownership of the passed components.
func New(mem *memory.Memory, regs *registers.Registers, stk *stack.Stack,
	fb *display.FrameBuffer, keys *keypad.Keypad, opts ...Option) *CPU {

	c := &CPU{
		mem:   mem,
		regs:  regs,
		stack: stk,
		fb:    fb,
		keys:  keys,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rand == nil {
		c.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// Reset puts all components into their power on state, the loaded program is cleared.
func (c *CPU) Reset() {
	c.mem.Reset()
	c.regs.Reset()
	c.stack.Reset()
	c.fb.Clear()
	c.keys.Reset()
	c.cycles = 0
}

// Step executes a single instruction at the program counter.
func (c *CPU) Step() error {
	pc := c.regs.PC()

	opcode, err := c.fetch(pc)
	if err != nil {
		return &StepError{PC: pc, Err: err}
	}

	op, ok := decode(opcode)
	if !ok {
		return &StepError{
			PC:     pc,
			Opcode: opcode,
			Err:    fmt.Errorf("%w: $%04X", fault.ErrUnknownOpcode, opcode),
		}
	}

	if c.trace && c.logger != nil {
		c.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", opcode),
			log.String("instruction", disasm.Format(opcode)))
	}

	adv, err := op.exec(c, Instruction(opcode))
	if err != nil {
		return &StepError{PC: pc, Opcode: opcode, Err: fmt.Errorf("%s: %w", op.name, err)}
	}

	switch adv {
	case advanceNext:
		c.regs.AdvancePC(opcodeSize)
	case advanceSkip:
		c.regs.AdvancePC(2 * opcodeSize)
	case advanceNone, advanceWait:
	}

	c.cycles++
	return nil
}

// fetch reads the big endian instruction word at the address.
func (c *CPU) fetch(address uint16) (uint16, error) {
	high, err := c.mem.Read(int(address))
	if err != nil {
		return 0, fmt.Errorf("fetching instruction: %w", err)
	}
	low, err := c.mem.Read(int(address) + 1)
	if err != nil {
		return 0, fmt.Errorf("fetching instruction: %w", err)
	}
	return uint16(high)<<8 | uint16(low), nil
}

// PC returns the address of the next instruction to execute.
func (c *CPU) PC() uint16 {
	return c.regs.PC()
}

// DecrementDelayTimer decrements the delay timer, the driver calls it at the timer rate.
func (c *CPU) DecrementDelayTimer() {
	c.regs.DecrementDelayTimer()
}

// DecrementSoundTimer decrements the sound timer, the driver calls it at the timer rate.
func (c *CPU) DecrementSoundTimer() {
	c.regs.DecrementSoundTimer()
}

// ToneActive returns whether the sound timer requests a tone.
func (c *CPU) ToneActive() bool {
	return c.regs.ToneActive()
}

// Cycles returns the number of successfully executed instructions.
func (c *CPU) Cycles() uint64 {
	return c.cycles
}

// Memory returns the memory of the machine.
func (c *CPU) Memory() *memory.Memory {
	return c.mem
}

// Registers returns the register file of the machine.
func (c *CPU) Registers() *registers.Registers {
	return c.regs
}

// Stack returns the call stack of the machine.
func (c *CPU) Stack() *stack.Stack {
	return c.stack
}

// FrameBuffer returns the display of the machine.
func (c *CPU) FrameBuffer() *display.FrameBuffer {
	return c.fb
}

// Keypad returns the keypad of the machine.
func (c *CPU) Keypad() *keypad.Keypad {
	return c.keys
}
