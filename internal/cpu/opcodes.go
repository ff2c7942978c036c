package cpu

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/fault"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/registers"
)

// advance is the program counter policy that a handler requests after execution.
type advance int

const (
	advanceNext advance = iota // continue with the next instruction
	advanceSkip                // skip the next instruction
	advanceNone                // the handler has set the program counter
	advanceWait                // execute the same instruction again
)

type handler func(c *CPU, ins Instruction) (advance, error)

// opcode maps an instruction pattern to its handler. An instruction matches
// if the masked instruction word equals the value.
type opcode struct {
	mask  uint16
	value uint16
	name  string
	exec  handler
}

// opcodes contains all supported instructions, indexed by instruction family.
// Within a family the entries are matched in order.
var opcodes = [16][]opcode{
	0x0: {
		{0xFFFF, 0x00E0, "CLS", cls},
		{0xFFFF, 0x00EE, "RET", ret},
		{0xF000, 0x0000, "SYS", sys},
	},
	0x1: {{0xF000, 0x1000, "JP", jp}},
	0x2: {{0xF000, 0x2000, "CALL", call}},
	0x3: {{0xF000, 0x3000, "SE", seByte}},
	0x4: {{0xF000, 0x4000, "SNE", sneByte}},
	0x5: {{0xF00F, 0x5000, "SE", seRegister}},
	0x6: {{0xF000, 0x6000, "LD", ldByte}},
	0x7: {{0xF000, 0x7000, "ADD", addByte}},
	0x8: {
		{0xF00F, 0x8000, "LD", ldRegister},
		{0xF00F, 0x8001, "OR", or},
		{0xF00F, 0x8002, "AND", and},
		{0xF00F, 0x8003, "XOR", xor},
		{0xF00F, 0x8004, "ADD", addRegister},
		{0xF00F, 0x8005, "SUB", sub},
		{0xF00F, 0x8006, "SHR", shr},
		{0xF00F, 0x8007, "SUBN", subn},
		{0xF00F, 0x800E, "SHL", shl},
	},
	0x9: {{0xF00F, 0x9000, "SNE", sneRegister}},
	0xA: {{0xF000, 0xA000, "LD", ldIndex}},
	0xB: {{0xF000, 0xB000, "JP", jpOffset}},
	0xC: {{0xF000, 0xC000, "RND", rnd}},
	0xD: {{0xF000, 0xD000, "DRW", drw}},
	0xE: {
		{0xF0FF, 0xE09E, "SKP", skp},
		{0xF0FF, 0xE0A1, "SKNP", sknp},
	},
	0xF: {
		{0xF0FF, 0xF007, "LD", ldDelayTimer},
		{0xF0FF, 0xF00A, "LD", waitKey},
		{0xF0FF, 0xF015, "LD", setDelayTimer},
		{0xF0FF, 0xF018, "LD", setSoundTimer},
		{0xF0FF, 0xF01E, "ADD", addIndex},
		{0xF0FF, 0xF029, "LD", ldGlyph},
		{0xF0FF, 0xF033, "LD", bcd},
		{0xF0FF, 0xF055, "LD", storeRegisters},
		{0xF0FF, 0xF065, "LD", loadRegisters},
	},
}

// decode returns the opcode table entry matching the instruction word.
func decode(word uint16) (opcode, bool) {
	family := word >> 12
	for _, op := range opcodes[family] {
		if word&op.mask == op.value {
			return op, true
		}
	}
	return opcode{}, false
}

func skipIf(condition bool) advance {
	if condition {
		return advanceSkip
	}
	return advanceNext
}

// 00E0
func cls(c *CPU, _ Instruction) (advance, error) {
	c.fb.Clear()
	return advanceNext, nil
}

// 00EE
func ret(c *CPU, _ Instruction) (advance, error) {
	address, err := c.stack.Pop()
	if err != nil {
		return 0, err
	}
	if c.resumeAfterCall {
		address += opcodeSize
	}
	c.regs.SetPC(address)
	return advanceNone, nil
}

// 0NNN calls a machine code routine of the host, which is not emulated.
func sys(_ *CPU, _ Instruction) (advance, error) {
	return advanceNext, nil
}

// 1NNN
func jp(c *CPU, ins Instruction) (advance, error) {
	c.regs.SetPC(ins.NNN())
	return advanceNone, nil
}

// 2NNN pushes the address of the call instruction.
func call(c *CPU, ins Instruction) (advance, error) {
	if err := c.stack.Push(c.regs.PC()); err != nil {
		return 0, err
	}
	c.regs.SetPC(ins.NNN())
	return advanceNone, nil
}

// 3XNN
func seByte(c *CPU, ins Instruction) (advance, error) {
	return skipIf(c.regs.V(ins.X()) == ins.NN()), nil
}

// 4XNN
func sneByte(c *CPU, ins Instruction) (advance, error) {
	return skipIf(c.regs.V(ins.X()) != ins.NN()), nil
}

// 5XY0
func seRegister(c *CPU, ins Instruction) (advance, error) {
	return skipIf(c.regs.V(ins.X()) == c.regs.V(ins.Y())), nil
}

// 9XY0
func sneRegister(c *CPU, ins Instruction) (advance, error) {
	return skipIf(c.regs.V(ins.X()) != c.regs.V(ins.Y())), nil
}

// 6XNN
func ldByte(c *CPU, ins Instruction) (advance, error) {
	c.regs.SetV(ins.X(), int(ins.NN()))
	return advanceNext, nil
}

// 7XNN does not change the carry flag.
func addByte(c *CPU, ins Instruction) (advance, error) {
	x := ins.X()
	c.regs.SetV(x, int(c.regs.V(x))+int(ins.NN()))
	return advanceNext, nil
}

// 8XY0
func ldRegister(c *CPU, ins Instruction) (advance, error) {
	c.regs.SetV(ins.X(), int(c.regs.V(ins.Y())))
	return advanceNext, nil
}

// 8XY1
func or(c *CPU, ins Instruction) (advance, error) {
	x := ins.X()
	c.regs.SetV(x, int(c.regs.V(x)|c.regs.V(ins.Y())))
	return advanceNext, nil
}

// 8XY2
func and(c *CPU, ins Instruction) (advance, error) {
	x := ins.X()
	c.regs.SetV(x, int(c.regs.V(x)&c.regs.V(ins.Y())))
	return advanceNext, nil
}

// 8XY3
func xor(c *CPU, ins Instruction) (advance, error) {
	x := ins.X()
	c.regs.SetV(x, int(c.regs.V(x)^c.regs.V(ins.Y())))
	return advanceNext, nil
}

// The flag is written after the result for the arithmetic instructions, so
// for x being the flag register only the flag remains.

// 8XY4
func addRegister(c *CPU, ins Instruction) (advance, error) {
	x := ins.X()
	sum := int(c.regs.V(x)) + int(c.regs.V(ins.Y()))
	c.regs.SetV(x, sum)
	c.regs.SetFlag(sum > 0xFF)
	return advanceNext, nil
}

// 8XY5
func sub(c *CPU, ins Instruction) (advance, error) {
	x := ins.X()
	vx, vy := c.regs.V(x), c.regs.V(ins.Y())
	c.regs.SetV(x, int(vx)-int(vy))
	c.regs.SetFlag(vx >= vy)
	return advanceNext, nil
}

// 8XY6 shifts Vx, Vy is ignored.
func shr(c *CPU, ins Instruction) (advance, error) {
	x := ins.X()
	vx := c.regs.V(x)
	c.regs.SetV(x, int(vx>>1))
	c.regs.SetFlag(vx&0x01 == 1)
	return advanceNext, nil
}

// 8XY7
func subn(c *CPU, ins Instruction) (advance, error) {
	x := ins.X()
	vx, vy := c.regs.V(x), c.regs.V(ins.Y())
	c.regs.SetV(x, int(vy)-int(vx))
	c.regs.SetFlag(vy >= vx)
	return advanceNext, nil
}

// 8XYE shifts Vx, Vy is ignored.
func shl(c *CPU, ins Instruction) (advance, error) {
	x := ins.X()
	vx := c.regs.V(x)
	c.regs.SetV(x, int(vx)<<1)
	c.regs.SetFlag(vx>>7 == 1)
	return advanceNext, nil
}

// ANNN
func ldIndex(c *CPU, ins Instruction) (advance, error) {
	c.regs.SetI(int(ins.NNN()))
	return advanceNext, nil
}

// BNNN
func jpOffset(c *CPU, ins Instruction) (advance, error) {
	target := int(c.regs.V(0)) + int(ins.NNN())
	if !memory.Valid(target) {
		return 0, fmt.Errorf("%w: jump target $%04X", fault.ErrOutOfRange, target)
	}
	c.regs.SetPC(uint16(target))
	return advanceNone, nil
}

// CXNN
func rnd(c *CPU, ins Instruction) (advance, error) {
	value := byte(c.rand.Intn(256)) & ins.NN()
	c.regs.SetV(ins.X(), int(value))
	return advanceNext, nil
}

// DXYN
func drw(c *CPU, ins Instruction) (advance, error) {
	height := int(ins.N())
	if height < display.MinSpriteHeight || height > display.MaxSpriteHeight {
		return 0, fmt.Errorf("%w: %d rows", fault.ErrInvalidSpriteHeight, height)
	}

	rows, err := c.mem.Slice(int(c.regs.I()), height)
	if err != nil {
		return 0, fmt.Errorf("reading sprite: %w", err)
	}

	x := int(c.regs.V(ins.X()))
	y := int(c.regs.V(ins.Y()))
	collision, err := c.fb.DrawSprite(x, y, height, rows)
	if err != nil {
		return 0, err
	}
	c.regs.SetFlag(collision)
	return advanceNext, nil
}

// EX9E
func skp(c *CPU, ins Instruction) (advance, error) {
	pressed, err := c.keys.IsPressed(c.regs.V(ins.X()))
	if err != nil {
		return 0, err
	}
	return skipIf(pressed), nil
}

// EXA1
func sknp(c *CPU, ins Instruction) (advance, error) {
	pressed, err := c.keys.IsPressed(c.regs.V(ins.X()))
	if err != nil {
		return 0, err
	}
	return skipIf(!pressed), nil
}

// FX07
func ldDelayTimer(c *CPU, ins Instruction) (advance, error) {
	c.regs.SetV(ins.X(), int(c.regs.DT()))
	return advanceNext, nil
}

// FX0A blocks the program until a key is pressed, the timers keep running.
func waitKey(c *CPU, ins Instruction) (advance, error) {
	key, ok := c.keys.FirstPressed()
	if !ok {
		return advanceWait, nil
	}
	c.regs.SetV(ins.X(), int(key))
	return advanceNext, nil
}

// FX15
func setDelayTimer(c *CPU, ins Instruction) (advance, error) {
	c.regs.SetDT(c.regs.V(ins.X()))
	return advanceNext, nil
}

// FX18
func setSoundTimer(c *CPU, ins Instruction) (advance, error) {
	c.regs.SetST(c.regs.V(ins.X()))
	return advanceNext, nil
}

// FX1E wraps at 16 bits and does not change the flag register.
func addIndex(c *CPU, ins Instruction) (advance, error) {
	c.regs.SetI(int(c.regs.I()) + int(c.regs.V(ins.X())))
	return advanceNext, nil
}

// FX29
func ldGlyph(c *CPU, ins Instruction) (advance, error) {
	address, err := memory.GlyphAddress(int(c.regs.V(ins.X())))
	if err != nil {
		return 0, err
	}
	c.regs.SetI(int(address))
	return advanceNext, nil
}

// FX33
func bcd(c *CPU, ins Instruction) (advance, error) {
	value := int(c.regs.V(ins.X()))
	i := int(c.regs.I())
	digits := [3]int{value / 100, value / 10 % 10, value % 10}
	if !memory.Valid(i + len(digits) - 1) {
		return 0, fmt.Errorf("%w: storing decimal digits at $%04X", fault.ErrOutOfRange, i)
	}

	for offset, digit := range digits {
		if err := c.mem.Write(i+offset, digit); err != nil {
			return 0, fmt.Errorf("storing decimal digit: %w", err)
		}
	}
	return advanceNext, nil
}

// FX55 stores V0 to Vx inclusive, I is not modified.
func storeRegisters(c *CPU, ins Instruction) (advance, error) {
	i := int(c.regs.I())
	x := int(ins.X())
	if !memory.Valid(i + x) {
		return 0, fmt.Errorf("%w: storing %d registers at $%04X", fault.ErrOutOfRange, x+1, i)
	}

	for reg := 0; reg <= x; reg++ {
		if err := c.mem.Write(i+reg, int(c.regs.V(uint8(reg)))); err != nil {
			return 0, err
		}
	}
	return advanceNext, nil
}

// FX65 loads V0 to Vx inclusive, I is not modified.
func loadRegisters(c *CPU, ins Instruction) (advance, error) {
	x := int(ins.X())
	data, err := c.mem.Slice(int(c.regs.I()), x+1)
	if err != nil {
		return 0, fmt.Errorf("loading registers: %w", err)
	}

	for reg := 0; reg < len(data) && reg < registers.Count; reg++ {
		c.regs.SetV(uint8(reg), int(data[reg]))
	}
	return advanceNext, nil
}
