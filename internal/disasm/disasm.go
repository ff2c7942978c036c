// Package disasm formats CHIP-8 instruction words as assembly text.
// The mnemonics come from the retrogolib CHIP-8 opcode table, the operands
// are decoded from the instruction word.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// Line is a single disassembled instruction of a listing.
type Line struct {
	Address uint16
	Opcode  uint16
	Text    string
	Label   string // set for jump and call destinations
	Comment string

	data bool // Opcode holds a single byte that is not an instruction
}

// lookup returns the retrogolib instruction matching the opcode word.
func lookup(opcode uint16) (*chip8.Instruction, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op.Instruction, true
		}
	}
	return nil, false
}

// Name returns the mnemonic of the opcode word, or an empty string if the word
// is not a known instruction.
func Name(opcode uint16) string {
	ins, ok := lookup(opcode)
	if !ok {
		if opcode&0xF000 == 0x0000 {
			return "sys"
		}
		return ""
	}
	return ins.Name
}

// IsSkip returns whether the opcode word is a conditional skip instruction.
func IsSkip(opcode uint16) bool {
	ins, ok := lookup(opcode)
	if !ok {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

// Format returns the assembly text of an instruction word.
// Words that are not instructions are output as data.
func Format(opcode uint16) string {
	name := Name(opcode)
	if name == "" {
		return fmt.Sprintf(".word $%04X", opcode)
	}
	if params := formatParams(name, opcode); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// Disassemble decodes every instruction word of the program, base is the
// address the first byte is loaded to. A trailing odd byte is output as data.
// Destinations of jumps and calls inside the program get a label.
func Disassemble(program []byte, base uint16) []Line {
	lines := make([]Line, 0, len(program)/opcodeSize+1)

	for offset := 0; offset < len(program); offset += opcodeSize {
		address := base + uint16(offset)

		if offset+1 >= len(program) {
			lines = append(lines, Line{
				Address: address,
				Opcode:  uint16(program[offset]),
				Text:    fmt.Sprintf(".byte $%02X", program[offset]),
				data:    true,
			})
			break
		}

		opcode := uint16(program[offset])<<8 | uint16(program[offset+1])
		lines = append(lines, Line{
			Address: address,
			Opcode:  opcode,
			Text:    Format(opcode),
		})
	}

	processJumpDestinations(lines)
	return lines
}

// Write outputs the listing with the address and the hex opcode as comment.
func Write(w io.Writer, lines []Line) error {
	for _, line := range lines {
		if line.Label != "" {
			if _, err := fmt.Fprintf(w, "\n%s:\n", line.Label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		comment := fmt.Sprintf("$%04X  %04X", line.Address, line.Opcode)
		if line.data {
			comment = fmt.Sprintf("$%04X  %02X", line.Address, line.Opcode)
		}
		if line.Comment != "" {
			comment += "  " + line.Comment
		}

		if _, err := fmt.Fprintf(w, "  %-20s ; %s\n", line.Text, comment); err != nil {
			return fmt.Errorf("writing listing line: %w", err)
		}
	}
	return nil
}
