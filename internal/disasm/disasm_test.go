package disasm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint16
		expected string
	}{
		{"clear screen", 0x00E0, chip8.Cls.Name},
		{"return", 0x00EE, chip8.Ret.Name},
		{"jump", 0x1ABC, chip8.Jp.Name + " $ABC"},
		{"jump offset", 0xB123, chip8.Jp.Name + " V0, $123"},
		{"call", 0x2ABC, chip8.Call.Name + " $ABC"},
		{"skip equal byte", 0x3A12, chip8.Se.Name + " VA, $12"},
		{"skip not equal register", 0x9120, chip8.Sne.Name + " V1, V2"},
		{"load byte", 0x6102, chip8.Ld.Name + " V1, $02"},
		{"load register", 0x8120, chip8.Ld.Name + " V1, V2"},
		{"load index", 0xA420, chip8.Ld.Name + " I, $420"},
		{"load delay timer", 0xF307, chip8.Ld.Name + " V3, DT"},
		{"wait key", 0xF30A, chip8.Ld.Name + " V3, K"},
		{"set sound timer", 0xF318, chip8.Ld.Name + " ST, V3"},
		{"font", 0xF529, chip8.Ld.Name + " F, V5"},
		{"bcd", 0xF533, chip8.Ld.Name + " B, V5"},
		{"register dump", 0xF355, chip8.Ld.Name + " [I], V3"},
		{"register load", 0xF365, chip8.Ld.Name + " V3, [I]"},
		{"add byte", 0x7105, chip8.Add.Name + " V1, $05"},
		{"add register", 0x8124, chip8.Add.Name + " V1, V2"},
		{"add index", 0xF11E, chip8.Add.Name + " I, V1"},
		{"xor", 0x8AB3, chip8.Xor.Name + " VA, VB"},
		{"shift right", 0x8A06, chip8.Shr.Name + " VA"},
		{"random", 0xC2FF, chip8.Rnd.Name + " V2, $FF"},
		{"draw", 0xD125, chip8.Drw.Name + " V1, V2, $5"},
		{"skip key", 0xE49E, chip8.Skp.Name + " V4"},
		{"skip not key", 0xE4A1, chip8.Sknp.Name + " V4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.opcode))
		})
	}
}

func TestFormat_UnknownWord(t *testing.T) {
	assert.Equal(t, ".word $FFFF", Format(0xFFFF))
	assert.Equal(t, ".word $E000", Format(0xE000))
}

func TestIsSkip(t *testing.T) {
	assert.True(t, IsSkip(0x3000))
	assert.True(t, IsSkip(0xE09E))
	assert.False(t, IsSkip(0x1200))
	assert.False(t, IsSkip(0xFFFF))
}

func TestDisassemble(t *testing.T) {
	program := []byte{0x00, 0xE0, 0x12, 0x00, 0xAB}

	lines := Disassemble(program, 0x200)
	assert.Len(t, lines, 3)

	assert.Equal(t, uint16(0x200), lines[0].Address)
	assert.Equal(t, uint16(0x00E0), lines[0].Opcode)
	assert.Equal(t, "_label_0200", lines[0].Label)
	assert.Equal(t, uint16(0x202), lines[1].Address)
	assert.Equal(t, chip8.Jp.Name+" _label_0200", lines[1].Text)
	assert.Equal(t, ".byte $AB", lines[2].Text)

	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, lines))
	output := buf.String()
	assert.True(t, strings.Contains(output, "_label_0200:\n"))
	assert.True(t, strings.Contains(output, "; $0202  1200"))
	assert.True(t, strings.Contains(output, "; $0204  AB"))
}

func TestDisassemble_Labels(t *testing.T) {
	program := []byte{
		0x22, 0x06, // call $206
		0x12, 0x09, // jp $209, inside of the instruction at $208
		0x13, 0x00, // jp $300, outside of the program
		0x00, 0xEE, // ret
		0x60, 0x01,
	}

	lines := Disassemble(program, 0x200)
	assert.Len(t, lines, 5)

	assert.Equal(t, chip8.Call.Name+" _func_0206", lines[0].Text)
	assert.Equal(t, "_func_0206", lines[3].Label)
	assert.Equal(t, chip8.Jp.Name+" $209", lines[1].Text)
	assert.Equal(t, chip8.Jp.Name+" $300", lines[2].Text)
	assert.Equal(t, "branch into instruction detected: $0209", lines[4].Comment)
	assert.Equal(t, "", lines[4].Label)
}
