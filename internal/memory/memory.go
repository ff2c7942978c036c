// Package memory implements the 4KB CHIP-8 main memory.
//
// CHIP-8 memory map:
//
//	0x000-0x04F: built-in hexadecimal font (16 glyphs of 5 bytes)
//	0x050-0x1FF: unused interpreter area
//	0x200-0xFFF: program and program writable data
package memory

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/fault"
)

const (
	// Size is the number of addressable bytes.
	Size = 0x1000

	// ProgramStart is the address programs are loaded to and the reset value of the PC.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits between ProgramStart and the end of memory.
	MaxProgramSize = Size - ProgramStart

	// FontStart is the address of the first font glyph.
	FontStart = 0x000

	// GlyphSize is the number of bytes of a single font glyph.
	GlyphSize = 5

	// GlyphCount is the number of font glyphs, one for every hexadecimal digit.
	GlyphCount = 16
)

var fontSet = [GlyphCount * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat byte store of the virtual machine.
type Memory struct {
	data [Size]byte
}

// New returns a memory in reset state: zero filled with the font set loaded.
func New() *Memory {
	m := &Memory{}
	m.LoadFontSet()
	return m
}

// Reset clears the memory and reloads the font set.
func (m *Memory) Reset() {
	m.data = [Size]byte{}
	m.LoadFontSet()
}

// Valid returns whether the given address is inside of the memory.
func Valid(address int) bool {
	return address >= 0 && address < Size
}

// Read returns the byte at the given address.
func (m *Memory) Read(address int) (byte, error) {
	if !Valid(address) {
		return 0, fmt.Errorf("%w: reading $%04X", fault.ErrOutOfRange, address)
	}
	return m.data[address], nil
}

// Write stores a byte value at the given address.
func (m *Memory) Write(address, value int) error {
	if !Valid(address) {
		return fmt.Errorf("%w: writing $%04X", fault.ErrOutOfRange, address)
	}
	if value < 0 || value > 0xFF {
		return fmt.Errorf("%w: writing %d to $%04X", fault.ErrValueOverflow, value, address)
	}
	m.data[address] = byte(value)
	return nil
}

// Slice returns a copy of length bytes starting at the given address.
func (m *Memory) Slice(address, length int) ([]byte, error) {
	if length < 0 || !Valid(address) || (length > 0 && !Valid(address+length-1)) {
		return nil, fmt.Errorf("%w: reading %d bytes at $%04X", fault.ErrOutOfRange, length, address)
	}
	b := make([]byte, length)
	copy(b, m.data[address:address+length])
	return b, nil
}

// LoadFontSet writes the hexadecimal font glyphs to FontStart.
func (m *Memory) LoadFontSet() {
	copy(m.data[FontStart:], fontSet[:])
}

// LoadProgram copies the program bytes to ProgramStart.
// The loader bounds the size, a program that does not fit is rejected without
// modifying the memory.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: program of %d bytes exceeds %d bytes",
			fault.ErrOutOfRange, len(program), MaxProgramSize)
	}
	copy(m.data[ProgramStart:], program)
	return nil
}

// GlyphAddress returns the address of the font glyph for the given hexadecimal digit.
func GlyphAddress(digit int) (uint16, error) {
	if digit < 0 || digit >= GlyphCount {
		return 0, fmt.Errorf("%w: font glyph %d", fault.ErrValueExceedsNibble, digit)
	}
	return uint16(FontStart + digit*GlyphSize), nil
}

// Dump writes a hex dump of the whole memory, 16 bytes per line.
func (m *Memory) Dump(w io.Writer) error {
	const lineSize = 16

	var sb strings.Builder
	for address := 0; address < Size; address += lineSize {
		sb.Reset()
		fmt.Fprintf(&sb, "%04X", address)
		for _, b := range m.data[address : address+lineSize] {
			fmt.Fprintf(&sb, " %02X", b)
		}
		sb.WriteByte('\n')

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("writing memory dump: %w", err)
		}
	}
	return nil
}
