package memory

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/fault"
	"github.com/retroenv/retrogolib/assert"
)

func TestNew_LoadsFontSet(t *testing.T) {
	m := New()

	b, err := m.Read(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)

	// last byte of glyph F
	b, err = m.Read(GlyphCount*GlyphSize - 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x80), b)

	b, err = m.Read(GlyphCount * GlyphSize)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestMemory_ReadWriteRoundTrip(t *testing.T) {
	m := New()

	addresses := []int{0, 1, GlyphCount * GlyphSize, ProgramStart, 0x420, Size - 1}
	values := []int{0, 1, 0x7F, 0x80, 0xFF}

	for _, address := range addresses {
		for _, value := range values {
			assert.NoError(t, m.Write(address, value))
			b, err := m.Read(address)
			assert.NoError(t, err)
			assert.Equal(t, byte(value), b)
		}
	}
}

func TestMemory_OutOfRange(t *testing.T) {
	m := New()

	tests := []struct {
		name    string
		address int
	}{
		{"negative", -1},
		{"size", Size},
		{"far", 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Read(tt.address)
			assert.True(t, errors.Is(err, fault.ErrOutOfRange))

			err = m.Write(tt.address, 1)
			assert.True(t, errors.Is(err, fault.ErrOutOfRange))
		})
	}
}

func TestMemory_ValueOverflow(t *testing.T) {
	m := New()

	for _, value := range []int{-1, 0x100, 0x1234} {
		err := m.Write(ProgramStart, value)
		assert.True(t, errors.Is(err, fault.ErrValueOverflow))
	}

	b, err := m.Read(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestMemory_LoadProgram(t *testing.T) {
	m := New()

	assert.NoError(t, m.LoadProgram([]byte{0x12, 0x34, 0x56}))

	data, err := m.Slice(ProgramStart, 3)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal([]byte{0x12, 0x34, 0x56}, data))

	full := make([]byte, MaxProgramSize)
	full[len(full)-1] = 0xAB
	assert.NoError(t, m.LoadProgram(full))
	b, err := m.Read(Size - 1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	err = m.LoadProgram(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, fault.ErrOutOfRange))
}

func TestMemory_Reset(t *testing.T) {
	m := New()
	assert.NoError(t, m.Write(0, 0))
	assert.NoError(t, m.Write(ProgramStart, 0x42))

	m.Reset()

	b, err := m.Read(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xF0), b)
	b, err = m.Read(ProgramStart)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), b)
}

func TestMemory_Slice(t *testing.T) {
	m := New()

	glyph, err := m.Slice(5, GlyphSize)
	assert.NoError(t, err)
	assert.True(t, bytes.Equal([]byte{0x20, 0x60, 0x20, 0x20, 0x70}, glyph))

	_, err = m.Slice(Size-2, 3)
	assert.True(t, errors.Is(err, fault.ErrOutOfRange))

	_, err = m.Slice(0, -1)
	assert.True(t, errors.Is(err, fault.ErrOutOfRange))
}

func TestGlyphAddress(t *testing.T) {
	tests := []struct {
		digit    int
		expected uint16
		valid    bool
	}{
		{0x0, 0x00, true},
		{0x1, 0x05, true},
		{0xB, 0x37, true},
		{0xF, 0x4B, true},
		{0x10, 0, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		address, err := GlyphAddress(tt.digit)
		if tt.valid {
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, address)
		} else {
			assert.True(t, errors.Is(err, fault.ErrValueExceedsNibble))
		}
	}
}

func TestMemory_Dump(t *testing.T) {
	m := New()
	var buf bytes.Buffer

	assert.NoError(t, m.Dump(&buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, Size/16)
	assert.Equal(t, "0000 F0 90 90 90 F0 20 60 20 20 70 F0 10 F0 80 F0 F0", lines[0])
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "0FF0 00"))
}
