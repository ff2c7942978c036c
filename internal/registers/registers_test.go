package registers

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	r := New()

	assert.Equal(t, uint16(memory.ProgramStart), r.PC())
	assert.Equal(t, uint16(0), r.I())
	assert.Equal(t, byte(0), r.DT())
	assert.Equal(t, byte(0), r.ST())
	for x := uint8(0); x < Count; x++ {
		assert.Equal(t, byte(0), r.V(x))
	}
}

func TestRegisters_SetVMasks(t *testing.T) {
	tests := []struct {
		value    int
		expected byte
	}{
		{0x00, 0x00},
		{0xFF, 0xFF},
		{0x100, 0x00},
		{0x101, 0x01},
		{0x1FE, 0xFE},
		{-2, 0xFE},
	}

	r := New()
	for _, tt := range tests {
		r.SetV(3, tt.value)
		assert.Equal(t, tt.expected, r.V(3))
	}
}

func TestRegisters_SetFlag(t *testing.T) {
	r := New()

	r.SetFlag(true)
	assert.Equal(t, byte(1), r.V(Flag))
	r.SetFlag(false)
	assert.Equal(t, byte(0), r.V(Flag))
}

func TestRegisters_SetIWraps16Bit(t *testing.T) {
	r := New()

	r.SetI(0xFFFF)
	assert.Equal(t, uint16(0xFFFF), r.I())
	r.SetI(0x10000 + 0x12)
	assert.Equal(t, uint16(0x12), r.I())
}

func TestRegisters_Timers(t *testing.T) {
	r := New()
	r.SetDT(2)
	r.SetST(1)
	assert.True(t, r.ToneActive())

	r.DecrementDelayTimer()
	r.DecrementSoundTimer()
	assert.Equal(t, byte(1), r.DT())
	assert.Equal(t, byte(0), r.ST())
	assert.False(t, r.ToneActive())

	r.DecrementDelayTimer()
	r.DecrementDelayTimer()
	r.DecrementSoundTimer()
	assert.Equal(t, byte(0), r.DT())
	assert.Equal(t, byte(0), r.ST())
}

func TestRegisters_Reset(t *testing.T) {
	r := New()
	r.SetV(1, 5)
	r.SetI(0x300)
	r.SetPC(0x400)
	r.SetDT(9)

	r.Reset()

	assert.Equal(t, byte(0), r.V(1))
	assert.Equal(t, uint16(0), r.I())
	assert.Equal(t, uint16(memory.ProgramStart), r.PC())
	assert.Equal(t, byte(0), r.DT())
}
