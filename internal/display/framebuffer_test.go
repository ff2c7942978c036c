package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/chip8vm/internal/fault"
	"github.com/retroenv/retrogolib/assert"
)

func TestFrameBuffer_SetIsSelfInverse(t *testing.T) {
	f := New()

	coordinates := [][2]int{{0, 0}, {63, 0}, {0, 31}, {63, 31}, {17, 9}}
	for _, c := range coordinates {
		x, y := c[0], c[1]

		collision, err := f.Set(x, y, true)
		assert.NoError(t, err)
		assert.False(t, collision)
		on, err := f.Get(x, y)
		assert.NoError(t, err)
		assert.True(t, on)

		collision, err = f.Set(x, y, true)
		assert.NoError(t, err)
		assert.True(t, collision)
		on, err = f.Get(x, y)
		assert.NoError(t, err)
		assert.False(t, on)
	}
}

func TestFrameBuffer_SetFalseKeepsPixel(t *testing.T) {
	f := New()

	_, err := f.Set(5, 5, true)
	assert.NoError(t, err)

	collision, err := f.Set(5, 5, false)
	assert.NoError(t, err)
	assert.False(t, collision)
	on, err := f.Get(5, 5)
	assert.NoError(t, err)
	assert.True(t, on)
}

func TestFrameBuffer_OutOfBounds(t *testing.T) {
	f := New()

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x equals width", Width, 0},
		{"y equals height", 0, Height},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Get(tt.x, tt.y)
			assert.True(t, errors.Is(err, fault.ErrOutOfRange))
			_, err = f.Set(tt.x, tt.y, true)
			assert.True(t, errors.Is(err, fault.ErrOutOfRange))
		})
	}
}

func TestFrameBuffer_Clear(t *testing.T) {
	f := New()
	_, err := f.DrawSprite(0, 0, 5, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	assert.NoError(t, err)

	f.Clear()

	assert.False(t, strings.Contains(f.String(), "#"))
}

func TestFrameBuffer_DrawSprite(t *testing.T) {
	f := New()

	// glyph 0 of the font
	collision, err := f.DrawSprite(10, 4, 5, []byte{0xF0, 0x90, 0x90, 0x90, 0xF0})
	assert.NoError(t, err)
	assert.False(t, collision)

	expected := []string{
		"####",
		"#..#",
		"#..#",
		"#..#",
		"####",
	}
	lines := strings.Split(f.String(), "\n")
	for r, row := range expected {
		assert.Equal(t, row+"....", lines[4+r][10:18])
	}

	// drawing the same sprite again erases it and reports the collision
	collision, err = f.DrawSprite(10, 4, 5, []byte{0xF0, 0x90, 0x90, 0x90, 0xF0})
	assert.NoError(t, err)
	assert.True(t, collision)
	assert.False(t, strings.Contains(f.String(), "#"))
}

func TestFrameBuffer_DrawSpriteWraps(t *testing.T) {
	f := New()

	collision, err := f.DrawSprite(62, 31, 2, []byte{0xC3, 0x80})
	assert.NoError(t, err)
	assert.False(t, collision)

	set := [][2]int{{62, 31}, {63, 31}, {4, 31}, {5, 31}, {62, 0}}
	for _, c := range set {
		on, err := f.Get(c[0], c[1])
		assert.NoError(t, err)
		assert.True(t, on)
	}
	on, err := f.Get(0, 31)
	assert.NoError(t, err)
	assert.False(t, on)

	// origin coordinates beyond the screen wrap too
	f.Clear()
	_, err = f.DrawSprite(64+3, 32+2, 1, []byte{0x80})
	assert.NoError(t, err)
	on, err = f.Get(3, 2)
	assert.NoError(t, err)
	assert.True(t, on)
}

func TestFrameBuffer_DrawSpriteCollisionOnlyOnErase(t *testing.T) {
	f := New()

	_, err := f.DrawSprite(0, 0, 1, []byte{0xF0})
	assert.NoError(t, err)

	// overlapping only on unset pixels
	collision, err := f.DrawSprite(0, 0, 1, []byte{0x0F})
	assert.NoError(t, err)
	assert.False(t, collision)

	collision, err = f.DrawSprite(0, 0, 1, []byte{0x01})
	assert.NoError(t, err)
	assert.True(t, collision)
}

func TestFrameBuffer_DrawSpriteHeight(t *testing.T) {
	rows := make([]byte, 16)

	tests := []struct {
		height int
		valid  bool
	}{
		{0, false},
		{1, true},
		{8, true},
		{15, true},
		{16, false},
	}

	for _, tt := range tests {
		f := New()
		_, err := f.DrawSprite(0, 0, tt.height, rows)
		if tt.valid {
			assert.NoError(t, err)
		} else {
			assert.True(t, errors.Is(err, fault.ErrInvalidSpriteHeight))
		}
	}
}

func TestFrameBuffer_DrawSpriteShortRows(t *testing.T) {
	f := New()

	_, err := f.DrawSprite(0, 0, 3, []byte{0xFF})
	assert.True(t, errors.Is(err, fault.ErrOutOfRange))
}
