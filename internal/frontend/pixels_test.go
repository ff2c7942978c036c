package frontend

import (
	"testing"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/retrogolib/assert"
)

func TestPixels(t *testing.T) {
	fb := display.New()
	_, err := fb.Set(1, 0, true)
	assert.NoError(t, err)

	pixels := make([]byte, PixelBufferSize)
	Pixels(fb, pixels)

	// background
	assert.Equal(t, byte(0x1A), pixels[0])
	assert.Equal(t, byte(0x23), pixels[1])
	assert.Equal(t, byte(0x7E), pixels[2])
	assert.Equal(t, byte(0xFF), pixels[3])

	// sprite
	assert.Equal(t, byte(0x9F), pixels[4])
	assert.Equal(t, byte(0xA8), pixels[5])
	assert.Equal(t, byte(0xDA), pixels[6])
	assert.Equal(t, byte(0xFF), pixels[7])

	last := PixelBufferSize - bytesPerPixel
	assert.Equal(t, byte(0x1A), pixels[last])
}
