// Package frontend displays the framebuffer in a window and maps the host
// keyboard to the keypad.
package frontend

import (
	"errors"

	"github.com/retroenv/chip8vm/internal/display"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA

	// bytesPerPixel is the size of a pixel in the RGBA output.
	bytesPerPixel = 4
)

// ErrUnavailable is returned when the binary was built without window support.
var ErrUnavailable = errors.New("window frontend is not available in headless builds")

// Config contains the window settings.
type Config struct {
	Title string
	Scale int
}

// PixelBufferSize is the size of the RGBA buffer that Pixels fills.
const PixelBufferSize = display.Width * display.Height * bytesPerPixel

// Pixels converts the framebuffer to RGBA pixels. dst must have a length of
// PixelBufferSize.
func Pixels(fb *display.FrameBuffer, dst []byte) {
	for y := range display.Height {
		for x := range display.Width {
			color := screenColor
			if set, err := fb.Get(x, y); err == nil && set {
				color = spriteColor
			}

			offset := (y*display.Width + x) * bytesPerPixel
			dst[offset] = byte(color >> 16)
			dst[offset+1] = byte(color >> 8)
			dst[offset+2] = byte(color)
			dst[offset+3] = 0xFF
		}
	}
}
