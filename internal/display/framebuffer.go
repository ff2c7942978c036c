// Package display implements the 64x32 monochrome CHIP-8 framebuffer.
package display

import (
	"fmt"
	"strings"

	"github.com/retroenv/chip8vm/internal/fault"
)

const (
	// Width is the number of pixel columns.
	Width = 64
	// Height is the number of pixel rows.
	Height = 32

	// MinSpriteHeight is the smallest number of rows a sprite can have.
	MinSpriteHeight = 1
	// MaxSpriteHeight is the largest number of rows a sprite can have.
	MaxSpriteHeight = 15

	// spriteWidth is the number of pixel columns of every sprite row, one per bit.
	spriteWidth = 8
)

// FrameBuffer is the pixel grid, all writes are XOR composited against the current state.
type FrameBuffer struct {
	pixels [Width * Height]bool
}

// New returns a cleared framebuffer.
func New() *FrameBuffer {
	return &FrameBuffer{}
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Get returns the state of the pixel at the given coordinates.
func (f *FrameBuffer) Get(x, y int) (bool, error) {
	if !inBounds(x, y) {
		return false, fmt.Errorf("%w: pixel (%d, %d)", fault.ErrOutOfRange, x, y)
	}
	return f.pixels[y*Width+x], nil
}

// Set composites the incoming value into the pixel using XOR.
// The returned flag reports a collision: a pixel that was set got turned off.
func (f *FrameBuffer) Set(x, y int, incoming bool) (bool, error) {
	if !inBounds(x, y) {
		return false, fmt.Errorf("%w: pixel (%d, %d)", fault.ErrOutOfRange, x, y)
	}

	index := y*Width + x
	current := f.pixels[index]
	f.pixels[index] = incoming != current
	return current && incoming, nil
}

// Clear turns off all pixels.
func (f *FrameBuffer) Clear() {
	f.pixels = [Width * Height]bool{}
}

// DrawSprite draws height rows of 8 pixels each at the origin, the most significant
// bit of a row byte is the leftmost pixel. Pixels past the right or bottom edge wrap
// around to the opposite side. It returns whether any set pixel was turned off.
func (f *FrameBuffer) DrawSprite(x, y, height int, rows []byte) (bool, error) {
	if height < MinSpriteHeight || height > MaxSpriteHeight {
		return false, fmt.Errorf("%w: %d rows", fault.ErrInvalidSpriteHeight, height)
	}
	if len(rows) < height {
		return false, fmt.Errorf("%w: sprite of %d rows has only %d bytes",
			fault.ErrOutOfRange, height, len(rows))
	}

	collision := false
	for r := range height {
		row := rows[r]
		targetY := (y + r) % Height

		for c := range spriteWidth {
			bit := row&(0x80>>c) != 0
			if !bit {
				continue // XOR with 0 keeps the pixel
			}

			targetX := (x + c) % Width
			erased, err := f.Set(targetX, targetY, true)
			if err != nil {
				return false, err
			}
			collision = collision || erased
		}
	}
	return collision, nil
}

// String renders the framebuffer as text, one line per row using '#' for set pixels.
func (f *FrameBuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)

	for y := range Height {
		for x := range Width {
			if f.pixels[y*Width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
