//go:build !headless

package frontend

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/retrogolib/log"
)

// keymap maps the left side of a QWERTY keyboard to the hexadecimal keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keymap = map[ebiten.Key]uint8{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// Game implements ebiten.Game for the virtual machine.
type Game struct {
	emulator Emulator
	driver   Advancer
	tone     ToneOutput
	logger   *log.Logger

	pixels []byte
	last   time.Time
}

// NewGame returns a game that advances the driver on every update. tone can be nil.
func NewGame(emulator Emulator, driver Advancer, tone ToneOutput, logger *log.Logger) *Game {
	return &Game{
		emulator: emulator,
		driver:   driver,
		tone:     tone,
		logger:   logger,
		pixels:   make([]byte, PixelBufferSize),
	}
}

// Update implements ebiten.Game.Update
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	keys := g.emulator.Keypad()
	for hostKey, key := range keymap {
		if err := keys.Set(key, ebiten.IsKeyPressed(hostKey)); err != nil {
			return fmt.Errorf("updating keypad: %w", err)
		}
	}

	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	elapsed := now.Sub(g.last)
	g.last = now

	if err := g.driver.Advance(elapsed); err != nil {
		return err
	}

	if g.tone != nil {
		g.tone.SetActive(g.emulator.ToneActive())
	}
	return nil
}

// Draw implements ebiten.Game.Draw
func (g *Game) Draw(screen *ebiten.Image) {
	Pixels(g.emulator.FrameBuffer(), g.pixels)
	screen.WritePixels(g.pixels)
}

// Layout implements ebiten.Game.Layout
func (g *Game) Layout(_, _ int) (screenWidth, screenHeight int) {
	return display.Width, display.Height
}

// Run opens the window and runs the game until the window is closed, Escape
// is pressed or the driver returns an error.
func Run(cfg Config, game *Game) error {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(display.Width*cfg.Scale, display.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game.logger.Debug("Opening window",
		log.Int("width", display.Width*cfg.Scale),
		log.Int("height", display.Height*cfg.Scale))

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	if g := game.tone; g != nil {
		g.SetActive(false)
	}
	return nil
}
