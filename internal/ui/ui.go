package ui

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/cndofx/chip8-emu/internal/chip8"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Tab - show debug info
// P - pause
// N - one step and stop
// Backspace - reset and reload the rom

// CHIP-8 keypad  host keyboard
// 1 2 3 C        1 2 3 4
// 4 5 6 D        Q W E R
// 7 8 9 E        A S D F
// A 0 B F        Z X C V
var keymap = map[ebiten.Key]uint8{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

const (
	debugScreenWidth = 200

	// stepKey must stay outside keymap, otherwise stepping a program
	// that waits for a key would feed it the step key.
	stepKey = ebiten.KeyN
)

var (
	colorOn    = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	colorOff   = color.RGBA{0x10, 0x10, 0x10, 0xff}
	colorDebug = color.RGBA{50, 50, 50, 255}
)

type UI struct {
	bus   *chip8.Bus
	rom   []uint8
	scale int

	showDebugInfo bool
	fault         error

	screenImg *ebiten.Image
	pixels    []uint8
}

func New(bus *chip8.Bus, rom []uint8, scale int) *UI {
	if scale <= 0 {
		scale = 10
	}
	return &UI{
		bus:       bus,
		rom:       rom,
		scale:     scale,
		screenImg: ebiten.NewImage(chip8.ScreenWidth, chip8.ScreenHeight),
		pixels:    make([]uint8, chip8.ScreenWidth*chip8.ScreenHeight*4),
	}
}

func (ui *UI) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		ui.showDebugInfo = !ui.showDebugInfo
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		ui.bus.TogglePause()
	}

	if inpututil.IsKeyJustPressed(stepKey) {
		ui.bus.OneStepAndStop()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		if err := ui.bus.LoadROM(ui.rom); err != nil {
			return fmt.Errorf("couldn't reload the rom: %w", err)
		}
		ui.fault = nil
	}

	for key, idx := range keymap {
		if err := ui.bus.SetKey(idx, ebiten.IsKeyPressed(key)); err != nil {
			return err
		}
	}

	if ui.fault != nil {
		return nil
	}
	if err := ui.bus.Frame(); err != nil {
		// keep the window open on the last frame so the fault can be inspected
		log.Printf("emulation stopped: %s\n", err)
		ui.fault = err
		ui.showDebugInfo = true
	}
	return nil
}

func (ui *UI) Draw(screen *ebiten.Image) {
	for i, p := range ui.bus.Screen() {
		c := colorOff
		if p != 0 {
			c = colorOn
		}
		ui.pixels[i*4] = c.R
		ui.pixels[i*4+1] = c.G
		ui.pixels[i*4+2] = c.B
		ui.pixels[i*4+3] = c.A
	}
	ui.screenImg.WritePixels(ui.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(ui.scale), float64(ui.scale))
	screen.DrawImage(ui.screenImg, op)

	if !ui.showDebugInfo {
		return
	}

	info := ui.bus.DebugInfo()
	var infoStr strings.Builder
	fmt.Fprintf(&infoStr, " FPS: %0.0f\n", ebiten.ActualFPS())
	fmt.Fprintf(&infoStr, " PAUSED: %t\n", ui.bus.Paused())
	fmt.Fprintf(&infoStr, " PC: %04X  I: %04X\n", info.PC, info.I)
	fmt.Fprintf(&infoStr, " OP: %04X %s\n", info.Opcode, info.Instr)
	fmt.Fprintf(&infoStr, " INSTRUCTIONS: %d\n", ui.bus.Instructions())
	for r := 0; r < len(info.V); r += 2 {
		fmt.Fprintf(&infoStr, " V%X: %02X  V%X: %02X\n", r, info.V[r], r+1, info.V[r+1])
	}
	fmt.Fprintf(&infoStr, " DT: %02X  ST: %02X\n", info.DT, info.ST)
	fmt.Fprintf(&infoStr, " SP: %d\n", info.SP)
	fmt.Fprintf(&infoStr, " SOUND: %t\n", ui.bus.SoundActive())
	if ui.fault != nil {
		fmt.Fprintf(&infoStr, " HALTED:\n %s\n", ui.fault)
	}

	debugScreenOffsetX := float32(chip8.ScreenWidth * ui.scale)
	vector.DrawFilledRect(screen, debugScreenOffsetX, 0, debugScreenWidth, float32(chip8.ScreenHeight*ui.scale), colorDebug, false)
	ebitenutil.DebugPrintAt(screen, infoStr.String(), int(debugScreenOffsetX), 0)
}

func (ui *UI) Layout(_, _ int) (int, int) {
	return chip8.ScreenWidth*ui.scale + debugScreenWidth, chip8.ScreenHeight * ui.scale
}

func RunUI(ui *UI) error {
	ebiten.SetWindowTitle("chip8")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(ui.Layout(0, 0))
	ebiten.SetTPS(chip8.FrameRate)
	return ebiten.RunGame(ui)
}
