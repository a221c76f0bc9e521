package chip8

import "strings"

const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Display is a monochrome framebuffer. Every cell holds 0 or 1.
type Display interface {
	Clear()
	// Draw XORs the sprite rows onto the screen at (x, y), wrapping around
	// both edges, and reports whether any lit pixel was turned off.
	Draw(x, y uint8, sprite []uint8) bool
	// Pixels is the row-major framebuffer with the origin at the top left.
	// Callers must not modify it.
	Pixels() []uint8
}

type Screen struct {
	pixels [ScreenWidth * ScreenHeight]uint8
}

func NewScreen() *Screen {
	return &Screen{}
}

func (s *Screen) Clear() {
	s.pixels = [ScreenWidth * ScreenHeight]uint8{}
}

func (s *Screen) Draw(x, y uint8, sprite []uint8) bool {
	erased := false
	for r, b := range sprite {
		row := (int(y) + r) % ScreenHeight
		for bit := 0; bit < 8; bit++ {
			if b&(0x80>>bit) == 0 {
				continue
			}
			col := (int(x) + bit) % ScreenWidth
			i := row*ScreenWidth + col
			if s.pixels[i] == 1 {
				erased = true
			}
			s.pixels[i] ^= 1
		}
	}
	return erased
}

func (s *Screen) Pixels() []uint8 {
	return s.pixels[:]
}

// String renders the screen as text, '#' for lit pixels.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow((ScreenWidth + 1) * ScreenHeight)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if s.pixels[y*ScreenWidth+x] == 0 {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
