package chip8

import (
	"io"
	"log"

	"github.com/pkg/errors"
)

const (
	// DefaultSpeed is the number of instructions executed per second.
	DefaultSpeed = 500

	// FrameRate is the number of times per second the host is expected to call Frame.
	FrameRate = 60
)

type Option func(*Bus)

// WithSpeed sets the number of instructions executed per second.
func WithSpeed(hz int) Option {
	return func(b *Bus) {
		if hz > 0 {
			b.speed = hz
		}
	}
}

// WithRandom replaces the time seeded random source used by RND.
func WithRandom(rnd Random) Option {
	return func(b *Bus) {
		b.rnd = rnd
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}

// Bus wires the CPU to its memory, screen and keypad and
// is the only thing the host talks to.
type Bus struct {
	cpu    *CPU
	ram    *RAM
	screen *Screen
	keypad *Keypad
	rnd    Random
	logger *log.Logger

	speed    int
	paused   bool
	stepOnce bool

	ticCounter uint64
}

func NewBus(opts ...Option) *Bus {
	b := &Bus{
		speed:  DefaultSpeed,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.ram = NewRAM()
	b.screen = NewScreen()
	b.keypad = NewKeypad()
	b.cpu = NewCPU(b.ram, b.screen, b.keypad, b.rnd)
	return b
}

// LoadROM resets the machine and copies rom to ProgramStart.
// A ROM that does not fit is rejected before anything is changed.
func (b *Bus) LoadROM(rom []uint8) error {
	if len(rom) > MaxROMSize {
		return errors.Wrapf(&AddressFault{Addr: ProgramStart, Len: len(rom)},
			"rom is %d bytes, max %d", len(rom), MaxROMSize)
	}
	b.Reset()
	if err := b.ram.WriteSlice(ProgramStart, rom); err != nil {
		return errors.Wrap(err, "couldn't load rom")
	}
	b.logger.Printf("loaded %d byte rom at $%04X\n", len(rom), ProgramStart)
	return nil
}

func (b *Bus) Reset() {
	b.cpu.Reset()
	b.ticCounter = 0
	b.stepOnce = false
}

// Tic executes one instruction unless the machine is paused.
func (b *Bus) Tic() error {
	if b.paused {
		if !b.stepOnce {
			return nil
		}
		b.stepOnce = false
	}
	halted := b.cpu.Halted()
	if err := b.cpu.Step(); err != nil {
		if !halted {
			b.logger.Printf("cpu halted after %d instructions: %s\n", b.ticCounter, err)
		}
		return err
	}
	b.ticCounter++
	return nil
}

// InstructionsPerFrame is how many instructions Frame runs.
func (b *Bus) InstructionsPerFrame() int {
	return max(1, b.speed/FrameRate)
}

// Frame runs one frame worth of instructions and stops at the first fault.
func (b *Bus) Frame() error {
	for i := 0; i < b.InstructionsPerFrame(); i++ {
		if err := b.Tic(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) TogglePause() {
	b.paused = !b.paused
	b.stepOnce = false
}

// OneStepAndStop pauses the machine and lets exactly one instruction through.
func (b *Bus) OneStepAndStop() {
	b.paused = true
	b.stepOnce = true
}

func (b *Bus) Paused() bool {
	return b.paused
}

func (b *Bus) SetKey(key uint8, pressed bool) error {
	return b.keypad.SetKey(key, pressed)
}

// Screen returns the framebuffer, 0 or 1 per pixel, row-major.
func (b *Bus) Screen() []uint8 {
	return b.screen.Pixels()
}

func (b *Bus) SoundActive() bool {
	return b.cpu.SoundActive()
}

func (b *Bus) DebugInfo() DebugInfo {
	return b.cpu.DebugInfo()
}

// Instructions is the number of instructions executed since the last reset.
func (b *Bus) Instructions() uint64 {
	return b.ticCounter
}
