package chip8

const (
	ramSizeBytes = 0x1000

	// ProgramStart is where ROMs are loaded and where execution begins.
	ProgramStart = uint16(0x200)

	// MaxROMSize is the largest program that fits between ProgramStart and the end of RAM.
	MaxROMSize = ramSizeBytes - int(ProgramStart)

	fontStartAddr  = uint16(0x000)
	fontGlyphBytes = 5
)

// Memory map:
//
// $000-$04F: built-in hex font, 16 glyphs of 5 bytes
// $050-$1FF: reserved for the interpreter, unused
// $200-$FFF: program ROM and work RAM
type Memory interface {
	Read8(addr uint16) (uint8, error)
	ReadSlice(addr uint16, n int) ([]uint8, error)
	Write8(addr uint16, data uint8) error
	WriteSlice(addr uint16, data []uint8) error
	Fill(addr uint16, n int, data uint8) error
	// Reset zeroes everything and writes the font again.
	Reset()
}

var font = [16 * fontGlyphBytes]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// RAM is the 4 KiB main memory. Accesses outside of it fail with *AddressFault.
type RAM struct {
	ram [ramSizeBytes]uint8
}

// NewRAM returns zeroed memory with the font already in place.
func NewRAM() *RAM {
	r := &RAM{}
	r.loadFont()
	return r
}

// Reset zeroes the memory and writes the font again.
func (r *RAM) Reset() {
	r.ram = [ramSizeBytes]uint8{}
	r.loadFont()
}

func (r *RAM) loadFont() {
	copy(r.ram[fontStartAddr:], font[:])
}

func (r *RAM) check(addr uint16, n int) error {
	if n < 0 || int(addr)+n > ramSizeBytes {
		return &AddressFault{Addr: addr, Len: n}
	}
	return nil
}

func (r *RAM) Read8(addr uint16) (uint8, error) {
	if err := r.check(addr, 1); err != nil {
		return 0, err
	}
	return r.ram[addr], nil
}

// ReadSlice returns a view into the memory, not a copy.
func (r *RAM) ReadSlice(addr uint16, n int) ([]uint8, error) {
	if err := r.check(addr, n); err != nil {
		return nil, err
	}
	return r.ram[addr : int(addr)+n], nil
}

func (r *RAM) Write8(addr uint16, data uint8) error {
	if err := r.check(addr, 1); err != nil {
		return err
	}
	r.ram[addr] = data
	return nil
}

func (r *RAM) WriteSlice(addr uint16, data []uint8) error {
	if err := r.check(addr, len(data)); err != nil {
		return err
	}
	copy(r.ram[addr:], data)
	return nil
}

func (r *RAM) Fill(addr uint16, n int, data uint8) error {
	if err := r.check(addr, n); err != nil {
		return err
	}
	for i := int(addr); i < int(addr)+n; i++ {
		r.ram[i] = data
	}
	return nil
}
