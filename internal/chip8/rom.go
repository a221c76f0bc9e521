package chip8

import (
	"fmt"
	"io"
	"os"
)

// ReadROMFile reads a raw CHIP-8 program. The file has no header,
// its bytes are loaded as-is at ProgramStart.
func ReadROMFile(path string) ([]uint8, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open the file: %w", err)
	}
	defer file.Close()

	// read one byte more than allowed to detect oversized roms
	rom, err := io.ReadAll(io.LimitReader(file, int64(MaxROMSize)+1))
	if err != nil {
		return nil, fmt.Errorf("couldn't read the rom: %w", err)
	}
	if len(rom) > MaxROMSize {
		return nil, fmt.Errorf("rom is too big: more than %d bytes", MaxROMSize)
	}
	if len(rom) == 0 {
		return nil, fmt.Errorf("rom is empty")
	}
	return rom, nil
}
