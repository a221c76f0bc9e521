package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrStackUnderflow is returned when RET runs with an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrInvalidKey is returned when the host sets a key outside 0x0-0xF.
	ErrInvalidKey = errors.New("invalid key index")
)

// AddressFault reports a memory access whose byte range
// does not fit into the 4 KiB address space.
type AddressFault struct {
	Addr uint16
	Len  int
}

func (e *AddressFault) Error() string {
	return fmt.Sprintf("address fault: %d byte(s) at $%04X", e.Len, e.Addr)
}

// DecodeFault reports an opcode that matches no instruction.
type DecodeFault struct {
	Opcode uint16
}

func (e *DecodeFault) Error() string {
	return fmt.Sprintf("decode fault: unrecognized opcode %04X", e.Opcode)
}
