package chip8

import (
	"math/bits"
	"strings"

	"github.com/pkg/errors"
	isa "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

const (
	registerCount = 16
	regF          = 0xF
)

// opcode is one 16-bit instruction word.
type opcode uint16

func (op opcode) family() uint8 {
	return uint8(op >> 12)
}

// nnn is the 12-bit address operand.
func (op opcode) nnn() uint16 {
	return uint16(op) & 0x0FFF
}

// kk is the immediate byte.
func (op opcode) kk() uint8 {
	return uint8(op)
}

func (op opcode) n() uint8 {
	return uint8(op) & 0x0F
}

func (op opcode) x() uint8 {
	return uint8(op>>8) & 0x0F
}

func (op opcode) y() uint8 {
	return uint8(op>>4) & 0x0F
}

type opcodeFunc func(op opcode) error

type instr struct {
	fn opcodeFunc
}

type CPU struct {
	v     [registerCount]uint8 // V0-VE general purpose, VF doubles as the flag register
	i     uint16               // address register
	pc    uint16               // program counter
	dt    uint8                // delay timer
	st    uint8                // sound timer
	stack []uint16             // return addresses

	mem     Memory
	display Display
	keys    Keyboard
	random  Random

	instrs [0x10]instr     // top nibble -> instruction
	sys    map[uint8]instr // 00kk
	alu    [0x10]instr     // 8xyn
	keyOps map[uint8]instr // Exkk
	misc   map[uint8]instr // Fxkk

	lastOpcode opcode
	lastInstr  string
	fault      error
}

func NewCPU(mem Memory, display Display, keys Keyboard, rnd Random) *CPU {
	if rnd == nil {
		rnd = newTimeSeededRandom()
	}
	c := &CPU{
		mem:     mem,
		display: display,
		keys:    keys,
		random:  rnd,
		pc:      ProgramStart,
		stack:   make([]uint16, 0, 16),
	}
	c.initInstructions()
	return c
}

// Reset puts the machine back into its power-on state: registers,
// timers and stack cleared, memory zeroed with the font re-seeded,
// screen cleared and all keys released.
func (c *CPU) Reset() {
	c.v = [registerCount]uint8{}
	c.i = 0
	c.pc = ProgramStart
	c.dt = 0
	c.st = 0
	c.stack = c.stack[:0]
	c.lastOpcode = 0
	c.lastInstr = ""
	c.fault = nil

	c.mem.Reset()
	c.display.Clear()
	c.keys.Release()
}

// Halted reports whether a fault stopped the CPU.
func (c *CPU) Halted() bool {
	return c.fault != nil
}

// Step executes one instruction and ticks both timers.
// After a fault the CPU stays halted and every call returns
// the same error until Reset.
func (c *CPU) Step() error {
	if c.fault != nil {
		return c.fault
	}

	pc := c.pc
	op, err := c.fetch()
	if err != nil {
		c.fault = errors.Wrapf(err, "fetch at $%04X", pc)
		return c.fault
	}

	if err := c.execute(op); err != nil {
		c.pc = pc
		c.fault = errors.Wrapf(err, "$%04X: %04X", pc, uint16(op))
		return c.fault
	}

	c.tick()
	return nil
}

// fetch reads the big-endian instruction word at pc without advancing pc.
func (c *CPU) fetch() (opcode, error) {
	b, err := c.mem.ReadSlice(c.pc, 2)
	if err != nil {
		return 0, err
	}
	return opcode(uint16(b[0])<<8 | uint16(b[1])), nil
}

// lookup finds op in the CHIP-8 instruction set table. When several
// entries match, the one with the most specific mask wins.
func lookup(op opcode) (isa.Opcode, bool) {
	var found isa.Opcode
	best := -1
	for _, o := range isa.Opcodes[int(op.family())] {
		if o.Instruction == nil || o.Info.Mask&uint16(op) != o.Info.Value {
			continue
		}
		if n := bits.OnesCount16(o.Info.Mask); n > best {
			found, best = o, n
		}
	}
	return found, best >= 0
}

// decode validates op against the instruction set table first, then
// against the handlers implemented here, which are stricter
// (no 0nnn machine code calls, for one).
func (c *CPU) decode(op opcode) (instr, string, error) {
	known, ok := lookup(op)
	if !ok {
		return instr{}, "", &DecodeFault{Opcode: uint16(op)}
	}

	var in instr
	switch op.family() {
	case 0x0:
		if op.x() == 0 {
			in = c.sys[op.kk()]
		}
	case 0x5, 0x9:
		if op.n() == 0 {
			in = c.instrs[op.family()]
		}
	case 0x8:
		in = c.alu[op.n()]
	case 0xE:
		in = c.keyOps[op.kk()]
	case 0xF:
		in = c.misc[op.kk()]
	default:
		in = c.instrs[op.family()]
	}
	if in.fn == nil {
		return instr{}, "", &DecodeFault{Opcode: uint16(op)}
	}
	return in, strings.ToUpper(known.Instruction.Name), nil
}

// execute runs a single decoded instruction. pc is moved past the
// instruction before the handler runs, so jumps simply overwrite it
// and skips add another 2.
func (c *CPU) execute(op opcode) error {
	in, name, err := c.decode(op)
	if err != nil {
		return err
	}
	c.lastOpcode = op
	c.lastInstr = name
	c.pc += 2
	return in.fn(op)
}

// tick decrements both timers once per executed instruction.
func (c *CPU) tick() {
	if c.dt > 0 {
		c.dt--
	}
	if c.st > 0 {
		c.st--
	}
}

func (c *CPU) stackPush(addr uint16) {
	c.stack = append(c.stack, addr)
}

func (c *CPU) stackPop() (uint16, error) {
	if len(c.stack) == 0 {
		return 0, ErrStackUnderflow
	}
	addr := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return addr, nil
}

func (c *CPU) skipIf(condition bool) {
	if condition {
		c.pc += 2
	}
}

// SoundActive reports whether the sound timer is running.
func (c *CPU) SoundActive() bool {
	return c.st > 0
}

type DebugInfo struct {
	PC     uint16
	I      uint16
	V      [registerCount]uint8
	DT     uint8
	ST     uint8
	SP     int
	Opcode uint16
	Instr  string
	Halted bool
}

func (c *CPU) DebugInfo() DebugInfo {
	return DebugInfo{
		PC:     c.pc,
		I:      c.i,
		V:      c.v,
		DT:     c.dt,
		ST:     c.st,
		SP:     len(c.stack),
		Opcode: uint16(c.lastOpcode),
		Instr:  c.lastInstr,
		Halted: c.fault != nil,
	}
}
