package chip8

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// 00E0
func (c *CPU) cls(_ opcode) error {
	c.display.Clear()
	return nil
}

// 00EE
func (c *CPU) ret(_ opcode) error {
	addr, err := c.stackPop()
	if err != nil {
		return err
	}
	c.pc = addr
	return nil
}

// 1nnn
func (c *CPU) jp(op opcode) error {
	c.pc = op.nnn()
	return nil
}

// 2nnn, pc already points at the next instruction
func (c *CPU) call(op opcode) error {
	c.stackPush(c.pc)
	c.pc = op.nnn()
	return nil
}

// 3xkk
func (c *CPU) seImm(op opcode) error {
	c.skipIf(c.v[op.x()] == op.kk())
	return nil
}

// 4xkk
func (c *CPU) sneImm(op opcode) error {
	c.skipIf(c.v[op.x()] != op.kk())
	return nil
}

// 5xy0
func (c *CPU) seReg(op opcode) error {
	c.skipIf(c.v[op.x()] == c.v[op.y()])
	return nil
}

// 6xkk
func (c *CPU) ldImm(op opcode) error {
	c.v[op.x()] = op.kk()
	return nil
}

// 7xkk, VF is not affected
func (c *CPU) addImm(op opcode) error {
	c.v[op.x()] += op.kk()
	return nil
}

// 8xy0
func (c *CPU) ldReg(op opcode) error {
	c.v[op.x()] = c.v[op.y()]
	return nil
}

// 8xy1
func (c *CPU) or(op opcode) error {
	c.v[op.x()] |= c.v[op.y()]
	return nil
}

// 8xy2
func (c *CPU) and(op opcode) error {
	c.v[op.x()] &= c.v[op.y()]
	return nil
}

// 8xy3
func (c *CPU) xor(op opcode) error {
	c.v[op.x()] ^= c.v[op.y()]
	return nil
}

// 8xy4
//
// The flag is written after the result so that VF holds the flag
// even when it is also the destination. Same for the other ALU ops.
func (c *CPU) addReg(op opcode) error {
	r16 := uint16(c.v[op.x()]) + uint16(c.v[op.y()])
	c.v[op.x()] = uint8(r16)
	c.v[regF] = boolToFlag(r16 > 0xff)
	return nil
}

// 8xy5
func (c *CPU) sub(op opcode) error {
	vx, vy := c.v[op.x()], c.v[op.y()]
	c.v[op.x()] = vx - vy
	c.v[regF] = boolToFlag(vx > vy)
	return nil
}

// 8xy6, shifts Vx, Vy is ignored
func (c *CPU) shr(op opcode) error {
	vx := c.v[op.x()]
	c.v[op.x()] = vx >> 1
	c.v[regF] = vx & 0x01
	return nil
}

// 8xy7
func (c *CPU) subn(op opcode) error {
	vx, vy := c.v[op.x()], c.v[op.y()]
	c.v[op.x()] = vy - vx
	c.v[regF] = boolToFlag(vy > vx)
	return nil
}

// 8xyE, shifts Vx, Vy is ignored
func (c *CPU) shl(op opcode) error {
	vx := c.v[op.x()]
	c.v[op.x()] = vx << 1
	c.v[regF] = vx >> 7
	return nil
}

// 9xy0
func (c *CPU) sneReg(op opcode) error {
	c.skipIf(c.v[op.x()] != c.v[op.y()])
	return nil
}

// Annn
func (c *CPU) ldI(op opcode) error {
	c.i = op.nnn()
	return nil
}

// Bnnn
func (c *CPU) jpV0(op opcode) error {
	c.pc = op.nnn() + uint16(c.v[0])
	return nil
}

// Cxkk
func (c *CPU) rnd(op opcode) error {
	c.v[op.x()] = c.random.Byte() & op.kk()
	return nil
}

// Dxyn
func (c *CPU) drw(op opcode) error {
	sprite, err := c.mem.ReadSlice(c.i, int(op.n()))
	if err != nil {
		return err
	}
	erased := c.display.Draw(c.v[op.x()], c.v[op.y()], sprite)
	c.v[regF] = boolToFlag(erased)
	return nil
}

// Ex9E
func (c *CPU) skp(op opcode) error {
	c.skipIf(c.keys.IsPressed(c.v[op.x()]))
	return nil
}

// ExA1
func (c *CPU) sknp(op opcode) error {
	c.skipIf(!c.keys.IsPressed(c.v[op.x()]))
	return nil
}

// Fx07
func (c *CPU) ldVxDT(op opcode) error {
	c.v[op.x()] = c.dt
	return nil
}

// Fx0A blocks by executing itself again until a key is held.
func (c *CPU) ldKey(op opcode) error {
	key, ok := c.keys.FirstPressed()
	if !ok {
		c.pc -= 2
		return nil
	}
	c.v[op.x()] = key
	return nil
}

// Fx15
func (c *CPU) ldDTVx(op opcode) error {
	c.dt = c.v[op.x()]
	return nil
}

// Fx18
func (c *CPU) ldSTVx(op opcode) error {
	c.st = c.v[op.x()]
	return nil
}

// Fx1E
func (c *CPU) addI(op opcode) error {
	c.i += uint16(c.v[op.x()])
	return nil
}

// Fx29
func (c *CPU) ldFont(op opcode) error {
	c.i = fontStartAddr + uint16(c.v[op.x()])*fontGlyphBytes
	return nil
}

// Fx33
func (c *CPU) ldBCD(op opcode) error {
	vx := c.v[op.x()]
	return c.mem.WriteSlice(c.i, []uint8{vx / 100, vx / 10 % 10, vx % 10})
}

// Fx55, I is left unchanged
func (c *CPU) store(op opcode) error {
	return c.mem.WriteSlice(c.i, c.v[:op.x()+1])
}

// Fx65, I is left unchanged
func (c *CPU) load(op opcode) error {
	data, err := c.mem.ReadSlice(c.i, int(op.x())+1)
	if err != nil {
		return err
	}
	copy(c.v[:], data)
	return nil
}

func (c *CPU) initInstructions() {
	c.instrs[0x1] = instr{fn: c.jp}
	c.instrs[0x2] = instr{fn: c.call}
	c.instrs[0x3] = instr{fn: c.seImm}
	c.instrs[0x4] = instr{fn: c.sneImm}
	c.instrs[0x5] = instr{fn: c.seReg}
	c.instrs[0x6] = instr{fn: c.ldImm}
	c.instrs[0x7] = instr{fn: c.addImm}
	c.instrs[0x9] = instr{fn: c.sneReg}
	c.instrs[0xa] = instr{fn: c.ldI}
	c.instrs[0xb] = instr{fn: c.jpV0}
	c.instrs[0xc] = instr{fn: c.rnd}
	c.instrs[0xd] = instr{fn: c.drw}

	c.sys = map[uint8]instr{
		0xe0: {fn: c.cls},
		0xee: {fn: c.ret},
	}

	c.alu[0x0] = instr{fn: c.ldReg}
	c.alu[0x1] = instr{fn: c.or}
	c.alu[0x2] = instr{fn: c.and}
	c.alu[0x3] = instr{fn: c.xor}
	c.alu[0x4] = instr{fn: c.addReg}
	c.alu[0x5] = instr{fn: c.sub}
	c.alu[0x6] = instr{fn: c.shr}
	c.alu[0x7] = instr{fn: c.subn}
	c.alu[0xe] = instr{fn: c.shl}

	c.keyOps = map[uint8]instr{
		0x9e: {fn: c.skp},
		0xa1: {fn: c.sknp},
	}

	c.misc = map[uint8]instr{
		0x07: {fn: c.ldVxDT},
		0x0a: {fn: c.ldKey},
		0x15: {fn: c.ldDTVx},
		0x18: {fn: c.ldSTVx},
		0x1e: {fn: c.addI},
		0x29: {fn: c.ldFont},
		0x33: {fn: c.ldBCD},
		0x55: {fn: c.store},
		0x65: {fn: c.load},
	}
}
