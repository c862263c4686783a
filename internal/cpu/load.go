package cpu

// init generates the 0x40-0x7F "LD r,r'" block, one function per
// destination/source pair, the same way the real opcode map packs it:
// dense, regular, and derivable from the 3-bit register encoding alone.
// 0x76 is excluded because that slot is HALT, registered separately.
func init() {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 + dst*8 + src
			if opcode == 0x76 {
				continue
			}
			d, s := dst, src
			define(opcode, func(c *CPU) {
				c.writeReg8(d, c.readReg8(s))
			})
		}
	}
}

// init registers LD r,n for each of the eight 3-bit register slots
// (0x06, 0x0E, 0x16, ... 0x3E), the immediate-operand counterpart of
// the LD r,r' block above.
func init() {
	for r := uint8(0); r < 8; r++ {
		opcode := 0x06 + r*8
		reg := r
		define(opcode, func(c *CPU) {
			c.writeReg8(reg, c.readOperand())
		})
	}
}

func init() {
	// LD (BC),A / LD A,(BC) / LD (DE),A / LD A,(DE)
	define(0x02, func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) })
	define(0x0A, func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) })
	define(0x12, func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) })
	define(0x1A, func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) })

	// LD (HL+/-),A and LD A,(HL+/-)
	define(0x22, func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	define(0x2A, func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	define(0x32, func(c *CPU) {
		c.writeByte(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	define(0x3A, func(c *CPU) {
		c.A = c.readByte(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})

	// LD (nn),A / LD A,(nn)
	define(0xEA, func(c *CPU) { c.writeByte(c.readOperand16(), c.A) })
	define(0xFA, func(c *CPU) { c.A = c.readByte(c.readOperand16()) })

	// LDH (n),A / LDH A,(n) - zero page at 0xFF00+n
	define(0xE0, func(c *CPU) { c.writeByte(0xFF00+uint16(c.readOperand()), c.A) })
	define(0xF0, func(c *CPU) { c.A = c.readByte(0xFF00 + uint16(c.readOperand())) })

	// LD (C),A / LD A,(C) - zero page addressed by register C
	define(0xE2, func(c *CPU) { c.writeByte(0xFF00+uint16(c.C), c.A) })
	define(0xF2, func(c *CPU) { c.A = c.readByte(0xFF00 + uint16(c.C)) })

	// 16-bit immediate loads into BC/DE/HL/SP
	define(0x01, func(c *CPU) { c.BC.SetUint16(c.readOperand16()) })
	define(0x11, func(c *CPU) { c.DE.SetUint16(c.readOperand16()) })
	define(0x21, func(c *CPU) { c.HL.SetUint16(c.readOperand16()) })
	define(0x31, func(c *CPU) { c.SP = c.readOperand16() })

	// LD (nn),SP
	define(0x08, func(c *CPU) {
		addr := c.readOperand16()
		c.writeByte(addr, uint8(c.SP))
		c.writeByte(addr+1, uint8(c.SP>>8))
	})

	// LD SP,HL
	define(0xF9, func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tick()
	})

	// LD HL,SP+e (also used to compute flags for LD SP,HL+e via ADD SP,e)
	define(0xF8, func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned())
		c.tick()
	})

	// PUSH rr / POP rr
	define(0xC5, func(c *CPU) { c.push(c.BC.Uint16()) })
	define(0xD5, func(c *CPU) { c.push(c.DE.Uint16()) })
	define(0xE5, func(c *CPU) { c.push(c.HL.Uint16()) })
	define(0xF5, func(c *CPU) { c.push(c.AF.Uint16() & 0xFFF0) })

	define(0xC1, func(c *CPU) { c.BC.SetUint16(c.pop()) })
	define(0xD1, func(c *CPU) { c.DE.SetUint16(c.pop()) })
	define(0xE1, func(c *CPU) { c.HL.SetUint16(c.pop()) })
	define(0xF1, func(c *CPU) { c.AF.SetUint16(c.pop() & 0xFFF0) })
}

func (c *CPU) push(v uint16) {
	c.tick()
	c.SP--
	c.writeByte(c.SP, uint8(v>>8))
	c.SP--
	c.writeByte(c.SP, uint8(v))
}

func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// addSPSigned implements the shared signed-displacement arithmetic
// behind LD HL,SP+e and ADD SP,e: flags are computed from the low byte
// as if SP were an 8-bit register, which is what real hardware does.
func (c *CPU) addSPSigned() uint16 {
	e := int8(c.readOperand())
	sp := c.SP
	result := uint16(int32(sp) + int32(e))

	c.setFlags(false, false,
		(sp&0x0F)+(uint16(uint8(e))&0x0F) > 0x0F,
		(sp&0xFF)+(uint16(uint8(e))&0xFF) > 0xFF)
	return result
}
