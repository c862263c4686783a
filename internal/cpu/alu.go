package cpu

// aluOp applies one of the eight ALU operations (the 3-bit encoding
// used both by 0x80-0xBF and by the 0xC6-0xFE immediate forms) to A
// and operand, updating flags.
func (c *CPU) aluOp(op uint8, operand uint8) {
	switch op {
	case 0:
		c.add(operand)
	case 1:
		c.adc(operand)
	case 2:
		c.sub(operand)
	case 3:
		c.sbc(operand)
	case 4:
		c.and(operand)
	case 5:
		c.xor(operand)
	case 6:
		c.or(operand)
	case 7:
		c.cp(operand)
	}
}

// init generates the 0x80-0xBF ALU-against-register block and its
// 0xC6-0xFE immediate counterpart, both driven by the same 3-bit
// operation and operand encodings as the LD r,r' block.
func init() {
	for op := uint8(0); op < 8; op++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x80 + op*8 + src
			o, s := op, src
			define(opcode, func(c *CPU) {
				c.aluOp(o, c.readReg8(s))
			})
		}
		opcode := 0xC6 + op*8
		o := op
		define(opcode, func(c *CPU) {
			c.aluOp(o, c.readOperand())
		})
	}
}

func (c *CPU) add(v uint8) {
	result := uint16(c.A) + uint16(v)
	c.setFlags(uint8(result) == 0, false, (c.A&0x0F)+(v&0x0F) > 0x0F, result > 0xFF)
	c.A = uint8(result)
}

func (c *CPU) adc(v uint8) {
	carry := uint16(0)
	if c.isFlagSet(flagCarry) {
		carry = 1
	}
	result := uint16(c.A) + uint16(v) + carry
	halfCarry := (c.A&0x0F)+(v&0x0F)+uint8(carry) > 0x0F
	c.setFlags(uint8(result) == 0, false, halfCarry, result > 0xFF)
	c.A = uint8(result)
}

func (c *CPU) sub(v uint8) {
	result := int16(c.A) - int16(v)
	c.setFlags(uint8(result) == 0, true, int16(c.A&0x0F)-int16(v&0x0F) < 0, result < 0)
	c.A = uint8(result)
}

func (c *CPU) sbc(v uint8) {
	carry := int16(0)
	if c.isFlagSet(flagCarry) {
		carry = 1
	}
	result := int16(c.A) - int16(v) - carry
	halfCarry := int16(c.A&0x0F)-int16(v&0x0F)-carry < 0
	c.setFlags(uint8(result) == 0, true, halfCarry, result < 0)
	c.A = uint8(result)
}

func (c *CPU) and(v uint8) {
	c.A &= v
	c.setFlags(c.A == 0, false, true, false)
}

func (c *CPU) or(v uint8) {
	c.A |= v
	c.setFlags(c.A == 0, false, false, false)
}

func (c *CPU) xor(v uint8) {
	c.A ^= v
	c.setFlags(c.A == 0, false, false, false)
}

func (c *CPU) cp(v uint8) {
	result := int16(c.A) - int16(v)
	c.setFlags(uint8(result) == 0, true, int16(c.A&0x0F)-int16(v&0x0F) < 0, result < 0)
}

// init generates INC r / DEC r for all eight register slots (0x04,
// 0x0C, ... 0x3D), which leave carry untouched; their 16-bit
// counterparts below touch no flags at all.
func init() {
	for r := uint8(0); r < 8; r++ {
		reg := r
		define(0x04+reg*8, func(c *CPU) {
			v := c.readReg8(reg) + 1
			c.writeReg8(reg, v)
			c.setFlagIf(flagZero, v == 0)
			c.clearFlag(flagSubtract)
			c.setFlagIf(flagHalfCarry, v&0x0F == 0)
		})
		define(0x05+reg*8, func(c *CPU) {
			v := c.readReg8(reg) - 1
			c.writeReg8(reg, v)
			c.setFlagIf(flagZero, v == 0)
			c.setFlag(flagSubtract)
			c.setFlagIf(flagHalfCarry, v&0x0F == 0x0F)
		})
	}
}

// init generates INC rr / DEC rr / ADD HL,rr for BC/DE/HL/SP.
func init() {
	for r := uint8(0); r < 4; r++ {
		pair := r
		define(0x03+pair*0x10, func(c *CPU) {
			c.setPairSP(pair, c.getPairSP(pair)+1)
			c.tick()
		})
		define(0x0B+pair*0x10, func(c *CPU) {
			c.setPairSP(pair, c.getPairSP(pair)-1)
			c.tick()
		})
		define(0x09+pair*0x10, func(c *CPU) {
			hl := c.HL.Uint16()
			operand := c.getPairSP(pair)
			result := uint32(hl) + uint32(operand)
			c.clearFlag(flagSubtract)
			c.setFlagIf(flagHalfCarry, (hl&0x0FFF)+(operand&0x0FFF) > 0x0FFF)
			c.setFlagIf(flagCarry, result > 0xFFFF)
			c.HL.SetUint16(uint16(result))
			c.tick()
		})
	}

	define(0xE8, func(c *CPU) {
		c.SP = c.addSPSigned()
		c.tick()
		c.tick()
	})
}

func init() {
	define(0x07, rlca)
	define(0x0F, rrca)
	define(0x17, rla)
	define(0x1F, rra)

	define(0x27, func(c *CPU) {
		adjust := uint8(0)
		carry := false
		if c.isFlagSet(flagSubtract) {
			if c.isFlagSet(flagHalfCarry) {
				adjust += 0x06
			}
			if c.isFlagSet(flagCarry) {
				adjust += 0x60
				carry = true
			}
			c.A -= adjust
		} else {
			if c.isFlagSet(flagHalfCarry) || c.A&0x0F > 0x09 {
				adjust += 0x06
			}
			if c.isFlagSet(flagCarry) || c.A > 0x99 {
				adjust += 0x60
				carry = true
			}
			c.A += adjust
		}
		c.setFlagIf(flagZero, c.A == 0)
		c.clearFlag(flagHalfCarry)
		c.setFlagIf(flagCarry, carry)
	})

	define(0x2F, func(c *CPU) {
		c.A = ^c.A
		c.setFlag(flagSubtract)
		c.setFlag(flagHalfCarry)
	})

	define(0x37, func(c *CPU) {
		c.setFlag(flagCarry)
		c.clearFlag(flagSubtract)
		c.clearFlag(flagHalfCarry)
	})

	define(0x3F, func(c *CPU) {
		c.setFlagIf(flagCarry, !c.isFlagSet(flagCarry))
		c.clearFlag(flagSubtract)
		c.clearFlag(flagHalfCarry)
	})
}
