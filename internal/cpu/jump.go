package cpu

// condition evaluates the standard 2-bit condition code encoding (0=NZ
// 1=Z 2=NC 3=C) shared by JR/JP/CALL/RET's conditional forms.
func (c *CPU) condition(cc uint8) bool {
	switch cc {
	case 0:
		return !c.isFlagSet(flagZero)
	case 1:
		return c.isFlagSet(flagZero)
	case 2:
		return !c.isFlagSet(flagCarry)
	default:
		return c.isFlagSet(flagCarry)
	}
}

func init() {
	define(0x18, func(c *CPU) { c.jr(true) })
	for cc := uint8(0); cc < 4; cc++ {
		cond := cc
		define(0x20+cond*8, func(c *CPU) { c.jr(c.condition(cond)) })
	}

	define(0xC3, func(c *CPU) {
		c.PC = c.readOperand16()
		c.tick()
	})
	define(0xE9, func(c *CPU) { c.PC = c.HL.Uint16() })
	for cc := uint8(0); cc < 4; cc++ {
		cond := cc
		define(0xC2+cond*8, func(c *CPU) {
			target := c.readOperand16()
			if c.condition(cond) {
				c.PC = target
				c.tick()
			}
		})
	}

	define(0xCD, func(c *CPU) {
		target := c.readOperand16()
		c.push(c.PC)
		c.PC = target
	})
	for cc := uint8(0); cc < 4; cc++ {
		cond := cc
		define(0xC4+cond*8, func(c *CPU) {
			target := c.readOperand16()
			if c.condition(cond) {
				c.push(c.PC)
				c.PC = target
			}
		})
	}

	define(0xC9, func(c *CPU) {
		c.PC = c.pop()
		c.tick()
	})
	define(0xD9, func(c *CPU) {
		c.PC = c.pop()
		c.tick()
		c.irq.EnableNow()
	})
	for cc := uint8(0); cc < 4; cc++ {
		cond := cc
		define(0xC0+cond*8, func(c *CPU) {
			c.tick()
			if c.condition(cond) {
				c.PC = c.pop()
				c.tick()
			}
		})
	}

	for n := uint8(0); n < 8; n++ {
		target := uint16(n) * 8
		define(0xC7+n*8, func(c *CPU) {
			c.push(c.PC)
			c.PC = target
		})
	}
}

func (c *CPU) jr(take bool) {
	offset := int8(c.readOperand())
	if take {
		c.PC = uint16(int32(c.PC) + int32(offset))
		c.tick()
	}
}
