package cpu

// init generates the CB-prefixed BIT/RES/SET blocks (0x40-0xFF): three
// families of eight bit positions across eight register/memory
// operands, following the same dense encoding as the rotate block.
func init() {
	for bit := uint8(0); bit < 8; bit++ {
		for reg := uint8(0); reg < 8; reg++ {
			b, r := bit, reg

			defineCB(0x40+bit*8+reg, func(c *CPU) {
				v := c.readReg8(r)
				c.setFlagIf(flagZero, v&(1<<b) == 0)
				c.clearFlag(flagSubtract)
				c.setFlag(flagHalfCarry)
			})

			defineCB(0x80+bit*8+reg, func(c *CPU) {
				c.writeReg8(r, c.readReg8(r)&^(1<<b))
			})

			defineCB(0xC0+bit*8+reg, func(c *CPU) {
				c.writeReg8(r, c.readReg8(r)|(1<<b))
			})
		}
	}
}
