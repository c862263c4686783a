package cpu

import "github.com/aldermoon/dmgboy/internal/types"

// Flag bit positions within F. The low nibble of F is always zero.
const (
	flagZero      = types.Bit7
	flagSubtract  = types.Bit6
	flagHalfCarry = types.Bit5
	flagCarry     = types.Bit4
)

func (c *CPU) setFlag(flag uint8)   { c.F |= flag }
func (c *CPU) clearFlag(flag uint8) { c.F &^= flag }

func (c *CPU) setFlagIf(flag uint8, cond bool) {
	if cond {
		c.setFlag(flag)
	} else {
		c.clearFlag(flag)
	}
}

func (c *CPU) isFlagSet(flag uint8) bool { return c.F&flag != 0 }

func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.setFlagIf(flagZero, zero)
	c.setFlagIf(flagSubtract, subtract)
	c.setFlagIf(flagHalfCarry, halfCarry)
	c.setFlagIf(flagCarry, carry)
}
