package cpu

func init() {
	define(0x00, func(c *CPU) {})

	define(0x10, func(c *CPU) {
		c.readOperand() // STOP is followed by an ignored padding byte
		c.stop()
	})

	define(0x76, func(c *CPU) { c.halt() })

	define(0xF3, func(c *CPU) { c.irq.Disable() })
	define(0xFB, func(c *CPU) { c.irq.ScheduleEnable() })
}
