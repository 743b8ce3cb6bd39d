package cpu

func init() {
	define(0x00, "NOP", 1, 4, noop)

	// STOP consumes a padding byte (typically 0x00) and, for the minimum
	// core, behaves like HALT.
	define(0x10, "STOP", 2, 4, func(c *CPU) bool {
		c.next8()
		c.halted = true
		return false
	})

	define(0x76, "HALT", 1, 4, func(c *CPU) bool {
		c.halted = true
		return false
	})

	define(0xF3, "DI", 1, 4, func(c *CPU) bool {
		c.ime = false
		c.imeScheduled = 0
		return false
	})
	define(0xFB, "EI", 1, 4, func(c *CPU) bool { c.scheduleEI(); return false })
}
