package cpu

func init() {
	define(0x18, "JR e8", 2, 12, func(c *CPU) bool {
		offset := c.next8Signed()
		c.PC = uint16(int32(c.PC) + int32(offset))
		return false
	})
	for i, op := range []uint8{0x20, 0x28, 0x30, 0x38} {
		cc := cond(i)
		defineBranch(op, "JR cc,e8", 2, 12, 8, func(c *CPU) bool {
			offset := c.next8Signed()
			if c.check(cc) {
				c.PC = uint16(int32(c.PC) + int32(offset))
				return true
			}
			return false
		})
	}

	define(0xC3, "JP a16", 3, 16, func(c *CPU) bool { c.PC = c.next16(); return false })
	define(0xE9, "JP HL", 1, 4, func(c *CPU) bool { c.PC = c.hl(); return false })
	for i, op := range []uint8{0xC2, 0xCA, 0xD2, 0xDA} {
		cc := cond(i)
		defineBranch(op, "JP cc,a16", 3, 16, 12, func(c *CPU) bool {
			addr := c.next16()
			if c.check(cc) {
				c.PC = addr
				return true
			}
			return false
		})
	}

	define(0xCD, "CALL a16", 3, 24, func(c *CPU) bool {
		addr := c.next16()
		c.push(c.PC)
		c.PC = addr
		return false
	})
	for i, op := range []uint8{0xC4, 0xCC, 0xD4, 0xDC} {
		cc := cond(i)
		defineBranch(op, "CALL cc,a16", 3, 24, 12, func(c *CPU) bool {
			addr := c.next16()
			if c.check(cc) {
				c.push(c.PC)
				c.PC = addr
				return true
			}
			return false
		})
	}

	define(0xC9, "RET", 1, 16, func(c *CPU) bool { c.PC = c.pop(); return false })
	define(0xD9, "RETI", 1, 16, func(c *CPU) bool {
		c.PC = c.pop()
		c.ime = true
		c.imeScheduled = 0
		return false
	})
	for i, op := range []uint8{0xC0, 0xC8, 0xD0, 0xD8} {
		cc := cond(i)
		defineBranch(op, "RET cc", 1, 20, 8, func(c *CPU) bool {
			if c.check(cc) {
				c.PC = c.pop()
				return true
			}
			return false
		})
	}

	for _, op := range []uint8{0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF} {
		vector := uint16(op & 0x38)
		define(op, "RST", 1, 16, func(c *CPU) bool {
			c.push(c.PC)
			c.PC = vector
			return false
		})
	}
}
