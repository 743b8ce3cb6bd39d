package cpu

func init() {
	// ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r8 — 0x80-0xBF.
	ops := [8]func(c *CPU, n uint8){addA, adcA, subA, sbcA, andA, xorA, orA, cpA}
	names := [8]string{"ADD", "ADC", "SUB", "SBC", "AND", "XOR", "OR", "CP"}
	for op := 0x80; op <= 0xBF; op++ {
		group := (op >> 3) & 7
		src := r8(op & 7)
		fn := ops[group]
		cycles := uint8(4)
		if src == r8HL {
			cycles = 8
		}
		define(uint8(op), names[group], 1, cycles, func(c *CPU) bool { fn(c, c.get(src)); return false })
	}

	// immediate forms
	for i, op := range []uint8{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE} {
		fn := ops[i]
		define(op, names[i]+" d8", 2, 8, func(c *CPU) bool { fn(c, c.next8()); return false })
	}

	// INC/DEC r8 — opcode&0xC7 == 0x04/0x05.
	for op := 0; op <= 0xFF; op++ {
		if op&0xC7 == 0x04 {
			dst := r8((op >> 3) & 7)
			cycles := uint8(4)
			if dst == r8HL {
				cycles = 12
			}
			define(uint8(op), "INC r8", 1, cycles, func(c *CPU) bool { c.incR8(dst); return false })
		}
		if op&0xC7 == 0x05 {
			dst := r8((op >> 3) & 7)
			cycles := uint8(4)
			if dst == r8HL {
				cycles = 12
			}
			define(uint8(op), "DEC r8", 1, cycles, func(c *CPU) bool { c.decR8(dst); return false })
		}
	}

	// INC/DEC r16, ADD HL,r16 — pair order BC,DE,HL,SP.
	for i, op := range []uint8{0x03, 0x13, 0x23, 0x33} {
		pair := r16(i)
		define(op, "INC r16", 1, 8, func(c *CPU) bool { c.setR16(pair, c.getR16(pair)+1); return false })
	}
	for i, op := range []uint8{0x0B, 0x1B, 0x2B, 0x3B} {
		pair := r16(i)
		define(op, "DEC r16", 1, 8, func(c *CPU) bool { c.setR16(pair, c.getR16(pair)-1); return false })
	}
	for i, op := range []uint8{0x09, 0x19, 0x29, 0x39} {
		pair := r16(i)
		define(op, "ADD HL,r16", 1, 8, func(c *CPU) bool { c.addHL(c.getR16(pair)); return false })
	}

	define(0xE8, "ADD SP,e8", 2, 16, func(c *CPU) bool { c.SP = c.addSPOffset(); return false })

	define(0x27, "DAA", 1, 4, func(c *CPU) bool { c.daa(); return false })
	define(0x2F, "CPL", 1, 4, func(c *CPU) bool {
		c.A = ^c.A
		c.setFlag(flagN, true)
		c.setFlag(flagH, true)
		return false
	})
	define(0x37, "SCF", 1, 4, func(c *CPU) bool {
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, true)
		return false
	})
	define(0x3F, "CCF", 1, 4, func(c *CPU) bool {
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, !c.flag(flagC))
		return false
	})
}

func addA(c *CPU, n uint8) {
	result := uint16(c.A) + uint16(n)
	h := (c.A&0xF)+(n&0xF) > 0xF
	c.A = uint8(result)
	c.setFlags(c.A == 0, false, h, result > 0xFF)
}

func adcA(c *CPU, n uint8) {
	carry := uint16(0)
	if c.flag(flagC) {
		carry = 1
	}
	result := uint16(c.A) + uint16(n) + carry
	h := (c.A&0xF)+(n&0xF)+uint8(carry) > 0xF
	c.A = uint8(result)
	c.setFlags(c.A == 0, false, h, result > 0xFF)
}

func subA(c *CPU, n uint8) {
	h := (c.A & 0xF) < (n & 0xF)
	carry := c.A < n
	c.A = c.A - n
	c.setFlags(c.A == 0, true, h, carry)
}

func sbcA(c *CPU, n uint8) {
	carry := uint8(0)
	if c.flag(flagC) {
		carry = 1
	}
	h := (c.A & 0xF) < (n&0xF)+carry
	borrow := uint16(c.A) < uint16(n)+uint16(carry)
	c.A = c.A - n - carry
	c.setFlags(c.A == 0, true, h, borrow)
}

func andA(c *CPU, n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

func xorA(c *CPU, n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

func orA(c *CPU, n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

func cpA(c *CPU, n uint8) {
	h := (c.A & 0xF) < (n & 0xF)
	carry := c.A < n
	c.setFlags(c.A == n, true, h, carry)
}

func (c *CPU) incR8(reg r8) {
	old := c.get(reg)
	result := old + 1
	c.set(reg, result)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, old&0x0F+1 > 0x0F)
}

func (c *CPU) decR8(reg r8) {
	old := c.get(reg)
	result := old - 1
	c.set(reg, result)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, true)
	c.setFlag(flagH, old&0x0F == 0)
}

func (c *CPU) addHL(n uint16) {
	hl := c.hl()
	sum := uint32(hl) + uint32(n)
	c.setFlag(flagN, false)
	c.setFlag(flagH, (hl&0xFFF)+(n&0xFFF) > 0xFFF)
	c.setFlag(flagC, sum > 0xFFFF)
	c.setHL(uint16(sum))
}

// daa implements the documented BCD adjustment table, branching on N so
// it corrects the previous add or subtract, not both.
func (c *CPU) daa() {
	if !c.flag(flagN) {
		if c.flag(flagC) || c.A > 0x99 {
			c.A += 0x60
			c.setFlag(flagC, true)
		}
		if c.flag(flagH) || c.A&0x0F > 0x09 {
			c.A += 0x06
		}
	} else {
		if c.flag(flagC) {
			c.A -= 0x60
		}
		if c.flag(flagH) {
			c.A -= 0x06
		}
	}
	c.setFlag(flagZ, c.A == 0)
	c.setFlag(flagH, false)
}
