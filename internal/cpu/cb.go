package cpu

func init() {
	rotOps := [8]func(c *CPU, v uint8) uint8{
		(*CPU).rlc, (*CPU).rrc, (*CPU).rl, (*CPU).rr,
		(*CPU).sla, (*CPU).sra, (*CPU).swap, (*CPU).srl,
	}
	rotNames := [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

	for op := 0; op <= 0xFF; op++ {
		group := op >> 6
		operand := r8(op & 7)
		bit := uint8((op >> 3) & 7)

		switch group {
		case 0: // rotate/shift/swap
			fn := rotOps[bit]
			cycles := uint8(8)
			if operand == r8HL {
				cycles = 16
			}
			defineCB(uint8(op), rotNames[bit], cycles, func(c *CPU) bool {
				c.set(operand, fn(c, c.get(operand)))
				return false
			})
		case 1: // BIT n,r
			cycles := uint8(8)
			if operand == r8HL {
				cycles = 12
			}
			defineCB(uint8(op), "BIT", cycles, func(c *CPU) bool {
				c.testBit(bit, c.get(operand))
				return false
			})
		case 2: // RES n,r
			cycles := uint8(8)
			if operand == r8HL {
				cycles = 16
			}
			defineCB(uint8(op), "RES", cycles, func(c *CPU) bool {
				c.set(operand, c.get(operand)&^(1<<bit))
				return false
			})
		case 3: // SET n,r
			cycles := uint8(8)
			if operand == r8HL {
				cycles = 16
			}
			defineCB(uint8(op), "SET", cycles, func(c *CPU) bool {
				c.set(operand, c.get(operand)|(1<<bit))
				return false
			})
		}
	}
}

// testBit sets Z from bit n of v, clears N, sets H; C is left untouched.
func (c *CPU) testBit(n uint8, v uint8) {
	c.setFlag(flagZ, v>>n&1 == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, true)
}
