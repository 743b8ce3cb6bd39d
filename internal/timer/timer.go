// Package timer implements the DIV/TIMA/TMA/TAC timer peripheral: a
// free-running 16-bit divider whose selected bit is edge-detected to
// increment TIMA, raising TIMER on overflow.
package timer

import (
	"github.com/nkato/goboy/internal/interrupts"
	"github.com/nkato/goboy/internal/types"
)

// selectBit maps TAC's low two bits to the internal-divider bit that
// drives TIMA: 00=bit9 (every 1024 cycles), 01=bit3 (16), 10=bit5 (64),
// 11=bit7 (256).
var selectBit = [4]uint16{1 << 9, 1 << 3, 1 << 5, 1 << 7}

// Controller owns DIV/TIMA/TMA/TAC and requests interrupts.Timer on
// overflow.
type Controller struct {
	internalDiv uint16

	tima uint8
	tma  uint8
	tac  uint8

	enabled bool
	lastBit bool

	overflow       bool
	ticksPastOverflow uint8

	irq *interrupts.Controller
}

// NewController registers DIV/TIMA/TMA/TAC on regs and returns a Controller
// that raises interrupts through irq.
func NewController(regs *types.HardwareRegisters, irq *interrupts.Controller) *Controller {
	c := &Controller{irq: irq}

	regs.Register(types.DIV,
		func(uint8) { c.resetDivider() },
		func() uint8 { return uint8(c.internalDiv >> 8) },
	)
	regs.Register(types.TIMA,
		func(v uint8) {
			// a write during the reload tick (ticksPastOverflow==4, the
			// cycle TMA is copied in) is overwritten by that reload and
			// does not stick.
			if c.ticksPastOverflow != 4 {
				c.tima = v
				c.overflow = false
				c.ticksPastOverflow = 0
			}
		},
		func() uint8 { return c.tima },
	)
	regs.Register(types.TMA,
		func(v uint8) {
			c.tma = v
			if c.ticksPastOverflow == 4 {
				c.tima = v
			}
		},
		func() uint8 { return c.tma },
	)
	regs.Register(types.TAC,
		func(v uint8) {
			c.tac = v & 0x07
			c.enabled = v&0x04 != 0
		},
		func() uint8 { return c.tac | 0xF8 },
	)

	return c
}

func (c *Controller) resetDivider() {
	c.internalDiv = 0
	c.lastBit = false
}

// Advance ticks the divider forward by cycles t-cycles, edge-detecting the
// TAC-selected bit to step TIMA, and handling the overflow-to-reload delay
// real hardware exhibits (TIMA reads 0 for a handful of cycles before TMA
// lands and TIMER fires).
func (c *Controller) Advance(cycles uint32) {
	bit := selectBit[c.tac&0x03]
	for i := uint32(0); i < cycles; i++ {
		c.internalDiv++

		newBit := c.enabled && c.internalDiv&bit != 0
		if !newBit && c.lastBit {
			c.tima++
			if c.tima == 0 {
				c.overflow = true
				c.ticksPastOverflow = 0
			}
		}
		c.lastBit = newBit

		if c.overflow {
			c.ticksPastOverflow++
			switch c.ticksPastOverflow {
			case 4:
				c.tima = c.tma
				c.irq.Request(interrupts.Timer)
			case 5:
				c.overflow = false
			}
		}
	}
}
