// Package serial implements the simplified SB/SC link-cable contract: a
// write of 0x81 to SC publishes SB to a sink and clears the transfer bit,
// rather than modeling bit-by-bit shift timing.
package serial

import (
	"github.com/nkato/goboy/internal/interrupts"
	"github.com/nkato/goboy/internal/types"
)

// Sink receives each byte written out over the link cable; test ROMs
// commonly use this to print diagnostic text.
type Sink interface {
	Write(b byte)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(b byte)

func (f SinkFunc) Write(b byte) { f(b) }

// Controller owns SB (0xFF01) and SC (0xFF02).
type Controller struct {
	sb uint8
	sc uint8

	sink Sink
	irq  *interrupts.Controller
}

// NewController registers SB/SC on regs. sink may be nil, in which case
// published bytes are discarded.
func NewController(regs *types.HardwareRegisters, irq *interrupts.Controller, sink Sink) *Controller {
	c := &Controller{sink: sink, irq: irq}

	regs.Register(types.SB,
		func(v uint8) { c.sb = v },
		func() uint8 { return c.sb },
	)
	regs.Register(types.SC,
		func(v uint8) {
			if v == 0x81 {
				if c.sink != nil {
					c.sink.Write(c.sb)
				}
				c.sc = 0
				c.irq.Request(interrupts.Serial)
				return
			}
			c.sc = v
		},
		func() uint8 { return c.sc },
	)

	return c
}
