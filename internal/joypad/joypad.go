// Package joypad implements the P1 register: the controls collaborator
// reports which of the eight buttons are held, and P1 reflects the
// currently-selected half of that state back to the CPU, active-low.
package joypad

import (
	"github.com/nkato/goboy/internal/interrupts"
	"github.com/nkato/goboy/internal/types"
)

// Button identifies one of the eight physical buttons. The two nibbles of
// the internal state byte group them as action (A,B,Select,Start) and
// direction (Right,Left,Up,Down), matching P1's two select lines.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

// Controller owns P1 (0xFF00). Bit assignment on read: bits 4-5 select
// which nibble of pressed state is visible on bits 0-3 (0=selected);
// pressed buttons read as 0 (active-low).
type Controller struct {
	pressed uint8 // one bit per Button, 1 = held
	selects uint8 // the last-written value of bits 4-5

	irq *interrupts.Controller
}

func NewController(regs *types.HardwareRegisters, irq *interrupts.Controller) *Controller {
	c := &Controller{irq: irq, selects: 0x30}

	regs.Register(types.P1,
		func(v uint8) { c.selects = v & 0x30 },
		func() uint8 { return c.read() },
	)

	return c
}

func (c *Controller) read() uint8 {
	out := uint8(0x0F)
	if c.selects&0x10 == 0 { // direction keys selected
		out &= ^(c.pressed >> 4) & 0x0F
	}
	if c.selects&0x20 == 0 { // action keys selected
		out &= ^c.pressed & 0x0F
	}
	return c.selects | 0xC0 | out
}

// Press marks button as held and requests JOYPAD on every call, whether
// or not the button was already held or its group is selected on P1.
func (c *Controller) Press(button Button) {
	c.pressed |= 1 << button
	c.irq.Request(interrupts.Joypad)
}

// Release marks button as no longer held.
func (c *Controller) Release(button Button) {
	c.pressed &^= 1 << button
}
