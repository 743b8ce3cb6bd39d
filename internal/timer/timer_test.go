package timer

import (
	"testing"

	"github.com/nkato/goboy/internal/interrupts"
	"github.com/nkato/goboy/internal/types"
	"github.com/stretchr/testify/assert"
)

func newTest(t *testing.T) (*Controller, *interrupts.Controller, *types.HardwareRegisters) {
	t.Helper()
	regs := types.NewHardwareRegisters()
	irq := interrupts.NewController(regs)
	irq.Enable(interrupts.Timer)
	return NewController(regs, irq), irq, regs
}

func TestDIVWriteResetsCounter(t *testing.T) {
	c, _, regs := newTest(t)
	c.Advance(2000)
	assert.NotZero(t, regs.Read(types.DIV))

	regs.Write(types.DIV, 0xFF) // any written value resets to zero
	assert.Zero(t, regs.Read(types.DIV))
}

func TestDisabledTimerDoesNotTick(t *testing.T) {
	c, _, regs := newTest(t)
	regs.Write(types.TAC, 0x01) // select bit3, but enable bit (0x04) unset
	c.Advance(100000)
	assert.Zero(t, regs.Read(types.TIMA))
}

func TestOverflowReloadsFromTMAAndRaisesTimer(t *testing.T) {
	c, irq, regs := newTest(t)
	regs.Write(types.TMA, 0xAB)
	regs.Write(types.TAC, 0x05) // enabled, select bit3 (every 16 cycles)

	// 256 edges * 16 cycles/edge to overflow, plus the documented 4-cycle
	// reload delay before TMA lands in TIMA.
	c.Advance(256*16 + 4)

	assert.Equal(t, uint8(0xAB), regs.Read(types.TIMA))
	assert.True(t, irq.IsPending(interrupts.Timer))
}

func TestTACReadMasksUnusedBits(t *testing.T) {
	_, _, regs := newTest(t)
	regs.Write(types.TAC, 0x05)
	assert.Equal(t, uint8(0xFD), regs.Read(types.TAC), "bits 3-7 read as 1")
}
