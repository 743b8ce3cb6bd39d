package video

import (
	"testing"

	"github.com/nkato/goboy/internal/interrupts"
	"github.com/nkato/goboy/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatMemory [0x2000]uint8

func (m *flatMemory) ReadVRAM(addr uint16) uint8 { return m[addr&0x1FFF] }
func (m *flatMemory) ReadOAM(uint16) uint8       { return 0xFF }

func newTest(t *testing.T) (*Controller, *interrupts.Controller, *types.HardwareRegisters) {
	t.Helper()
	regs := types.NewHardwareRegisters()
	irq := interrupts.NewController(regs)
	irq.Enable(interrupts.VBlank)
	irq.Enable(interrupts.LCD)
	mem := &flatMemory{}
	c := NewController(regs, irq, mem)
	regs.Write(types.LCDC, 0x91) // LCD+BG on, tile data at 0x8000
	return c, irq, regs
}

func TestPowerOffHoldsMode(t *testing.T) {
	regs := types.NewHardwareRegisters()
	irq := interrupts.NewController(regs)
	mem := &flatMemory{}
	c := NewController(regs, irq, mem)
	// LCDC left at 0: LCD is off.
	c.Advance(100000)
	assert.Equal(t, uint8(0), regs.Read(types.LY))
	assert.Equal(t, uint8(ModeOAM), regs.Read(types.STAT)&0x03)
}

func TestModeCyclesThroughOneScanline(t *testing.T) {
	c, _, regs := newTest(t)

	assert.Equal(t, uint8(ModeOAM), regs.Read(types.STAT)&0x03)

	c.Advance(oamDots)
	assert.Equal(t, uint8(ModeVRAM), regs.Read(types.STAT)&0x03)

	c.Advance(vramDots)
	assert.Equal(t, uint8(ModeHBlank), regs.Read(types.STAT)&0x03)

	c.Advance(lineDots - oamDots - vramDots)
	assert.Equal(t, uint8(1), regs.Read(types.LY))
	assert.Equal(t, uint8(ModeOAM), regs.Read(types.STAT)&0x03)
}

func TestVBlankRaisedAtLine144(t *testing.T) {
	c, irq, regs := newTest(t)

	c.Advance(uint32(lineDots) * vblankLine)

	assert.Equal(t, uint8(vblankLine), regs.Read(types.LY))
	assert.Equal(t, uint8(ModeVBlank), regs.Read(types.STAT)&0x03)
	assert.True(t, irq.IsPending(interrupts.VBlank))
}

func TestLYCMatchRaisesSTATWhenEnabled(t *testing.T) {
	c, irq, regs := newTest(t)
	regs.Write(types.LYC, 1)
	regs.Write(types.STAT, 0x40) // enable LYC=LY STAT source

	c.Advance(lineDots)

	assert.Equal(t, uint8(1), regs.Read(types.LY))
	assert.NotZero(t, regs.Read(types.STAT)&0x04, "coincidence flag must be set")
	assert.True(t, irq.IsPending(interrupts.LCD))
}

func TestFullFrameProducesFramebuffer(t *testing.T) {
	c, _, _ := newTest(t)
	c.Advance(uint32(lineDots) * (lastLine + 1))

	frame, ready := c.TakeFrame()
	require.NotNil(t, frame)
	assert.True(t, ready)

	frame2, ready2 := c.TakeFrame()
	assert.Same(t, frame, frame2)
	assert.False(t, ready2, "TakeFrame must clear the ready flag")
}
