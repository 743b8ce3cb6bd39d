package apu

import (
	"testing"

	"github.com/nkato/goboy/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestRegistersReadMaskWhenPoweredOff(t *testing.T) {
	regs := types.NewHardwareRegisters()
	NewController(regs)

	// power is off by default; NR52 still reports its fixed upper bits.
	assert.Equal(t, uint8(0x70), regs.Read(types.NR52))
	assert.Equal(t, uint8(0x80), regs.Read(types.NR10), "unwritten register reads its always-1 mask")
}

func TestWritesIgnoredWhilePoweredOff(t *testing.T) {
	regs := types.NewHardwareRegisters()
	NewController(regs)

	regs.Write(types.NR11, 0xC0)
	assert.Equal(t, uint8(0x3F), regs.Read(types.NR11), "the write is dropped; only the read mask shows")
}

func TestPowerOnAllowsWritesToStick(t *testing.T) {
	regs := types.NewHardwareRegisters()
	NewController(regs)

	regs.Write(types.NR52, 0x80) // power on
	regs.Write(types.NR12, 0x77)

	assert.Equal(t, uint8(0x77), regs.Read(types.NR12))
	assert.Equal(t, uint8(0x80|0x70), regs.Read(types.NR52))
}

func TestReadProducesSilence(t *testing.T) {
	regs := types.NewHardwareRegisters()
	c := NewController(regs)

	buf := make([]int16, 8)
	buf[0] = 123
	n, err := c.Read(buf)

	assert.NoError(t, err)
	assert.Equal(t, 8, n)
	for _, v := range buf {
		assert.Zero(t, v)
	}
}
