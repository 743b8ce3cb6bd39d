package console

import (
	"testing"

	"github.com/nkato/goboy/internal/interrupts"
	"github.com/nkato/goboy/internal/joypad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyROM builds a minimal MBC-none image: a valid header and a handful of
// NOPs followed by an infinite JR loop at the entry point.
func tinyROM() []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x134:0x144], "SMOKETEST")
	rom[0x147] = 0x00 // ROM only

	// at 0x0100: NOP, NOP, JR -4 (back to 0x0100, spin forever)
	rom[0x0100] = 0x00
	rom[0x0101] = 0x00
	rom[0x0102] = 0x18
	rom[0x0103] = 0xFC
	return rom
}

func TestLoadROMResetsCPUToEntryPoint(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadROM(tinyROM()))

	assert.Equal(t, uint16(0x0100), c.CPU.PC)
	assert.Equal(t, "SMOKETEST", c.Bus.Cartridge().Title())
}

func TestStepFetchesFromCartridge(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadROM(tinyROM()))

	cycles := c.CPU.Step() // NOP
	assert.Equal(t, uint32(4), cycles)
	assert.Equal(t, uint16(0x0101), c.CPU.PC)
}

func TestPeripheralsShareOneRegisterTable(t *testing.T) {
	c := New()
	require.NoError(t, c.LoadROM(tinyROM()))

	c.Joypad.Press(joypad.ButtonA)
	assert.True(t, c.IRQ.IsPending(interrupts.Joypad))
	assert.NotZero(t, c.Bus.Read(0xFF0F)&0x10, "the joypad request reads back as IF bit 4 through the bus")
}
