package mmu

import (
	"testing"

	"github.com/nkato/goboy/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	return NewBus(types.NewHardwareRegisters())
}

func TestRAMInitializedToFF(t *testing.T) {
	b := newTestBus(t)
	assert.Equal(t, uint8(0xFF), b.Read(0xC000))
	assert.Equal(t, uint8(0xFF), b.Read(0xFE00))
	assert.Equal(t, uint8(0xFF), b.Read(0xFF80))
}

func TestWorkRAMReadWrite(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xC010, 0x42)
	assert.Equal(t, uint8(0x42), b.Read(0xC010))
}

func TestEchoRAMAliasesWorkRAM(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xC010, 0x7A)
	assert.Equal(t, uint8(0x7A), b.Read(0xE010), "echo RAM must alias work RAM")

	b.Write(0xE020, 0x11)
	assert.Equal(t, uint8(0x11), b.Read(0xC020))
}

func TestUnusableRegionReadsFFAndDropsWrites(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xFEA0, 0x55)
	assert.Equal(t, uint8(0xFF), b.Read(0xFEA0))
}

func TestHRAMReadWrite(t *testing.T) {
	b := newTestBus(t)
	b.Write(0xFF90, 0x13)
	assert.Equal(t, uint8(0x13), b.Read(0xFF90))
}

func TestDMACopiesToOAM(t *testing.T) {
	b := newTestBus(t)
	for i := 0; i < 0xA0; i++ {
		b.Write(0xC100+uint16(i), byte(i))
	}

	b.Write(0xFF46, 0xC1) // DMA source high byte

	for i := 0; i < 0xA0; i++ {
		assert.Equal(t, byte(i), b.Read(0xFE00+uint16(i)))
	}
}

func TestLoadROMInstallsCartridge(t *testing.T) {
	b := newTestBus(t)
	rom := make([]byte, 0x8000)
	copy(rom[0x134:0x144], "HELLO")
	rom[0x147] = 0x00 // ROM only

	require.NoError(t, b.LoadROM(rom))
	assert.Equal(t, "HELLO", b.Cartridge().Title())
}
