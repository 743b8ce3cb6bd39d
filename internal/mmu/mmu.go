// Package mmu implements the Game Boy's 64 KiB memory-mapped bus: it
// decodes every address into a region (ROM/cartridge RAM via the active
// MBC, VRAM, work RAM with its echo alias, OAM, unusable space, I/O
// registers, HRAM, IE) and owns the plain byte arrays the CPU and PPU
// read and write through.
package mmu

import (
	"github.com/nkato/goboy/internal/cartridge"
	"github.com/nkato/goboy/internal/types"
)

// Bus is the CPU's memory-mapped address space and the PPU's VRAM/OAM
// window.
type Bus struct {
	cart cartridge.Cartridge

	vram [0x2000]byte
	wram [0x2000]byte
	oam  [0xA0]byte
	hram [0x7F]byte

	regs *types.HardwareRegisters

	dmaSource uint8
}

// NewBus returns a Bus with all RAM initialized to 0xFF and no cartridge
// loaded, wired to regs so peripherals constructed afterward can register
// their own I/O addresses against the same table.
func NewBus(regs *types.HardwareRegisters) *Bus {
	b := &Bus{cart: cartridge.NewEmptyCartridge(), regs: regs}
	fill(b.vram[:], 0xFF)
	fill(b.wram[:], 0xFF)
	fill(b.oam[:], 0xFF)
	fill(b.hram[:], 0xFF)

	regs.Register(types.DMA,
		func(v uint8) { b.dmaSource = v; b.runDMA(v) },
		func() uint8 { return b.dmaSource },
	)

	return b
}

func fill(dst []byte, v byte) {
	for i := range dst {
		dst[i] = v
	}
}

// LoadROM parses rom's header, selects its MBC, and installs it as the
// active cartridge.
func (b *Bus) LoadROM(rom []byte) error {
	cart, err := cartridge.Load(rom)
	if err != nil {
		return err
	}
	b.cart = cart
	return nil
}

// Cartridge returns the currently loaded cartridge (never nil; an empty
// cartridge before LoadROM is called).
func (b *Bus) Cartridge() cartridge.Cartridge { return b.cart }

// Read returns the byte at addr, honoring every region policy including
// echo RAM aliasing and the unusable window reading 0xFF.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return b.cart.Read(addr)
	case addr < 0xA000:
		return b.vram[addr&0x1FFF]
	case addr < 0xC000:
		return b.cart.Read(addr)
	case addr < 0xFE00:
		return b.wram[addr&0x1FFF]
	case addr < 0xFEA0:
		return b.oam[addr-0xFE00]
	case addr < 0xFF00:
		return 0xFF
	case addr < 0xFF80:
		return b.regs.Read(addr)
	case addr < 0xFFFF:
		return b.hram[addr-0xFF80]
	default:
		return b.regs.Read(addr)
	}
}

// Write stores value at addr, honoring every region's write policy
// (ROM writes route to the MBC as bank-switch commands, echo RAM aliases
// work RAM, the unusable window drops writes).
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x8000:
		b.cart.Write(addr, value)
	case addr < 0xA000:
		b.vram[addr&0x1FFF] = value
	case addr < 0xC000:
		b.cart.Write(addr, value)
	case addr < 0xFE00:
		b.wram[addr&0x1FFF] = value
	case addr < 0xFEA0:
		b.oam[addr-0xFE00] = value
	case addr < 0xFF00:
		// unusable: writes drop
	case addr < 0xFF80:
		b.regs.Write(addr, value)
	case addr < 0xFFFF:
		b.hram[addr-0xFF80] = value
	default:
		b.regs.Write(addr, value)
	}
}

// runDMA copies 160 bytes from src*0x100 into OAM. Real hardware spreads
// this over 160 M-cycles during which the CPU can only access HRAM; this
// bus does not model sub-instruction timing, so the copy is instantaneous.
func (b *Bus) runDMA(src uint8) {
	base := uint16(src) << 8
	for i := 0; i < len(b.oam); i++ {
		b.oam[i] = b.Read(base + uint16(i))
	}
}

// ReadVRAM and ReadOAM satisfy video.Memory, the narrow window the PPU
// reads tile/sprite data through.
func (b *Bus) ReadVRAM(addr uint16) uint8 { return b.vram[addr&0x1FFF] }
func (b *Bus) ReadOAM(addr uint16) uint8  { return b.oam[addr&0xFF] }
