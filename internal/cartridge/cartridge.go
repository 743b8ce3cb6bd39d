// Package cartridge parses a DMG ROM header and selects the bank-switching
// controller (MBC) it names, exposing a single Cartridge interface to the
// Bus for the ROM and external-RAM address windows.
package cartridge

import (
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/nkato/goboy/internal/romerr"
	"github.com/sirupsen/logrus"
)

// minROMSize and maxROMSize bound what counts as an unreadable or
// too-large ROM image.
const (
	minROMSize = 0x8000
	maxROMSize = 8 * 1024 * 1024
)

// Cartridge is the narrow contract the Bus routes 0x0000-0x7FFF and
// 0xA000-0xBFFF reads/writes through.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() Header
	Title() string
}

// baseCartridge implements MBC-none (cartridge type 0x00): a single fixed
// 32KiB ROM bank and no external RAM.
type baseCartridge struct {
	rom    []byte
	header Header
}

func (c *baseCartridge) Header() Header { return c.header }
func (c *baseCartridge) Title() string  { return c.header.Title }

func (c *baseCartridge) Read(address uint16) uint8 {
	if int(address) >= len(c.rom) {
		return 0xFF
	}
	return c.rom[address]
}

func (c *baseCartridge) Write(address uint16, value uint8) {}

// Load parses rom's header at 0x0100-0x014F and returns the Cartridge
// implementation matching its cartridge-type byte (0x0147), or a wrapped
// romerr sentinel if the image or its controller can't be handled.
func Load(rom []byte) (Cartridge, error) {
	if len(rom) == 0 {
		return nil, romerr.ErrEmpty
	}
	if len(rom) < minROMSize {
		return nil, fmt.Errorf("cartridge: %w: %d bytes, need at least 0x%X", romerr.ErrUnreadable, len(rom), minROMSize)
	}
	if len(rom) > maxROMSize {
		return nil, fmt.Errorf("cartridge: %w: %d bytes", romerr.ErrTooLarge, len(rom))
	}

	header := parseHeader(rom[0x100:0x150])
	header.Hash = xxhash.Sum64(rom)

	logrus.WithFields(logrus.Fields{
		"title": header.Title,
		"type":  fmt.Sprintf("0x%02X", uint8(header.CartridgeType)),
		"rom":   header.ROMSize,
		"ram":   header.RAMSize,
	}).Info("cartridge: loaded")

	switch header.CartridgeType {
	case ROM:
		return &baseCartridge{rom: rom, header: header}, nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(rom, &header), nil
	case MBC2, MBC2BATT:
		return NewMemoryBankedCartridge2(rom, &header), nil
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return NewMemoryBankedCartridge3(rom, &header), nil
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return NewMemoryBankedCartridge5(rom, &header), nil
	default:
		return nil, fmt.Errorf("cartridge: %w: type 0x%02X", romerr.ErrUnsupportedMBC, uint8(header.CartridgeType))
	}
}

// NewEmptyCartridge returns a cartridge with no ROM bytes, useful for
// tests that exercise the Bus without a real image loaded.
func NewEmptyCartridge() Cartridge {
	return &baseCartridge{rom: []byte{}, header: Header{}}
}
