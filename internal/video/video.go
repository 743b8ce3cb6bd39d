// Package video implements the PPU's timing contract: the LCDC/STAT/LY
// state machine and the interrupts it raises. Per the core's scope, pixel
// rendering itself is a narrow, best-effort contract — the background
// layer is rendered so the framebuffer isn't empty, but sprite priority,
// the window layer, and CGB palettes are not implemented.
package video

import (
	"image"
	"image/color"

	"github.com/nkato/goboy/internal/interrupts"
	"github.com/nkato/goboy/internal/types"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144
)

// PPU modes, matching STAT bits 0-1.
const (
	ModeHBlank uint8 = iota
	ModeVBlank
	ModeOAM
	ModeVRAM
)

const (
	oamDots  = 80
	vramDots = 172
	lineDots = 456
	vblankLine = ScreenHeight
	lastLine   = 153
)

// Memory is the VRAM/OAM window the Bus exposes to the PPU; both regions
// are plain byte arrays with no CPU-side access lockout during rendering.
type Memory interface {
	ReadVRAM(addr uint16) uint8
	ReadOAM(addr uint16) uint8
}

// Controller drives the LCDC/STAT/LY timing state machine and renders the
// background layer into a framebuffer once per frame.
type Controller struct {
	lcdc uint8
	stat uint8
	scy  uint8
	scx  uint8
	ly   uint8
	lyc  uint8
	bgp  uint8
	obp0 uint8
	obp1 uint8
	wy   uint8
	wx   uint8

	dot uint32

	mem Memory
	irq *interrupts.Controller

	frame       *image.RGBA
	frameReady  bool
	FrameCount  uint64
}

func NewController(regs *types.HardwareRegisters, irq *interrupts.Controller, mem Memory) *Controller {
	c := &Controller{mem: mem, irq: irq, frame: image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight))}

	regs.Register(types.LCDC, func(v uint8) { c.lcdc = v }, func() uint8 { return c.lcdc })
	regs.Register(types.STAT,
		func(v uint8) { c.stat = (c.stat & 0x07) | (v & 0xF8) },
		func() uint8 { return c.stat | 0x80 },
	)
	regs.Register(types.SCY, func(v uint8) { c.scy = v }, func() uint8 { return c.scy })
	regs.Register(types.SCX, func(v uint8) { c.scx = v }, func() uint8 { return c.scx })
	regs.Register(types.LY, func(uint8) { c.ly = 0 }, func() uint8 { return c.ly })
	regs.Register(types.LYC, func(v uint8) { c.lyc = v }, func() uint8 { return c.lyc })
	regs.Register(types.BGP, func(v uint8) { c.bgp = v }, func() uint8 { return c.bgp })
	regs.Register(types.OBP0, func(v uint8) { c.obp0 = v }, func() uint8 { return c.obp0 })
	regs.Register(types.OBP1, func(v uint8) { c.obp1 = v }, func() uint8 { return c.obp1 })
	regs.Register(types.WY, func(v uint8) { c.wy = v }, func() uint8 { return c.wy })
	regs.Register(types.WX, func(v uint8) { c.wx = v }, func() uint8 { return c.wx })

	c.setMode(ModeOAM)
	return c
}

// Advance steps the timing state machine by cycles t-cycles, raising
// VBLANK when line 144 begins and STAT when an enabled source's condition
// becomes true.
func (c *Controller) Advance(cycles uint32) {
	if c.lcdc&0x80 == 0 {
		return
	}
	for i := uint32(0); i < cycles; i++ {
		c.tick()
	}
}

func (c *Controller) tick() {
	c.dot++

	switch {
	case c.ly < vblankLine && c.dot == oamDots:
		c.setMode(ModeVRAM)
	case c.ly < vblankLine && c.dot == oamDots+vramDots:
		c.setMode(ModeHBlank)
	}

	if c.dot >= lineDots {
		c.dot = 0
		c.ly++

		if c.ly == vblankLine {
			c.renderFrame()
			c.setMode(ModeVBlank)
			c.irq.Request(interrupts.VBlank)
		} else if c.ly > lastLine {
			c.ly = 0
			c.setMode(ModeOAM)
		} else if c.ly < vblankLine {
			c.setMode(ModeOAM)
		}

		c.checkLYC()
	}
}

func (c *Controller) setMode(mode uint8) {
	c.stat = (c.stat &^ 0x03) | mode

	var statSource uint8
	switch mode {
	case ModeHBlank:
		statSource = 0x08
	case ModeVBlank:
		statSource = 0x10
	case ModeOAM:
		statSource = 0x20
	}
	if statSource != 0 && c.stat&statSource != 0 {
		c.irq.Request(interrupts.LCD)
	}
}

func (c *Controller) checkLYC() {
	if c.ly == c.lyc {
		c.stat |= 0x04
		if c.stat&0x40 != 0 {
			c.irq.Request(interrupts.LCD)
		}
	} else {
		c.stat &^= 0x04
	}
}

// Frame returns the current framebuffer, valid to read at any time (the
// scheduler should prefer TakeFrame to avoid tearing mid-render).
func (c *Controller) Frame() *image.RGBA { return c.frame }

// Mode reports the PPU's current STAT mode (0-3).
func (c *Controller) Mode() uint8 { return c.stat & 0x03 }

// LY reports the scanline currently being drawn.
func (c *Controller) LY() uint8 { return c.ly }

var shades = [4]color.RGBA{
	{R: 0xE0, G: 0xF8, B: 0xD0, A: 0xFF},
	{R: 0x88, G: 0xC0, B: 0x70, A: 0xFF},
	{R: 0x34, G: 0x68, B: 0x56, A: 0xFF},
	{R: 0x08, G: 0x18, B: 0x20, A: 0xFF},
}

// renderFrame paints the background layer (LCDC.0, tile map LCDC.3, tile
// data LCDC.4) into the framebuffer, honoring SCX/SCY scroll and BGP.
func (c *Controller) renderFrame() {
	c.FrameCount++
	if c.lcdc&0x01 == 0 {
		return
	}

	tileMapBase := uint16(0x1800)
	if c.lcdc&0x08 != 0 {
		tileMapBase = 0x1C00
	}
	signedTiles := c.lcdc&0x10 == 0

	for y := 0; y < ScreenHeight; y++ {
		bgY := (uint16(y) + uint16(c.scy)) & 0xFF
		tileRow := bgY / 8
		for x := 0; x < ScreenWidth; x++ {
			bgX := (uint16(x) + uint16(c.scx)) & 0xFF
			tileCol := bgX / 8

			mapAddr := tileMapBase + tileRow*32 + tileCol
			tileIndex := c.mem.ReadVRAM(mapAddr)

			var tileAddr uint16
			if signedTiles {
				tileAddr = uint16(0x1000 + int16(int8(tileIndex))*16)
			} else {
				tileAddr = 0x0000 + uint16(tileIndex)*16
			}

			line := bgY % 8
			lo := c.mem.ReadVRAM(tileAddr + line*2)
			hi := c.mem.ReadVRAM(tileAddr + line*2 + 1)

			bit := 7 - (bgX % 8)
			colour := (lo>>bit)&1 | ((hi>>bit)&1)<<1
			shade := (c.bgp >> (colour * 2)) & 0x03

			c.frame.SetRGBA(x, y, shades[shade])
		}
	}
	c.frameReady = true
}

// TakeFrame reports whether a new frame has been rendered since the last
// call, clearing the flag.
func (c *Controller) TakeFrame() (*image.RGBA, bool) {
	ready := c.frameReady
	c.frameReady = false
	return c.frame, ready
}
