// Package apu implements the audio register file (NR10-NR52) as a stub
// generator: registers are stored and read back with their documented
// unused-bit masks, and Read produces silent interleaved samples at the
// advertised sample rate so a host audio sink has something to consume.
package apu

import "github.com/nkato/goboy/internal/types"

const SampleRate = 44100

// register describes one NRxx address: its always-1 read mask (the bits
// hardware pins high regardless of what was last written).
type register struct {
	addr     types.HardwareAddress
	readMask uint8
}

var registers = []register{
	{types.NR10, 0x80}, {types.NR11, 0x3F}, {types.NR12, 0x00}, {types.NR13, 0xFF}, {types.NR14, 0xBF},
	{types.NR21, 0x3F}, {types.NR22, 0x00}, {types.NR23, 0xFF}, {types.NR24, 0xBF},
	{types.NR30, 0x7F}, {types.NR31, 0xFF}, {types.NR32, 0x9F}, {types.NR33, 0xFF}, {types.NR34, 0xBF},
	{types.NR41, 0xFF}, {types.NR42, 0x00}, {types.NR43, 0x00}, {types.NR44, 0xBF},
	{types.NR50, 0x00}, {types.NR51, 0x00},
}

// Controller owns the sound register file. It does not synthesize audio;
// it exists so ROMs that probe these registers observe hardware-shaped
// values, and so a host audio sink has a Read source to pull from.
type Controller struct {
	values map[types.HardwareAddress]uint8
	power  bool
}

func NewController(regs *types.HardwareRegisters) *Controller {
	c := &Controller{values: make(map[types.HardwareAddress]uint8, len(registers)+1)}

	for _, r := range registers {
		addr := r.addr
		mask := r.readMask
		regs.Register(addr,
			func(v uint8) {
				if c.power {
					c.values[addr] = v
				}
			},
			func() uint8 { return c.values[addr] | mask },
		)
	}

	regs.Register(types.NR52,
		func(v uint8) { c.power = v&0x80 != 0 },
		func() uint8 {
			v := uint8(0x70)
			if c.power {
				v |= 0x80
			}
			return v
		},
	)

	return c
}

// Read fills out with interleaved 16-bit stereo silence, matching the
// io.Reader-like shape a host audio sink pulls fixed-size buffers from.
func (c *Controller) Read(out []int16) (int, error) {
	for i := range out {
		out[i] = 0
	}
	return len(out), nil
}
