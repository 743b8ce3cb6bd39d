package types

import "fmt"

// HardwareRegisters is the table of I/O register handlers owned by a Bus
// instance. The 0xFF00-0xFF7F I/O range is indexed by address&0x007F into
// slots 0x00-0x7F; the IE register (0xFFFF) gets its own dedicated slot
// 0x80 so it never aliases an I/O address. Peripherals register their own
// registers against a bus's table at construction time; no two peripherals
// may claim the same address.
type HardwareRegisters struct {
	slots [0x81]*HardwareRegister
}

// NewHardwareRegisters returns an empty register table.
func NewHardwareRegisters() *HardwareRegisters {
	return &HardwareRegisters{}
}

// HardwareRegister is a single registered I/O address with its read and
// write behavior.
type HardwareRegister struct {
	address HardwareAddress
	write   func(v uint8)
	read    func() uint8
}

// Register binds read/write callbacks to address. write or read may be nil,
// in which case NoWrite/NoRead apply. Registering the same address twice
// panics — that is a programming error, not a runtime condition.
func (h *HardwareRegisters) Register(address HardwareAddress, write func(v uint8), read func() uint8) {
	idx := address & 0x007F
	if address == 0xFFFF {
		idx = 0x80
	}
	if h.slots[idx] != nil {
		panic(fmt.Sprintf("types: address 0x%04X already registered", address))
	}
	if write == nil {
		write = NoWrite
	}
	if read == nil {
		read = NoRead
	}
	h.slots[idx] = &HardwareRegister{address: address, write: write, read: read}
}

// Read returns the registered register's value, or 0xFF if nothing claims
// this address.
func (h *HardwareRegisters) Read(address uint16) uint8 {
	idx := address & 0x007F
	if address == 0xFFFF {
		idx = 0x80
	}
	if h.slots[idx] == nil {
		return 0xFF
	}
	return h.slots[idx].read()
}

// Write dispatches to the registered register's write handler. Writes to
// unclaimed addresses are silently dropped, matching the bus's "write is
// total" invariant.
func (h *HardwareRegisters) Write(address uint16, value uint8) {
	idx := address & 0x007F
	if address == 0xFFFF {
		idx = 0x80
	}
	if h.slots[idx] == nil {
		return
	}
	h.slots[idx].write(value)
}

// NoRead always returns 0xFF, for write-only registers.
func NoRead() uint8 { return 0xFF }

// NoWrite drops the write, for read-only registers.
func NoWrite(uint8) {}
