// Package cpu implements the Game Boy CPU: an 8/16-bit register machine
// that fetches, decodes and executes one instruction (or services one
// interrupt, or burns one cycle while halted) per Step call.
package cpu

import "github.com/nkato/goboy/internal/interrupts"

// ClockSpeed is the DMG CPU clock, in t-cycles per second.
const ClockSpeed = 4194304

// Bus is the memory-mapped address space the CPU fetches opcodes from and
// reads/writes operands through. It is implemented by internal/mmu.Bus.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// IllegalOpcodeError is the fault raised when the CPU fetches one of the
// eleven hardware-undefined opcode bytes.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return "cpu: illegal opcode"
}

// CPU is the sole mutator of its own registers; the Bus mediates all
// memory mutation, per the data model's invariant.
type CPU struct {
	registers
	SP uint16
	PC uint16

	ime bool
	// imeScheduled counts down the one-instruction EI latch: 2 right
	// after EI executes, 1 on the next fetch (at which point IME takes
	// effect before that instruction runs), 0 otherwise.
	imeScheduled uint8

	halted bool
	fault  *IllegalOpcodeError

	bus Bus
	irq *interrupts.Controller
}

// New returns a CPU wired to bus and irq, with registers left zeroed —
// callers apply Reset before the first Step.
func New(bus Bus, irq *interrupts.Controller) *CPU {
	return &CPU{bus: bus, irq: irq}
}

// Reset sets the registers to the documented DMG power-on state and PC to
// the cartridge entry point at 0x0100.
func (c *CPU) Reset() {
	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.ime = false
	c.imeScheduled = 0
	c.halted = false
	c.fault = nil
}

// Halted reports whether the CPU is in the HALT/STOP low-power state.
func (c *CPU) Halted() bool { return c.halted }

// Fault returns the illegal-opcode fault, if the CPU has hit one.
func (c *CPU) Fault() *IllegalOpcodeError { return c.fault }

// IME reports the interrupt master enable flag.
func (c *CPU) IME() bool { return c.ime }

// Step executes exactly one instruction, services exactly one interrupt,
// or burns one halted cycle, returning the elapsed t-cycles. Once a fault
// has been latched, Step is a no-op returning 0 so a caller that keeps
// calling it in a loop does not make further progress.
func (c *CPU) Step() uint32 {
	if c.fault != nil {
		return 0
	}

	// the EI latch: an EI executed one instruction ago takes effect now,
	// before this instruction (or interrupt dispatch) runs.
	if c.imeScheduled > 0 {
		c.imeScheduled--
		if c.imeScheduled == 0 {
			c.ime = true
		}
	}

	if cycles, serviced := c.serviceInterrupt(); serviced {
		return cycles
	}

	if c.halted {
		return 4
	}

	opcode := c.next8()
	var table *[256]instruction
	if opcode == 0xCB {
		opcode = c.next8()
		table = &cbTable
	} else {
		table = &primaryTable
	}

	entry := table[opcode]
	if entry.exec == nil {
		c.fault = &IllegalOpcodeError{Opcode: opcode, PC: c.PC - 1}
		c.halted = true
		return 4
	}

	taken := entry.exec(c)
	if entry.takenCycles != entry.cycles {
		if taken {
			return uint32(entry.takenCycles)
		}
		return uint32(entry.notTakenCycles)
	}
	return uint32(entry.cycles)
}

// serviceInterrupt implements the priority rule: the lowest pending+enabled
// source wins, dispatch costs 20 cycles, and a halted CPU wakes even
// without dispatching when IME is false.
func (c *CPU) serviceInterrupt() (uint32, bool) {
	if !c.irq.Ready() {
		return 0, false
	}
	if c.halted {
		c.halted = false
	}
	if !c.ime {
		return 0, false
	}

	source, ok := c.irq.Pending()
	if !ok {
		return 0, false
	}

	c.ime = false
	c.irq.Clear(source)
	c.push(c.PC)
	c.PC = source.Vector()
	return 20, true
}

func (c *CPU) next8() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

func (c *CPU) next8Signed() int8 { return int8(c.next8()) }

func (c *CPU) next16() uint16 {
	lo := uint16(c.next8())
	hi := uint16(c.next8())
	return hi<<8 | lo
}

// push stores v on the stack with the high byte at the higher of the two
// addresses it occupies: SP-=2 and the top word reads back as v.
func (c *CPU) push(v uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(v>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(v))
}

func (c *CPU) pop() uint16 {
	lo := uint16(c.bus.Read(c.SP))
	c.SP++
	hi := uint16(c.bus.Read(c.SP))
	c.SP++
	return hi<<8 | lo
}

// scheduleEI arms the one-instruction-delayed IME latch.
func (c *CPU) scheduleEI() { c.imeScheduled = 2 }
