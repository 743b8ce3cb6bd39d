// Package console wires the Bus, CPU, interrupt controller, cartridge,
// and peripherals (Timer, Serial, Joypad, Video, APU) into a runnable
// machine, and drives it with a Scheduler.
package console

import (
	"fmt"

	"github.com/nkato/goboy/internal/apu"
	"github.com/nkato/goboy/internal/cpu"
	"github.com/nkato/goboy/internal/interrupts"
	"github.com/nkato/goboy/internal/joypad"
	"github.com/nkato/goboy/internal/mmu"
	"github.com/nkato/goboy/internal/scheduler"
	"github.com/nkato/goboy/internal/serial"
	"github.com/nkato/goboy/internal/telemetry"
	"github.com/nkato/goboy/internal/timer"
	"github.com/nkato/goboy/internal/types"
	"github.com/nkato/goboy/internal/video"
	"github.com/sirupsen/logrus"
)

// Console is the assembled machine: the Bus, CPU, and interrupt
// controller plus every peripheral, ready to run once a ROM is loaded.
type Console struct {
	Bus    *mmu.Bus
	CPU    *cpu.CPU
	IRQ    *interrupts.Controller
	Timer  *timer.Controller
	Serial *serial.Controller
	Joypad *joypad.Controller
	Video  *video.Controller
	APU    *apu.Controller

	Scheduler *scheduler.Scheduler

	log *logrus.Logger
}

// Option configures a Console at construction time.
type Option func(*options)

type options struct {
	serialSink serial.Sink
	logger     *logrus.Logger
}

// WithSerialSink directs bytes published by writes of 0x81 to SC to sink.
func WithSerialSink(sink serial.Sink) Option {
	return func(o *options) { o.serialSink = sink }
}

// WithLogger sets the logger the Console logs through; defaults to a
// logrus logger at Info level. cartridge.Load logs through logrus's
// package-level standard logger, not this one.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New assembles a Console with no ROM loaded; call LoadROM before Run.
func New(opts ...Option) *Console {
	o := &options{logger: logrus.New()}
	for _, opt := range opts {
		opt(o)
	}

	regs := types.NewHardwareRegisters()
	irq := interrupts.NewController(regs)
	bus := mmu.NewBus(regs)
	c := cpu.New(bus, irq)
	c.Reset()

	tm := timer.NewController(regs, irq)
	sr := serial.NewController(regs, irq, o.serialSink)
	jp := joypad.NewController(regs, irq)
	vid := video.NewController(regs, irq, bus)
	snd := apu.NewController(regs)

	sched := scheduler.New(c.Step, func() bool { return c.Fault() != nil }, tm, vid)

	return &Console{
		Bus: bus, CPU: c, IRQ: irq,
		Timer: tm, Serial: sr, Joypad: jp, Video: vid, APU: snd,
		Scheduler: sched,
		log:       o.logger,
	}
}

// LoadROM parses and installs rom, then resets the CPU to the DMG
// power-on state at the cartridge's entry point.
func (c *Console) LoadROM(rom []byte) error {
	if err := c.Bus.LoadROM(rom); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	c.CPU.Reset()
	c.log.WithField("title", c.Bus.Cartridge().Title()).Info("console: rom loaded")
	return nil
}

// Run drives the Scheduler until it quits or the CPU faults. It returns
// the illegal-opcode fault, if one occurred.
func (c *Console) Run() *cpu.IllegalOpcodeError {
	c.Scheduler.Run()
	if fault := c.CPU.Fault(); fault != nil {
		c.log.WithField("opcode", fmt.Sprintf("0x%02X", fault.Opcode)).
			WithField("pc", fmt.Sprintf("0x%04X", fault.PC)).
			Error("console: illegal opcode")
		return fault
	}
	return nil
}

// Stop signals Run to return after the in-flight step completes.
func (c *Console) Stop() { c.Scheduler.Quit() }

// Snapshot captures the machine's externally observable state for
// telemetry: registers, flags, and the PPU's position.
func (c *Console) Snapshot() telemetry.Snapshot {
	return telemetry.Snapshot{
		A: c.CPU.A, F: c.CPU.F,
		B: c.CPU.B, C: c.CPU.C,
		D: c.CPU.D, E: c.CPU.E,
		H: c.CPU.H, L: c.CPU.L,
		SP: c.CPU.SP, PC: c.CPU.PC,
		IME:        c.CPU.IME(),
		IE:         c.Bus.Read(0xFFFF),
		IF:         c.Bus.Read(0xFF0F),
		PPUMode:    c.Video.Mode(),
		LY:         c.Video.LY(),
		FrameCount: c.Video.FrameCount,
	}
}
