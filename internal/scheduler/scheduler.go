// Package scheduler runs the fetch-decode-execute hot loop: it calls
// CPU.Step, forwards the elapsed cycles to the peripherals that need to
// catch up, and paces itself to roughly 60 frames per second.
package scheduler

import "time"

// CyclesPerFrame is 4,194,304 Hz / 59.7 Hz, the DMG's frame cadence.
const CyclesPerFrame = 70224

// ClockSpeed is the DMG CPU clock, in t-cycles per second.
const ClockSpeed = 4194304

// Advancer is a peripheral that must catch up by the same number of
// t-cycles the CPU just spent, per the ordering contract: a peripheral's
// advancement strictly follows the instruction that caused it.
type Advancer interface {
	Advance(cycles uint32)
}

// Scheduler owns the hot loop. It holds no CPU/Bus/PPU references of its
// own — those are injected as closures/interfaces so the core packages
// stay decoupled from it.
type Scheduler struct {
	step      func() uint32
	advancers []Advancer
	faulted   func() bool

	onFrame func()

	cycles      uint64
	frameCycles uint32

	quit chan struct{}

	// Pace, when true, sleeps to hold roughly 60Hz; disabled for
	// headless/test-ROM runs that want to finish as fast as possible.
	Pace bool
}

// New returns a Scheduler that steps step() in a loop and forwards elapsed
// cycles to each advancer in order.
func New(step func() uint32, faulted func() bool, advancers ...Advancer) *Scheduler {
	return &Scheduler{step: step, faulted: faulted, advancers: advancers, quit: make(chan struct{}), Pace: true}
}

// OnFrame registers a callback invoked once every CyclesPerFrame, after
// that frame's peripherals have caught up. Used to publish a telemetry
// snapshot, sample frame timing, or hand off a rendered framebuffer.
func (s *Scheduler) OnFrame(fn func()) { s.onFrame = fn }

// Quit signals Run to stop after the in-flight step completes.
func (s *Scheduler) Quit() { close(s.quit) }

// Run drives the loop until Quit is called or the CPU latches a fault.
func (s *Scheduler) Run() {
	frameStart := time.Now()
	for {
		select {
		case <-s.quit:
			return
		default:
		}

		if s.faulted() {
			return
		}

		cycles := s.step()
		s.cycles += uint64(cycles)

		for _, a := range s.advancers {
			a.Advance(cycles)
		}

		s.frameCycles += cycles
		if s.frameCycles >= CyclesPerFrame {
			s.frameCycles -= CyclesPerFrame
			if s.onFrame != nil {
				s.onFrame()
			}
			if s.Pace {
				const frameTime = time.Second / 60
				if elapsed := time.Since(frameStart); elapsed < frameTime {
					time.Sleep(frameTime - elapsed)
				}
				frameStart = time.Now()
			}
		}
	}
}

// Cycles reports the total t-cycles executed since Run started.
func (s *Scheduler) Cycles() uint64 { return s.cycles }
