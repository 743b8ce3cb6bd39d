package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingAdvancer struct {
	cycles uint32
	calls  int
}

func (a *countingAdvancer) Advance(cycles uint32) {
	a.cycles += cycles
	a.calls++
}

// TestOnFrameFiresAtFrameBoundary drives a fixed 4-cycle step function and
// checks the frame callback fires exactly once per CyclesPerFrame, then
// stops itself so Run returns.
func TestOnFrameFiresAtFrameBoundary(t *testing.T) {
	adv := &countingAdvancer{}
	steps := 0
	frames := 0

	var s *Scheduler
	s = New(func() uint32 {
		steps++
		return 4
	}, func() bool { return false }, adv)
	s.Pace = false
	s.OnFrame(func() {
		frames++
		if frames == 2 {
			s.Quit()
		}
	})

	s.Run()

	assert.Equal(t, 2, frames)
	assert.Equal(t, 2*CyclesPerFrame/4, steps, "the second frame ends exactly two frames' worth of cycles in")
	assert.Equal(t, uint64(steps)*4, s.Cycles())
	assert.Equal(t, uint32(steps)*4, adv.cycles, "every stepped cycle must reach the advancer")
}

func TestFaultStopsTheLoop(t *testing.T) {
	faulted := false
	s := New(func() uint32 { return 4 }, func() bool { return faulted })
	s.Pace = false

	calls := 0
	s.OnFrame(func() { calls++ })

	go func() {}() // no-op goroutine; it shares no state with the scheduler

	faulted = true
	s.Run()

	assert.Equal(t, 0, calls, "a pre-faulted scheduler must never reach a frame boundary")
}

// TestAdvancerSeesEveryStepIndependently ensures the ordering contract: an
// interrupt an advancer raises during cycle N is visible to the very next
// Step call, since both run on the same goroutine with no buffering
// between them.
func TestAdvancerSeesEveryStepIndependently(t *testing.T) {
	var raised, seenByNextStep bool
	fakeStep := func() uint32 {
		if raised {
			seenByNextStep = true
			return 0
		}
		return 4
	}
	raiser := advancerFunc(func(uint32) { raised = true })

	s := New(fakeStep, func() bool { return seenByNextStep }, raiser)
	s.Pace = false
	s.Run()

	assert.True(t, raised)
	assert.True(t, seenByNextStep, "the step after the raising advance must observe it")
}

type advancerFunc func(cycles uint32)

func (f advancerFunc) Advance(cycles uint32) { f(cycles) }
