package emulator

import (
	"time"
)

// MIN_BURST is the smallest step request made in one Advance.
const MIN_BURST = 10

// Stepper executes up to n instructions and returns how many ran.
type Stepper interface {
	StepN(n int) int
}

// Pacer converts wall clock time into instruction steps at TickRate
// instructions per second, in one second windows.
type Pacer struct {
	TickRate float64 // Instructions per second.

	start time.Time
	steps int
}

// Advance steps the machine to catch up with now, and returns the
// number of steps taken. A single call never requests more than
// max(TickRate, MIN_BURST) steps.
func (pc *Pacer) Advance(st Stepper, now time.Time) (steps int) {
	if pc.start.IsZero() {
		pc.start = now
	}

	elapsed := now.Sub(pc.start).Seconds()
	target := int(elapsed * pc.TickRate)
	if target > pc.steps {
		burst := int(max(pc.TickRate, MIN_BURST))
		steps = st.StepN(min(target-pc.steps, burst))
		pc.steps += steps
	}

	if elapsed > 1.0 {
		pc.start = now
		pc.steps = 0
	}

	return
}

// Reset restarts the pacing window.
func (pc *Pacer) Reset() {
	pc.start = time.Time{}
	pc.steps = 0
}
