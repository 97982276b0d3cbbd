package core

import "time"

// FixedStep paces generation advances at a steady rate independent of the
// caller's own tick rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep targeting rate steps per second. The
// first call to ShouldStep always reports true.
func NewFixedStep(rate int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(rate)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 16, the
// default video frame rate.
func (f *FixedStep) SetRate(rate int) {
	if rate <= 0 {
		rate = 16
	}
	f.step = time.Second / time.Duration(rate)
}

// Step returns the interval between two steps.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether enough time accumulated for one more step.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
