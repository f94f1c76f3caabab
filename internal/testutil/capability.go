package testutil

import (
	"time"

	"github.com/cortexbench/cortexbench"
)

// RecorderCap is a scripted capability that records every exposed pattern
// and serves predictions from a fixed script. It is used to verify that
// autoregressive generation only ever feeds the model its own prior outputs.
type RecorderCap struct {
	Script   []cortexbench.Pattern // predictions served in order, then zero
	Received []cortexbench.Pattern // every pattern ever exposed
	step     int
}

// Expose records the input and advances the script.
func (r *RecorderCap) Expose(p cortexbench.Pattern) {
	r.Received = append(r.Received, p)
	r.step++
}

// Prediction serves the script entry for the current step.
func (r *RecorderCap) Prediction() cortexbench.Pattern {
	if r.step < len(r.Script) {
		return r.Script[r.step]
	}
	return cortexbench.Zero
}

// Clone copies the recorder, including its history.
func (r *RecorderCap) Clone() cortexbench.Capability {
	c := &RecorderCap{
		Script:   append([]cortexbench.Pattern(nil), r.Script...),
		Received: append([]cortexbench.Pattern(nil), r.Received...),
		step:     r.step,
	}
	return c
}

// Equal compares step position and history.
func (r *RecorderCap) Equal(other cortexbench.Capability) bool {
	o, ok := other.(*RecorderCap)
	if !ok || r.step != o.step || len(r.Received) != len(o.Received) {
		return false
	}
	for i := range r.Received {
		if r.Received[i] != o.Received[i] {
			return false
		}
	}
	return true
}

// SlowCap simulates a capability whose per-update cost grows with the number
// of updates it has absorbed. Cost is charged to a ManualClock instead of
// real time, so latency tests are deterministic.
type SlowCap struct {
	Clock    *ManualClock
	BaseCost time.Duration // cost of the first update
	Growth   time.Duration // additional cost per absorbed update
	updates  int
}

// Expose charges the scripted cost to the clock.
func (s *SlowCap) Expose(cortexbench.Pattern) {
	s.Clock.Advance(s.BaseCost + time.Duration(s.updates)*s.Growth)
	s.updates++
}

// Prediction always returns the zero pattern.
func (s *SlowCap) Prediction() cortexbench.Pattern {
	return cortexbench.Zero
}

// Clone shares the clock but copies the counter.
func (s *SlowCap) Clone() cortexbench.Capability {
	return &SlowCap{Clock: s.Clock, BaseCost: s.BaseCost, Growth: s.Growth, updates: s.updates}
}

// Equal compares update counters.
func (s *SlowCap) Equal(other cortexbench.Capability) bool {
	o, ok := other.(*SlowCap)
	return ok && s.updates == o.updates
}

// FrozenCap ignores all input and predicts a fixed pattern. Useful as the
// "structurally different but behaviorally identical" counterpart in
// unobservability tests.
type FrozenCap struct {
	Fixed cortexbench.Pattern
	Tag   int // distinguishes instances structurally without changing behavior
}

// Expose is a no-op.
func (f *FrozenCap) Expose(cortexbench.Pattern) {}

// Prediction returns the fixed pattern.
func (f *FrozenCap) Prediction() cortexbench.Pattern { return f.Fixed }

// Clone copies the capability.
func (f *FrozenCap) Clone() cortexbench.Capability {
	return &FrozenCap{Fixed: f.Fixed, Tag: f.Tag}
}

// Equal compares fixed pattern and tag.
func (f *FrozenCap) Equal(other cortexbench.Capability) bool {
	o, ok := other.(*FrozenCap)
	return ok && f.Fixed == o.Fixed && f.Tag == o.Tag
}
