// Package testutil provides deterministic clocks and scripted model
// capabilities for harness tests.
//
// Wall-clock timing is the only part of the harness that cannot be replayed
// from a seed, so tests replace the monotonic clock with a ManualClock and
// couple it to capabilities whose "update cost" is scripted. The same trial
// then produces byte-identical measurements on every run.
package testutil

import "time"

// ManualClock is a programmable monotonic clock for tests.
//
// Time only moves when Advance is called, typically by a scripted capability
// simulating update cost. The zero value starts at an arbitrary fixed epoch.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock at a fixed epoch.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(0, 0)}
}

// Now returns the current simulated instant.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d. Negative advances are ignored;
// a monotonic clock never goes backwards.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now = c.now.Add(d)
	}
}
