package axiom

import (
	"time"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/latency"
	"github.com/cortexbench/cortexbench/internal/seq"
	"github.com/cortexbench/cortexbench/internal/stats"
)

// Env is everything one execution of a check may draw on. The harness
// builds a fresh Env per repetition with a generator seeded from the
// recorded trial seed, which is what makes failures replayable.
type Env struct {
	Gen     *seq.Generator
	Factory cortexbench.Factory

	// Length is the temporal pattern length checks adapt models to.
	Length int

	// Timeframe bounds every logical-step budget: adaptation time,
	// behavioral comparison windows, and search attempts. The original
	// harness called this "simulated infinity".
	Timeframe int

	// Samples is the number of paired observations statistical checks
	// collect before consulting the significance test.
	Samples int

	// Warmup is the exposure length used to build "experienced" models.
	Warmup int

	Stats stats.Options

	// Latency tuning. Clock nil selects the monotonic system clock.
	Clock              latency.Clock
	LatencyTarget      time.Duration
	LatencyTrials      int
	LatencyMaxWorkload int
}

// calibrator assembles the latency calibrator for this environment.
func (e *Env) calibrator() *latency.Calibrator {
	return &latency.Calibrator{
		Gen:         e.Gen,
		Factory:     e.Factory,
		Clock:       e.Clock,
		Target:      e.LatencyTarget,
		MaxWorkload: e.LatencyMaxWorkload,
		Trials:      e.LatencyTrials,
		Warmup:      e.Warmup,
		Stats:       e.Stats,
	}
}
