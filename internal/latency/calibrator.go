package latency

import (
	"sort"
	"time"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/adapter"
	"github.com/cortexbench/cortexbench/internal/seq"
	"github.com/cortexbench/cortexbench/internal/stats"
)

// Clock abstracts monotonic time for measurements.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real monotonic clock.
type SystemClock struct{}

// Now returns the current time. Go's time.Time carries a monotonic reading,
// so differences are immune to wall-clock adjustments.
func (SystemClock) Now() time.Time { return time.Now() }

// Defaults for the calibration procedure.
const (
	DefaultTarget      = 100 * time.Microsecond
	DefaultMaxWorkload = 1_000_000
	DefaultTrials      = 50
	DefaultWarmup      = 50

	// structuredEvery mixes one structured workload into every group of
	// this many trials (a 1:4 structured-to-random ratio).
	structuredEvery = 5

	// ceilingFactor bounds any per-update time at this multiple of the
	// blank model's median per-update time.
	ceilingFactor = 10
)

// Calibrator measures paired blank-vs-complex exposure times for one model
// family. Zero-valued tuning fields select the defaults.
type Calibrator struct {
	Gen     *seq.Generator
	Factory cortexbench.Factory
	Clock   Clock

	Target      time.Duration // workload calibration target per exposure
	MaxWorkload int           // upper bound for the doubling probe
	Trials      int           // paired samples to collect
	Warmup      int           // pre-exposure length for the complex model
	Stats       stats.Options
}

// Sample is one paired timing measurement over the same workload.
type Sample struct {
	Workload int
	Blank    time.Duration
	Complex  time.Duration
}

// Report is the outcome of a full calibration run.
type Report struct {
	Workload int      // autotuned workload size
	Samples  []Sample // paired measurements

	Stat stats.Verdict // verdict for "complex consistently slower than blank"

	Ceiling         time.Duration // hard per-update bound (10x blank median)
	MaxUnit         time.Duration // worst observed per-update time
	CeilingExceeded bool
}

// OK reports whether the latency axiom holds: no statistically consistent
// slowdown of the complex model, and no per-update time past the ceiling.
func (r *Report) OK() bool {
	return !r.Stat.Significant && !r.CeilingExceeded
}

func (c *Calibrator) normalized() Calibrator {
	n := *c
	if n.Clock == nil {
		n.Clock = SystemClock{}
	}
	if n.Target == 0 {
		n.Target = DefaultTarget
	}
	if n.MaxWorkload == 0 {
		n.MaxWorkload = DefaultMaxWorkload
	}
	if n.Trials == 0 {
		n.Trials = DefaultTrials
	}
	if n.Warmup == 0 {
		n.Warmup = DefaultWarmup
	}
	return n
}

// CalibrateWorkload finds a workload size for which exposing a blank model
// to one random sequence of that length takes at least the target duration.
// The probe doubles the size starting from 1 and stops at the upper bound if
// the target is never crossed.
func (c *Calibrator) CalibrateWorkload() int {
	cal := c.normalized()

	for w := 1; w < cal.MaxWorkload; w *= 2 {
		if cal.timeExposure(adapter.New(cal.Factory), cal.Gen.Random(w)) >= cal.Target {
			return w
		}
	}
	return cal.MaxWorkload
}

// Run executes the full procedure: autotune the workload, collect paired
// samples over mixed structured/random workloads, and evaluate the verdict.
func (c *Calibrator) Run() *Report {
	cal := c.normalized()
	workload := c.CalibrateWorkload()

	report := &Report{
		Workload: workload,
		Samples:  make([]Sample, 0, cal.Trials),
	}

	pairs := make([]stats.Pair, 0, cal.Trials)
	for trial := 0; trial < cal.Trials; trial++ {
		var inputs seq.Sequence
		if trial%structuredEvery == 0 {
			inputs = seq.Structured(workload, trial/structuredEvery)
		} else {
			inputs = cal.Gen.Random(workload)
		}

		blank := adapter.New(cal.Factory)
		seasoned := adapter.Warmed(cal.Factory, cal.Gen, cal.Warmup)

		sample := Sample{
			Workload: workload,
			Blank:    cal.timeExposure(blank, inputs),
			Complex:  cal.timeExposure(seasoned, inputs),
		}
		report.Samples = append(report.Samples, sample)
		pairs = append(pairs, stats.Pair{
			A: float64(sample.Blank),
			B: float64(sample.Complex),
		})
	}

	report.Stat = stats.BExceedsA(pairs, cal.Stats)
	report.Ceiling, report.MaxUnit, report.CeilingExceeded = ceiling(report.Samples)
	return report
}

// timeExposure measures one full in-order exposure of the model to inputs.
func (c *Calibrator) timeExposure(m *adapter.Model, inputs seq.Sequence) time.Duration {
	start := c.Clock.Now()
	m.ExposeAll(inputs)
	return c.Clock.Now().Sub(start)
}

// ceiling derives the hard per-update bound from the blank model's median
// per-update time and finds the worst per-update time across all samples.
func ceiling(samples []Sample) (bound, maxUnit time.Duration, exceeded bool) {
	if len(samples) == 0 {
		return 0, 0, false
	}

	blankUnits := make([]time.Duration, 0, len(samples))
	for _, s := range samples {
		blankUnits = append(blankUnits, s.Blank/time.Duration(s.Workload))
	}
	sort.Slice(blankUnits, func(i, j int) bool { return blankUnits[i] < blankUnits[j] })
	median := blankUnits[len(blankUnits)/2]

	bound = ceilingFactor * median
	for _, s := range samples {
		for _, d := range []time.Duration{s.Blank, s.Complex} {
			unit := d / time.Duration(s.Workload)
			if unit > maxUnit {
				maxUnit = unit
			}
		}
	}
	return bound, maxUnit, maxUnit > bound
}
