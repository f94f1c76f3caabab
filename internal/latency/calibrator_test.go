package latency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/seq"
	"github.com/cortexbench/cortexbench/internal/testutil"
)

// slowFactory builds capabilities that charge scripted update costs to a
// shared manual clock.
func slowFactory(clock *testutil.ManualClock, base, growth time.Duration) cortexbench.Factory {
	return func() cortexbench.Capability {
		return &testutil.SlowCap{Clock: clock, BaseCost: base, Growth: growth}
	}
}

func TestCalibrateWorkloadDoublesUntilTarget(t *testing.T) {
	clock := testutil.NewManualClock()
	c := &Calibrator{
		Gen:     seq.NewGenerator(1),
		Factory: slowFactory(clock, time.Microsecond, 0),
		Clock:   clock,
		Target:  100 * time.Microsecond,
	}

	// Each update costs exactly 1us, so the doubling probe crosses the
	// 100us target at workload 128.
	assert.Equal(t, 128, c.CalibrateWorkload())
}

func TestCalibrateWorkloadStopsAtUpperBound(t *testing.T) {
	clock := testutil.NewManualClock()
	c := &Calibrator{
		Gen:         seq.NewGenerator(1),
		Factory:     slowFactory(clock, time.Nanosecond, 0),
		Clock:       clock,
		Target:      time.Hour,
		MaxWorkload: 64,
	}

	assert.Equal(t, 64, c.CalibrateWorkload())
}

func TestRunFlagsConsistentSlowdown(t *testing.T) {
	clock := testutil.NewManualClock()
	c := &Calibrator{
		Gen: seq.NewGenerator(2),
		// Per-update cost grows with absorbed updates: a warmed model is
		// always slower than a blank one by Warmup*Growth per update.
		Factory: slowFactory(clock, time.Microsecond, time.Nanosecond),
		Clock:   clock,
		Target:  time.Microsecond,
		Trials:  16,
		Warmup:  32,
	}

	report := c.Run()
	require.Len(t, report.Samples, 16)

	assert.True(t, report.Stat.Significant,
		"a scaling-cost model must be flagged as consistently slower when warmed")
	assert.False(t, report.OK())
}

func TestRunFlagsCeilingBreach(t *testing.T) {
	clock := testutil.NewManualClock()
	c := &Calibrator{
		Gen:     seq.NewGenerator(3),
		Factory: slowFactory(clock, time.Microsecond, time.Microsecond),
		Clock:   clock,
		Target:  time.Microsecond,
		Trials:  12,
		Warmup:  32,
	}

	report := c.Run()
	assert.True(t, report.CeilingExceeded,
		"warmed per-update cost of >30x base must breach the 10x-median ceiling")
	assert.Greater(t, report.MaxUnit, report.Ceiling)
	assert.False(t, report.OK())
}

func TestRunAcceptsConstantCostModel(t *testing.T) {
	clock := testutil.NewManualClock()
	c := &Calibrator{
		Gen:     seq.NewGenerator(4),
		Factory: slowFactory(clock, time.Microsecond, 0),
		Clock:   clock,
		Target:  time.Microsecond,
		Trials:  20,
		Warmup:  16,
	}

	report := c.Run()
	assert.False(t, report.Stat.Significant, "identical timings carry no direction")
	assert.False(t, report.CeilingExceeded)
	assert.True(t, report.OK())
}

func TestRunMixesStructuredAndRandomWorkloads(t *testing.T) {
	clock := testutil.NewManualClock()
	c := &Calibrator{
		Gen:     seq.NewGenerator(5),
		Factory: slowFactory(clock, time.Microsecond, 0),
		Clock:   clock,
		Target:  time.Microsecond,
		Trials:  10,
	}

	report := c.Run()
	require.NotEmpty(t, report.Samples)
	for _, s := range report.Samples {
		assert.Equal(t, report.Workload, s.Workload)
	}
}
