package harness

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/config"
	"github.com/cortexbench/cortexbench/internal/journal"
	"github.com/cortexbench/cortexbench/internal/seq"
	"github.com/cortexbench/cortexbench/internal/testutil"
)

// memSink collects trials in memory; Fail forces a write error.
type memSink struct {
	Trials []journal.Trial
	Fail   error
}

func (m *memSink) RecordTrial(t journal.Trial) error {
	if m.Fail != nil {
		return m.Fail
	}
	m.Trials = append(m.Trials, t)
	return nil
}

// testConfig keeps every budget small enough for unit tests. The latency
// workload bound matters: with a manual clock that never advances, the
// calibration probe runs straight to the bound.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Length = 3
	cfg.Timeframe = 200
	cfg.Repeats = 10
	cfg.Samples = 16
	cfg.Warmup = 30
	cfg.Latency.Target = "1ms"
	cfg.Latency.MaxWorkload = 8
	cfg.Latency.Trials = 16
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRunner(factory cortexbench.Factory, sink Sink) *Runner {
	return &Runner{
		Config:  testConfig(),
		Factory: factory,
		Log:     quietLogger(),
		Journal: sink,
		Clock:   testutil.NewManualClock(),
	}
}

func TestRunnerPassesFullBatteryForReferenceLearner(t *testing.T) {
	sink := &memSink{}
	r := newRunner(testutil.NewLearner, sink)

	report, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Passed)
	assert.Len(t, report.Results, 14)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.Length)

	// 6 structural checks x10 repetitions, 8 heavy checks x1.
	require.Len(t, sink.Trials, 68)
	for _, trial := range sink.Trials {
		assert.Equal(t, journal.TrialOK, trial.Outcome)
	}
}

func TestRunnerFailsFastOnFirstViolation(t *testing.T) {
	sink := &memSink{}
	frozen := func() cortexbench.Capability {
		return &testutil.FrozenCap{Fixed: cortexbench.Zero}
	}
	r := newRunner(frozen, sink)

	report, err := r.Run(context.Background())
	require.Error(t, err)
	assert.True(t, IsViolation(err))

	require.NotNil(t, report.Failure)
	assert.Equal(t, "Bias", report.Failure.Check)
	assert.False(t, report.Passed)

	// Genesis passed in full; Bias aborted on its first repetition.
	require.Len(t, report.Results, 1)
	assert.Equal(t, "Genesis", report.Results[0].Name)
	require.Len(t, sink.Trials, 11)
	assert.Equal(t, journal.TrialViolation, sink.Trials[10].Outcome)
	assert.NotEmpty(t, sink.Trials[10].Violation)
}

func TestJournaledSeedReproducesTheFailure(t *testing.T) {
	sink := &memSink{}
	frozen := func() cortexbench.Capability {
		return &testutil.FrozenCap{Fixed: cortexbench.Zero}
	}
	r := newRunner(frozen, sink)

	_, err := r.Run(context.Background())
	require.Error(t, err)

	failed := sink.Trials[len(sink.Trials)-1]
	repro := r.RunOne(failed.Check, failed.Seed)
	assert.True(t, IsViolation(repro))
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRunner(testutil.NewLearner, nil)
	_, err := r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunnerAbortsWhenJournalWriteFails(t *testing.T) {
	sink := &memSink{Fail: errors.New("disk full")}
	r := newRunner(testutil.NewLearner, sink)

	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal trial")
}

func TestRunOneRejectsUnknownChecks(t *testing.T) {
	r := newRunner(testutil.NewLearner, nil)
	err := r.RunOne("Telepathy", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown check")
}

func TestRunOneClassifiesInfeasibleSetups(t *testing.T) {
	frozen := func() cortexbench.Capability {
		return &testutil.FrozenCap{Fixed: cortexbench.Zero}
	}
	r := newRunner(frozen, nil)

	err := r.RunOne("TemporalFlexibility", 5)
	assert.True(t, IsInfeasible(err))
}

func TestRunOneDistinguishesMissingSignificance(t *testing.T) {
	r := newRunner(testutil.NewLearner, nil)
	r.Config.Samples = 4 // below the minimum pair count

	err := r.RunOne("ContentSensitivity", 3)
	require.True(t, IsViolation(err))

	var re *RunError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, CodeNotSignificant, re.Code)
}

func TestEstimateDifficultyFindsTheLearnableFrontier(t *testing.T) {
	// The reference learner needs (1+L)*L steps for an L-pattern cycle;
	// with a 60-step timeframe that crosses the budget between 7 and 8.
	got := EstimateDifficulty(seq.NewGenerator(31), testutil.NewLearner, 60, 16)
	assert.Equal(t, 7, got)
}

func TestEstimateDifficultyBottomsOutAtOne(t *testing.T) {
	frozen := func() cortexbench.Capability {
		return &testutil.FrozenCap{Fixed: cortexbench.Zero}
	}
	got := EstimateDifficulty(seq.NewGenerator(32), frozen, 50, 16)
	assert.Equal(t, 1, got)
}

func TestAutomaticLengthIsEstimatedOnce(t *testing.T) {
	r := newRunner(testutil.NewLearner, nil)
	r.Config.Length = 0

	length, err := r.effectiveLength(quietLogger())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, length, 2)
}
