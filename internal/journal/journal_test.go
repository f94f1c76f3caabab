package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })
	return s
}

func TestOpenAppliesWALMode(t *testing.T) {
	s := openTemp(t)

	var mode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var version int
	require.NoError(t, s.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.BeginRun(Run{ID: "r1", StartedAt: time.Now(), Config: "{}"}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	runs, err := s2.Runs()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunLifecycle(t *testing.T) {
	s := openTemp(t)
	started := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.BeginRun(Run{ID: "r1", StartedAt: started, Config: "repeats: 10"}))
	require.NoError(t, s.FinishRun("r1", OutcomePass))

	runs, err := s.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "r1", runs[0].ID)
	assert.Equal(t, OutcomePass, runs[0].Outcome)
	assert.Equal(t, "repeats: 10", runs[0].Config)
	assert.True(t, runs[0].StartedAt.Equal(started))
}

func TestFinishUnknownRunFails(t *testing.T) {
	s := openTemp(t)
	assert.Error(t, s.FinishRun("ghost", OutcomePass))
}

func TestTrialsComeBackInExecutionOrder(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.BeginRun(Run{ID: "r1", StartedAt: time.Now(), Config: ""}))

	require.NoError(t, s.RecordTrial("r1", Trial{Check: "Genesis", Repetition: 0, Seed: 7, Outcome: TrialOK, Elapsed: time.Millisecond}))
	require.NoError(t, s.RecordTrial("r1", Trial{Check: "Genesis", Repetition: 1, Seed: 8, Outcome: TrialOK}))
	require.NoError(t, s.RecordTrial("r1", Trial{Check: "Bias", Repetition: 0, Seed: 9, Outcome: TrialViolation, Violation: "one input must change the model's state"}))

	trials, err := s.Trials("r1")
	require.NoError(t, err)
	require.Len(t, trials, 3)
	assert.Equal(t, "Genesis", trials[0].Check)
	assert.Equal(t, time.Millisecond, trials[0].Elapsed)
	assert.Equal(t, "Bias", trials[2].Check)
	assert.Equal(t, int64(9), trials[2].Seed)
}

func TestDuplicateTrialIsRejected(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.BeginRun(Run{ID: "r1", StartedAt: time.Now(), Config: ""}))

	trial := Trial{Check: "Genesis", Repetition: 0, Seed: 1, Outcome: TrialOK}
	require.NoError(t, s.RecordTrial("r1", trial))
	assert.Error(t, s.RecordTrial("r1", trial))
}

func TestFailedTrialFindsTheFailure(t *testing.T) {
	s := openTemp(t)
	require.NoError(t, s.BeginRun(Run{ID: "r1", StartedAt: time.Now(), Config: ""}))

	_, found, err := s.FailedTrial("r1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.RecordTrial("r1", Trial{Check: "Genesis", Repetition: 0, Seed: 1, Outcome: TrialOK}))
	require.NoError(t, s.RecordTrial("r1", Trial{Check: "Denoising", Repetition: 3, Seed: 44, Outcome: TrialViolation, Violation: "boom"}))

	failed, found, err := s.FailedTrial("r1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Denoising", failed.Check)
	assert.Equal(t, 3, failed.Repetition)
	assert.Equal(t, int64(44), failed.Seed)
}
