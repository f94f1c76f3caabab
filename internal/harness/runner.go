package harness

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/axiom"
	"github.com/cortexbench/cortexbench/internal/config"
	"github.com/cortexbench/cortexbench/internal/journal"
	"github.com/cortexbench/cortexbench/internal/latency"
	"github.com/cortexbench/cortexbench/internal/seq"
	"github.com/cortexbench/cortexbench/internal/stats"
)

// Sink receives one record per executed trial. journal.Store satisfies it
// through a thin per-run adapter in the CLI; tests use in-memory sinks.
type Sink interface {
	RecordTrial(t journal.Trial) error
}

// Runner drives the battery against one model family.
type Runner struct {
	Config  config.Config
	Factory cortexbench.Factory

	// Log defaults to slog.Default.
	Log *slog.Logger

	// Journal is optional; nil disables trial recording.
	Journal Sink

	// Clock overrides the latency clock, for deterministic tests.
	Clock latency.Clock

	// RunID labels the run; empty generates a fresh UUID. Callers that
	// journal the run need the ID before the first trial is recorded.
	RunID string
}

// CheckResult summarizes one fully passed check.
type CheckResult struct {
	Name    string
	Repeats int
	Elapsed time.Duration
}

// Report is the outcome of a run.
type Report struct {
	RunID   string
	Seed    int64
	Length  int // effective sequence length, after estimation
	Passed  bool
	Results []CheckResult
	Failure *RunError
}

// trialSeed derives the per-trial seed. The derivation is stable across
// releases: journaled seeds must keep reproducing old failures.
func trialSeed(base int64, checkIndex, rep int) int64 {
	return base + int64(checkIndex)*1_000_003 + int64(rep)
}

// Run executes the whole battery, fail-fast. The returned Report is valid
// even on failure; the error is the classified RunError (or the context
// error if ctx was cancelled).
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	log := r.logger()
	cfg := r.Config

	runID := r.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	report := &Report{RunID: runID, Seed: cfg.Seed}

	length, err := r.effectiveLength(log)
	if err != nil {
		return report, err
	}
	report.Length = length

	battery := axiom.Battery(cfg.Repeats)
	log.Info("run starting",
		"run_id", report.RunID, "checks", len(battery),
		"length", length, "timeframe", cfg.Timeframe, "seed", cfg.Seed)

	for ci, check := range battery {
		start := time.Now()
		for rep := 0; rep < check.Repeats; rep++ {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			seed := trialSeed(cfg.Seed, ci, rep)
			trialStart := time.Now()
			checkErr := check.Run(r.env(length, seed))
			elapsed := time.Since(trialStart)

			if err := r.record(check.Name, rep, seed, checkErr, elapsed); err != nil {
				return report, err
			}
			if checkErr != nil {
				failure := classify(check.Name, rep, seed, checkErr)
				report.Failure = failure
				log.Error("check failed",
					"check", check.Name, "rep", rep, "seed", seed,
					"code", string(failure.Code), "error", failure.Message)
				return report, failure
			}
			log.Debug("repetition ok", "check", check.Name, "rep", rep, "seed", seed)
		}
		report.Results = append(report.Results, CheckResult{
			Name:    check.Name,
			Repeats: check.Repeats,
			Elapsed: time.Since(start),
		})
		log.Info("check passed", "check", check.Name, "repeats", check.Repeats,
			"elapsed", time.Since(start))
	}

	report.Passed = true
	log.Info("run passed", "run_id", report.RunID, "checks", len(report.Results))
	return report, nil
}

// RunOne executes a single repetition of the named check with an explicit
// seed. This is the reproduce flow for journaled failures.
func (r *Runner) RunOne(name string, seed int64) error {
	check, ok := axiom.Find(axiom.Battery(1), name)
	if !ok {
		return fmt.Errorf("unknown check %q", name)
	}

	length, err := r.effectiveLength(r.logger())
	if err != nil {
		return err
	}
	if err := check.Run(r.env(length, seed)); err != nil {
		return classify(check.Name, 0, seed, err)
	}
	return nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// effectiveLength resolves the configured length, probing the model family
// when it is set to automatic.
func (r *Runner) effectiveLength(log *slog.Logger) (int, error) {
	if r.Config.Length != 0 {
		return r.Config.Length, nil
	}

	est := EstimateDifficulty(
		seq.NewGenerator(r.Config.Seed),
		r.Factory,
		r.Config.Timeframe,
		maxEstimatedLength,
	)
	if est < 2 {
		// Let the battery report the infeasibility with full context
		// instead of failing here with less.
		est = 2
	}
	log.Info("estimated difficulty", "length", est)
	return est, nil
}

func (r *Runner) env(length int, seed int64) *axiom.Env {
	cfg := r.Config
	return &axiom.Env{
		Gen:       seq.NewGenerator(seed),
		Factory:   r.Factory,
		Length:    length,
		Timeframe: cfg.Timeframe,
		Samples:   cfg.Samples,
		Warmup:    cfg.Warmup,
		Stats: stats.Options{
			ZThreshold: cfg.Stats.ZThreshold,
			MinPairs:   cfg.Stats.MinPairs,
		},
		Clock:              r.Clock,
		LatencyTarget:      cfg.Latency.TargetDuration(),
		LatencyTrials:      cfg.Latency.Trials,
		LatencyMaxWorkload: cfg.Latency.MaxWorkload,
	}
}

func (r *Runner) record(check string, rep int, seed int64, checkErr error, elapsed time.Duration) error {
	if r.Journal == nil {
		return nil
	}

	trial := journal.Trial{
		Check:      check,
		Repetition: rep,
		Seed:       seed,
		Outcome:    journal.TrialOK,
		Elapsed:    elapsed,
	}
	if checkErr != nil {
		failure := classify(check, rep, seed, checkErr)
		trial.Outcome = journal.TrialViolation
		if failure.Code == CodeInfeasible {
			trial.Outcome = journal.TrialError
		}
		trial.Violation = failure.Error()
	}

	if err := r.Journal.RecordTrial(trial); err != nil {
		return fmt.Errorf("journal trial: %w", err)
	}
	return nil
}
