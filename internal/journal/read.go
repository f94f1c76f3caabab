package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Runs returns all recorded runs, most recent first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, config, outcome FROM runs ORDER BY started_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started string
		if err := rows.Scan(&r.ID, &started, &r.Config, &r.Outcome); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("run %s: bad started_at %q: %w", r.ID, started, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Trials returns the run's trials in execution order.
func (s *Store) Trials(runID string) ([]Trial, error) {
	rows, err := s.db.Query(
		`SELECT check_name, repetition, seed, outcome, violation, elapsed_ns
		 FROM trials WHERE run_id = ? ORDER BY rowid`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list trials for %s: %w", runID, err)
	}
	defer rows.Close()

	var trials []Trial
	for rows.Next() {
		var t Trial
		var ns int64
		if err := rows.Scan(&t.Check, &t.Repetition, &t.Seed, &t.Outcome, &t.Violation, &ns); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		t.Elapsed = time.Duration(ns)
		trials = append(trials, t)
	}
	return trials, rows.Err()
}

// FailedTrial returns the run's failing trial. A fail-fast run has at most
// one, and it is always the last row.
func (s *Store) FailedTrial(runID string) (Trial, bool, error) {
	row := s.db.QueryRow(
		`SELECT check_name, repetition, seed, outcome, violation, elapsed_ns
		 FROM trials WHERE run_id = ? AND outcome != ? ORDER BY rowid DESC LIMIT 1`,
		runID, TrialOK,
	)

	var t Trial
	var ns int64
	err := row.Scan(&t.Check, &t.Repetition, &t.Seed, &t.Outcome, &t.Violation, &ns)
	if errors.Is(err, sql.ErrNoRows) {
		return Trial{}, false, nil
	}
	if err != nil {
		return Trial{}, false, fmt.Errorf("failed trial for %s: %w", runID, err)
	}
	t.Elapsed = time.Duration(ns)
	return t, true, nil
}
