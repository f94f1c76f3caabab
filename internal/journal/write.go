package journal

import (
	"fmt"
	"time"
)

// BeginRun inserts the run row in the "running" state.
func (s *Store) BeginRun(r Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, started_at, config, outcome) VALUES (?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC().Format(time.RFC3339Nano), r.Config, OutcomeRunning,
	)
	if err != nil {
		return fmt.Errorf("begin run %s: %w", r.ID, err)
	}
	return nil
}

// FinishRun records the run's final outcome.
func (s *Store) FinishRun(id, outcome string) error {
	res, err := s.db.Exec(`UPDATE runs SET outcome = ? WHERE id = ?`, outcome, id)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("finish run %s: unknown run", id)
	}
	return nil
}

// RecordTrial appends one trial row for the run.
func (s *Store) RecordTrial(runID string, t Trial) error {
	_, err := s.db.Exec(
		`INSERT INTO trials (run_id, check_name, repetition, seed, outcome, violation, elapsed_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, t.Check, t.Repetition, t.Seed, t.Outcome, t.Violation, t.Elapsed.Nanoseconds(),
	)
	if err != nil {
		return fmt.Errorf("record trial %s/%s#%d: %w", runID, t.Check, t.Repetition, err)
	}
	return nil
}
