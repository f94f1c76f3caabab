// Package journal persists harness runs and their trials to SQLite.
//
// The journal is driver-side audit only: the core never depends on it. Its
// point is reproduction — every trial row records the derived seed, so a
// violation found in a long run can be replayed in isolation.
package journal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema (runs + trials)
const currentSchemaVersion = 1

// Run outcome values.
const (
	OutcomeRunning = "running"
	OutcomePass    = "pass"
	OutcomeFail    = "fail"
	OutcomeAborted = "aborted"
)

// Trial outcome values.
const (
	TrialOK        = "ok"
	TrialViolation = "violation"
	TrialError     = "error"
)

// Store is a SQLite-backed journal. WAL mode allows readers (e.g. a
// concurrent `list` command) while a run is writing.
type Store struct {
	db *sql.DB
}

// Run is one harness invocation.
type Run struct {
	ID        string
	StartedAt time.Time
	Config    string // YAML snapshot of the effective configuration
	Outcome   string
}

// Trial is one repetition of one check.
type Trial struct {
	Check      string
	Repetition int
	Seed       int64
	Outcome    string
	Violation  string // failure message, empty for ok trials
	Elapsed    time.Duration
}

// Open creates or opens the journal database at path. Pragmas and the
// schema are applied on every open; the call is idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY inside the run loop.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion))
	return err
}
