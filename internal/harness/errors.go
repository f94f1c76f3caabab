package harness

import (
	"errors"
	"fmt"

	"github.com/cortexbench/cortexbench/internal/adapter"
	"github.com/cortexbench/cortexbench/internal/axiom"
	"github.com/cortexbench/cortexbench/internal/stats"
)

// Code categorizes run failures.
type Code string

const (
	// CodeInfeasible marks a setup error: the configured difficulty has no
	// learnable example within the search budget. Not a test failure.
	CodeInfeasible Code = "INFEASIBLE_SETUP"

	// CodeViolation marks a failed behavioral claim.
	CodeViolation Code = "AXIOM_VIOLATION"

	// CodeNotSignificant marks a statistical check that could not reject
	// its null hypothesis. It is still a failure of the conformance claim,
	// but the distinction matters when tuning sample counts.
	CodeNotSignificant Code = "NOT_SIGNIFICANT"
)

// RunError is a classified, attributable run failure. Check, Repetition and
// Seed identify the exact trial; re-running that check with that seed
// reproduces the failure.
type RunError struct {
	Code       Code
	Check      string
	Repetition int
	Seed       int64
	Message    string
	Details    map[string]string
}

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Check == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (check=%s, rep=%d, seed=%d)",
		e.Code, e.Message, e.Check, e.Repetition, e.Seed)
}

// IsViolation reports whether err is a failed claim (violation or missing
// significance). Uses errors.As to handle wrapped errors.
func IsViolation(err error) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == CodeViolation || re.Code == CodeNotSignificant
	}
	return false
}

// IsInfeasible reports whether err is a setup error rather than a failure.
func IsInfeasible(err error) bool {
	var re *RunError
	return errors.As(err, &re) && re.Code == CodeInfeasible
}

// classify converts a check error into an attributable RunError.
func classify(check string, rep int, seed int64, err error) *RunError {
	var violation *axiom.ViolationError
	if errors.As(err, &violation) {
		code := CodeViolation
		if reason, ok := violation.Details["stat_reason"]; ok && reason != string(stats.ReasonRejected) {
			code = CodeNotSignificant
		}
		return &RunError{
			Code:       code,
			Check:      check,
			Repetition: rep,
			Seed:       seed,
			Message:    violation.Expr,
			Details:    violation.Details,
		}
	}

	var infeasible *adapter.InfeasibleError
	if errors.As(err, &infeasible) {
		return &RunError{
			Code:       CodeInfeasible,
			Check:      check,
			Repetition: rep,
			Seed:       seed,
			Message:    infeasible.Error(),
		}
	}

	// Anything else is a setup problem by elimination; checks only ever
	// return violations or search errors.
	return &RunError{
		Code:       CodeInfeasible,
		Check:      check,
		Repetition: rep,
		Seed:       seed,
		Message:    err.Error(),
	}
}
