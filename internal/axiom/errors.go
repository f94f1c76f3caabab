package axiom

import (
	"fmt"
	"sort"
	"strings"
)

// ViolationError reports that an expected behavioral invariant failed. One
// violation invalidates the whole conformance claim; the runner aborts on
// the first one.
type ViolationError struct {
	// Check names the failing check.
	Check string

	// Expr states the violated condition in the check's own terms.
	Expr string

	// Details carries diagnostic values (z-scores, counts, bounds).
	Details map[string]string
}

// Error implements the error interface.
func (e *ViolationError) Error() string {
	msg := fmt.Sprintf("axiom violation in %s: %s", e.Check, e.Expr)
	if len(e.Details) == 0 {
		return msg
	}

	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, e.Details[k]))
	}
	return msg + " (" + strings.Join(parts, ", ") + ")"
}

// violated builds a ViolationError for the named check.
func violated(check, expr string) *ViolationError {
	return &ViolationError{Check: check, Expr: expr}
}

// withDetail attaches one diagnostic value and returns the error for
// chaining.
func (e *ViolationError) withDetail(key, value string) *ViolationError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}
