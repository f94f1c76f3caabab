package harness

import (
	"fmt"
	"strings"
)

// Render formats the report as stable, human-readable text. Durations and
// run IDs are deliberately excluded so the rendering is deterministic.
func (r *Report) Render() string {
	var b strings.Builder

	for _, res := range r.Results {
		fmt.Fprintf(&b, "ok   %-22s x%d\n", res.Name, res.Repeats)
	}

	if r.Failure != nil {
		f := r.Failure
		fmt.Fprintf(&b, "FAIL %-22s rep %d seed %d\n", f.Check, f.Repetition, f.Seed)
		fmt.Fprintf(&b, "     %s: %s\n", f.Code, f.Message)
		fmt.Fprintf(&b, "\nFAIL (length %d, seed %d)\n", r.Length, r.Seed)
		return b.String()
	}

	fmt.Fprintf(&b, "\nPASS (%d checks, length %d, seed %d)\n", len(r.Results), r.Length, r.Seed)
	return b.String()
}
