package axiom

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Check is one named entry of the conformance battery.
type Check struct {
	// Name identifies the check; it is stable across releases and is how
	// failures are reported and reproduced.
	Name string

	// Doc is a one-line statement of the behavioral claim.
	Doc string

	// Repeats is how many independent repetitions the runner executes.
	Repeats int

	// Run executes one repetition against the environment. A nil return
	// means the claim held; a *ViolationError means it did not; any other
	// error is a setup problem (most commonly adapter.InfeasibleError).
	Run func(*Env) error
}

// Battery returns the ordered conformance battery. Cheap structural checks
// repeat `repeats` times; search-heavy and statistical checks repeat a tenth
// of that (they already aggregate many trials internally).
func Battery(repeats int) []Check {
	if repeats < 1 {
		repeats = 1
	}
	heavy := repeats / 10
	if heavy < 1 {
		heavy = 1
	}

	return []Check{
		{
			Name:    "Genesis",
			Doc:     "All models begin in a completely blank, bias-free state.",
			Repeats: repeats,
			Run:     checkGenesis,
		},
		{
			Name:    "Bias",
			Doc:     "A change in state indicates bias.",
			Repeats: repeats,
			Run:     checkBias,
		},
		{
			Name:    "Determinism",
			Doc:     "Identical experiences produce an identical state.",
			Repeats: repeats,
			Run:     checkDeterminism,
		},
		{
			Name:    "Sensitivity",
			Doc:     "The model exhibits chaos-like sensitivity to initial input.",
			Repeats: repeats,
			Run:     checkSensitivity,
		},
		{
			Name:    "Time",
			Doc:     "The input order is inherently temporal and crucial to the process.",
			Repeats: repeats,
			Run:     checkTime,
		},
		{
			Name:    "RefractoryPeriod",
			Doc:     "Each spike must be followed by a no-spike on the same channel.",
			Repeats: repeats,
			Run:     checkRefractoryPeriod,
		},
		{
			Name:    "TemporalFlexibility",
			Doc:     "The model can adapt to patterns of varying lengths.",
			Repeats: heavy,
			Run:     checkTemporalFlexibility,
		},
		{
			Name:    "Stagnation",
			Doc:     "You can't teach an old dog new tricks indefinitely.",
			Repeats: heavy,
			Run:     checkStagnation,
		},
		{
			Name:    "ContentSensitivity",
			Doc:     "Adaptation time depends on the content of the input sequence.",
			Repeats: heavy,
			Run:     checkContentSensitivity,
		},
		{
			Name:    "ExperienceSensitivity",
			Doc:     "Adaptation time depends on the state of the model.",
			Repeats: heavy,
			Run:     checkExperienceSensitivity,
		},
		{
			Name:    "Unobservability",
			Doc:     "Different internal states can produce identical behaviour.",
			Repeats: heavy,
			Run:     checkUnobservability,
		},
		{
			Name:    "Denoising",
			Doc:     "Adapted models recover from a disruption better than blank ones.",
			Repeats: heavy,
			Run:     checkDenoising,
		},
		{
			Name:    "Generalisation",
			Doc:     "Adapted models predict above chance after a disruption.",
			Repeats: heavy,
			Run:     checkGeneralisation,
		},
		{
			Name:    "Latency",
			Doc:     "Per-update latency is bounded and comparable across experience.",
			Repeats: heavy,
			Run:     checkLatency,
		},
	}
}

// Find locates a check by name. Lookup is forgiving: names are compared
// after NFC unicode normalization and case folding, so command-line input
// like "generalisation" matches "Generalisation".
func Find(battery []Check, name string) (Check, bool) {
	want := canonicalName(name)
	for _, c := range battery {
		if canonicalName(c.Name) == want {
			return c, true
		}
	}
	return Check{}, false
}

func canonicalName(name string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(name)))
}
