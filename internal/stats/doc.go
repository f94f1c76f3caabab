// Package stats implements the one-sided paired significance test the
// harness uses to decide directional dominance between two sequences of
// measurements.
//
// The test is a one-sided Wilcoxon signed-rank test with midrank tie
// handling, tie-corrected variance, and a continuity correction, evaluated
// against a z-score threshold. It is a pure function of its input pairs: no
// state, no randomness, no distributional assumption beyond symmetry under
// the null.
//
// # Verdicts, not errors
//
// "Not significant" is a defined result, never an error. Too few non-zero
// pairs (fewer than MinPairs, fixed at 10) or a degenerate variance yields a
// non-significant verdict with a reason; callers that required rejection of
// the null escalate that verdict themselves.
package stats
