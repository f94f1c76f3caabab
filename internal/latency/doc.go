// Package latency implements the real-time calibration procedure behind the
// bounded per-update latency axiom.
//
// Wall-clock timing is noisy, so the package never fails a model on a single
// slow measurement. Instead it (1) self-tunes a workload size until one full
// exposure of a blank model crosses a target duration, (2) collects paired
// timings of a blank and a heavily pre-exposed model over the same generated
// workloads, and (3) hands the pairs to the significance test: only a
// statistically consistent slowdown, or a hard ceiling breach relative to
// the blank model's median, counts as a violation.
//
// All measurements go through the Clock interface; production uses the
// monotonic system clock and tests substitute a manual clock driven by
// scripted capabilities.
package latency
