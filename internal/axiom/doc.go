// Package axiom enumerates the named behavioral checks of the conformance
// battery.
//
// Each check composes the reusable engine pieces — sequence generation
// (internal/seq), the model adapter (internal/adapter), the paired
// significance test (internal/stats) and the latency calibrator
// (internal/latency) — into one verdict about the model family under test.
// Checks are pure with respect to the environment they receive: all
// randomness flows from the environment's generator, so a recorded seed
// replays a failing check exactly.
//
// The battery itself is data: an ordered slice of Check values the runner in
// internal/harness iterates. Nothing here prints, logs, or exits.
package axiom
