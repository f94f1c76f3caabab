// Package harness executes the conformance battery against one model family.
//
// The runner is fail-fast: the first axiom violation or infeasible setup
// aborts the run, because one violation invalidates the whole conformance
// claim. Every repetition runs against a generator seeded from a seed derived
// deterministically from the base seed, and that seed is journaled, so any
// failure can be replayed in isolation with the reproduce flow.
package harness
