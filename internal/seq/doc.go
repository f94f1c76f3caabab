// Package seq provides spike-pattern sequences and the constrained random
// generator that produces them.
//
// Every sequence the generator emits respects the refractory invariant: a
// channel that spiked in pattern t is quiet in pattern t+1. Circular variants
// additionally respect the wraparound pair (last, first), which makes the
// sequence safe for indefinite cyclic replay.
//
// # Determinism
//
// A Generator owns its own *rand.Rand seeded at construction. There is no
// package-level randomness: the harness records the seed of every trial, and
// re-seeding a Generator with a recorded seed replays the exact sequences of
// the failing trial.
package seq
