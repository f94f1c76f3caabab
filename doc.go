// Package cortexbench defines the contract between the conformance harness
// and a temporal predictive model under test.
//
// The harness treats a model as an opaque capability: something that accepts
// one fixed-width spike pattern at a time and exposes its current prediction
// of the next pattern. It never inspects model internals. Any type satisfying
// the Capability interface (plus a Factory for blank construction) can be run
// through the full axiom battery in internal/axiom.
//
// This package is intentionally dependency-free so that model implementations
// only ever import the contract, never the harness machinery.
package cortexbench
