// Package adapter wraps an opaque predictive capability with the uniform
// operations the harness drives models through: ordered exposure, a cached
// current prediction, the cumulative adaptation loop, autoregressive
// generation, and behavioral comparison.
//
// The adapter holds a capability by composition and never subclasses or
// inspects it. All exposure is strictly in order: the refractory and temporal
// sensitivity axioms depend on it, and equality comparisons between model
// copies are only valid when both copies observed identical input order.
//
// Time here is logical: one exposed pattern is one step. The only wall-clock
// measurements in the harness live in internal/latency.
package adapter
