package cortexbench

// Capability is the structural contract a model under test must satisfy.
//
// The harness only ever drives a model through this interface. Implementations
// must provide value-like semantics: Clone yields an independent instance, and
// Equal must reflect the full internal state relevant to behavior. Two models
// built blank and driven with the same inputs in the same order are required
// to compare Equal (the determinism axiom depends on it).
type Capability interface {
	// Expose feeds one pattern to the model, updating its internal state and
	// its current prediction.
	Expose(Pattern)

	// Prediction returns the model's current prediction of the next pattern
	// without mutating state. A blank model must predict the zero pattern.
	Prediction() Pattern

	// Clone returns a deep, independent copy of the model.
	Clone() Capability

	// Equal reports whether the other model has identical behavioral state.
	// It must return false for models of a different concrete type.
	Equal(Capability) bool
}

// Factory constructs a blank (default-configuration, bias-free) model
// instance. Every call must yield an instance Equal to every other blank
// instance of the same family.
type Factory func() Capability
