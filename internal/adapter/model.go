package adapter

import (
	"errors"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/seq"
)

// ErrEmptySequence is returned by adaptation operations that are undefined
// for zero-length input.
var ErrEmptySequence = errors.New("adapter: adaptation requires a non-empty sequence")

// Model adapts a capability to the harness's operations.
//
// The adapter caches the capability's most recent prediction so that
// Prediction never mutates state. Model has value-like semantics through
// Clone and Equal, delegated to the wrapped capability.
type Model struct {
	cap  cortexbench.Capability
	last cortexbench.Pattern
}

// New constructs a blank model from the factory.
func New(factory cortexbench.Factory) *Model {
	c := factory()
	return &Model{cap: c, last: c.Prediction()}
}

// Warmed constructs a model pre-exposed to a random sequence of the given
// length, yielding an instance with arbitrary non-blank experience.
func Warmed(factory cortexbench.Factory, g *seq.Generator, strength int) *Model {
	return New(factory).ExposeAll(g.Random(strength))
}

// Expose feeds one pattern to the capability and refreshes the cached
// prediction. It returns the model for chaining.
func (m *Model) Expose(p cortexbench.Pattern) *Model {
	m.cap.Expose(p)
	m.last = m.cap.Prediction()
	return m
}

// ExposeAll folds Expose over the sequence, strictly in order.
func (m *Model) ExposeAll(s seq.Sequence) *Model {
	for _, p := range s {
		m.Expose(p)
	}
	return m
}

// Prediction returns the most recently cached prediction without touching
// the capability.
func (m *Model) Prediction() cortexbench.Pattern {
	return m.last
}

// Clone returns an independent copy of the model.
func (m *Model) Clone() *Model {
	return &Model{cap: m.cap.Clone(), last: m.last}
}

// Equal reports whether two models wrap capabilities with identical
// behavioral state.
func (m *Model) Equal(other *Model) bool {
	return m.cap.Equal(other.cap)
}

// predictions consumes inputs in order, recording the prediction made
// immediately before each element. The returned sequence has the same length
// as inputs.
func (m *Model) predictions(inputs seq.Sequence) seq.Sequence {
	out := make(seq.Sequence, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, m.last)
		m.Expose(in)
	}
	return out
}

// TimeToLearn replays inputs cumulatively until the model's predictions,
// made before seeing each element, reproduce the whole sequence. It returns
// the elapsed step count, or timeframe if the budget ran out ("did not
// learn"). State carries over between replays; this is cumulative exposure,
// not independent trials.
func (m *Model) TimeToLearn(inputs seq.Sequence, timeframe int) (int, error) {
	if len(inputs) == 0 {
		return 0, ErrEmptySequence
	}
	for elapsed := 0; elapsed < timeframe; elapsed += len(inputs) {
		if m.predictions(inputs).Equal(inputs) {
			return elapsed, nil
		}
	}
	return timeframe, nil
}

// Learn reports whether the model achieved perfect prediction of inputs
// within the timeframe.
func (m *Model) Learn(inputs seq.Sequence, timeframe int) (bool, error) {
	t, err := m.TimeToLearn(inputs, timeframe)
	if err != nil {
		return false, err
	}
	return t < timeframe, nil
}

// Generate rolls the model forward autoregressively: each step appends the
// current prediction to the output and feeds that same prediction back as
// the next input. No ground truth is involved.
func (m *Model) Generate(length int) seq.Sequence {
	out := make(seq.Sequence, 0, length)
	for len(out) < length {
		p := m.last
		out = append(out, p)
		m.Expose(p)
	}
	return out
}

// IdenticalBehaviour drives a and b from a's predictions for timeframe steps
// and reports whether their predictions ever diverged. Both models are
// mutated. This is how the harness shows that structurally different models
// can be behaviorally indistinguishable.
func IdenticalBehaviour(a, b *Model, timeframe int) bool {
	for t := 0; t < timeframe; t++ {
		if a.Prediction() != b.Prediction() {
			return false
		}
		p := a.Prediction()
		a.Expose(p)
		b.Expose(p)
	}
	return a.Prediction() == b.Prediction()
}
