// Package refmodel provides a minimal associative predictor implementing the
// cortexbench capability contract.
//
// The model memorizes one-step transitions (previous pattern -> next pattern)
// in a bounded table and masks predicted spikes on channels that just fired,
// so it respects the refractory rule by construction. It exists so the
// harness, its CLI demo, and its tests are executable end to end; it is not a
// claim about what a correct temporal predictive model looks like, and it is
// expected to fail several axioms of the battery.
package refmodel

import (
	"github.com/cortexbench/cortexbench"
)

// Capacity bounds the transition table. Once full, unseen transitions are no
// longer memorized; the model's ability to pick up new patterns degrades with
// experience, which is what the stagnation axiom probes for.
const Capacity = 128

// Assoc is a bounded one-step associative predictor.
type Assoc struct {
	table    map[cortexbench.Pattern]cortexbench.Pattern
	prev     cortexbench.Pattern
	havePrev bool
	pred     cortexbench.Pattern
}

// New returns a blank model: empty table, zero prediction.
func New() cortexbench.Capability {
	return &Assoc{table: make(map[cortexbench.Pattern]cortexbench.Pattern)}
}

// Expose memorizes the transition from the previous input to p, then
// predicts the memorized successor of p with refractory masking applied.
func (a *Assoc) Expose(p cortexbench.Pattern) {
	if a.havePrev {
		if _, known := a.table[a.prev]; known || len(a.table) < Capacity {
			a.table[a.prev] = p
		}
	}
	a.prev = p
	a.havePrev = true

	// Channels that fired in p cannot fire next.
	a.pred = a.table[p] & p.Not()
}

// Prediction returns the current prediction without mutating state.
func (a *Assoc) Prediction() cortexbench.Pattern {
	return a.pred
}

// Clone returns a deep copy.
func (a *Assoc) Clone() cortexbench.Capability {
	table := make(map[cortexbench.Pattern]cortexbench.Pattern, len(a.table))
	for k, v := range a.table {
		table[k] = v
	}
	return &Assoc{table: table, prev: a.prev, havePrev: a.havePrev, pred: a.pred}
}

// Equal reports full structural equality with another Assoc. Models of a
// different concrete type are never equal.
func (a *Assoc) Equal(other cortexbench.Capability) bool {
	b, ok := other.(*Assoc)
	if !ok {
		return false
	}
	if a.prev != b.prev || a.havePrev != b.havePrev || a.pred != b.pred {
		return false
	}
	if len(a.table) != len(b.table) {
		return false
	}
	for k, v := range a.table {
		if bv, ok := b.table[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
