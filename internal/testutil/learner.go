package testutil

import (
	"github.com/cortexbench/cortexbench"
)

// LearnerCap is a small but genuinely capable sequence learner. It predicts
// the follower of the longest context in its history that matches the most
// recent input, and it masks channels that just fired, so its predictions are
// always refractory-admissible.
//
// Prediction is gated behind a maturity criterion: the model stays silent
// until a cycle of period p with d distinct patterns has filled (1+d)*p
// trailing entries and at least half of the total history. Adaptation time
// therefore grows with both the variety of the sequence and the amount of
// unrelated prior experience, and the gate never reopens once passed.
// Memory is bounded: after LearnerCapacity absorbed patterns the state
// freezes and nothing new can be learned. That profile satisfies every
// behavioral claim the battery makes, which is what tests use it for.
type LearnerCap struct {
	hist   []cortexbench.Pattern
	mature bool
	pred   cortexbench.Pattern
}

// LearnerCapacity bounds the history. A frozen learner keeps serving its
// last prediction but cannot pick up new patterns anymore.
const LearnerCapacity = 384

// NewLearner is a capability factory returning a blank LearnerCap.
func NewLearner() cortexbench.Capability {
	return &LearnerCap{}
}

// Expose appends the input to the history and recomputes the prediction.
func (l *LearnerCap) Expose(p cortexbench.Pattern) {
	if len(l.hist) >= LearnerCapacity {
		return
	}
	l.hist = append(l.hist, p)
	if !l.mature {
		l.mature = l.matured()
	}
	if !l.mature {
		l.pred = cortexbench.Zero
		return
	}
	l.pred = l.follower() & p.Not()
}

// Prediction returns the current prediction without mutating state.
func (l *LearnerCap) Prediction() cortexbench.Pattern {
	return l.pred
}

// Clone returns a deep copy.
func (l *LearnerCap) Clone() cortexbench.Capability {
	return &LearnerCap{
		hist:   append([]cortexbench.Pattern(nil), l.hist...),
		mature: l.mature,
		pred:   l.pred,
	}
}

// Equal compares full histories. The gate and prediction are functions of the
// history, so history equality is state equality.
func (l *LearnerCap) Equal(other cortexbench.Capability) bool {
	o, ok := other.(*LearnerCap)
	if !ok || len(l.hist) != len(o.hist) {
		return false
	}
	for i := range l.hist {
		if l.hist[i] != o.hist[i] {
			return false
		}
	}
	return true
}

// matured reports whether some period p has a trailing periodic run long
// enough to commit to: at least (1+d)*p entries, where d is the number of
// distinct patterns in one period, and at least half the history.
func (l *LearnerCap) matured() bool {
	h := len(l.hist)
	for p := 1; p <= h/2; p++ {
		run := p
		for i := h - p - 1; i >= 0 && l.hist[i] == l.hist[i+p]; i-- {
			run++
		}
		if run >= (1+l.distinct(p))*p && 2*run >= h {
			return true
		}
	}
	return false
}

// distinct counts distinct patterns among the last p history entries.
func (l *LearnerCap) distinct(p int) int {
	h := len(l.hist)
	seen := make(map[cortexbench.Pattern]struct{}, p)
	for _, q := range l.hist[h-p:] {
		seen[q] = struct{}{}
	}
	return len(seen)
}

// follower returns the pattern that followed the longest earlier occurrence
// of the history's current suffix, preferring the most recent occurrence on
// ties. No occurrence at all yields the zero pattern.
func (l *LearnerCap) follower() cortexbench.Pattern {
	h := len(l.hist)
	best, bestLen := cortexbench.Zero, 0
	for j := h - 2; j >= 0; j-- {
		if l.hist[j] != l.hist[h-1] {
			continue
		}
		m := 1
		for m <= j && m < h-1 && l.hist[j-m] == l.hist[h-1-m] {
			m++
		}
		if m > bestLen {
			best, bestLen = l.hist[j+1], m
		}
	}
	return best
}
