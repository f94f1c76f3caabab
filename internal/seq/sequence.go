package seq

import (
	"strings"

	"github.com/cortexbench/cortexbench"
)

// Sequence is an ordered, finite list of spike patterns.
//
// Sequences are constructed once (by a Generator or a model rollout) and are
// immutable by convention afterward: consumers fold over them but never
// rewrite elements in place.
type Sequence []cortexbench.Pattern

// Clone returns an independent copy of s.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Equal reports element-wise equality of two sequences.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// IsTrivial reports whether every pattern in the sequence is the zero pattern.
// An empty sequence is trivial.
func (s Sequence) IsTrivial() bool {
	for _, p := range s {
		if !p.IsZero() {
			return false
		}
	}
	return true
}

// Refractory reports whether every adjacent pair of patterns is admissible.
// With circular set, the wraparound pair (last, first) is checked as well.
// Sequences of length < 2 are trivially refractory-respecting, except that a
// circular length-1 sequence is self-adjacent and must be the zero pattern.
func (s Sequence) Refractory(circular bool) bool {
	for i := 1; i < len(s); i++ {
		if !s[i].AdmissibleAfter(s[i-1]) {
			return false
		}
	}
	if circular && len(s) > 0 {
		if !s[0].AdmissibleAfter(s[len(s)-1]) {
			return false
		}
	}
	return true
}

// Period returns the smallest p <= len(s)/2 such that s[i] == s[i-p] for all
// valid i. If no such p exists the sequence is aperiodic and Period returns
// len(s).
func (s Sequence) Period() int {
	n := len(s)
	for p := 1; p <= n/2; p++ {
		periodic := true
		for i := p; i < n; i++ {
			if s[i] != s[i-p] {
				periodic = false
				break
			}
		}
		if periodic {
			return p
		}
	}
	return n
}

// String renders the sequence as space-separated patterns, first element
// leftmost. The rendering is deterministic and used in golden tests.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
