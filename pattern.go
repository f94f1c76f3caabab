package cortexbench

import "strings"

// Width is the number of spike channels in a Pattern.
//
// Every pattern carries exactly Width boolean positions. The value is a
// compile-time constant: changing it changes the wire-level meaning of every
// recorded seed, so it is deliberately not configurable at runtime.
const Width = 10

// mask selects the Width low bits of the backing integer.
const mask Pattern = (1 << Width) - 1

// Pattern is one instant of multi-channel spiking input or output: a
// fixed-width vector of boolean spike values backed by an integer bit set.
//
// Pattern is a value type. Equality is ==, the zero value is the all-quiet
// pattern, and all operations return new values.
type Pattern uint16

// Zero is the all-quiet pattern (no channel spiking).
const Zero Pattern = 0

// Ones is the pattern with every channel spiking.
const Ones Pattern = mask

// Bit reports whether channel i is spiking. Channels are numbered 0..Width-1.
func (p Pattern) Bit(i int) bool {
	return p&(1<<i) != 0
}

// Set returns a copy of p with channel i set to v.
func (p Pattern) Set(i int, v bool) Pattern {
	if v {
		return p | 1<<i
	}
	return p &^ (1 << i)
}

// Not returns the bitwise complement of p within Width channels.
func (p Pattern) Not() Pattern {
	return ^p & mask
}

// AdmissibleAfter reports whether p may follow prev in a refractory-respecting
// sequence: no channel that spiked in prev may spike again in p.
func (p Pattern) AdmissibleAfter(prev Pattern) bool {
	return p&prev == 0
}

// Matches counts the channels on which p and q agree.
func (p Pattern) Matches(q Pattern) int {
	same := ^(p ^ q) & mask
	n := 0
	for b := same; b != 0; b &= b - 1 {
		n++
	}
	return n
}

// IsZero reports whether no channel is spiking.
func (p Pattern) IsZero() bool {
	return p == 0
}

// String renders the pattern as Width characters, channel 0 first,
// '|' for a spike and '.' for quiet.
func (p Pattern) String() string {
	var b strings.Builder
	b.Grow(Width)
	for i := 0; i < Width; i++ {
		if p.Bit(i) {
			b.WriteByte('|')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
