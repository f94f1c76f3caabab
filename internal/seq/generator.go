package seq

import (
	"math/rand"

	"github.com/cortexbench/cortexbench"
)

// Generator produces constrained random sequences from an explicit PRNG.
//
// Generator is not safe for concurrent use; the harness is single-threaded
// and creates one generator per logical run so that the run's seed fully
// determines its output.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Pattern returns a pattern with each channel spiking with probability 1/2,
// except channels that are set in any of the off patterns, which stay quiet.
// Passing the previous pattern as off yields an admissible successor.
func (g *Generator) Pattern(off ...cortexbench.Pattern) cortexbench.Pattern {
	var forbidden cortexbench.Pattern
	for _, o := range off {
		forbidden |= o
	}
	return cortexbench.Pattern(g.rng.Uint64()) & forbidden.Not()
}

// Spike returns a pattern with exactly one randomly chosen channel spiking.
func (g *Generator) Spike() cortexbench.Pattern {
	return cortexbench.Zero.Set(g.rng.Intn(cortexbench.Width), true)
}

// Random returns a refractory-respecting sequence of the given length. The
// first pattern is unconstrained; every later pattern is drawn uniformly
// among the admissible successors of its predecessor. Length 0 yields an
// empty sequence.
func (g *Generator) Random(length int) Sequence {
	if length <= 0 {
		return Sequence{}
	}

	s := make(Sequence, 0, length)
	s = append(s, g.Pattern())
	for len(s) < length {
		s = append(s, g.Pattern(s[len(s)-1]))
	}
	return s
}

// CircularRandom returns a random refractory-respecting sequence whose
// wraparound pair (last, first) is also admissible, closing the cycle.
// Lengths below 2 cannot close a nontrivial cycle and yield the degenerate
// all-zero sequence.
func (g *Generator) CircularRandom(length int) Sequence {
	if length < 2 {
		return make(Sequence, max(length, 0))
	}

	s := g.Random(length)
	s[length-1] = g.Pattern(s[length-2], s[0])
	return s
}

// NontrivialCircularRandom returns a circular random sequence that is not
// entirely zero patterns. Lengths below 2 only admit the all-zero cycle, so
// the caller must pass length >= 2; the degenerate case returns the zero
// sequence unchanged rather than looping forever.
func (g *Generator) NontrivialCircularRandom(length int) Sequence {
	if length < 2 {
		return g.CircularRandom(length)
	}
	for {
		if s := g.CircularRandom(length); !s.IsTrivial() {
			return s
		}
	}
}

// Trivial returns the easiest possible non-degenerate sequence of the given
// length: all-zero patterns except the last, which spikes on every channel.
// Used to probe minimal adaptability. Length 0 yields an empty sequence.
func Trivial(length int) Sequence {
	if length <= 0 {
		return Sequence{}
	}
	s := make(Sequence, length)
	s[length-1] = cortexbench.Ones
	return s
}
