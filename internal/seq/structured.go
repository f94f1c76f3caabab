package seq

import "github.com/cortexbench/cortexbench"

// StructuredKinds is the number of distinct structured sequence shapes.
const StructuredKinds = 6

// Structured returns a deterministic low-entropy sequence of the given
// length, selected by id (taken modulo StructuredKinds). Each shape
// interleaves its payload patterns with the all-quiet filler so the result
// respects the refractory invariant regardless of shape. Structured sequences
// exist to stress the latency calibrator with varied but reproducible
// workloads; they carry no statistical guarantees.
func Structured(length, id int) Sequence {
	if length <= 0 {
		return Sequence{}
	}
	if id < 0 {
		id = -id
	}

	s := make(Sequence, length)
	for i := 0; i < length; i++ {
		// Odd slots are refractory filler.
		if i%2 == 1 {
			continue
		}
		step := i / 2
		s[i] = structuredPayload(id%StructuredKinds, step)
	}
	return s
}

// structuredPayload selects the spiking pattern for payload slot step.
func structuredPayload(kind, step int) cortexbench.Pattern {
	const w = cortexbench.Width
	switch kind {
	case 0: // constant single channel
		return cortexbench.Zero.Set(0, true)
	case 1: // alternating between two channels
		return cortexbench.Zero.Set((step%2)*(w-1), true)
	case 2: // single spike walking across channels
		return cortexbench.Zero.Set(step%w, true)
	case 3: // double spike walking across channels
		p := cortexbench.Zero.Set(step%w, true)
		return p.Set((step+w/2)%w, true)
	case 4: // half-mask flipping halves
		var p cortexbench.Pattern
		for c := 0; c < w/2; c++ {
			p = p.Set((c+(step%2)*w/2)%w, true)
		}
		return p
	default: // full burst
		return cortexbench.Ones
	}
}
