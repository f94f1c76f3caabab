package adapter

import (
	"fmt"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/seq"
)

// InfeasibleError reports that no learnable sequence of the requested length
// exists within the search budget. This is a configuration error — the
// difficulty setting is out of reach for the model family — not a test
// failure, and it aborts the run.
type InfeasibleError struct {
	Length int // requested sequence length
	Budget int // attempts spent searching
}

// Error implements the error interface.
func (e *InfeasibleError) Error() string {
	return fmt.Sprintf(
		"no adaptable %d-pattern sequence found within %d attempts; the configured difficulty is infeasible for this model family",
		e.Length, e.Budget,
	)
}

// AdaptableRandom searches for a nontrivial circular random sequence of the
// given length, with exactly that period, that a fresh model can learn
// within timeframe steps. Not every circular sequence is inherently
// adaptable, so the search retries up to timeframe times before giving up
// with an InfeasibleError.
func AdaptableRandom(g *seq.Generator, factory cortexbench.Factory, length, timeframe int) (seq.Sequence, error) {
	if length < 2 {
		return nil, &InfeasibleError{Length: length, Budget: 0}
	}

	for attempt := 0; attempt < timeframe; attempt++ {
		s := g.NontrivialCircularRandom(length)
		if s.Period() != length {
			continue
		}

		ok, err := New(factory).Learn(s, timeframe)
		if err != nil {
			return nil, err
		}
		if ok {
			return s, nil
		}
	}
	return nil, &InfeasibleError{Length: length, Budget: timeframe}
}
