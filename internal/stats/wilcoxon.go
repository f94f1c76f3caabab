package stats

import (
	"math"
	"sort"
)

// Defaults for the significance decision.
const (
	// DefaultZThreshold is the one-sided z-score bound, ~0.1% significance.
	DefaultZThreshold = 3.090

	// MinPairs is the minimum number of non-zero-difference pairs required
	// before the test can reject anything.
	MinPairs = 10
)

// Pair is one paired observation from a single trial: two scalar
// measurements of the same generated input under two conditions.
type Pair struct {
	A float64 // baseline condition
	B float64 // contrasted condition
}

// Reason explains a non-significant verdict.
type Reason string

const (
	ReasonRejected     Reason = "null_rejected"
	ReasonTooFewPairs  Reason = "too_few_nonzero_pairs"
	ReasonZeroVariance Reason = "degenerate_variance"
	ReasonBelowBound   Reason = "z_below_threshold"
)

// Verdict is the full outcome of a significance test.
type Verdict struct {
	Significant bool    // null rejected: B consistently exceeds A
	Reason      Reason  // why, when not significant
	N           int     // pairs supplied
	NNonZero    int     // pairs with A != B
	WPlus       float64 // signed-rank statistic over positive differences
	Z           float64 // z-score (0 when indeterminate)
}

// Options tunes the decision bounds. The zero value selects the defaults.
type Options struct {
	ZThreshold float64
	MinPairs   int
}

func (o Options) withDefaults() Options {
	if o.ZThreshold == 0 {
		o.ZThreshold = DefaultZThreshold
	}
	if o.MinPairs == 0 {
		o.MinPairs = MinPairs
	}
	return o
}

// BExceedsA runs the one-sided Wilcoxon signed-rank test for the alternative
// hypothesis "B tends to exceed A" and returns the verdict.
//
// The computation is stable for several thousand pairs: ranks are assigned by
// sorting absolute differences once, tied runs share their midrank, and the
// variance carries the standard tie correction.
func BExceedsA(pairs []Pair, opts Options) Verdict {
	opts = opts.withDefaults()
	v := Verdict{N: len(pairs)}

	// Step 1: discard zero differences.
	type diff struct {
		abs float64
		pos bool
	}
	diffs := make([]diff, 0, len(pairs))
	for _, p := range pairs {
		d := p.B - p.A
		if d == 0 {
			continue
		}
		diffs = append(diffs, diff{abs: math.Abs(d), pos: d > 0})
	}
	v.NNonZero = len(diffs)
	if v.NNonZero < opts.MinPairs {
		v.Reason = ReasonTooFewPairs
		return v
	}

	// Steps 2-4: rank absolute differences ascending with midrank ties and
	// sum the ranks of positive differences. tieSum accumulates t³-t over
	// tie groups for the variance correction.
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].abs < diffs[j].abs })

	var wPlus, tieSum float64
	for i := 0; i < len(diffs); {
		j := i
		for j < len(diffs) && diffs[j].abs == diffs[i].abs {
			j++
		}
		// Positions i..j-1 (0-based) share the average rank.
		midrank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			if diffs[k].pos {
				wPlus += midrank
			}
		}
		t := float64(j - i)
		tieSum += t*t*t - t
		i = j
	}
	v.WPlus = wPlus

	// Steps 5-6: null mean and tie-corrected variance, continuity-corrected
	// z-score.
	n := float64(v.NNonZero)
	mean := n * (n + 1) / 4
	variance := n*(n+1)*(2*n+1)/24 - tieSum/48
	if variance <= 0 {
		v.Reason = ReasonZeroVariance
		return v
	}

	correction := 0.5
	if wPlus < mean {
		correction = -0.5
	}
	v.Z = (wPlus - mean - correction) / math.Sqrt(variance)

	// Step 7: one-sided decision.
	if v.Z > opts.ZThreshold {
		v.Significant = true
		v.Reason = ReasonRejected
	} else {
		v.Reason = ReasonBelowBound
	}
	return v
}
