package harness

import (
	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/adapter"
	"github.com/cortexbench/cortexbench/internal/seq"
)

// maxEstimatedLength caps automatic difficulty probing. Long sequences make
// every check quadratically slower without telling us anything new.
const maxEstimatedLength = 16

// EstimateDifficulty probes the largest sequence length a fresh model can
// still adapt to within the timeframe, starting at 2 and stopping at limit.
// The first length that fails ends the probe; the previous one is returned.
// A family that cannot even adapt to length 2 yields 1, which no check
// accepts, so the caller decides how to surface that.
func EstimateDifficulty(g *seq.Generator, factory cortexbench.Factory, timeframe, limit int) int {
	for difficulty := 2; difficulty <= limit; difficulty++ {
		ok, err := adapter.New(factory).Learn(g.NontrivialCircularRandom(difficulty), timeframe)
		if err != nil || !ok {
			return difficulty - 1
		}
	}
	return limit
}
