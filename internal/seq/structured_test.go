package seq

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredIsDeterministic(t *testing.T) {
	for id := 0; id < StructuredKinds; id++ {
		a := Structured(20, id)
		b := Structured(20, id)
		require.True(t, a.Equal(b), "kind %d", id)
	}
}

func TestStructuredRespectsRefractory(t *testing.T) {
	for id := 0; id < StructuredKinds*2; id++ {
		for _, length := range []int{0, 1, 2, 7, 16, 33} {
			s := Structured(length, id)
			require.Len(t, s, length)
			assert.True(t, s.Refractory(false), "kind %d length %d", id, length)
		}
	}
}

func TestStructuredKindsDiffer(t *testing.T) {
	// The payload shapes must actually vary, otherwise the latency workloads
	// degenerate into one shape.
	seen := map[string]int{}
	for id := 0; id < StructuredKinds; id++ {
		seen[Structured(12, id).String()] = id
	}
	assert.Len(t, seen, StructuredKinds)
}

func TestStructuredNegativeIDFolds(t *testing.T) {
	assert.True(t, Structured(10, -2).Equal(Structured(10, 2)))
}

func TestSequenceRenderingGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	g.Assert(t, "trivial_4", []byte(Trivial(4).String()))
	g.Assert(t, "structured_walk_8", []byte(Structured(8, 2).String()))
	g.Assert(t, "structured_double_7", []byte(Structured(7, 3).String()))
}
