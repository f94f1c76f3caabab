package refmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortexbench/cortexbench"
	"github.com/cortexbench/cortexbench/internal/adapter"
	"github.com/cortexbench/cortexbench/internal/seq"
)

func TestBlankModelIsUnbiased(t *testing.T) {
	a := New()
	b := New()

	assert.True(t, a.Equal(b))
	assert.Equal(t, cortexbench.Zero, a.Prediction())
}

func TestExposureChangesState(t *testing.T) {
	a := New()
	a.Expose(cortexbench.Ones)

	assert.False(t, a.Equal(New()))
}

func TestIdenticalExperienceIdenticalState(t *testing.T) {
	g := seq.NewGenerator(21)
	experience := g.Random(200)

	a := adapter.New(New)
	b := adapter.New(New)
	a.ExposeAll(experience)
	b.ExposeAll(experience)

	assert.True(t, a.Equal(b))
}

func TestCloneIsIndependent(t *testing.T) {
	a := New()
	a.Expose(cortexbench.Zero.Set(1, true))

	c := a.Clone()
	require.True(t, a.Equal(c))

	c.Expose(cortexbench.Zero.Set(3, true))
	assert.False(t, a.Equal(c))
}

func TestLearnsDistinctCircularSequence(t *testing.T) {
	// A cycle whose patterns are pairwise distinct is exactly what a
	// one-step associative table can memorize.
	s := seq.Sequence{
		cortexbench.Zero.Set(0, true),
		cortexbench.Zero.Set(1, true),
		cortexbench.Zero.Set(2, true),
	}
	require.True(t, s.Refractory(true))

	m := adapter.New(New)
	steps, err := m.TimeToLearn(s, 300)
	require.NoError(t, err)
	assert.Less(t, steps, 300, "model should learn a distinct 3-cycle")
}

func TestRefusesConsecutiveSpikes(t *testing.T) {
	spike := cortexbench.Zero.Set(5, true)
	m := adapter.New(New)

	ok, err := m.Learn(seq.Sequence{spike, spike}, 200)
	require.NoError(t, err)
	assert.False(t, ok, "a spike may never follow itself")
}

func TestRefractoryMaskingOnPrediction(t *testing.T) {
	a := New()
	p := cortexbench.Zero.Set(2, true).Set(7, true)

	// Teach the transition p -> p by brute force, then verify the
	// prediction after p still keeps p's channels quiet.
	a.Expose(p)
	a.Expose(p)
	a.Expose(p)

	assert.True(t, a.Prediction().AdmissibleAfter(p))
}

func TestCapacityBound(t *testing.T) {
	a := New().(*Assoc)

	// Drive far more distinct transitions than the table can hold.
	for i := 0; i < 1<<cortexbench.Width; i++ {
		a.Expose(cortexbench.Pattern(i))
	}
	assert.LessOrEqual(t, len(a.table), Capacity)
}
