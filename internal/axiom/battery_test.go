package axiom

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatteryCoversAllFourteenChecks(t *testing.T) {
	b := Battery(100)
	require.Len(t, b, 14)
	for _, c := range b {
		assert.NotEmpty(t, c.Doc, c.Name)
		assert.NotNil(t, c.Run, c.Name)
		assert.Positive(t, c.Repeats, c.Name)
	}
}

func TestBatterySplitsRepeatsBetweenCheapAndHeavyChecks(t *testing.T) {
	repeats := map[string]int{}
	for _, c := range Battery(100) {
		repeats[c.Name] = c.Repeats
	}

	assert.Equal(t, 100, repeats["Genesis"])
	assert.Equal(t, 100, repeats["RefractoryPeriod"])
	assert.Equal(t, 10, repeats["Stagnation"])
	assert.Equal(t, 10, repeats["ContentSensitivity"])
	assert.Equal(t, 10, repeats["Latency"])
}

func TestBatteryRepeatsNeverDropToZero(t *testing.T) {
	for _, c := range Battery(0) {
		assert.Equal(t, 1, c.Repeats, c.Name)
	}
}

func TestFindIsForgivingAboutNameShape(t *testing.T) {
	b := Battery(1)

	c, ok := Find(b, "  refractoryperiod ")
	require.True(t, ok)
	assert.Equal(t, "RefractoryPeriod", c.Name)

	_, ok = Find(b, "NoSuchCheck")
	assert.False(t, ok)
}

func TestBatteryListingIsStable(t *testing.T) {
	var buf bytes.Buffer
	for _, c := range Battery(1) {
		buf.WriteString(c.Name)
		buf.WriteByte('\t')
		buf.WriteString(c.Doc)
		buf.WriteByte('\n')
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "battery_listing", buf.Bytes())
}

func TestViolationErrorRendersSortedDetails(t *testing.T) {
	err := violated("Latency", "per-update latency must be bounded").
		withDetail("z", "4.100").
		withDetail("attempts", "3")

	assert.Equal(t,
		"axiom violation in Latency: per-update latency must be bounded (attempts=3, z=4.100)",
		err.Error())
}
