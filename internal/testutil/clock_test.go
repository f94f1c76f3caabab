package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClockStartsAtEpoch(t *testing.T) {
	c := NewManualClock()
	assert.Equal(t, time.Unix(0, 0), c.Now())
}

func TestManualClockAdvance(t *testing.T) {
	c := NewManualClock()
	start := c.Now()

	c.Advance(250 * time.Microsecond)
	assert.Equal(t, 250*time.Microsecond, c.Now().Sub(start))

	c.Advance(time.Millisecond)
	assert.Equal(t, 1250*time.Microsecond, c.Now().Sub(start))
}

func TestManualClockNeverGoesBackwards(t *testing.T) {
	c := NewManualClock()
	c.Advance(time.Second)
	before := c.Now()

	c.Advance(-time.Hour)
	assert.Equal(t, before, c.Now())
}
