package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyDocumentYieldsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 100*time.Microsecond, cfg.Latency.TargetDuration())
}

func TestParseOverlaysPartialDocument(t *testing.T) {
	cfg, err := Parse([]byte(`
length: 4
seed: 42
stats:
  z_threshold: 2.5
  min_pairs: 12
`))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Length)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 2.5, cfg.Stats.ZThreshold)
	assert.Equal(t, 12, cfg.Stats.MinPairs)
	// Untouched fields keep their defaults.
	assert.Equal(t, 500, cfg.Timeframe)
	assert.Equal(t, "100us", cfg.Latency.Target)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("lenght: 4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lenght")
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"negative length":    "length: -1\n",
		"zero timeframe":     "timeframe: 0\n",
		"zero repeats":       "repeats: 0\n",
		"zero min pairs":     "stats: {min_pairs: 0}\n",
		"empty target":       "latency: {target: \"\"}\n",
		"oversized length":   "length: 65\n",
		"negative threshold": "stats: {z_threshold: -1.0}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseRejectsUnparseableTarget(t *testing.T) {
	_, err := Parse([]byte("latency: {target: fast}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latency.target")
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repeats: 10\njournal: bench.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Repeats)
	assert.Equal(t, "bench.db", cfg.Journal)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
