// Package config loads and validates the harness run configuration.
//
// Configuration is a YAML document decoded strictly (unknown fields are
// rejected) on top of the defaults, then checked against the embedded CUE
// schema. Loading never partially succeeds: the returned Config is either
// fully valid or the error says which field is not.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full harness run configuration.
type Config struct {
	// Length is the temporal sequence length checks adapt models to.
	// Zero selects automatic difficulty estimation at run start.
	Length int `yaml:"length" json:"length"`

	// Timeframe is the simulated-infinity step budget for adaptation,
	// behavioral comparison and search loops.
	Timeframe int `yaml:"timeframe" json:"timeframe"`

	// Repeats is the repetition count for cheap structural checks; heavy
	// checks run a tenth of it.
	Repeats int `yaml:"repeats" json:"repeats"`

	// Samples is the number of paired observations per statistical check.
	Samples int `yaml:"samples" json:"samples"`

	// Warmup is the exposure length used to construct experienced models.
	Warmup int `yaml:"warmup" json:"warmup"`

	// Seed is the base seed; every trial derives its own seed from it.
	Seed int64 `yaml:"seed" json:"seed"`

	// Journal is the SQLite journal path. Empty disables journaling.
	Journal string `yaml:"journal" json:"journal"`

	Stats   StatsConfig   `yaml:"stats" json:"stats"`
	Latency LatencyConfig `yaml:"latency" json:"latency"`
}

// StatsConfig tunes the significance test.
type StatsConfig struct {
	ZThreshold float64 `yaml:"z_threshold" json:"z_threshold"`
	MinPairs   int     `yaml:"min_pairs" json:"min_pairs"`
}

// LatencyConfig tunes the latency calibration.
type LatencyConfig struct {
	// Target is the per-exposure duration the workload probe aims for,
	// in time.ParseDuration syntax.
	Target      string `yaml:"target" json:"target"`
	MaxWorkload int    `yaml:"max_workload" json:"max_workload"`
	Trials      int    `yaml:"trials" json:"trials"`
}

// TargetDuration returns the parsed probe target. Load guarantees the field
// parses, so the zero duration only ever means "field was never validated".
func (l LatencyConfig) TargetDuration() time.Duration {
	d, err := time.ParseDuration(l.Target)
	if err != nil {
		return 0
	}
	return d
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Length:    0,
		Timeframe: 500,
		Repeats:   100,
		Samples:   20,
		Warmup:    50,
		Seed:      1,
		Journal:   "",
		Stats: StatsConfig{
			ZThreshold: 3.090,
			MinPairs:   10,
		},
		Latency: LatencyConfig{
			Target:      "100us",
			MaxWorkload: 1_000_000,
			Trials:      50,
		},
	}
}

// Parse decodes a YAML document on top of the defaults and validates the
// result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	if _, err := time.ParseDuration(cfg.Latency.Target); err != nil {
		return Config{}, fmt.Errorf("config: latency.target: %w", err)
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}
