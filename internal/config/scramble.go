package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Edward-VS/Kerkers-sub000/internal/dungeon"
)

// ScrambleConfig holds the tunables of a scramble pass and the collapse
// cascade. Every field is optional; the Get* accessors supply defaults for
// anything left out, so partial files are safe.
type ScrambleConfig struct {
	PermutationRate       *float64 `json:"permutation_rate,omitempty" jsonschema:"minimum=0,maximum=1,description=Share of eligible squares swapped with another eligible square"`
	FillRate              *float64 `json:"fill_rate,omitempty" jsonschema:"minimum=0,maximum=1,description=Share of free eligible positions that receive a fresh square"`
	CollapseRate          *float64 `json:"collapse_rate,omitempty" jsonschema:"minimum=0,maximum=1,description=Probability that each collapsible square collapses"`
	MaxFillFailures       *int     `json:"max_fill_failures,omitempty" jsonschema:"minimum=1,description=Consecutive failed fill attempts before the fill phase gives up"`
	CollapseCascadeChance *float64 `json:"collapse_cascade_chance,omitempty" jsonschema:"minimum=0,maximum=1,description=Probability that a collapse continues into the square below"`
	Seed                  *int64   `json:"seed,omitempty" jsonschema:"description=Random seed; 0 picks one from the clock"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }
func ptrInt64(v int64) *int64       { return &v }

const (
	defaultPermutationRate = 0.25
	defaultFillRate        = 0.1
	defaultCollapseRate    = 0.05
)

// DefaultScrambleConfig returns a config with every field set.
func DefaultScrambleConfig() *ScrambleConfig {
	return &ScrambleConfig{
		PermutationRate:       ptrFloat64(defaultPermutationRate),
		FillRate:              ptrFloat64(defaultFillRate),
		CollapseRate:          ptrFloat64(defaultCollapseRate),
		MaxFillFailures:       ptrInt(dungeon.DefaultMaxFillFailures),
		CollapseCascadeChance: ptrFloat64(dungeon.DefaultCascadeChance),
		Seed:                  ptrInt64(0),
	}
}

// LoadScrambleConfig reads a ScrambleConfig from a JSON file no larger
// than 1MB.
func LoadScrambleConfig(path string) (*ScrambleConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ScrambleConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that are set.
func (c *ScrambleConfig) Validate() error {
	rates := []struct {
		name string
		v    *float64
	}{
		{"permutation_rate", c.PermutationRate},
		{"fill_rate", c.FillRate},
		{"collapse_rate", c.CollapseRate},
		{"collapse_cascade_chance", c.CollapseCascadeChance},
	}
	for _, r := range rates {
		if r.v != nil && (*r.v < 0 || *r.v > 1) {
			return fmt.Errorf("%s must be between 0 and 1, got %f", r.name, *r.v)
		}
	}
	if c.MaxFillFailures != nil && *c.MaxFillFailures < 1 {
		return fmt.Errorf("max_fill_failures must be positive, got %d", *c.MaxFillFailures)
	}
	return nil
}

func (c *ScrambleConfig) GetPermutationRate() float64 {
	if c.PermutationRate == nil {
		return defaultPermutationRate
	}
	return *c.PermutationRate
}

func (c *ScrambleConfig) GetFillRate() float64 {
	if c.FillRate == nil {
		return defaultFillRate
	}
	return *c.FillRate
}

func (c *ScrambleConfig) GetCollapseRate() float64 {
	if c.CollapseRate == nil {
		return defaultCollapseRate
	}
	return *c.CollapseRate
}

func (c *ScrambleConfig) GetMaxFillFailures() int {
	if c.MaxFillFailures == nil {
		return dungeon.DefaultMaxFillFailures
	}
	return *c.MaxFillFailures
}

func (c *ScrambleConfig) GetCollapseCascadeChance() float64 {
	if c.CollapseCascadeChance == nil {
		return dungeon.DefaultCascadeChance
	}
	return *c.CollapseCascadeChance
}

// GetSeed returns the configured seed, or 0 when the caller should pick one.
func (c *ScrambleConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// ScrambleOptions converts the config into options for dungeon.NewScrambler.
func (c *ScrambleConfig) ScrambleOptions() dungeon.ScrambleOptions {
	return dungeon.ScrambleOptions{
		PermutationRate: c.GetPermutationRate(),
		FillRate:        c.GetFillRate(),
		CollapseRate:    c.GetCollapseRate(),
		MaxFillFailures: c.GetMaxFillFailures(),
	}
}
