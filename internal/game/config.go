package game

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// --- Configuration bounds ---

const (
	defaultWorldSize        = 500.0
	minWorldSize            = 300.0
	maxWorldSize            = 1000.0
	defaultMouseSensitivity = 0.002
	minMouseSensitivity     = 0.001
	maxMouseSensitivity     = 0.01
	defaultTotalCreatures   = 20
	maxTotalCreatures       = 200
	defaultMaxAmmo          = 30
	maxMaxAmmo              = 999
	defaultMaxLives         = 3
	maxMaxLives             = 99
)

// Config is fixed before a session starts and copied into every World built from it.
type Config struct {
	WorldSize        float64 `yaml:"world_size"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // read by the presentation layer only
	TotalCreatures   int     `yaml:"total_creatures"`
	MaxAmmo          int     `yaml:"max_ammo"`
	MaxLives         int     `yaml:"max_lives"`
	Seed             int64   `yaml:"seed"` // 0 = caller picks one
}

// DefaultConfig returns the stock rules: a 500-unit world, 20 creatures,
// 30 rounds and 3 lives.
func DefaultConfig() Config {
	return Config{
		WorldSize:        defaultWorldSize,
		MouseSensitivity: defaultMouseSensitivity,
		TotalCreatures:   defaultTotalCreatures,
		MaxAmmo:          defaultMaxAmmo,
		MaxLives:         defaultMaxLives,
	}
}

// Clamped returns a copy with every field forced into its documented range.
// Out-of-range values are clamped, never rejected.
func (c Config) Clamped() Config {
	c.WorldSize = clampFloat(c.WorldSize, minWorldSize, maxWorldSize, defaultWorldSize)
	c.MouseSensitivity = clampFloat(c.MouseSensitivity, minMouseSensitivity, maxMouseSensitivity, defaultMouseSensitivity)
	c.TotalCreatures = clampInt(c.TotalCreatures, 1, maxTotalCreatures)
	c.MaxAmmo = clampInt(c.MaxAmmo, 1, maxMaxAmmo)
	c.MaxLives = clampInt(c.MaxLives, 1, maxMaxLives)
	return c
}

// LoadConfig reads a YAML config file over DefaultConfig and returns the
// clamped result. Keys missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.Clamped(), nil
}

func clampFloat(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
