package game

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_DefaultIsInRange(t *testing.T) {
	d := DefaultConfig()
	if d.Clamped() != d {
		t.Fatalf("default config changed under clamping: %+v → %+v", d, d.Clamped())
	}
	if d.WorldSize != 500 || d.TotalCreatures != 20 || d.MaxAmmo != 30 || d.MaxLives != 3 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestConfig_ClampedForcesBounds(t *testing.T) {
	c := Config{
		WorldSize:        50,
		MouseSensitivity: 1,
		TotalCreatures:   0,
		MaxAmmo:          5000,
		MaxLives:         -3,
	}.Clamped()

	if c.WorldSize != 300 {
		t.Fatalf("world size: got %.0f, want 300", c.WorldSize)
	}
	if c.MouseSensitivity != 0.01 {
		t.Fatalf("sensitivity: got %g, want 0.01", c.MouseSensitivity)
	}
	if c.TotalCreatures != 1 {
		t.Fatalf("creatures: got %d, want 1", c.TotalCreatures)
	}
	if c.MaxAmmo != 999 {
		t.Fatalf("ammo: got %d, want 999", c.MaxAmmo)
	}
	if c.MaxLives != 1 {
		t.Fatalf("lives: got %d, want 1", c.MaxLives)
	}
}

func TestConfig_NaNFallsBackToDefault(t *testing.T) {
	c := Config{WorldSize: math.NaN(), MouseSensitivity: math.NaN()}.Clamped()
	if c.WorldSize != defaultWorldSize {
		t.Fatalf("world size: got %v, want %v", c.WorldSize, defaultWorldSize)
	}
	if c.MouseSensitivity != defaultMouseSensitivity {
		t.Fatalf("sensitivity: got %v, want %v", c.MouseSensitivity, defaultMouseSensitivity)
	}
}

func TestLoadConfig_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hunter.yaml")
	body := "world_size: 2000\ntotal_creatures: 5\nseed: 42\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.WorldSize != 1000 {
		t.Fatalf("world size should clamp to 1000, got %.0f", cfg.WorldSize)
	}
	if cfg.TotalCreatures != 5 {
		t.Fatalf("creatures: got %d, want 5", cfg.TotalCreatures)
	}
	if cfg.MaxAmmo != defaultMaxAmmo {
		t.Fatalf("ammo should keep default %d, got %d", defaultMaxAmmo, cfg.MaxAmmo)
	}
	if cfg.Seed != 42 {
		t.Fatalf("seed: got %d, want 42", cfg.Seed)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("world_size: [\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if cfg != DefaultConfig() {
		t.Fatalf("a failed load should return defaults, got %+v", cfg)
	}
}
