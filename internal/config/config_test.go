package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbitsim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if !cfg.StarIsFixed {
		t.Error("star should be fixed by default")
	}
	if cfg.Constants.G != 500 || cfg.Constants.TrailLength != 150 {
		t.Errorf("unexpected constants %+v", cfg.Constants)
	}
	if len(cfg.Scenario.Planets) != 4 || cfg.Scenario.Belt.Count != 20 {
		t.Errorf("unexpected scenario: %d planets, %d belt bodies", len(cfg.Scenario.Planets), cfg.Scenario.Belt.Count)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := []byte(`ticks: 250
seed: 9
order: synchronized
constants:
  g: 250
  max_velocity_ratio: 2
  min_star_distance: 10
  min_pair_distance: 5
  trail_length: 40
scenario:
  star:
    radius: 30
    mass: 8000
    color: "#ffffff"
  planets:
    - name: solo
      orbit_radius: 300
      size: 10
      mass: 20
      angle_deg: 90
  belt:
    count: 0
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Ticks != 250 || cfg.Seed != 9 {
		t.Errorf("ticks=%d seed=%d", cfg.Ticks, cfg.Seed)
	}
	if cfg.FrameRate != DefaultFrameRate {
		t.Errorf("unset fps should keep default, got %d", cfg.FrameRate)
	}
	if cfg.Constants.G != 250 || cfg.Constants.TrailLength != 40 {
		t.Errorf("constants not loaded: %+v", cfg.Constants)
	}
	if len(cfg.Scenario.Planets) != 1 || *cfg.Scenario.Planets[0].AngleDeg != 90 {
		t.Errorf("planets not loaded: %+v", cfg.Scenario.Planets)
	}

	s, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if s.Config().Order != sim.Synchronized {
		t.Errorf("expected synchronized order, got %v", s.Config().Order)
	}
	if len(s.Bodies()) != 1 || s.Star().Mass() != 8000 {
		t.Errorf("unexpected scene: %d bodies, star mass %v", len(s.Bodies()), s.Star().Mass())
	}
	if s.Bodies()[0].Trail().Cap() != 40 {
		t.Errorf("trail capacity = %d, want 40", s.Bodies()[0].Trail().Cap())
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("ticks: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("binary")
	cfg.Seed = 77

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Seed != 77 || len(loaded.Scenario.Planets) != 2 || loaded.Scenario.Belt.Count != 0 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero ticks", func(c *Config) { c.Ticks = 0 }},
		{"zero fps", func(c *Config) { c.FrameRate = 0 }},
		{"bad order", func(c *Config) { c.Order = "leapfrog" }},
		{"bad constants", func(c *Config) { c.Constants.MinPairDistance = 0 }},
		{"bad scenario", func(c *Config) { c.Scenario.Star.Mass = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
			if _, err := cfg.Build(); err == nil {
				t.Error("expected build error")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s is nil", name)
		}
		if _, err := cfg.Build(); err != nil {
			t.Errorf("preset %s does not build: %v", name, err)
		}
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	a, b := GetPreset("calm"), GetPreset("calm")
	a.Ticks = 1
	if b.Ticks == 1 {
		t.Error("presets should be independent copies")
	}
}

func TestFind(t *testing.T) {
	s, err := GetPreset("calm").Build()
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := Find(s, "green"); !ok || b.Name() != "green" {
		t.Error("expected to find green")
	}
	if _, ok := Find(s, "star"); !ok {
		t.Error("expected to find the star")
	}
	if _, ok := Find(s, "pluto"); ok {
		t.Error("did not expect to find pluto")
	}
}

func TestSetConstant(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name  string
		value float64
		check func() bool
	}{
		{"g", 400, func() bool { return cfg.Constants.G == 400 }},
		{"max_velocity_ratio", 2, func() bool { return cfg.Constants.MaxVelocityRatio == 2 }},
		{"min_star_distance", 20, func() bool { return cfg.Constants.MinStarDistance == 20 }},
		{"min_pair_distance", 1, func() bool { return cfg.Constants.MinPairDistance == 1 }},
		{"trail_length", 30, func() bool { return cfg.Constants.TrailLength == 30 }},
	}
	for _, tt := range tests {
		if err := cfg.SetConstant(tt.name, tt.value); err != nil {
			t.Fatalf("SetConstant(%s): %v", tt.name, err)
		}
		if !tt.check() {
			t.Errorf("SetConstant(%s, %v) not applied: %+v", tt.name, tt.value, cfg.Constants)
		}
	}
	if err := cfg.SetConstant("mass", 1); err == nil {
		t.Error("unknown constant accepted")
	}
}
