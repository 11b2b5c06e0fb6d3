package config

import (
	"sort"

	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/san-kum/orbitsim/internal/sim"
)

var Presets = map[string]func() *Config{
	"solar": DefaultConfig,
	"calm": func() *Config {
		cfg := DefaultConfig()
		cfg.Scenario.Belt.Count = 0
		return cfg
	},
	"crowded": func() *Config {
		cfg := DefaultConfig()
		cfg.Order = sim.Synchronized.String()
		cfg.Workers = 4
		cfg.Scenario.Belt.Count = 200
		cfg.Scenario.Belt.Distance = scenario.Range{Min: 600, Max: 1200}
		return cfg
	},
	"binary": func() *Config {
		cfg := DefaultConfig()
		east, west := float32(0), float32(180)
		cfg.Scenario.Planets = []scenario.Planet{
			{Name: "east", OrbitRadius: 200, Size: 20, Mass: 100, Color: "#0079f1", AngleDeg: &east},
			{Name: "west", OrbitRadius: 200, Size: 20, Mass: 100, Color: "#e62937", AngleDeg: &west},
		}
		cfg.Scenario.Belt.Count = 0
		return cfg
	},
	"free-star": func() *Config {
		cfg := DefaultConfig()
		cfg.StarIsFixed = false
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
