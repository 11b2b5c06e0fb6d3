package main

import (
	"math"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/spf13/cobra"
)

func testCommand(t *testing.T) *cobra.Command {
	t.Helper()
	logger = hclog.NewNullLogger()
	preset, configFile = "", ""

	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "")
	f.StringVar(&preset, "preset", "", "")
	f.Int64Var(&seed, "seed", 0, "")
	f.IntVar(&ticks, "ticks", 1000, "")
	f.StringVar(&order, "order", "sequential", "")
	f.IntVar(&workers, "workers", 1, "")
	f.BoolVar(&freeStar, "free-star", false, "")
	f.IntVar(&frameRate, "fps", 60, "")
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	cmd := testCommand(t)
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ticks != 1000 || !cfg.StarIsFixed || cfg.Order != "sequential" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	cmd := testCommand(t)
	for flag, value := range map[string]string{
		"preset":    "calm",
		"seed":      "7",
		"ticks":     "50",
		"order":     "synchronized",
		"free-star": "true",
	} {
		if err := cmd.Flags().Set(flag, value); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 7 || cfg.Ticks != 50 || cfg.Order != "synchronized" || cfg.StarIsFixed {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Scenario.Belt.Count != 0 {
		t.Errorf("calm preset not applied, belt = %d", cfg.Scenario.Belt.Count)
	}
	if cfg.Workers != 1 {
		t.Errorf("unchanged flag overrode preset: workers = %d", cfg.Workers)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		flag  string
		value string
	}{
		{"unknown preset", "preset", "nope"},
		{"bad order", "order", "random"},
		{"zero ticks", "ticks", "0"},
		{"missing file", "config", "/nonexistent/orbitsim.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := testCommand(t)
			if err := cmd.Flags().Set(tt.flag, tt.value); err != nil {
				t.Fatal(err)
			}
			if _, err := loadConfig(cmd); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPlanetNames(t *testing.T) {
	spec := scenario.Spec{Planets: []scenario.Planet{{Name: "a"}, {}}}
	got := planetNames(spec)
	if len(got) != 2 || got[0] != "a" || got[1] != "planet-2" {
		t.Errorf("planetNames = %v", got)
	}
}

func TestMeanStd(t *testing.T) {
	mean, std := meanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if mean != 5 || math.Abs(std-2) > 1e-12 {
		t.Errorf("meanStd = %v, %v, want 5, 2", mean, std)
	}
	if m, s := meanStd(nil); m != 0 || s != 0 {
		t.Errorf("meanStd(nil) = %v, %v", m, s)
	}
}

func TestCheckOrbiting(t *testing.T) {
	s, err := config.GetPreset("calm").Build()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		names   []string
		wantErr bool
	}{
		{"planets", []string{"blue", "green"}, false},
		{"none", nil, false},
		{"unknown", []string{"blue", "pluto"}, true},
		{"star", []string{"star"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkOrbiting(s, tt.names); (err != nil) != tt.wantErr {
				t.Errorf("checkOrbiting(%v) err = %v, wantErr %v", tt.names, err, tt.wantErr)
			}
		})
	}
}
