package config

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/san-kum/orbitsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTicks     = 1000
	DefaultFrameRate = 60
	DefaultWorkers   = 1
)

type Config struct {
	Ticks       int               `yaml:"ticks"`
	Seed        int64             `yaml:"seed"`
	Order       string            `yaml:"order"`
	StarIsFixed bool              `yaml:"star_is_fixed"`
	Workers     int               `yaml:"workers"`
	FrameRate   int               `yaml:"fps"`
	Constants   physics.Constants `yaml:"constants"`
	Scenario    scenario.Spec     `yaml:"scenario"`
}

func DefaultConfig() *Config {
	return &Config{
		Ticks:       DefaultTicks,
		Order:       sim.Sequential.String(),
		StarIsFixed: true,
		Workers:     DefaultWorkers,
		FrameRate:   DefaultFrameRate,
		Constants:   physics.DefaultConstants(),
		Scenario:    scenario.Default(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", c.Ticks)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FrameRate)
	}
	if _, err := sim.ParseUpdateOrder(c.Order); err != nil {
		return err
	}
	if err := c.Constants.Validate(); err != nil {
		return err
	}
	return c.Scenario.Validate()
}

func (c *Config) SimConfig() (sim.Config, error) {
	order, err := sim.ParseUpdateOrder(c.Order)
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{
		Constants:     c.Constants,
		StarIsFixed:   c.StarIsFixed,
		Order:         order,
		Workers:       c.Workers,
		ValidateState: true,
	}, nil
}

// Build constructs the scene from the configured seed.
func (c *Config) Build() (*sim.Simulator, error) {
	return c.BuildWithSeed(c.Seed)
}

// BuildWithSeed constructs an independent simulator whose random belt is
// drawn from seed.
func (c *Config) BuildWithSeed(seed int64) (*sim.Simulator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	simCfg, err := c.SimConfig()
	if err != nil {
		return nil, err
	}
	star, bodies, err := scenario.Build(c.Scenario, c.Constants, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	return sim.New(simCfg, star, bodies)
}

// Find returns the first body with the given name, star included.
func Find(s *sim.Simulator, name string) (*body.Body, bool) {
	if s.Star().Name() == name {
		return s.Star(), true
	}
	for _, b := range s.Bodies() {
		if b.Name() == name {
			return b, true
		}
	}
	return nil, false
}

// SetConstant assigns a physics constant by its YAML name.
func (c *Config) SetConstant(name string, v float64) error {
	switch name {
	case "g":
		c.Constants.G = float32(v)
	case "max_velocity_ratio":
		c.Constants.MaxVelocityRatio = float32(v)
	case "min_star_distance":
		c.Constants.MinStarDistance = float32(v)
	case "min_pair_distance":
		c.Constants.MinPairDistance = float32(v)
	case "trail_length":
		c.Constants.TrailLength = int(v)
	default:
		return fmt.Errorf("unknown constant %q", name)
	}
	return nil
}
