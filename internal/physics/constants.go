package physics

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultG                = 500.0
	DefaultMaxVelocityRatio = 1.5
	DefaultMinStarDistance  = 10.0
	DefaultMinPairDistance  = 5.0
	DefaultTrailLength      = 150
)

// ErrParameterBounds indicates a constant outside its valid range.
var ErrParameterBounds = errors.New("physics: parameter out of valid bounds")

// Constants groups the global simulation constants.
type Constants struct {
	G                float32 `yaml:"g"`
	MaxVelocityRatio float32 `yaml:"max_velocity_ratio"`
	MinStarDistance  float32 `yaml:"min_star_distance"`
	MinPairDistance  float32 `yaml:"min_pair_distance"`
	TrailLength      int     `yaml:"trail_length"`
}

func DefaultConstants() Constants {
	return Constants{
		G:                DefaultG,
		MaxVelocityRatio: DefaultMaxVelocityRatio,
		MinStarDistance:  DefaultMinStarDistance,
		MinPairDistance:  DefaultMinPairDistance,
		TrailLength:      DefaultTrailLength,
	}
}

func (c Constants) Validate() error {
	switch {
	case !positive(c.G):
		return fmt.Errorf("%w: g must be positive, got %v", ErrParameterBounds, c.G)
	case !positive(c.MaxVelocityRatio):
		return fmt.Errorf("%w: max_velocity_ratio must be positive, got %v", ErrParameterBounds, c.MaxVelocityRatio)
	case !positive(c.MinStarDistance):
		return fmt.Errorf("%w: min_star_distance must be positive, got %v", ErrParameterBounds, c.MinStarDistance)
	case !positive(c.MinPairDistance):
		return fmt.Errorf("%w: min_pair_distance must be positive, got %v", ErrParameterBounds, c.MinPairDistance)
	case c.TrailLength <= 0:
		return fmt.Errorf("%w: trail_length must be positive, got %d", ErrParameterBounds, c.TrailLength)
	}
	return nil
}

func positive(v float32) bool {
	f := float64(v)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
