// Package scenario builds the initial star and body collection.
//
// A scene is a deterministic set of named planets plus a randomized belt.
// All randomness comes from the *rand.Rand passed to Build, so a fixed seed
// reproduces the same scene.
package scenario

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/physics"
)

var ErrInvalidSpec = errors.New("scenario: invalid spec")

type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// Sample draws uniformly from [Min, Max]. A degenerate range returns Min.
func (r Range) Sample(rng *rand.Rand) float32 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float32()*(r.Max-r.Min)
}

// Grid draws a value on the lattice Min, Min+1/per, ..., Max as an integer
// count divided by per. Endpoints are rounded onto the lattice first.
func (r Range) Grid(rng *rand.Rand, per float32) float32 {
	lo := int(math.Round(float64(r.Min * per)))
	hi := int(math.Round(float64(r.Max * per)))
	if hi <= lo {
		return float32(lo) / per
	}
	return float32(lo+rng.Intn(hi-lo+1)) / per
}

type Star struct {
	Name   string  `yaml:"name"`
	Radius float32 `yaml:"radius"`
	Mass   float32 `yaml:"mass"`
	Color  string  `yaml:"color"`
}

type Planet struct {
	Name        string  `yaml:"name"`
	OrbitRadius float32 `yaml:"orbit_radius"`
	Height      float32 `yaml:"height"`
	Size        float32 `yaml:"size"`
	Mass        float32 `yaml:"mass"`
	// OrbitFactor scales the circular orbit speed; zero means 1.
	OrbitFactor float32 `yaml:"orbit_factor,omitempty"`
	Color       string  `yaml:"color"`
	// AngleDeg pins the orbit angle; nil draws it from the random source.
	AngleDeg *float32 `yaml:"angle_deg,omitempty"`
}

// Belt describes Count randomized bodies on roughly circular orbits.
type Belt struct {
	Count         int     `yaml:"count"`
	Distance      Range   `yaml:"distance"`
	Height        float32 `yaml:"height"`
	SpeedFactor   Range   `yaml:"speed_factor"`
	VerticalSpeed Range   `yaml:"vertical_speed"`
	Size          Range   `yaml:"size"`
	Mass          Range   `yaml:"mass"`
	Color         string  `yaml:"color"`
}

type Spec struct {
	Star        Star     `yaml:"star"`
	Planets     []Planet `yaml:"planets"`
	Belt        Belt     `yaml:"belt"`
	// IntegerGrid draws random angles in whole degrees, belt distance, size
	// and mass as whole numbers and belt speeds in hundredths. Otherwise
	// every draw is continuous.
	IntegerGrid bool     `yaml:"integer_grid"`
}

// Default returns the reference scene: four named planets and a belt of
// twenty small bodies around a heavy star.
func Default() Spec {
	return Spec{
		Star: Star{Name: "star", Radius: 50, Mass: 6000, Color: "#ffcb00"},
		Planets: []Planet{
			{Name: "blue", OrbitRadius: 200, Height: 25, Size: 20, Mass: 100, Color: "#0079f1"},
			{Name: "red", OrbitRadius: 350, Height: -25, Size: 15, Mass: 50, OrbitFactor: 0.9, Color: "#e62937"},
			{Name: "green", OrbitRadius: 700, Height: 54.5, Size: 20, Mass: 100, Color: "#00e430"},
			{Name: "orange", OrbitRadius: 1500, Height: 100, Size: 200, Mass: 100, Color: "#ffa100"},
		},
		Belt: Belt{
			Count:         20,
			Distance:      Range{Min: 750, Max: 1000},
			Height:        50,
			SpeedFactor:   Range{Min: 0.8, Max: 1.2},
			VerticalSpeed: Range{Min: -0.1, Max: 0.1},
			Size:          Range{Min: 2, Max: 5},
			Mass:          Range{Min: 1, Max: 10},
			Color:         "#828282",
		},
		IntegerGrid: true,
	}
}

func (s Spec) Validate() error {
	if s.Star.Mass <= 0 || s.Star.Radius <= 0 {
		return fmt.Errorf("%w: star mass and radius must be positive", ErrInvalidSpec)
	}
	for _, p := range s.Planets {
		if p.OrbitRadius <= 0 {
			return fmt.Errorf("%w: planet %q orbit_radius must be positive", ErrInvalidSpec, p.Name)
		}
	}
	b := s.Belt
	if b.Count < 0 {
		return fmt.Errorf("%w: belt count must not be negative", ErrInvalidSpec)
	}
	if b.Count > 0 && (b.Distance.Min <= 0 || b.Size.Min <= 0 || b.Mass.Min <= 0) {
		return fmt.Errorf("%w: belt distance, size and mass must be positive", ErrInvalidSpec)
	}
	return nil
}

// Build creates the star and the ordered body collection: named planets
// first, then the belt.
func Build(spec Spec, c physics.Constants, rng *rand.Rand) (*body.Body, []*body.Body, error) {
	if err := spec.Validate(); err != nil {
		return nil, nil, err
	}

	starColor, err := ParseColor(spec.Star.Color)
	if err != nil {
		return nil, nil, err
	}
	star, err := body.New(body.Params{
		Name:          nameOr(spec.Star.Name, "star"),
		Radius:        spec.Star.Radius,
		Mass:          spec.Star.Mass,
		Color:         starColor,
		TrailCapacity: c.TrailLength,
	})
	if err != nil {
		return nil, nil, err
	}

	bodies := make([]*body.Body, 0, len(spec.Planets)+spec.Belt.Count)
	d := drawer{rng: rng, grid: spec.IntegerGrid}

	for i, p := range spec.Planets {
		angle := d.angle()
		if p.AngleDeg != nil {
			angle = mgl32.DegToRad(*p.AngleDeg)
		}
		factor := p.OrbitFactor
		if factor == 0 {
			factor = 1
		}
		col, err := ParseColor(p.Color)
		if err != nil {
			return nil, nil, err
		}
		b, err := body.New(body.Params{
			Name:          nameOr(p.Name, fmt.Sprintf("planet-%d", i+1)),
			Position:      physics.OrbitPosition(p.OrbitRadius, p.Height, angle),
			Velocity:      physics.OrbitalVelocity(c.G, star.Mass(), p.OrbitRadius, factor, angle),
			Radius:        p.Size,
			Mass:          p.Mass,
			Color:         col,
			TrailCapacity: c.TrailLength,
		})
		if err != nil {
			return nil, nil, err
		}
		bodies = append(bodies, b)
	}

	belt := spec.Belt
	beltColor, err := ParseColor(belt.Color)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < belt.Count; i++ {
		dist := d.sample(belt.Distance, 1)
		angle := d.angle()
		factor := d.sample(belt.SpeedFactor, 100)
		vel := physics.OrbitalVelocity(c.G, star.Mass(), dist, factor, angle)
		vel[1] = d.sample(belt.VerticalSpeed, 100)
		radius := d.sample(belt.Size, 1)
		mass := d.sample(belt.Mass, 1)

		b, err := body.New(body.Params{
			Name:          fmt.Sprintf("belt-%02d", i+1),
			Position:      physics.OrbitPosition(dist, belt.Height, angle),
			Velocity:      vel,
			Radius:        radius,
			Mass:          mass,
			Color:         beltColor,
			TrailCapacity: c.TrailLength,
		})
		if err != nil {
			return nil, nil, err
		}
		bodies = append(bodies, b)
	}

	return star, bodies, nil
}

// ParseColor reads a #rrggbb colour. An empty string is white.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalidSpec, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

type drawer struct {
	rng  *rand.Rand
	grid bool
}

func (d drawer) sample(r Range, per float32) float32 {
	if d.grid {
		return r.Grid(d.rng, per)
	}
	return r.Sample(d.rng)
}

func (d drawer) angle() float32 {
	if d.grid {
		return mgl32.DegToRad(float32(d.rng.Intn(361)))
	}
	return d.rng.Float32() * 2 * math.Pi
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}
