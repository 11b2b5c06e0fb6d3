// Package sim advances a star and its orbiting bodies one tick at a time.
//
// A tick accumulates, for every body, the star's pull plus the pull of every
// other body, clamps the body's speed to a bound derived from its distance
// to the star, and moves it. Step is synchronous and must not be called
// concurrently with readers of the bodies.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/physics"
)

type Simulator struct {
	cfg       Config
	star      *body.Body
	bodies    []*body.Body
	tick      int
	metrics   []Metric
	observers []Observer

	forces []mgl32.Vec3
	bounds []float32
}

func New(cfg Config, star *body.Body, bodies []*body.Body) (*Simulator, error) {
	if err := cfg.Constants.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Order != Sequential && cfg.Order != Synchronized {
		return nil, fmt.Errorf("%w: unknown update order %d", ErrInvalidConfig, cfg.Order)
	}
	if star == nil {
		return nil, ErrNilStar
	}
	for i, b := range bodies {
		if b == nil {
			return nil, fmt.Errorf("%w: body %d is nil", ErrInvalidConfig, i)
		}
	}
	return &Simulator{
		cfg:    cfg,
		star:   star,
		bodies: bodies,
		forces: make([]mgl32.Vec3, len(bodies)),
		bounds: make([]float32, len(bodies)),
	}, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Config() Config       { return s.cfg }
func (s *Simulator) Star() *body.Body     { return s.star }
func (s *Simulator) Bodies() []*body.Body { return s.bodies }
func (s *Simulator) Tick() int            { return s.tick }

func (s *Simulator) World() World {
	return World{Tick: s.tick, Star: s.star, Bodies: s.bodies, Constants: s.cfg.Constants}
}

// NetForce returns the force currently acting on body i: the star's pull
// plus every other body's pull, each with its own distance floor.
func (s *Simulator) NetForce(i int) mgl32.Vec3 {
	c := s.cfg.Constants
	b := s.bodies[i]
	pos, mass := b.Position(), b.Mass()

	// Star term is g*starMass*mass, pair terms g*mass*otherMass.
	total := physics.Attraction(pos, s.star.Position(), s.star.Mass(), mass, c.G, c.MinStarDistance)
	for j, other := range s.bodies {
		if j == i {
			continue
		}
		total = total.Add(physics.Attraction(pos, other.Position(), mass, other.Mass(), c.G, c.MinPairDistance))
	}
	return total
}

// VelocityBound returns the speed ceiling for body i at its current
// distance to the star.
func (s *Simulator) VelocityBound(i int) float32 {
	c := s.cfg.Constants
	dist := s.bodies[i].Position().Sub(s.star.Position()).Len()
	return physics.VelocityBound(c.MaxVelocityRatio, c.G, s.star.Mass(), dist)
}

// StarForce returns the reaction the bodies exert on the star.
func (s *Simulator) StarForce() mgl32.Vec3 {
	c := s.cfg.Constants
	var total mgl32.Vec3
	for _, b := range s.bodies {
		total = total.Add(physics.Attraction(s.star.Position(), b.Position(), s.star.Mass(), b.Mass(), c.G, c.MinStarDistance))
	}
	return total
}

// Step advances the simulation by one tick.
func (s *Simulator) Step() {
	switch s.cfg.Order {
	case Synchronized:
		s.stepSynchronized()
	default:
		s.stepSequential()
	}
	s.tick++
}

func (s *Simulator) stepSequential() {
	for i, b := range s.bodies {
		f := s.NetForce(i)
		bound := s.VelocityBound(i)
		b.ApplyForce(f)
		b.UpdatePosition(bound)
	}
	if !s.cfg.StarIsFixed {
		s.moveStar(s.StarForce())
	}
}

func (s *Simulator) stepSynchronized() {
	parallelFor(len(s.bodies), s.cfg.Workers, func(start, end int) {
		for i := start; i < end; i++ {
			s.forces[i] = s.NetForce(i)
			s.bounds[i] = s.VelocityBound(i)
		}
	})

	var starForce mgl32.Vec3
	if !s.cfg.StarIsFixed {
		starForce = s.StarForce()
	}

	for i, b := range s.bodies {
		b.ApplyForce(s.forces[i])
		b.UpdatePosition(s.bounds[i])
	}
	if !s.cfg.StarIsFixed {
		s.moveStar(starForce)
	}
}

// moveStar is only reached when the star is free; it has no speed bound.
func (s *Simulator) moveStar(f mgl32.Vec3) {
	s.star.ApplyForce(f)
	s.star.UpdatePosition(float32(math.Inf(1)))
}

// Overlaps lists every pair of bodies, star included, whose spheres
// intersect. It does not affect motion.
func (s *Simulator) Overlaps() []Overlap {
	var out []Overlap
	for i, a := range s.bodies {
		if a.CheckCollision(s.star) {
			out = append(out, Overlap{A: s.star, B: a})
		}
		for _, b := range s.bodies[i+1:] {
			if a.CheckCollision(b) {
				out = append(out, Overlap{A: a, B: b})
			}
		}
	}
	return out
}

// Run steps the simulation ticks times, feeding metrics and observers after
// every tick. It stops early on cancellation or, with ValidateState, on the
// first body that diverges.
func (s *Simulator) Run(ctx context.Context, ticks int) (*Result, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidConfig, ticks)
	}

	result := &Result{
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Step()
		result.Ticks++

		if s.cfg.ValidateState {
			if err := s.validate(); err != nil {
				result.Errors = append(result.Errors, err)
				break
			}
		}

		w := s.World()
		for _, m := range s.metrics {
			m.Observe(w)
		}
		for _, obs := range s.observers {
			obs.OnTick(w)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validate() error {
	check := func(b *body.Body) error {
		if !finiteVec(b.Position()) || !finiteVec(b.Velocity()) {
			return &TickError{Tick: s.tick, Body: b.Name(), Wrapped: ErrNonFinite}
		}
		return nil
	}
	if err := check(s.star); err != nil {
		return err
	}
	for _, b := range s.bodies {
		if err := check(b); err != nil {
			return err
		}
	}
	return nil
}

func finiteVec(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
