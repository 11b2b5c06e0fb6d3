// Package body holds the kinematic state of a simulated body.
//
// Velocity is a per-tick displacement: advancing a body is position +=
// velocity with no time step. Mass and radius are fixed at construction.
package body

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Params describes a body to construct.
type Params struct {
	Name          string
	Position      mgl32.Vec3
	Velocity      mgl32.Vec3
	Radius        float32
	Mass          float32
	Color         color.RGBA
	TrailCapacity int
}

type Body struct {
	name     string
	position mgl32.Vec3
	velocity mgl32.Vec3
	radius   float32
	mass     float32
	color    color.RGBA
	trail    *Trail
}

// New validates p and returns the body. Mass and radius must be strictly
// positive and every component finite.
func New(p Params) (*Body, error) {
	if !finite(p.Mass) || !finite(p.Radius) || !finiteVec(p.Position) || !finiteVec(p.Velocity) {
		return nil, fmt.Errorf("%q: %w", p.Name, ErrNonFinite)
	}
	if p.Mass <= 0 {
		return nil, fmt.Errorf("%q: %w, got %v", p.Name, ErrInvalidMass, p.Mass)
	}
	if p.Radius <= 0 {
		return nil, fmt.Errorf("%q: %w, got %v", p.Name, ErrInvalidRadius, p.Radius)
	}
	if p.TrailCapacity <= 0 {
		return nil, fmt.Errorf("%q: %w, got %d", p.Name, ErrInvalidTrailCapacity, p.TrailCapacity)
	}
	return &Body{
		name:     p.Name,
		position: p.Position,
		velocity: p.Velocity,
		radius:   p.Radius,
		mass:     p.Mass,
		color:    p.Color,
		trail:    NewTrail(p.TrailCapacity),
	}, nil
}

func (b *Body) Name() string         { return b.name }
func (b *Body) Position() mgl32.Vec3 { return b.position }
func (b *Body) Velocity() mgl32.Vec3 { return b.velocity }
func (b *Body) Speed() float32       { return b.velocity.Len() }
func (b *Body) Radius() float32      { return b.radius }
func (b *Body) Mass() float32        { return b.mass }
func (b *Body) Color() color.RGBA    { return b.color }
func (b *Body) Trail() *Trail        { return b.trail }

// ApplyForce adds f/mass to the velocity, one component at a time.
func (b *Body) ApplyForce(f mgl32.Vec3) {
	b.velocity[0] += f[0] / b.mass
	b.velocity[1] += f[1] / b.mass
	b.velocity[2] += f[2] / b.mass
}

// ConstrainVelocity rescales the velocity to maxSpeed when it is faster,
// keeping its direction.
func (b *Body) ConstrainVelocity(maxSpeed float32) {
	speed := b.velocity.Len()
	if speed == 0 || speed <= maxSpeed {
		return
	}
	b.velocity = b.velocity.Mul(1 / speed).Mul(maxSpeed)
}

// UpdatePosition clamps the velocity to maxSpeed, moves the body by it and
// records the new position on the trail.
func (b *Body) UpdatePosition(maxSpeed float32) {
	b.ConstrainVelocity(maxSpeed)
	b.position = b.position.Add(b.velocity)
	b.trail.Push(b.position)
}

// CheckCollision reports whether the two bodies overlap: their centres are
// closer than the sum of their radii.
func (b *Body) CheckCollision(other *Body) bool {
	return other.position.Sub(b.position).Len() < b.radius+other.radius
}

func (b *Body) String() string {
	return fmt.Sprintf("%s pos=(%.2f, %.2f, %.2f) speed=%.3f", b.name,
		b.position.X(), b.position.Y(), b.position.Z(), b.Speed())
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteVec(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}
