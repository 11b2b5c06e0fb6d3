package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction returns v scaled to unit length, or the zero vector when v has
// zero length.
func Direction(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// ForceMagnitude is g*m1*m2/d² with d = max(dist, floor).
func ForceMagnitude(dist, m1, m2, g, floor float32) float32 {
	d := dist
	if d < floor {
		d = floor
	}
	return g * m1 * m2 / (d * d)
}

// Attraction returns the force pulling the body at from toward the body at to,
// with magnitude g*m1*m2/d² evaluated left to right. Coincident positions have
// no direction and produce a zero force.
func Attraction(from, to mgl32.Vec3, m1, m2, g, floor float32) mgl32.Vec3 {
	dir := to.Sub(from)
	mag := ForceMagnitude(dir.Len(), m1, m2, g, floor)
	return Direction(dir).Mul(mag)
}

// VelocityBound returns ratio*sqrt(g*starMass/dist). dist is the real,
// unfloored distance to the star; at zero distance the bound is +Inf.
func VelocityBound(ratio, g, starMass, dist float32) float32 {
	if dist <= 0 {
		return float32(math.Inf(1))
	}
	return ratio * float32(math.Sqrt(float64(g*starMass/dist)))
}

// OrbitalSpeed is the circular orbit speed at radius scaled by factor.
func OrbitalSpeed(g, starMass, radius, factor float32) float32 {
	return float32(math.Sqrt(float64(g*starMass/radius))) * factor
}

// OrbitalVelocity returns the in-plane (XZ) velocity tangent to a circular
// orbit at angle radians.
func OrbitalVelocity(g, starMass, radius, factor, angle float32) mgl32.Vec3 {
	speed := OrbitalSpeed(g, starMass, radius, factor)
	sin, cos := math.Sincos(float64(angle))
	return mgl32.Vec3{speed * -float32(sin), 0, speed * float32(cos)}
}

// OrbitPosition places a body at radius from the origin on the XZ plane,
// lifted to height on Y.
func OrbitPosition(radius, height, angle float32) mgl32.Vec3 {
	sin, cos := math.Sincos(float64(angle))
	return mgl32.Vec3{radius * float32(cos), height, radius * float32(sin)}
}
