// Package physics provides the force law and kinematic bounds used by the
// orbit simulator.
//
// Everything here is a pure function of its inputs:
//
//   - [Attraction]: pairwise gravitational force with a distance floor
//   - [ForceMagnitude]: scalar form of the same law
//   - [VelocityBound]: local escape-velocity-like speed ceiling
//   - [OrbitalVelocity]: circular orbit velocity around a central mass
//
// Scalars are float32 and vectors are [mgl32.Vec3]; positions and velocities
// are per-tick quantities, so there is no dt anywhere in the package.
//
// # Distance floors
//
// Distances are floored before they are squared so that two bodies passing
// close to each other receive a large but finite force:
//
//	f := physics.Attraction(a, b, m1, m2, c.G, c.MinPairDistance)
package physics
