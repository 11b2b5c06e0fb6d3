package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/orbitsim/internal/body"
)

const (
	trailStride    = 5
	trailRadius    = 1.8
	trailAlpha     = 0.3
	minSegment     = 0.01
	starWireScale  = 1.1
	sphereRings    = 16
	sphereSlices   = 16
	cylinderSlices = 6
)

func toVector3(v mgl32.Vec3) rl.Vector3 { return rl.NewVector3(v.X(), v.Y(), v.Z()) }
func toColor(c color.RGBA) rl.Color    { return rl.NewColor(c.R, c.G, c.B, c.A) }

func (a *App) drawStar() {
	s := a.Sim.Star()
	pos := toVector3(s.Position())
	rl.DrawSphere(pos, s.Radius(), toColor(s.Color()))
	rl.DrawSphereWires(pos, s.Radius()*starWireScale, sphereRings, sphereSlices, rl.Yellow)
	if a.Trails && !a.Sim.Config().StarIsFixed {
		drawTrail(s.Trail(), toColor(s.Color()))
	}
}

func (a *App) drawBodies() {
	for _, b := range a.Sim.Bodies() {
		rl.DrawSphere(toVector3(b.Position()), b.Radius(), toColor(b.Color()))
		if a.Trails {
			drawTrail(b.Trail(), toColor(b.Color()))
		}
	}
}

func drawTrail(t *body.Trail, c rl.Color) {
	faded := rl.Fade(c, trailAlpha)
	for _, seg := range trailSegments(t) {
		rl.DrawCylinderEx(toVector3(seg[0]), toVector3(seg[1]), trailRadius, trailRadius, cylinderSlices, faded)
	}
}

// trailSegments pairs each point at index 1, 1+trailStride, 1+2*trailStride
// and so on with its predecessor, oldest first, dropping segments too
// short to draw. The gaps between pairs give the dashed look.
func trailSegments(t *body.Trail) [][2]mgl32.Vec3 {
	pts := t.Points()
	var segs [][2]mgl32.Vec3
	for i := 1; i < len(pts); i += trailStride {
		if pts[i].Sub(pts[i-1]).Len() > minSegment {
			segs = append(segs, [2]mgl32.Vec3{pts[i-1], pts[i]})
		}
	}
	return segs
}
