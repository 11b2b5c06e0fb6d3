package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	minZoom = 0.05
	maxZoom = 50
)

// Camera is an orthographic view of the world. Pitch π/2 looks straight
// down the Y axis onto the orbital plane.
type Camera struct {
	Yaw, Pitch float32
	Zoom       float32
	// Target is the world point drawn at the centre of the canvas.
	Target mgl32.Vec3
	// Extent is the world distance mapped to half the shorter canvas side
	// at zoom 1.
	Extent float32
}

func NewCamera(extent float32) *Camera {
	if extent <= 0 {
		extent = 1
	}
	return &Camera{Pitch: math.Pi / 2, Zoom: 1, Extent: extent}
}

func (c *Camera) ZoomIn()  { c.Zoom = mgl32.Clamp(c.Zoom*1.25, minZoom, maxZoom) }
func (c *Camera) ZoomOut() { c.Zoom = mgl32.Clamp(c.Zoom/1.25, minZoom, maxZoom) }

func (c *Camera) Tilt(a float32) {
	c.Pitch = mgl32.Clamp(c.Pitch+a, 0, math.Pi/2)
}

func (c *Camera) Turn(a float32) { c.Yaw += a }

// Pan moves the target across the orbital plane by a fraction of the
// visible extent, in screen directions.
func (c *Camera) Pan(right, down float32) {
	step := c.Extent / c.Zoom * 0.1
	sin, cos := math.Sincos(float64(c.Yaw))
	s, co := float32(sin), float32(cos)
	c.Target = c.Target.Add(mgl32.Vec3{(right*co + down*s) * step, 0, (-right*s + down*co) * step})
}

// Scale is the number of dots per world unit on a w x h dot canvas.
func (c *Camera) Scale(w, h int) float32 {
	side := w
	if h < side {
		side = h
	}
	return c.Zoom * float32(side) / (2 * c.Extent)
}

// Project maps a world point to dot coordinates on a w x h canvas and
// reports whether it lands on the canvas.
func (c *Camera) Project(p mgl32.Vec3, w, h int) (int, int, bool) {
	rel := p.Sub(c.Target)
	r := mgl32.Rotate3DX(c.Pitch).Mul3x1(mgl32.Rotate3DY(c.Yaw).Mul3x1(rel))
	scale := c.Scale(w, h)
	x := int(math.Round(float64(r.X()*scale))) + w/2
	y := int(math.Round(float64(-r.Y()*scale))) + h/2
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}
