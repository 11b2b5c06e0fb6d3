package metrics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

func mustBody(t *testing.T, name string, pos, vel mgl32.Vec3, radius, mass float32) *body.Body {
	t.Helper()
	b, err := body.New(body.Params{Name: name, Position: pos, Velocity: vel, Radius: radius, Mass: mass, TrailCapacity: 10})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func world(t *testing.T, bodies ...*body.Body) sim.World {
	return sim.World{
		Star:      mustBody(t, "star", mgl32.Vec3{}, mgl32.Vec3{}, 50, 6000),
		Bodies:    bodies,
		Constants: physics.DefaultConstants(),
	}
}

func TestTotalEnergy(t *testing.T) {
	a := mustBody(t, "a", mgl32.Vec3{100, 0, 0}, mgl32.Vec3{0, 0, 3}, 5, 2)
	b := mustBody(t, "b", mgl32.Vec3{100, 0, 4}, mgl32.Vec3{4, 0, 0}, 5, 1)
	w := world(t, a, b)

	ke := 0.5*2*9 + 0.5*1*16
	pe := -500*6000*2/100.0 - 500*6000*1/math.Hypot(100, 4) - 500*2*1/5.0

	got := TotalEnergy(w)
	if math.Abs(got-(ke+pe)) > 1e-2 {
		t.Errorf("TotalEnergy = %f, want %f", got, ke+pe)
	}
}

func TestEnergyDrift(t *testing.T) {
	a := mustBody(t, "a", mgl32.Vec3{200, 0, 0}, mgl32.Vec3{0, 0, 100}, 5, 10)
	m := NewEnergyDrift()
	w := world(t, a)

	m.Observe(w)
	if m.Value() != 0 {
		t.Errorf("expected zero drift after one sample, got %f", m.Value())
	}

	a.ApplyForce(mgl32.Vec3{0, 0, 200})
	m.Observe(w)
	if m.Value() <= 0 {
		t.Error("expected positive drift after a velocity change")
	}
	if m.Current() == 0 {
		t.Error("expected current energy to be tracked")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestStability(t *testing.T) {
	near := mustBody(t, "near", mgl32.Vec3{100, 0, 0}, mgl32.Vec3{}, 1, 1)
	far := mustBody(t, "far", mgl32.Vec3{5000, 0, 0}, mgl32.Vec3{}, 1, 1)

	m := NewStability(2000)
	if m.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %f", m.Value())
	}

	m.Observe(world(t, near))
	m.Observe(world(t, near, far))
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 1 {
		t.Errorf("expected 1 after reset, got %f", m.Value())
	}
}

func TestOverlaps(t *testing.T) {
	a := mustBody(t, "a", mgl32.Vec3{20, 0, 0}, mgl32.Vec3{}, 5, 1)
	b := mustBody(t, "b", mgl32.Vec3{400, 0, 0}, mgl32.Vec3{}, 5, 1)
	c := mustBody(t, "c", mgl32.Vec3{403, 0, 0}, mgl32.Vec3{}, 5, 1)

	m := NewOverlaps()
	w := world(t, a, b, c)
	m.Observe(w)
	m.Observe(w)

	if m.Value() != 4 {
		t.Errorf("expected 4 overlaps over two ticks, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}
