package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/sim"
)

// TotalEnergy is the kinetic energy of every body, star included, plus the
// floored pairwise potential. Velocities are per tick, so the unit is
// mass·distance²/tick².
func TotalEnergy(w sim.World) float64 {
	c := w.Constants
	g := float64(c.G)

	ke := kinetic(w.Star)
	pe := 0.0
	for i, a := range w.Bodies {
		ke += kinetic(a)
		pe += potential(g, a, w.Star, float64(c.MinStarDistance))
		for _, b := range w.Bodies[i+1:] {
			pe += potential(g, a, b, float64(c.MinPairDistance))
		}
	}
	return ke + pe
}

func kinetic(b *body.Body) float64 {
	v := float64(b.Speed())
	return 0.5 * float64(b.Mass()) * v * v
}

func potential(g float64, a, b *body.Body, floor float64) float64 {
	r := math.Max(float64(b.Position().Sub(a.Position()).Len()), floor)
	return -g * float64(a.Mass()) * float64(b.Mass()) / r
}

// EnergyDrift tracks the largest relative deviation of TotalEnergy from its
// first observed value.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(w sim.World) {
	energy := TotalEnergy(w)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Current() float64 {
	return e.currentEnergy
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
