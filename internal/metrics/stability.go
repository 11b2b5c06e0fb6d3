package metrics

import (
	"github.com/san-kum/orbitsim/internal/sim"
)

// Stability is the fraction of ticks on which every body stayed within
// radius of the star.
type Stability struct {
	name       string
	radius     float32
	violations int
	samples    int
}

func NewStability(radius float32) *Stability {
	return &Stability{
		name:   "stability",
		radius: radius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(w sim.World) {
	s.samples++
	center := w.Star.Position()
	for _, b := range w.Bodies {
		if b.Position().Sub(center).Len() > s.radius {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
