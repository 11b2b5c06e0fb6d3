package metrics

import "github.com/san-kum/orbitsim/internal/sim"

// Overlaps counts overlapping pairs summed over every observed tick. It is
// informational; overlapping bodies keep moving through each other.
type Overlaps struct {
	total int
}

func NewOverlaps() *Overlaps { return &Overlaps{} }

func (o *Overlaps) Name() string { return "overlaps" }

func (o *Overlaps) Observe(w sim.World) {
	for i, a := range w.Bodies {
		if a.CheckCollision(w.Star) {
			o.total++
		}
		for _, b := range w.Bodies[i+1:] {
			if a.CheckCollision(b) {
				o.total++
			}
		}
	}
}

func (o *Overlaps) Value() float64 { return float64(o.total) }
func (o *Overlaps) Reset()         { o.total = 0 }
