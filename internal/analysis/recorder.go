package analysis

import (
	"github.com/san-kum/orbitsim/internal/sim"
)

// Recorder keeps per-body series of the X offset from the star and of the
// distance to the star.
type Recorder struct {
	filter   map[string]bool
	order    []string
	offsets  map[string][]float64
	distance map[string][]float64
}

// NewRecorder records the named bodies, or every body when no names are
// given.
func NewRecorder(names ...string) *Recorder {
	r := &Recorder{
		offsets:  make(map[string][]float64),
		distance: make(map[string][]float64),
	}
	if len(names) > 0 {
		r.filter = make(map[string]bool, len(names))
		for _, n := range names {
			r.filter[n] = true
		}
	}
	return r
}

func (r *Recorder) OnTick(w sim.World) {
	center := w.Star.Position()
	for _, b := range w.Bodies {
		name := b.Name()
		if r.filter != nil && !r.filter[name] {
			continue
		}
		if _, seen := r.offsets[name]; !seen {
			r.order = append(r.order, name)
		}
		rel := b.Position().Sub(center)
		r.offsets[name] = append(r.offsets[name], float64(rel.X()))
		r.distance[name] = append(r.distance[name], float64(rel.Len()))
	}
}

// Names returns the recorded bodies in first-seen order.
func (r *Recorder) Names() []string { return r.order }

func (r *Recorder) Offsets(name string) []float64  { return r.offsets[name] }
func (r *Recorder) Distances(name string) []float64 { return r.distance[name] }
