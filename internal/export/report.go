package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbitsim/internal/sim"
)

type BodyReport struct {
	Name     string     `json:"name"`
	Position [3]float32 `json:"position"`
	Velocity [3]float32 `json:"velocity"`
	Speed    float32    `json:"speed"`
	Distance float32    `json:"distance"`
	Mass     float32    `json:"mass"`
	Radius   float32    `json:"radius"`
}

// Report is the end-of-run summary written by `orbitsim run --json`.
type Report struct {
	Ticks       int                `json:"ticks"`
	Seed        int64              `json:"seed"`
	Order       string             `json:"order"`
	StarIsFixed bool               `json:"star_is_fixed"`
	Star        BodyReport         `json:"star"`
	Bodies      []BodyReport       `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
	Overlaps    [][2]string        `json:"overlaps,omitempty"`
}

func NewReport(s *sim.Simulator, seed int64, res *sim.Result) Report {
	center := s.Star().Position()
	describe := func(name string, pos, vel [3]float32, speed, dist, mass, radius float32) BodyReport {
		return BodyReport{Name: name, Position: pos, Velocity: vel, Speed: speed, Distance: dist, Mass: mass, Radius: radius}
	}

	star := s.Star()
	r := Report{
		Ticks:       s.Tick(),
		Seed:        seed,
		Order:       s.Config().Order.String(),
		StarIsFixed: s.Config().StarIsFixed,
		Star:        describe(star.Name(), star.Position(), star.Velocity(), star.Speed(), 0, star.Mass(), star.Radius()),
		Bodies:      make([]BodyReport, 0, len(s.Bodies())),
		Metrics:     map[string]float64{},
	}
	for _, b := range s.Bodies() {
		r.Bodies = append(r.Bodies, describe(b.Name(), b.Position(), b.Velocity(), b.Speed(), b.Position().Sub(center).Len(), b.Mass(), b.Radius()))
	}
	if res != nil {
		for k, v := range res.Metrics {
			r.Metrics[k] = v
		}
	}
	for _, o := range s.Overlaps() {
		r.Overlaps = append(r.Overlaps, [2]string{o.A.Name(), o.B.Name()})
	}
	return r
}

func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
