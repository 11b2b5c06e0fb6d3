package sim_test

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitsim/internal/body"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

var _ = Describe("Simulator", func() {
	var (
		consts physics.Constants
		star   *body.Body
	)

	mustBody := func(p body.Params) *body.Body {
		p.TrailCapacity = consts.TrailLength
		b, err := body.New(p)
		Expect(err).NotTo(HaveOccurred())
		return b
	}

	BeforeEach(func() {
		consts = physics.DefaultConstants()
		star = mustBody(body.Params{Name: "star", Radius: 50, Mass: 6000})
	})

	Context("with a planet on a circular orbit at radius 200", func() {
		var planet *body.Body

		BeforeEach(func() {
			planet = mustBody(body.Params{
				Name:     "blue",
				Position: physics.OrbitPosition(200, 0, 0),
				Velocity: physics.OrbitalVelocity(consts.G, star.Mass(), 200, 1, 0),
				Radius:   20,
				Mass:     100,
			})
		})

		It("starts at the circular orbit speed", func() {
			Expect(float64(planet.Speed())).To(BeNumerically("~", 122.47, 0.01))
			Expect(planet.Trail().Len()).To(BeZero())
		})

		It("evicts the first trail point after 151 ticks", func() {
			s, err := sim.New(sim.DefaultConfig(), star, []*body.Body{planet})
			Expect(err).NotTo(HaveOccurred())

			var history []mgl32.Vec3
			for i := 0; i < 151; i++ {
				s.Step()
				history = append(history, planet.Position())
			}

			Expect(planet.Trail().Len()).To(Equal(150))
			Expect(planet.Trail().At(0)).To(Equal(history[1]))
			latest, ok := planet.Trail().Latest()
			Expect(ok).To(BeTrue())
			Expect(latest).To(Equal(planet.Position()))
		})

		It("keeps a finite state and a fixed star over a long run", func() {
			s, err := sim.New(sim.DefaultConfig(), star, []*body.Body{planet})
			Expect(err).NotTo(HaveOccurred())

			result, err := s.Run(context.Background(), 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).To(BeEmpty())
			Expect(result.Ticks).To(Equal(1000))
			Expect(star.Position()).To(Equal(mgl32.Vec3{}))
		})
	})

	Context("when the star is free", func() {
		It("is pulled toward the bodies", func() {
			cfg := sim.DefaultConfig()
			cfg.StarIsFixed = false
			heavy := mustBody(body.Params{Name: "heavy", Position: mgl32.Vec3{400, 0, 0}, Radius: 10, Mass: 3000})

			s, err := sim.New(cfg, star, []*body.Body{heavy})
			Expect(err).NotTo(HaveOccurred())
			s.Step()

			Expect(star.Position().X()).To(BeNumerically(">", 0))
			Expect(star.Trail().Len()).To(Equal(1))
		})
	})

	DescribeTable("force is bounded near zero distance",
		func(dist float32) {
			limit := consts.G * 10 * 10 / (consts.MinPairDistance * consts.MinPairDistance)
			Expect(physics.ForceMagnitude(dist, 10, 10, consts.G, consts.MinPairDistance)).To(BeNumerically("<=", limit))
		},
		Entry("at zero", float32(0)),
		Entry("just above zero", float32(1e-5)),
		Entry("inside the floor", float32(2.5)),
		Entry("at the floor", float32(5)),
	)
})
