package spring_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dampsim/spring"
)

func params(omega, zeta float64) spring.Params[float64] {
	cfg, err := spring.NewConfig(omega, zeta)
	Expect(err).NotTo(HaveOccurred())
	return cfg.Params()
}

func step(p spring.Params[float64], dt float64) spring.TimeStep[float64] {
	ts, err := spring.NewTimeStep(p, dt)
	Expect(err).NotTo(HaveOccurred())
	return ts
}

var _ = Describe("closed-form spring motion", func() {
	Describe("an under-damped spring (ω=5, ζ=0.5) released from 1", func() {
		const dt = 0.1
		var (
			p      spring.Params[float64]
			omegaD float64
			sigma  float64
		)

		BeforeEach(func() {
			p = params(5, 0.5)
			omegaD = 5 * math.Sqrt(0.75)
			sigma = 2.5
			Expect(p.Regime()).To(Equal(spring.UnderDamped))
		})

		It("stays inside the exponential envelope and decays toward equilibrium", func() {
			s := spring.New(1.0, 0.0, 0.0)
			ts := step(p, dt)
			amplitude := math.Hypot(1, sigma/omegaD)
			for i := 1; i <= 60; i++ {
				s.Update(ts)
				envelope := amplitude * math.Exp(-sigma*float64(i)*dt)
				Expect(math.Abs(s.Position)).To(BeNumerically("<=", envelope+1e-12))
			}
			Expect(math.Abs(s.Position)).To(BeNumerically("<", 1e-5))
		})

		It("crosses equilibrium every half damped period", func() {
			s := spring.New(1.0, 0.0, 0.0)
			ts := step(p, dt)

			var crossings []float64
			prev := s.Position
			for i := 1; i <= 40; i++ {
				s.Update(ts)
				if prev > 0 && s.Position <= 0 || prev < 0 && s.Position >= 0 {
					crossings = append(crossings, float64(i)*dt)
				}
				prev = s.Position
			}

			Expect(len(crossings)).To(BeNumerically(">=", 3))
			// x(t) = 0 first at (π − atan(ωd/σ)) / ωd, i.e. within the fifth step.
			first := (math.Pi - math.Atan(omegaD/sigma)) / omegaD
			Expect(crossings[0]).To(BeNumerically("~", first, dt))
			Expect(crossings[0]).To(BeNumerically("<", math.Pi/omegaD))
			for i := 1; i < len(crossings); i++ {
				Expect(crossings[i] - crossings[i-1]).To(BeNumerically("~", math.Pi/omegaD, dt))
			}
		})
	})

	Describe("a critically damped spring (ω=5, ζ=1)", func() {
		It("never overshoots for any sequence of non-negative steps", func() {
			p := params(5, 1)
			Expect(p.Regime()).To(Equal(spring.CriticallyDamped))

			rng := rand.New(rand.NewSource(7))
			s := spring.New(1.0, 0.0, 0.0)
			prev := s.Position
			for i := 0; i < 500; i++ {
				Expect(s.UpdateWithParams(p, rng.Float64()*0.2)).To(Succeed())
				Expect(s.Position).To(BeNumerically(">=", 0))
				Expect(s.Position).To(BeNumerically("<=", prev))
				prev = s.Position
			}
		})
	})

	Describe("an over-damped spring", func() {
		It("approaches equilibrium monotonically and slower than critical damping", func() {
			over := params(5, 2)
			critical := params(5, 1)
			Expect(over.Regime()).To(Equal(spring.OverDamped))

			a := spring.New(1.0, 0.0, 0.0)
			b := spring.New(1.0, 0.0, 0.0)
			tsOver, tsCritical := step(over, 0.05), step(critical, 0.05)
			prev := a.Position
			for i := 0; i < 100; i++ {
				a.Update(tsOver)
				b.Update(tsCritical)
				Expect(a.Position).To(BeNumerically(">", 0))
				Expect(a.Position).To(BeNumerically("<", prev))
				Expect(a.Position).To(BeNumerically(">", b.Position))
				prev = a.Position
			}
		})
	})

	DescribeTable("time steps compose additively",
		func(omega, zeta float64) {
			p := params(omega, zeta)
			split := spring.New(0.8, -1.5, 0.25)
			whole := split

			Expect(split.UpdateWithParams(p, 0.13)).To(Succeed())
			Expect(split.UpdateWithParams(p, 0.29)).To(Succeed())
			Expect(whole.UpdateWithParams(p, 0.42)).To(Succeed())

			Expect(split.Position).To(BeNumerically("~", whole.Position, 1e-12))
			Expect(split.Velocity).To(BeNumerically("~", whole.Velocity, 1e-10))
		},
		Entry("coasting", 0.0, 0.3),
		Entry("undamped", 5.0, 0.0),
		Entry("under-damped", 5.0, 0.5),
		Entry("critically damped", 5.0, 1.0),
		Entry("over-damped", 5.0, 2.0),
	)

	DescribeTable("coefficients are continuous across the critical band",
		func(zeta func() float64) {
			ts := step(params(5, zeta()), 0.1)
			ref := step(params(5, 1), 0.1)
			a0, a1, a2, a3 := ts.Coefficients()
			b0, b1, b2, b3 := ref.Coefficients()
			Expect(a0).To(BeNumerically("~", b0, 1e-6))
			Expect(a1).To(BeNumerically("~", b1, 1e-6))
			Expect(a2).To(BeNumerically("~", b2, 1e-6))
			Expect(a3).To(BeNumerically("~", b3, 1e-6))
		},
		Entry("just under", func() float64 { return 1 - 2*spring.Tolerance[float64]() }),
		Entry("just over", func() float64 { return 1 + 2*spring.Tolerance[float64]() }),
	)

	It("keeps float32 coefficients continuous across the critical band", func() {
		tol := spring.Tolerance[float32]()
		ref, _ := spring.NewConfig[float32](5, 1)
		refStep, _ := spring.NewTimeStep(ref.Params(), 0.1)
		b0, b1, b2, b3 := refStep.Coefficients()
		for _, zeta := range []float32{1 - 2*tol, 1 + 2*tol} {
			cfg, err := spring.NewConfig[float32](5, zeta)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Params().Regime()).NotTo(Equal(spring.CriticallyDamped))
			ts, err := spring.NewTimeStep(cfg.Params(), 0.1)
			Expect(err).NotTo(HaveOccurred())
			a0, a1, a2, a3 := ts.Coefficients()
			Expect(a0).To(BeNumerically("~", b0, 1e-3))
			Expect(a1).To(BeNumerically("~", b1, 1e-3))
			Expect(a2).To(BeNumerically("~", b2, 1e-3))
			Expect(a3).To(BeNumerically("~", b3, 1e-3))
		}
	})

	It("follows a retargeted equilibrium from the current state", func() {
		p := params(5, 0.5)
		ts := step(p, 0.1)

		s := spring.New(1.0, 0.0, 0.0)
		for i := 0; i < 3; i++ {
			s.Update(ts)
		}
		pos, vel := s.Position, s.Velocity

		s.Equilibrium = 4
		s.Update(ts)

		// same motion expressed relative to the new target
		shifted := spring.New(pos-4, vel, 0.0)
		shifted.Update(ts)
		Expect(s.Position).To(BeNumerically("~", shifted.Position+4, 1e-12))
		Expect(s.Velocity).To(BeNumerically("~", shifted.Velocity, 1e-12))
	})
})
