package sim

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/pendulum"
)

var _ = Describe("Simulator", func() {
	var (
		params pendulum.Params
		s0     pendulum.State
	)

	BeforeEach(func() {
		params = pendulum.DefaultParams()
		s0 = pendulum.State{Theta1: 1.0, Theta2: -0.5}
	})

	DescribeTable("is deterministic for every scheme",
		func(name string) {
			run := func() pendulum.State {
				integ, err := integrators.New(name)
				Expect(err).NotTo(HaveOccurred())
				s, err := New(params, s0, integ)
				Expect(err).NotTo(HaveOccurred())
				for i := 0; i < 2000; i++ {
					Expect(s.Advance(1.0 / 240.0)).To(Succeed())
				}
				return s.State()
			}
			Expect(run()).To(Equal(run()))
		},
		Entry("euler", "euler"),
		Entry("symplectic", "symplectic"),
		Entry("rk4", "rk4"),
	)

	It("hands out copies of its state", func() {
		s, err := New(params, s0, nil)
		Expect(err).NotTo(HaveOccurred())

		st := s.State()
		st.Theta1 = 42
		Expect(s.State().Theta1).To(Equal(1.0))
	})

	It("never wraps angles", func() {
		s, err := New(params, pendulum.State{Theta1: 3, Theta2: 3, Omega1: 20, Omega2: 20}, nil)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 600; i++ {
			Expect(s.Advance(1.0 / 240.0)).To(Succeed())
		}
		Expect(math.Abs(s.State().Theta1)).To(BeNumerically(">", 2*math.Pi))
	})

	It("keeps bob arm lengths fixed", func() {
		s, err := New(params, s0, nil)
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 1000; i++ {
			Expect(s.Advance(1.0 / 120.0)).To(Succeed())
			pos := s.Positions()
			Expect(math.Hypot(pos.Bob1.X, pos.Bob1.Y)).To(BeNumerically("~", params.L1, 1e-12))
			Expect(math.Hypot(pos.Bob2.X-pos.Bob1.X, pos.Bob2.Y-pos.Bob1.Y)).To(BeNumerically("~", params.L2, 1e-12))
		}
	})

	Context("when running headless", func() {
		It("records one sample per step plus the initial state", func() {
			s, err := New(params, s0, nil)
			Expect(err).NotTo(HaveOccurred())

			res, err := s.Run(context.Background(), dynamo.Config{Dt: 0.05, Duration: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.States).To(HaveLen(21))
			Expect(res.StepsTaken).To(Equal(20))
			Expect(res.States[0]).To(Equal(s0.Vector()))
		})

		It("reports a simulation error when the state blows up", func() {
			s, err := New(params, pendulum.State{Theta2: 2, Omega1: 1e200}, nil)
			Expect(err).NotTo(HaveOccurred())

			_, err = s.Run(context.Background(), dynamo.Config{Dt: 0.01, Duration: 1, StopOnNonFinite: true})
			Expect(err).To(MatchError(dynamo.ErrInvalidState))
		})

		It("keeps stepping a blown-up state when asked to", func() {
			s, err := New(params, pendulum.State{Theta2: 2, Omega1: 1e200}, nil)
			Expect(err).NotTo(HaveOccurred())

			res, err := s.Run(context.Background(), dynamo.Config{Dt: 0.01, Duration: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StepsTaken).To(Equal(100))
		})
	})
})

var _ = Describe("Trail", func() {
	It("holds at most its capacity", func() {
		tr := NewTrail(10)
		for i := 0; i < 25; i++ {
			tr.Push(pendulum.Point{X: float64(i), Y: -float64(i)})
		}
		Expect(tr.Len()).To(Equal(10))
		Expect(tr.Points()[0]).To(Equal(pendulum.Point{X: 15, Y: -15}))
		Expect(tr.Points()[9]).To(Equal(pendulum.Point{X: 24, Y: -24}))
	})
})
