package pendulum

import (
	"math"

	"github.com/san-kum/dpend/internal/dynamo"
)

// Accelerations returns the angular accelerations (θ1'', θ2'') for state s.
// These are the Euler–Lagrange equations for point masses on massless rods,
// with δ = θ1 − θ2 and the shared denominator 2·m1 + m2 − m2·cos 2δ.
func Accelerations(s State, p Params) (alpha1, alpha2 float64) {
	m1, m2, l1, l2, g := p.M1, p.M2, p.L1, p.L2, p.Gravity
	w1sq, w2sq := s.Omega1*s.Omega1, s.Omega2*s.Omega2

	delta := s.Theta1 - s.Theta2
	sinD, cosD := math.Sin(delta), math.Cos(delta)
	den := 2*m1 + m2 - m2*math.Cos(2*delta)

	alpha1 = (-g*(2*m1+m2)*math.Sin(s.Theta1) -
		m2*g*math.Sin(s.Theta1-2*s.Theta2) -
		2*sinD*m2*(w2sq*l2+w1sq*l1*cosD)) / (l1 * den)

	alpha2 = (2 * sinD * (w1sq*l1*(m1+m2) +
		g*(m1+m2)*math.Cos(s.Theta1) +
		w2sq*l2*m2*cosD)) / (l2 * den)

	return alpha1, alpha2
}

// Model adapts a parameter set to dynamo.System over the packed vector
// [θ1, θ2, ω1, ω2].
type Model struct {
	params Params
}

func NewModel(p Params) *Model {
	return &Model{params: p}
}

func (m *Model) Params() Params { return m.params }

func (m *Model) StateDim() int { return StateDim }

func (m *Model) Derive(x dynamo.State, _ float64) dynamo.State {
	s := State{Theta1: x[0], Theta2: x[1], Omega1: x[2], Omega2: x[3]}
	alpha1, alpha2 := Accelerations(s, m.params)
	return dynamo.State{s.Omega1, s.Omega2, alpha1, alpha2}
}

func (m *Model) Energy(x dynamo.State) float64 {
	return Energy(State{Theta1: x[0], Theta2: x[1], Omega1: x[2], Omega2: x[3]}, m.params)
}
