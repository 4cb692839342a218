package integrators

import "github.com/san-kum/dpend/internal/dynamo"

// SymplecticEuler is the semi-implicit Euler scheme over a half-split state
// [q..., v...]: velocities are kicked with the accelerations at the current
// state, then positions drift with the updated velocities. One evaluation per
// step.
//
// Its energy behaviour is only as good as the coordinates: for the double
// pendulum in (θ, ω) the momenta are not canonical, so drift is bounded for
// gentle motion but not in general.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Name() string { return "symplectic" }

func (s *SymplecticEuler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	n := len(x)
	half := n / 2

	dx := dyn.Derive(x, t)
	result := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + dt*dx[half+i]
	}
	for i := 0; i < half; i++ {
		result[i] = x[i] + dt*result[half+i]
	}
	return result
}
