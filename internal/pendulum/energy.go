package pendulum

import "math"

// Kinetic returns the kinetic energy of both bobs.
func Kinetic(s State, p Params) float64 {
	w1, w2 := s.Omega1, s.Omega2
	v1sq := p.L1 * p.L1 * w1 * w1
	v2sq := v1sq + p.L2*p.L2*w2*w2 +
		2*p.L1*p.L2*w1*w2*math.Cos(s.Theta1-s.Theta2)
	return 0.5*p.M1*v1sq + 0.5*p.M2*v2sq
}

// Potential returns the gravitational potential energy with the pivot as
// reference height, so the hanging rest state has the minimum, negative value.
func Potential(s State, p Params) float64 {
	y1 := -p.L1 * math.Cos(s.Theta1)
	y2 := y1 - p.L2*math.Cos(s.Theta2)
	return p.Gravity * (p.M1*y1 + p.M2*y2)
}

// Energy is the total mechanical energy, conserved by the exact dynamics.
func Energy(s State, p Params) float64 {
	return Kinetic(s, p) + Potential(s, p)
}
