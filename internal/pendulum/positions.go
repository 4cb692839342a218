package pendulum

import "math"

// Point is a Cartesian position in metres, y pointing up.
type Point struct {
	X, Y float64
}

// Positions holds both bob coordinates relative to the pivot.
type Positions struct {
	Bob1, Bob2 Point
}

// BobPositions projects s onto the plane. It is recomputed every frame and
// never cached alongside the state.
func BobPositions(s State, p Params) Positions {
	sin1, cos1 := math.Sincos(s.Theta1)
	sin2, cos2 := math.Sincos(s.Theta2)
	b1 := Point{X: p.L1 * sin1, Y: -p.L1 * cos1}
	b2 := Point{X: b1.X + p.L2*sin2, Y: b1.Y - p.L2*cos2}
	return Positions{Bob1: b1, Bob2: b2}
}
