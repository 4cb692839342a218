package pendulum

import (
	"fmt"
	"math"

	"github.com/san-kum/dpend/internal/dynamo"
)

// StateDim is the length of the packed state vector.
const StateDim = 4

// State is the mechanical state of the pendulum. Theta2 is the absolute angle
// of the second arm at its pivot on the first bob, not the angle relative to
// the first arm.
type State struct {
	Theta1, Theta2 float64
	Omega1, Omega2 float64
}

// Vector packs s as [θ1, θ2, ω1, ω2]: positions first, velocities second.
func (s State) Vector() dynamo.State {
	return dynamo.State{s.Theta1, s.Theta2, s.Omega1, s.Omega2}
}

// StateFromVector is the inverse of [State.Vector].
func StateFromVector(x dynamo.State) (State, error) {
	if len(x) != StateDim {
		return State{}, fmt.Errorf("%w: want %d components, got %d", dynamo.ErrDimensionMismatch, StateDim, len(x))
	}
	return State{Theta1: x[0], Theta2: x[1], Omega1: x[2], Omega2: x[3]}, nil
}

func (s State) IsFinite() bool {
	for _, v := range [...]float64{s.Theta1, s.Theta2, s.Omega1, s.Omega2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Validate() error {
	if !s.IsFinite() {
		return fmt.Errorf("%w: non-finite component in %+v", ErrInvalidState, s)
	}
	return nil
}

func (s State) String() string {
	return fmt.Sprintf("θ1=%.4f θ2=%.4f ω1=%.4f ω2=%.4f", s.Theta1, s.Theta2, s.Omega1, s.Omega2)
}
