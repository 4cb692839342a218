package sim

import (
	"math"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/pendulum"
)

// Advance applies exactly one step of size dt to s and returns the new state.
// dt must be positive and finite. Numerical blow-up is not an error: the
// returned state may be non-finite.
func Advance(integ dynamo.Integrator, s pendulum.State, p pendulum.Params, dt float64) (pendulum.State, error) {
	return step(integ, pendulum.NewModel(p), s, 0, dt)
}

func step(integ dynamo.Integrator, model *pendulum.Model, s pendulum.State, t, dt float64) (pendulum.State, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return s, dynamo.ErrInvalidStep
	}
	return pendulum.StateFromVector(integ.Step(model, s.Vector(), t, dt))
}
