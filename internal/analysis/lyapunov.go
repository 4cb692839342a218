package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/dpend/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// LyapunovExponent estimates the largest Lyapunov exponent by running x0 and
// a copy displaced by d0 along its first component. After every step the
// separation is measured and the twin is pulled back to distance d0 along
// the same direction, so the estimate is the mean logarithmic growth rate:
//
//	λ ≈ Σ ln(d_i / d0) / (n·dt)
//
// integ must not be shared with another goroutine.
func LyapunovExponent(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	d0 float64,
) (float64, error) {
	if len(x0) != sys.StateDim() {
		return 0, fmt.Errorf("%w: state has %d components, system %d", dynamo.ErrDimensionMismatch, len(x0), sys.StateDim())
	}
	if err := (dynamo.Config{Dt: dt, Duration: duration}).Validate(); err != nil {
		return 0, err
	}
	if !(d0 > 0) {
		return 0, fmt.Errorf("analysis: perturbation must be positive, got %g", d0)
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += d0

	steps := dynamo.Config{Dt: dt, Duration: duration}.Steps()
	t := 0.0
	sumLog := 0.0

	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)
		t += dt

		if !x.IsValid() || !xp.IsValid() {
			return 0, &dynamo.SimulationError{Step: i + 1, Time: t, State: x, Wrapped: dynamo.ErrInvalidState}
		}

		sep := floats.Distance(x, xp, 2)
		if sep == 0 {
			// The twin collapsed onto the reference; restart the offset.
			xp = x.Clone()
			xp[0] += d0
			continue
		}
		sumLog += math.Log(sep / d0)

		// xp = x + (xp - x)·d0/sep
		floats.Sub(xp, x)
		floats.Scale(d0/sep, xp)
		floats.Add(xp, x)
	}

	return sumLog / (float64(steps) * dt), nil
}

// Separation returns the unrenormalised distance between the trajectories of
// x0 and x0 displaced by d0, sampled after every step. It shows how fast two
// almost identical starts part ways.
func Separation(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	d0 float64,
) ([]float64, error) {
	if len(x0) != sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system %d", dynamo.ErrDimensionMismatch, len(x0), sys.StateDim())
	}
	if err := (dynamo.Config{Dt: dt, Duration: duration}).Validate(); err != nil {
		return nil, err
	}

	x := x0.Clone()
	xp := x0.Clone()
	xp[0] += d0

	steps := dynamo.Config{Dt: dt, Duration: duration}.Steps()
	out := make([]float64, 0, steps)
	t := 0.0
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)
		t += dt
		out = append(out, floats.Distance(x, xp, 2))
	}
	return out, nil
}
