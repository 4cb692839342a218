package pendulum

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 1.0
	DefaultGravity = 9.81
)

var (
	ErrInvalidParams = errors.New("pendulum: invalid parameters")
	ErrInvalidState  = errors.New("pendulum: invalid state")
)

// Params holds the physical constants of one run. SI units throughout.
type Params struct {
	M1, M2  float64
	L1, L2  float64
	Gravity float64
}

func DefaultParams() Params {
	return Params{
		M1: DefaultMass, M2: DefaultMass,
		L1: DefaultLength, L2: DefaultLength,
		Gravity: DefaultGravity,
	}
}

// Validate requires every field to be strictly positive and finite. All
// offending fields are named in the returned error.
func (p Params) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"m1", p.M1}, {"m2", p.M2},
		{"l1", p.L1}, {"l2", p.L2},
		{"g", p.Gravity},
	} {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			errs = append(errs, fmt.Errorf("%s must be positive and finite, got %g", f.name, f.v))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
	}
	return nil
}

// Map returns the parameters keyed by their short names, for display.
func (p Params) Map() map[string]float64 {
	return map[string]float64{
		"m1": p.M1,
		"m2": p.M2,
		"l1": p.L1,
		"l2": p.L2,
		"g":  p.Gravity,
	}
}

// Reach is the distance from the pivot to the second bob with both arms
// straight. Renderers use it to fit the pendulum on screen.
func (p Params) Reach() float64 {
	return p.L1 + p.L2
}
