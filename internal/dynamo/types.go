package dynamo

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous or time-dependent ODE right-hand side.
// The returned slice must not alias x.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

// Integrator advances x by exactly one step of size dt. Implementations
// must not substep and must not reject a step.
type Integrator interface {
	Name() string
	Step(dyn System, x State, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Config struct {
	Dt              float64
	Duration        float64
	StopOnNonFinite bool
}

func DefaultConfig() Config {
	return Config{
		Dt:              1.0 / 240.0,
		Duration:        10.0,
		StopOnNonFinite: true,
	}
}

// MaxSteps caps the step count of one run. Runs record every state, so the
// cap bounds memory at a few hundred megabytes.
const MaxSteps = 10_000_000

// Validate reports the first invalid field of c. A valid config takes between
// one and MaxSteps steps.
func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return ErrInvalidStep
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return ErrInvalidDuration
	}
	n := math.Round(c.Duration / c.Dt)
	if n < 1 {
		return fmt.Errorf("%w: %g s is shorter than half a step of %g s", ErrInvalidDuration, c.Duration, c.Dt)
	}
	if n > MaxSteps {
		return fmt.Errorf("%w: %g s at dt %g s needs %.3g steps, limit %d", ErrTooManySteps, c.Duration, c.Dt, n, MaxSteps)
	}
	return nil
}

// Steps is the nearest whole number of steps to Duration/Dt. Only meaningful
// for a config that passed Validate.
func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

type Result struct {
	States      []State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}
