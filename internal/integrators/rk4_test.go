package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/dpend/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

func TestRK4Accuracy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestSymplecticEulerBoundedOnOscillator(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewSymplecticEuler()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	maxDrift := 0.0
	for i := 0; i < 100000; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
		maxDrift = math.Max(maxDrift, math.Abs(dyn.Energy(x)-0.5)/0.5)
	}

	// The modified Hamiltonian keeps the error at O(dt) forever.
	if maxDrift > 0.02 {
		t.Errorf("symplectic Euler drifted by %.4f on the harmonic oscillator", maxDrift)
	}
}

func TestEulerGrowsEnergyOnOscillator(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewEuler()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	for i := 0; i < 1000; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	// Each step multiplies the energy by exactly 1 + dt².
	want := 0.5 * math.Pow(1+dt*dt, 1000)
	if math.Abs(dyn.Energy(x)-want) > 1e-9 {
		t.Errorf("energy after 1000 Euler steps = %.12f, want %.12f", dyn.Energy(x), want)
	}
}
