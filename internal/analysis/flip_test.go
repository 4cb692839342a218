package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/pendulum"
)

func TestFlipEnergy(t *testing.T) {
	p := pendulum.DefaultParams()
	if got := FlipEnergy(p); math.Abs(got+p.Gravity) > 1e-12 {
		t.Errorf("expected -g for unit pendulum, got %f", got)
	}
}

func TestCanFlip(t *testing.T) {
	p := pendulum.DefaultParams()
	tests := []struct {
		theta1, theta2 float64
		want           bool
	}{
		{0, 2, false},
		{0, 3, false},
		{0.3, 0.3, false},
		{1, 3, true},
		{3, 3, true},
	}
	for _, tt := range tests {
		s := pendulum.State{Theta1: tt.theta1, Theta2: tt.theta2}
		if got := CanFlip(s, p); got != tt.want {
			t.Errorf("CanFlip(%g, %g) = %v, want %v", tt.theta1, tt.theta2, got, tt.want)
		}
	}
}

func integrate(x0 dynamo.State, dt, duration float64) ([]float64, []dynamo.State) {
	model := pendulum.NewModel(pendulum.DefaultParams())
	integ := integrators.NewRK4()
	n := int(math.Round(duration / dt))
	times := []float64{0}
	states := []dynamo.State{x0}
	x := x0
	for i := 1; i <= n; i++ {
		x = integ.Step(model, x, times[i-1], dt)
		times = append(times, float64(i)*dt)
		states = append(states, x)
	}
	return times, states
}

func TestFirstFlip(t *testing.T) {
	times, states := integrate(dynamo.State{3, 3, 0, 0}, 0.01, 2)
	at, ok := FirstFlip(times, states)
	if !ok {
		t.Fatal("expected a flip from a nearly inverted start")
	}
	if at < 0.5 || at > 0.65 {
		t.Errorf("expected flip near 0.57s, got %f", at)
	}
}

func TestFirstFlipNone(t *testing.T) {
	times, states := integrate(dynamo.State{0, 2, 0, 0}, 0.01, 10)
	if at, ok := FirstFlip(times, states); ok {
		t.Errorf("start below flip energy flipped at %f", at)
	}
	if _, ok := FirstFlip(nil, nil); ok {
		t.Error("empty run flipped")
	}
}
