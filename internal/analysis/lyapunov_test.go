package analysis

import (
	"errors"
	"testing"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/pendulum"
)

func TestLyapunovExponent(t *testing.T) {
	model := pendulum.NewModel(pendulum.DefaultParams())

	tests := []struct {
		name     string
		start    pendulum.State
		min, max float64
	}{
		{"gentle swing is regular", pendulum.State{Theta1: 0.1, Theta2: 0.1}, -0.2, 0.2},
		{"near inverted is chaotic", pendulum.State{Theta1: 3, Theta2: 3}, 0.5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lambda, err := LyapunovExponent(model, integrators.NewRK4(), tt.start.Vector(), 0.01, 30, 1e-8)
			if err != nil {
				t.Fatal(err)
			}
			if lambda < tt.min || lambda > tt.max {
				t.Errorf("lambda = %.4f, want in [%g, %g]", lambda, tt.min, tt.max)
			}
		})
	}
}

func TestLyapunovExponentErrors(t *testing.T) {
	model := pendulum.NewModel(pendulum.DefaultParams())
	integ := integrators.NewRK4()

	if _, err := LyapunovExponent(model, integ, dynamo.State{1, 2}, 0.01, 1, 1e-8); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	x0 := pendulum.State{Theta2: 2}.Vector()
	if _, err := LyapunovExponent(model, integ, x0, 0, 1, 1e-8); !errors.Is(err, dynamo.ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
	if _, err := LyapunovExponent(model, integ, x0, 0.01, 1, 0); err == nil {
		t.Error("expected error for zero perturbation")
	}
	if _, err := LyapunovExponent(model, integ, x0, 0.1, 0.04, 1e-8); !errors.Is(err, dynamo.ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration for a run under one step, got %v", err)
	}
	if _, err := Separation(model, integ, x0, 1e-300, 1e300, 1e-8); !errors.Is(err, dynamo.ErrTooManySteps) {
		t.Errorf("expected ErrTooManySteps, got %v", err)
	}
}

func TestSeparationGrowsForChaos(t *testing.T) {
	model := pendulum.NewModel(pendulum.DefaultParams())
	x0 := pendulum.State{Theta1: 3, Theta2: 3}.Vector()

	sep, err := Separation(model, integrators.NewRK4(), x0, 0.01, 20, 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	if len(sep) != 2000 {
		t.Fatalf("expected 2000 samples, got %d", len(sep))
	}
	if sep[len(sep)-1] < 1e-3 {
		t.Errorf("expected macroscopic separation after 20s, got %g", sep[len(sep)-1])
	}
}
