package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/pendulum"
)

func TestPowerSpectrumSine(t *testing.T) {
	const dt = 0.01
	samples := make([]float64, 2000)
	for i := range samples {
		samples[i] = 3 + math.Sin(2*math.Pi*1.5*float64(i)*dt)
	}

	sp, err := PowerSpectrum(samples, dt)
	if err != nil {
		t.Fatal(err)
	}
	if len(sp.Freqs) != 1001 {
		t.Fatalf("expected 1001 bins, got %d", len(sp.Freqs))
	}
	if f, _ := sp.Peak(); math.Abs(f-1.5) > 1e-9 {
		t.Errorf("expected peak at 1.5 Hz, got %g", f)
	}
	if sp.Power[0] > 1e-12 {
		t.Errorf("mean not removed, DC power %g", sp.Power[0])
	}
	if p := sp.DominantPeriod(); math.Abs(p-1/1.5) > 1e-9 {
		t.Errorf("expected period %g, got %g", 1/1.5, p)
	}
}

func TestPowerSpectrumNormalMode(t *testing.T) {
	p := pendulum.DefaultParams()
	model := pendulum.NewModel(p)
	integ := integrators.NewRK4()

	const dt = 0.01
	x := pendulum.State{Theta1: 0.05, Theta2: 0.05 * math.Sqrt2}.Vector()
	samples := make([]float64, 0, 10000)
	for i := 0; i < 10000; i++ {
		samples = append(samples, x[0])
		x = integ.Step(model, x, 0, dt)
	}

	sp, err := PowerSpectrum(samples, dt)
	if err != nil {
		t.Fatal(err)
	}

	// ω² = (g/l)(2 − √2) for equal masses and lengths
	want := math.Sqrt(p.Gravity*(2-math.Sqrt2)) / (2 * math.Pi)
	if f, _ := sp.Peak(); math.Abs(f-want) > 0.015 {
		t.Errorf("expected slow mode near %.4f Hz, got %.4f", want, f)
	}
}

func TestPowerSpectrumErrors(t *testing.T) {
	if _, err := PowerSpectrum([]float64{1}, 0.1); !errors.Is(err, ErrShortSignal) {
		t.Errorf("expected ErrShortSignal, got %v", err)
	}
	if _, err := PowerSpectrum([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for zero dt")
	}
}

func TestFlatSpectrum(t *testing.T) {
	sp, err := PowerSpectrum([]float64{2, 2, 2, 2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(sp.DominantPeriod(), 1) {
		t.Errorf("expected infinite period, got %g", sp.DominantPeriod())
	}
}
