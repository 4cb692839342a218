package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/pendulum"
)

func TestEnergyMean(t *testing.T) {
	p := pendulum.DefaultParams()
	m := NewEnergy(pendulum.NewModel(p))

	a := pendulum.State{Theta1: math.Pi / 4}
	b := pendulum.State{Omega1: 1, Omega2: -1}
	m.Observe(a.Vector(), 0)
	m.Observe(b.Vector(), 0.1)

	expected := (pendulum.Energy(a, p) + pendulum.Energy(b, p)) / 2
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected mean energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	p := pendulum.DefaultParams()
	m := NewEnergyDrift(pendulum.NewModel(p))

	s := pendulum.State{Theta1: 0.5, Theta2: 0.5}
	e0 := pendulum.Energy(s, p)
	m.Observe(s.Vector(), 0)
	if m.Value() != 0 || m.Initial() != e0 {
		t.Fatalf("first sample: drift %g initial %g", m.Value(), m.Initial())
	}

	// Same angles, nonzero speed: energy rises by the kinetic term.
	fast := pendulum.State{Theta1: 0.5, Theta2: 0.5, Omega1: 1}
	m.Observe(fast.Vector(), 1)
	want := math.Abs(pendulum.Energy(fast, p)-e0) / math.Abs(e0)
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected drift %g, got %g", want, m.Value())
	}

	m.Observe(s.Vector(), 2)
	if m.Current() != 0 {
		t.Errorf("expected zero current drift, got %g", m.Current())
	}
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("max drift should persist, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 || m.Current() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestStability(t *testing.T) {
	m := NewStability(10)
	m.Observe(dynamo.State{0, 1, 2, 3}, 0)
	m.Observe(dynamo.State{0, 1, 20, 3}, 0.5)
	m.Observe(dynamo.State{math.NaN(), 0, 0, 0}, 1)
	m.Observe(dynamo.State{0, 0, 0, 0}, 1.5)

	if got := m.Value(); got != 0.5 {
		t.Errorf("expected 0.5, got %g", got)
	}
	if at, ok := m.FirstViolation(); !ok || at != 0.5 {
		t.Errorf("expected first violation at 0.5, got %g (%v)", at, ok)
	}

	m.Reset()
	if m.Value() != 1 {
		t.Errorf("expected 1 after reset, got %g", m.Value())
	}
	if _, ok := m.FirstViolation(); ok {
		t.Error("violation survived reset")
	}
}

func TestStabilityFiniteOnly(t *testing.T) {
	m := NewStability(0)
	m.Observe(dynamo.State{1e300, 0, 0, 0}, 0)
	m.Observe(dynamo.State{math.Inf(-1), 0, 0, 0}, 1)
	if got := m.Value(); got != 0.5 {
		t.Errorf("expected 0.5, got %g", got)
	}
}
