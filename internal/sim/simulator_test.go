package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/pendulum"
)

var raised = pendulum.State{Theta1: 0, Theta2: 2}

func newTestSim(t *testing.T, s0 pendulum.State) *Simulator {
	t.Helper()
	s, err := New(pendulum.DefaultParams(), s0, integrators.NewRK4())
	if err != nil {
		t.Fatalf("new simulator: %v", err)
	}
	return s
}

func TestNewRejectsInvalidInput(t *testing.T) {
	bad := pendulum.DefaultParams()
	bad.L2 = 0
	if _, err := New(bad, raised, nil); !errors.Is(err, pendulum.ErrInvalidParams) {
		t.Errorf("invalid params: expected ErrInvalidParams, got %v", err)
	}

	nan := pendulum.State{Theta1: math.NaN()}
	if _, err := New(pendulum.DefaultParams(), nan, nil); !errors.Is(err, pendulum.ErrInvalidState) {
		t.Errorf("non-finite state: expected ErrInvalidState, got %v", err)
	}
}

func TestNewDefaultsToRK4(t *testing.T) {
	s, err := New(pendulum.DefaultParams(), raised, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Integrator() != "rk4" {
		t.Errorf("expected rk4, got %s", s.Integrator())
	}
}

func TestAdvanceGolden(t *testing.T) {
	s := newTestSim(t, raised)
	if err := s.Advance(1.0 / 60.0); err != nil {
		t.Fatal(err)
	}

	want := pendulum.State{
		Theta1: -0.0002817512733452596,
		Theta2: 1.9986437259572165,
		Omega1: -0.0337535108555735,
		Omega2: -0.16274208849876615,
	}
	got := s.State()
	for i, pair := range [][2]float64{
		{got.Theta1, want.Theta1}, {got.Theta2, want.Theta2},
		{got.Omega1, want.Omega1}, {got.Omega2, want.Omega2},
	} {
		if math.Abs(pair[0]-pair[1]) > 1e-13 {
			t.Errorf("component %d: got %.17g, want %.17g", i, pair[0], pair[1])
		}
	}
	if s.Steps() != 1 || math.Abs(s.Time()-1.0/60.0) > 1e-15 {
		t.Errorf("unexpected clock: steps=%d t=%g", s.Steps(), s.Time())
	}
}

func TestAdvanceMatchesPureFunction(t *testing.T) {
	s := newTestSim(t, raised)
	x := raised
	for i := 0; i < 100; i++ {
		var err error
		x, err = Advance(integrators.NewRK4(), x, pendulum.DefaultParams(), 0.01)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Advance(0.01); err != nil {
			t.Fatal(err)
		}
	}
	if s.State() != x {
		t.Errorf("simulator %v differs from pure advance %v", s.State(), x)
	}
}

func TestAdvanceInvalidStep(t *testing.T) {
	for _, dt := range []float64{0, -0.01, math.NaN(), math.Inf(1)} {
		s := newTestSim(t, raised)
		if err := s.Advance(dt); !errors.Is(err, dynamo.ErrInvalidStep) {
			t.Errorf("dt=%g: expected ErrInvalidStep, got %v", dt, err)
		}
		if s.State() != raised || s.Steps() != 0 || s.Time() != 0 {
			t.Errorf("dt=%g: state changed after rejected step", dt)
		}
	}
}

func TestRestIsStable(t *testing.T) {
	s := newTestSim(t, pendulum.State{})
	for i := 0; i < 10000; i++ {
		if err := s.Advance(1.0 / 60.0); err != nil {
			t.Fatal(err)
		}
	}
	if s.State() != (pendulum.State{}) {
		t.Errorf("rest state drifted to %v", s.State())
	}
}

func TestNonFinitePropagates(t *testing.T) {
	s := newTestSim(t, pendulum.State{Theta2: 2, Omega1: 1e200})
	if err := s.Advance(1.0 / 60.0); err != nil {
		t.Fatalf("advance must not reject a blown-up step: %v", err)
	}
	if s.State().IsFinite() {
		t.Fatalf("expected non-finite state, got %v", s.State())
	}
	if err := s.Advance(1.0 / 60.0); err != nil {
		t.Errorf("advance from a non-finite state: %v", err)
	}
}

func TestReset(t *testing.T) {
	s := newTestSim(t, raised)
	for i := 0; i < 50; i++ {
		_ = s.Advance(0.01)
	}
	s.Reset()
	if s.State() != raised || s.Steps() != 0 || s.Time() != 0 {
		t.Errorf("reset did not restore initial state: %v", s.State())
	}
}

func TestPositions(t *testing.T) {
	s := newTestSim(t, pendulum.State{})
	pos := s.Positions()
	if pos.Bob1 != (pendulum.Point{X: 0, Y: -1}) || pos.Bob2 != (pendulum.Point{X: 0, Y: -2}) {
		t.Errorf("unexpected rest positions %+v", pos)
	}
}

func TestRun(t *testing.T) {
	s := newTestSim(t, raised)
	result, err := s.Run(context.Background(), dynamo.Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 || len(result.Times) != 11 {
		t.Errorf("expected 11 samples, got %d states %d times", len(result.States), len(result.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}
	if math.Abs(result.Times[10]-1.0) > 1e-12 {
		t.Errorf("expected final time 1, got %g", result.Times[10])
	}
}

func TestRunEnergyDrift(t *testing.T) {
	s := newTestSim(t, raised)
	result, err := s.Run(context.Background(), dynamo.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if result.EnergyDrift > 1e-6 {
		t.Errorf("rk4 energy drift %g over 10s", result.EnergyDrift)
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  dynamo.Config
		want error
	}{
		{"zero dt", dynamo.Config{Dt: 0, Duration: 1.0}, dynamo.ErrInvalidStep},
		{"negative dt", dynamo.Config{Dt: -0.1, Duration: 1.0}, dynamo.ErrInvalidStep},
		{"zero duration", dynamo.Config{Dt: 0.1, Duration: 0}, dynamo.ErrInvalidDuration},
		{"negative duration", dynamo.Config{Dt: 0.1, Duration: -1.0}, dynamo.ErrInvalidDuration},
		{"under half a step", dynamo.Config{Dt: 0.1, Duration: 0.04}, dynamo.ErrInvalidDuration},
		{"too many steps", dynamo.Config{Dt: 1e-6, Duration: 1e6}, dynamo.ErrTooManySteps},
		{"step count overflows", dynamo.Config{Dt: 1e-300, Duration: 1e300}, dynamo.ErrTooManySteps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSim(t, raised)
			result, err := s.Run(context.Background(), tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if result != nil || s.Steps() != 0 {
				t.Error("rejected config must not step")
			}
		})
	}
}

func TestRunStopsOnNonFinite(t *testing.T) {
	s := newTestSim(t, pendulum.State{Theta2: 2, Omega1: 1e200})
	result, err := s.Run(context.Background(), dynamo.Config{Dt: 0.01, Duration: 1, StopOnNonFinite: true})

	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState in chain, got %v", err)
	}
	if simErr.Step != 1 || result.StepsTaken != 1 {
		t.Errorf("expected stop after first step, got step %d taken %d", simErr.Step, result.StepsTaken)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestSim(t, raised)
	result, err := s.Run(ctx, dynamo.DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.States) != 1 {
		t.Errorf("expected only the initial state, got %d", len(result.States))
	}
}

type countMetric struct {
	count int
	sum   float64
}

func (m *countMetric) Name() string { return "count" }
func (m *countMetric) Observe(x dynamo.State, _ float64) {
	m.count++
	m.sum += x[0]
}
func (m *countMetric) Value() float64 { return float64(m.count) }
func (m *countMetric) Reset() {
	m.count = 0
	m.sum = 0
}

func TestRunMetrics(t *testing.T) {
	s := newTestSim(t, raised)
	metric := &countMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), dynamo.Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got, ok := result.Metrics["count"]; !ok || got != 11 {
		t.Errorf("expected 11 observations, got %v (present=%v)", got, ok)
	}
}

func TestRunAll(t *testing.T) {
	starts := []pendulum.State{raised, {Theta1: 1, Theta2: -0.5}, {Theta1: 0.8, Theta2: 1.2}}
	cfg := dynamo.Config{Dt: 0.01, Duration: 2}

	var sims []*Simulator
	for _, s0 := range starts {
		sims = append(sims, newTestSim(t, s0))
	}
	results, err := RunAll(context.Background(), sims, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i, s0 := range starts {
		want, err := newTestSim(t, s0).Run(context.Background(), cfg)
		if err != nil {
			t.Fatal(err)
		}
		got := results[i].States[len(results[i].States)-1]
		last := want.States[len(want.States)-1]
		for j := range got {
			if got[j] != last[j] {
				t.Errorf("run %d component %d: concurrent %v sequential %v", i, j, got[j], last[j])
			}
		}
	}
}
