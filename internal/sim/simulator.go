package sim

import (
	"fmt"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/pendulum"
)

type Simulator struct {
	model      *pendulum.Model
	integrator dynamo.Integrator
	initial    pendulum.State
	state      pendulum.State
	t          float64
	steps      int
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
}

// New validates p and s0 and returns a simulator positioned at s0. A nil
// integrator selects classical RK4.
func New(p pendulum.Params, s0 pendulum.State, integ dynamo.Integrator) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s0.Validate(); err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}
	if integ == nil {
		integ = integrators.NewRK4()
	}
	return &Simulator{
		model:      pendulum.NewModel(p),
		integrator: integ,
		initial:    s0,
		state:      s0,
	}, nil
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// Advance moves the simulation forward by exactly one step of size dt. The
// step is always committed, even when it produces a non-finite state.
func (s *Simulator) Advance(dt float64) error {
	next, err := step(s.integrator, s.model, s.state, s.t, dt)
	if err != nil {
		return err
	}
	s.state = next
	s.t += dt
	s.steps++

	if len(s.metrics) > 0 || len(s.observers) > 0 {
		x := next.Vector()
		for _, m := range s.metrics {
			m.Observe(x, s.t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, s.t)
		}
	}
	return nil
}

// State returns a copy of the current state.
func (s *Simulator) State() pendulum.State { return s.state }

func (s *Simulator) Positions() pendulum.Positions {
	return pendulum.BobPositions(s.state, s.model.Params())
}

func (s *Simulator) Params() pendulum.Params { return s.model.Params() }

func (s *Simulator) Integrator() string { return s.integrator.Name() }

func (s *Simulator) Time() float64 { return s.t }

func (s *Simulator) Steps() int { return s.steps }

func (s *Simulator) Energy() float64 {
	return pendulum.Energy(s.state, s.model.Params())
}

// Initial returns the state the simulator was constructed with.
func (s *Simulator) Initial() pendulum.State { return s.initial }

// Reset rewinds to the construction-time state and clears metrics.
func (s *Simulator) Reset() {
	s.state = s.initial
	s.t = 0
	s.steps = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}
