package sim

import (
	"context"
	"math"

	"github.com/san-kum/dpend/internal/dynamo"
)

// Run advances the simulator from its current state for cfg.Duration using a
// fixed cfg.Dt, recording every state. The step count is the nearest whole
// number of steps to Duration/Dt.
//
// On context cancellation, or on a non-finite state when StopOnNonFinite is
// set, Run returns the partial result together with the error.
func (s *Simulator) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &dynamo.Result{
		States:  make([]dynamo.State, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s.state.Vector(), s.t)
	}

	result.States = append(result.States, s.state.Vector())
	result.Times = append(result.Times, s.t)
	initialEnergy := s.Energy()

	defer func() {
		if initialEnergy != 0 {
			result.EnergyDrift = math.Abs(s.Energy()-initialEnergy) / math.Abs(initialEnergy)
		}
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
	}()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.Advance(cfg.Dt); err != nil {
			return result, err
		}
		result.StepsTaken++
		result.States = append(result.States, s.state.Vector())
		result.Times = append(result.Times, s.t)

		if cfg.StopOnNonFinite && !s.state.IsFinite() {
			return result, &dynamo.SimulationError{
				Step:    i + 1,
				Time:    s.t,
				State:   s.state.Vector(),
				Wrapped: dynamo.ErrInvalidState,
			}
		}
	}

	return result, nil
}
