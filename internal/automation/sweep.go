package automation

import (
	"context"
	"math"

	"github.com/san-kum/dpend/internal/analysis"
	"github.com/san-kum/dpend/internal/config"
	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/optim"
	"github.com/san-kum/dpend/internal/pendulum"
)

// SweepResult summarises the run at one grid point.
type SweepResult struct {
	Params      map[string]float64
	Final       pendulum.State
	MinEnergy   float64
	MaxEnergy   float64
	EnergyDrift float64
	// FlipTime is NaN when no arm turned over.
	FlipTime float64
	// Lyapunov is NaN unless requested.
	Lyapunov float64
	Diverged bool
}

type SweepOptions struct {
	// Workers bounds the concurrent runs; 0 means unbounded.
	Workers int
	// Lyapunov also estimates the largest exponent at every point, with
	// initial separation 1e-8.
	Lyapunov bool
}

// RunSweep runs base once per grid point, with the grid's parameters set by
// config key. Results follow grid order.
func RunSweep(ctx context.Context, base *config.Config, grid *optim.GridSearch, opts SweepOptions) ([]SweepResult, error) {
	return optim.Evaluate(ctx, grid, opts.Workers, func(ctx context.Context, values map[string]float64) (SweepResult, error) {
		c := *base
		if err := apply(&c, values); err != nil {
			return SweepResult{}, err
		}
		if err := c.Validate(); err != nil {
			return SweepResult{}, err
		}

		s, result, diverged, err := simulate(ctx, &c)
		if err != nil {
			return SweepResult{}, err
		}

		minE, maxE := energyRange(pendulum.NewModel(c.Params()), result.States)
		flip, _ := analysis.FirstFlip(result.Times, result.States)
		r := SweepResult{
			Params:      values,
			Final:       s.State(),
			MinEnergy:   minE,
			MaxEnergy:   maxE,
			EnergyDrift: result.EnergyDrift,
			FlipTime:    flip,
			Lyapunov:    math.NaN(),
			Diverged:    diverged,
		}
		if opts.Lyapunov && !diverged {
			integ, err := integrators.New(c.Integrator)
			if err != nil {
				return SweepResult{}, err
			}
			model := pendulum.NewModel(c.Params())
			r.Lyapunov, err = analysis.LyapunovExponent(model, integ, c.InitialState().Vector(), c.Dt, c.Duration, 1e-8)
			if err != nil {
				return SweepResult{}, err
			}
		}
		return r, nil
	})
}

func energyRange(sys dynamo.Hamiltonian, states []dynamo.State) (float64, float64) {
	minE, maxE := math.Inf(1), math.Inf(-1)
	for _, x := range states {
		e := sys.Energy(x)
		minE = math.Min(minE, e)
		maxE = math.Max(maxE, e)
	}
	return minE, maxE
}
