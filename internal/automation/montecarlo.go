package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/san-kum/dpend/internal/analysis"
	"github.com/san-kum/dpend/internal/config"
	"github.com/san-kum/dpend/internal/pendulum"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	Base *config.Config
	// Perturbation is the half-width, in radians, of the uniform noise
	// added to both starting angles.
	Perturbation float64
	NumTrials    int
	// Seed 0 picks a time-based seed.
	Seed    uint64
	Workers int
}

// MonteCarloResult holds the outcome of one trial.
type MonteCarloResult struct {
	TrialID  int
	Initial  pendulum.State
	Final    pendulum.State
	Flipped  bool
	FlipTime float64
	Diverged bool
}

// RunMonteCarlo runs NumTrials perturbed copies of Base concurrently. The
// perturbations are drawn up front, so a fixed seed reproduces every trial.
func RunMonteCarlo(ctx context.Context, cfg MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("number of trials must be positive, got %d", cfg.NumTrials)
	}
	if cfg.Perturbation < 0 || math.IsNaN(cfg.Perturbation) {
		return nil, fmt.Errorf("perturbation must not be negative, got %g", cfg.Perturbation)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	starts := make([]pendulum.State, cfg.NumTrials)
	for i := range starts {
		s := cfg.Base.InitialState()
		s.Theta1 += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		s.Theta2 += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		starts[i] = s
	}

	results := make([]MonteCarloResult, cfg.NumTrials)
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i, start := range starts {
		g.Go(func() error {
			c := *cfg.Base
			c.InitState = config.InitStateConfig{
				Theta1: start.Theta1, Theta2: start.Theta2,
				Omega1: start.Omega1, Omega2: start.Omega2,
			}
			if err := c.Validate(); err != nil {
				return err
			}
			s, result, diverged, err := simulate(ctx, &c)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			flip, flipped := analysis.FirstFlip(result.Times, result.States)
			results[i] = MonteCarloResult{
				TrialID:  i,
				Initial:  start,
				Final:    s.State(),
				Flipped:  flipped,
				FlipTime: flip,
				Diverged: diverged,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MonteCarloSummary holds flip statistics over all trials. Time statistics
// cover flipped trials only and are NaN when none flipped.
type MonteCarloSummary struct {
	Trials     int
	Flipped    int
	Diverged   int
	MeanFlip   float64
	StdFlip    float64
	MedianFlip float64
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) MonteCarloSummary {
	sum := MonteCarloSummary{Trials: len(results), MeanFlip: math.NaN(), StdFlip: math.NaN(), MedianFlip: math.NaN()}
	var times []float64
	for _, r := range results {
		if r.Diverged {
			sum.Diverged++
		}
		if r.Flipped {
			sum.Flipped++
			times = append(times, r.FlipTime)
		}
	}
	if len(times) == 0 {
		return sum
	}

	sort.Float64s(times)
	sum.MeanFlip, sum.StdFlip = stat.MeanStdDev(times, nil)
	sum.MedianFlip = stat.Quantile(0.5, stat.Empirical, times, nil)
	return sum
}
