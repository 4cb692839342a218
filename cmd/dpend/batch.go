package main

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/dpend/internal/automation"
	"github.com/san-kum/dpend/internal/config"
	"github.com/san-kum/dpend/internal/optim"
	"github.com/spf13/cobra"
)

var (
	axes         []string
	workers      int
	withLyapunov bool
	trials       int
	perturbation float64
	seed         uint64
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a grid of starts or parameters",
		Long: "Run the configured start once per grid point. Each --axis is key=from:to:n,\n" +
			"with keys " + strings.Join(config.Keys, ", ") + ".",
		Example: "  dpend sweep --axis theta1=0:3:7 --axis theta2=0:3:7 --time 20",
		Args:    cobra.NoArgs,
		RunE:    runSweep,
	}
	cmd.Flags().StringArrayVar(&axes, "axis", nil, "grid axis key=from:to:n (repeatable)")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "concurrent runs")
	cmd.Flags().BoolVar(&withLyapunov, "lyapunov", false, "also estimate the Lyapunov exponent per point")
	_ = cmd.MarkFlagRequired("axis")
	return cmd
}

// parseAxis reads key=from:to:n.
func parseAxis(s string) (string, []float64, error) {
	key, span, ok := strings.Cut(s, "=")
	parts := strings.Split(span, ":")
	if !ok || len(parts) != 3 {
		return "", nil, fmt.Errorf("axis %q: want key=from:to:n", s)
	}
	from, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("axis %q: %w", s, err)
	}
	to, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("axis %q: %w", s, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("axis %q: point count must be a positive integer", s)
	}
	return key, optim.Linspace(from, to, n), nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	names := make([]string, 0, len(axes))
	ranges := make([][]float64, 0, len(axes))
	for _, a := range axes {
		key, values, err := parseAxis(a)
		if err != nil {
			return err
		}
		names = append(names, key)
		ranges = append(ranges, values)
	}
	grid, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("sweep started", "points", grid.Size(), "workers", workers)
	start := time.Now()
	results, err := automation.RunSweep(ctx, cfg, grid, automation.SweepOptions{Workers: workers, Lyapunov: withLyapunov})
	if err != nil {
		return err
	}
	log.Info("sweep complete", "elapsed", time.Since(start).Round(time.Millisecond))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, strings.Join(names, "\t")+"\tflip (s)\tdrift\tE min\tE max\tλ\t")
	for _, r := range results {
		for _, n := range names {
			fmt.Fprintf(w, "%.4f\t", r.Params[n])
		}
		flip := "-"
		if !math.IsNaN(r.FlipTime) {
			flip = fmt.Sprintf("%.3f", r.FlipTime)
		}
		drift := fmt.Sprintf("%.2e", r.EnergyDrift)
		if r.Diverged {
			drift = "diverged"
		}
		lambda := "-"
		if !math.IsNaN(r.Lyapunov) {
			lambda = fmt.Sprintf("%+.3f", r.Lyapunov)
		}
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%s\t\n", flip, drift, r.MinEnergy, r.MaxEnergy, lambda)
	}
	return w.Flush()
}

func newMonteCarloCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "perturb the start at random and measure flip times",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	cmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	cmd.Flags().Float64Var(&perturbation, "perturb", 0.01, "half-width of the angle perturbation (rad)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "concurrent runs")
	return cmd
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	results, err := automation.RunMonteCarlo(ctx, automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
		Workers:      workers,
	})
	if err != nil {
		return err
	}
	sum := automation.MonteCarloStats(results)
	log.Info("trials complete", "n", sum.Trials, "elapsed", time.Since(start).Round(time.Millisecond))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "start\tθ1=%.3f θ2=%.3f ± %.3g rad\n", cfg.InitState.Theta1, cfg.InitState.Theta2, perturbation)
	fmt.Fprintf(w, "trials\t%d over %gs\n", sum.Trials, cfg.Duration)
	fmt.Fprintf(w, "flipped\t%d (%.1f%%)\n", sum.Flipped, 100*float64(sum.Flipped)/float64(sum.Trials))
	if sum.Diverged > 0 {
		fmt.Fprintf(w, "diverged\t%d\n", sum.Diverged)
	}
	if sum.Flipped > 0 {
		fmt.Fprintf(w, "first flip\tmean %.3fs, std %.3fs, median %.3fs\n", sum.MeanFlip, sum.StdFlip, sum.MedianFlip)
	}
	return w.Flush()
}

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario <file.yaml>",
		Short: "run a scripted sequence of simulations",
		Long:  "Run every step of a YAML scenario in order. Steps start from the resolved configuration unless they name a preset.",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("scenario", "name", sc.Name, "steps", len(sc.Steps))
	_, err = automation.RunScenario(ctx, sc, cfg, func(i int, r automation.StepResult) {
		fields := []any{
			"label", r.Label,
			"scheme", r.Config.Integrator,
			"steps", r.Result.StepsTaken,
			"θ1", fmt.Sprintf("%+.4f", r.Final.Theta1),
			"θ2", fmt.Sprintf("%+.4f", r.Final.Theta2),
		}
		if r.Diverged {
			log.Warn(fmt.Sprintf("step %d/%d diverged", i+1, len(sc.Steps)), fields...)
			return
		}
		log.Info(fmt.Sprintf("step %d/%d", i+1, len(sc.Steps)), fields...)
	})
	return err
}
