package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/dpend/internal/config"
	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/export"
	"github.com/san-kum/dpend/internal/metrics"
	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
	"github.com/spf13/cobra"
)

var (
	csvOut   bool
	jsonOut  bool
	trailSVG string
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	cmd.Flags().BoolVar(&csvOut, "csv", false, "write every sample as CSV to stdout")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "write the run as JSON to stdout")
	cmd.Flags().StringVar(&trailSVG, "trail-svg", "", "write the lower bob's trail to this SVG file")
	cmd.MarkFlagsMutuallyExclusive("csv", "json")
	return cmd
}

// headless runs c with the named scheme. A diverged or interrupted run is
// logged and its partial result returned without error.
func headless(ctx context.Context, c *config.Config, scheme string, extra ...dynamo.Metric) (*sim.Simulator, *dynamo.Result, error) {
	s, err := newSimulator(c, scheme)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range extra {
		s.AddMetric(m)
	}

	result, err := s.Run(ctx, c.RunConfig())
	if err != nil {
		if result == nil {
			return nil, nil, err
		}
		var simErr *dynamo.SimulationError
		switch {
		case errors.As(err, &simErr):
			log.Warn("simulation diverged", "scheme", s.Integrator(), "step", simErr.Step, "t", simErr.Time)
		case errors.Is(err, context.Canceled):
			log.Warn("interrupted", "t", s.Time())
		default:
			return nil, nil, err
		}
	}
	return s, result, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	model := pendulum.NewModel(cfg.Params())
	drift := metrics.NewEnergyDrift(model)
	stability := metrics.NewStability(0)

	start := time.Now()
	s, result, err := headless(ctx, cfg, "", drift, stability)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	meta := export.Meta{
		Integrator: s.Integrator(),
		Params:     s.Params(),
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
	}
	if trailSVG != "" {
		if err := writeTrailSVG(trailSVG, result); err != nil {
			return err
		}
		log.Info("trail written", "file", trailSVG)
	}

	switch {
	case csvOut:
		return export.WriteCSV(os.Stdout, meta, result)
	case jsonOut:
		return export.WriteJSON(os.Stdout, meta, result)
	}

	final := s.State()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "scheme\t%s\n", s.Integrator())
	fmt.Fprintf(w, "steps\t%d\n", result.StepsTaken)
	fmt.Fprintf(w, "simulated\t%.3f s\n", s.Time())
	fmt.Fprintf(w, "final θ1, θ2\t%+.6f, %+.6f rad\n", final.Theta1, final.Theta2)
	fmt.Fprintf(w, "final ω1, ω2\t%+.6f, %+.6f rad/s\n", final.Omega1, final.Omega2)
	fmt.Fprintf(w, "energy\t%.6f J\n", s.Energy())
	fmt.Fprintf(w, "energy drift\t%.3e (final), %.3e (max)\n", result.EnergyDrift, drift.Value())
	if t, bad := stability.FirstViolation(); bad {
		fmt.Fprintf(w, "non-finite at\t%.4f s\n", t)
	}
	fmt.Fprintf(w, "elapsed\t%s\n", elapsed.Round(time.Microsecond))
	if err := w.Flush(); err != nil {
		return err
	}

	log.Info("run complete", "steps", result.StepsTaken, "elapsed", elapsed.Round(time.Millisecond))
	return nil
}

func writeTrailSVG(path string, result *dynamo.Result) error {
	points := make([]pendulum.Point, 0, len(result.States))
	for _, x := range result.States {
		st, err := pendulum.StateFromVector(x)
		if err != nil {
			return err
		}
		if !st.IsFinite() {
			break
		}
		points = append(points, pendulum.BobPositions(st, cfg.Params()).Bob2)
	}
	if n := cfg.Trail; n > 0 && len(points) > n {
		points = points[len(points)-n:]
	}
	svg := export.TrailToSVG(points, cfg.Params().Reach(), 600, "cadetblue")
	return os.WriteFile(path, []byte(svg), 0644)
}
