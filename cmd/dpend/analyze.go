package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/dpend/internal/analysis"
	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/metrics"
	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/report"
	"github.com/san-kum/dpend/internal/sim"
	"github.com/san-kum/dpend/internal/viz"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var stateNames = []string{"θ1", "θ2", "ω1", "ω2"}

var (
	plotWidth   int
	plotHeight  int
	phaseWidth  int
	phaseHeight int
	chaosWidth  int
	chaosHeight int
	xAxis       int
	yAxis       int
	poincare    bool
	separation  float64
	reportDir   string
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "plot angles and energy over time in the terminal",
		Args:  cobra.NoArgs,
		RunE:  plotRun,
	}
	cmd.Flags().IntVar(&plotWidth, "width", 70, "chart width in columns")
	cmd.Flags().IntVar(&plotHeight, "height", 15, "chart height in rows")
	return cmd
}

func plotRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	s, result, err := headless(ctx, cfg, "")
	if err != nil {
		return err
	}

	n := len(result.States)
	th1 := make([]float64, n)
	th2 := make([]float64, n)
	energy := make([]float64, n)
	model := pendulum.NewModel(s.Params())
	for i, x := range result.States {
		th1[i], th2[i] = x[0], x[1]
		energy[i] = model.Energy(x)
	}

	fmt.Printf("%s, dt=%.5f, %gs\n\n", s.Integrator(), cfg.Dt, cfg.Duration)
	fmt.Println(viz.PlotSeries("arm angles (rad)", plotWidth, plotHeight,
		viz.Series{Name: "θ1", Values: th1},
		viz.Series{Name: "θ2", Values: th2}))
	fmt.Println()
	fmt.Println(viz.PlotSeries("total energy (J)", plotWidth, plotHeight/2,
		viz.Series{Name: "E", Values: energy}))
	return nil
}

func newPhaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "draw a phase portrait of two state components",
		Long: "Draw a phase portrait. Components are indexed 0:θ1 1:θ2 2:ω1 3:ω2.\n" +
			"With --poincare, plot (θ2, ω2) each time θ1 crosses zero upward instead.",
		Args: cobra.NoArgs,
		RunE: phasePlot,
	}
	cmd.Flags().IntVar(&xAxis, "x", 0, "horizontal component index")
	cmd.Flags().IntVar(&yAxis, "y", 2, "vertical component index")
	cmd.Flags().BoolVar(&poincare, "poincare", false, "plot a Poincaré section instead")
	cmd.Flags().IntVar(&phaseWidth, "width", 60, "plot width in columns")
	cmd.Flags().IntVar(&phaseHeight, "height", 20, "plot height in rows")
	return cmd
}

func phasePlot(cmd *cobra.Command, args []string) error {
	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}
	model := pendulum.NewModel(cfg.Params())
	x0 := cfg.InitialState().Vector()

	if poincare {
		section, err := analysis.GeneratePoincareSection(model, integ, x0, 0, 0, 1, 3, cfg.Dt, cfg.Duration)
		if err != nil {
			return err
		}
		fmt.Printf("poincaré section at θ1 = 0 (upward): %d crossings\n", len(section.Points))
		fmt.Printf("x-axis: θ2, y-axis: ω2\n\n")
		fmt.Println(analysis.PoincareSectionToASCII(section, phaseWidth, phaseHeight))
		return nil
	}

	if xAxis < 0 || xAxis >= len(stateNames) || yAxis < 0 || yAxis >= len(stateNames) {
		return fmt.Errorf("axis index out of range (0-%d)", len(stateNames)-1)
	}
	portrait, err := analysis.GeneratePhasePortrait(model, integ, x0, xAxis, yAxis, cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}
	minX, maxX, minY, maxY := portrait.Bounds()
	fmt.Printf("phase portrait, %s (dt=%.5f, %.1fs)\n", integ.Name(), cfg.Dt, cfg.Duration)
	fmt.Printf("x-axis: %s [%.3f, %.3f], y-axis: %s [%.3f, %.3f]\n\n",
		stateNames[xAxis], minX, maxX, stateNames[yAxis], minY, maxY)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, phaseWidth, phaseHeight))
	return nil
}

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [schemes...]",
		Short: "compare integration schemes on the same start",
		Long:  "Run the same start with each scheme concurrently. Without arguments every scheme is compared.",
		RunE:  compareIntegrators,
	}
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	schemes := args
	if len(schemes) == 0 {
		schemes = integrators.Names()
	}

	sims := make([]*sim.Simulator, len(schemes))
	drifts := make([]*metrics.EnergyDrift, len(schemes))
	for i, name := range schemes {
		s, err := newSimulator(cfg, name)
		if err != nil {
			return err
		}
		drifts[i] = metrics.NewEnergyDrift(pendulum.NewModel(s.Params()))
		s.AddMetric(drifts[i])
		sims[i] = s
	}

	ctx, cancel := signalContext()
	defer cancel()

	// Keep diverging schemes running so every row is filled.
	runCfg := cfg.RunConfig()
	runCfg.StopOnNonFinite = false

	start := time.Now()
	results, err := sim.RunAll(ctx, sims, runCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("comparing schemes (dt=%.5f, duration=%.1fs)\n\n", cfg.Dt, cfg.Duration)
	fmt.Printf("%-12s  %12s  %12s  %12s  %12s\n", "scheme", "final_θ1", "final_θ2", "drift_final", "drift_max")
	fmt.Println(strings.Repeat("-", 68))
	for i, s := range sims {
		final := s.State()
		fmt.Printf("%-12s  %12.6f  %12.6f  %12.2e  %12.2e\n",
			s.Integrator(), final.Theta1, final.Theta2, results[i].EnergyDrift, drifts[i].Value())
		if !final.IsFinite() {
			log.Warn("scheme diverged", "scheme", s.Integrator())
		}
	}
	fmt.Printf("\n%d runs in %.2f ms\n", len(sims), float64(elapsed.Microseconds())/1000)
	return nil
}

func newChaosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chaos",
		Short: "estimate the largest Lyapunov exponent and dominant frequency",
		Args:  cobra.NoArgs,
		RunE:  analyzeChaos,
	}
	cmd.Flags().Float64Var(&separation, "d0", 1e-8, "initial separation of the twin trajectory")
	cmd.Flags().IntVar(&chaosWidth, "width", 70, "chart width in columns")
	cmd.Flags().IntVar(&chaosHeight, "height", 10, "chart height in rows")
	return cmd
}

func analyzeChaos(cmd *cobra.Command, args []string) error {
	model := pendulum.NewModel(cfg.Params())
	x0 := cfg.InitialState().Vector()

	var (
		lambda   float64
		distance []float64
		spectrum *analysis.Spectrum
	)

	parent, cancel := signalContext()
	defer cancel()

	// Each goroutine owns its integrator.
	g, ctx := errgroup.WithContext(parent)
	g.Go(func() error {
		integ, err := integrators.New(cfg.Integrator)
		if err != nil {
			return err
		}
		lambda, err = analysis.LyapunovExponent(model, integ, x0, cfg.Dt, cfg.Duration, separation)
		return err
	})
	g.Go(func() error {
		integ, err := integrators.New(cfg.Integrator)
		if err != nil {
			return err
		}
		distance, err = analysis.Separation(model, integ, x0, cfg.Dt, cfg.Duration, separation)
		return err
	})
	g.Go(func() error {
		_, result, err := headless(ctx, cfg, "")
		if err != nil {
			return err
		}
		theta := make([]float64, len(result.States))
		for i, x := range result.States {
			theta[i] = x[0]
		}
		spectrum, err = analysis.PowerSpectrum(theta, cfg.Dt)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logDist := make([]float64, len(distance))
	for i, d := range distance {
		logDist[i] = math.Log10(math.Max(d, 1e-300))
	}

	fmt.Printf("scheme %s, dt=%.5f, %.1fs, d0=%.0e\n\n", cfg.Integrator, cfg.Dt, cfg.Duration, separation)
	fmt.Printf("largest Lyapunov exponent  %+.4f 1/s\n", lambda)
	if lambda > 0 {
		fmt.Printf("e-folding time             %.3f s\n", 1/lambda)
	}
	f, _ := spectrum.Peak()
	fmt.Printf("dominant θ1 frequency      %.4f Hz (period %.3f s)\n\n", f, spectrum.DominantPeriod())
	fmt.Println(viz.PlotSeries("log10 separation of twin trajectories", chaosWidth, chaosHeight,
		viz.Series{Name: "log10 d", Values: logDist}))
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "render PNG charts of a run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			s, result, err := headless(ctx, cfg, "")
			if err != nil {
				return err
			}
			files, err := report.Write(reportDir, s.Params(), result)
			for _, f := range files {
				log.Info("chart written", "file", f)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&reportDir, "out", "report", "output directory")
	return cmd
}
