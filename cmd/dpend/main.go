package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/san-kum/dpend/internal/config"
	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/logging"
	"github.com/san-kum/dpend/internal/sim"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string

	m1, m2, l1, l2, gravity        float64
	theta1, theta2, omega1, omega2 float64

	dt         float64
	duration   float64
	integrator string
	trailLen   int
	frameRate  int
	logLevel   string

	// cfg is resolved once per invocation in the root's PersistentPreRunE.
	cfg *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the dpend commands and their flags. Without a
// subcommand the root opens the live terminal view.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "dpend",
		Short:             "double pendulum simulator",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runLive,
	}

	def := config.DefaultConfig()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "YAML config file")
	pf.StringVar(&preset, "preset", "", "named start (see 'dpend presets')")
	pf.Float64Var(&m1, "m1", def.Physics.M1, "upper bob mass (kg)")
	pf.Float64Var(&m2, "m2", def.Physics.M2, "lower bob mass (kg)")
	pf.Float64Var(&l1, "l1", def.Physics.L1, "upper arm length (m)")
	pf.Float64Var(&l2, "l2", def.Physics.L2, "lower arm length (m)")
	pf.Float64Var(&gravity, "g", def.Physics.G, "gravitational acceleration (m/s²)")
	pf.Float64Var(&theta1, "theta1", def.InitState.Theta1, "initial upper angle (rad)")
	pf.Float64Var(&theta2, "theta2", def.InitState.Theta2, "initial lower angle (rad)")
	pf.Float64Var(&omega1, "omega1", def.InitState.Omega1, "initial upper angular velocity (rad/s)")
	pf.Float64Var(&omega2, "omega2", def.InitState.Omega2, "initial lower angular velocity (rad/s)")
	pf.Float64Var(&dt, "dt", def.Dt, "timestep (s)")
	pf.Float64Var(&duration, "time", def.Duration, "duration (s)")
	pf.StringVar(&integrator, "integrator", def.Integrator, "integration scheme (euler, symplectic, rk4)")
	pf.IntVar(&trailLen, "trail", def.Trail, "trail length in points")
	pf.IntVar(&frameRate, "fps", def.FPS, "frame rate of the animated views")
	pf.StringVar(&logLevel, "log-level", def.LogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(),
		newLiveCmd(),
		newWindowCmd(),
		newPlotCmd(),
		newPhaseCmd(),
		newCompareCmd(),
		newChaosCmd(),
		newReportCmd(),
		newPresetsCmd(),
		newSweepCmd(),
		newMonteCarloCmd(),
		newScenarioCmd(),
	)
	return rootCmd
}

// setup resolves the configuration and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := logging.Setup(c.LogLevel); err != nil {
		return err
	}
	cfg = c
	log.Debug("config resolved",
		"integrator", c.Integrator, "dt", c.Dt, "duration", c.Duration,
		"theta1", c.InitState.Theta1, "theta2", c.InitState.Theta2)
	return nil
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order, over the defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.DefaultConfig()
	if preset != "" {
		c = config.GetPreset(preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, c)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		c = loaded
	}

	flags := cmd.Flags()
	set := func(name string, dst *float64, v float64) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("m1", &c.Physics.M1, m1)
	set("m2", &c.Physics.M2, m2)
	set("l1", &c.Physics.L1, l1)
	set("l2", &c.Physics.L2, l2)
	set("g", &c.Physics.G, gravity)
	set("theta1", &c.InitState.Theta1, theta1)
	set("theta2", &c.InitState.Theta2, theta2)
	set("omega1", &c.InitState.Omega1, omega1)
	set("omega2", &c.InitState.Omega2, omega2)
	set("dt", &c.Dt, dt)
	set("time", &c.Duration, duration)
	if flags.Changed("integrator") {
		c.Integrator = integrator
	}
	if flags.Changed("trail") {
		c.Trail = trailLen
	}
	if flags.Changed("fps") {
		c.FPS = frameRate
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// newSimulator builds a simulator from c using the named scheme, or c's own
// scheme when name is empty.
func newSimulator(c *config.Config, name string) (*sim.Simulator, error) {
	if name == "" {
		name = c.Integrator
	}
	integ, err := integrators.New(name)
	if err != nil {
		return nil, err
	}
	return sim.New(c.Params(), c.InitialState(), integ)
}

// signalContext is cancelled on Ctrl+C so long headless runs stop cleanly.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
