package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/pendulum"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 1.0 / 240.0
	DefaultDuration = 10.0
	DefaultTrail    = 500
	DefaultFPS      = 60
	DefaultLogLevel = "info"
	DefaultTheta2   = 2.0
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Integrator string          `yaml:"integrator"`
	Dt         float64         `yaml:"dt"`
	Duration   float64         `yaml:"duration"`
	Trail      int             `yaml:"trail"`
	FPS        int             `yaml:"fps"`
	LogLevel   string          `yaml:"log_level"`
	Physics    PhysicsConfig   `yaml:"physics"`
	InitState  InitStateConfig `yaml:"init_state"`
}

type PhysicsConfig struct {
	M1 float64 `yaml:"m1"`
	M2 float64 `yaml:"m2"`
	L1 float64 `yaml:"l1"`
	L2 float64 `yaml:"l2"`
	G  float64 `yaml:"g"`
}

type InitStateConfig struct {
	Theta1 float64 `yaml:"theta1"`
	Theta2 float64 `yaml:"theta2"`
	Omega1 float64 `yaml:"omega1"`
	Omega2 float64 `yaml:"omega2"`
}

// DefaultConfig starts the first arm hanging straight down and the second
// raised to 2 rad, both at rest, with unit masses and lengths.
func DefaultConfig() *Config {
	p := pendulum.DefaultParams()
	return &Config{
		Integrator: integrators.Default,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Trail:      DefaultTrail,
		FPS:        DefaultFPS,
		LogLevel:   DefaultLogLevel,
		Physics:    PhysicsConfig{M1: p.M1, M2: p.M2, L1: p.L1, L2: p.L2, G: p.Gravity},
		InitState:  InitStateConfig{Theta2: DefaultTheta2},
	}
}

// Load reads a YAML file on top of DefaultConfig, so omitted keys keep their
// defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file on top of a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() pendulum.Params {
	return pendulum.Params{
		M1: c.Physics.M1, M2: c.Physics.M2,
		L1: c.Physics.L1, L2: c.Physics.L2,
		Gravity: c.Physics.G,
	}
}

func (c *Config) InitialState() pendulum.State {
	return pendulum.State{
		Theta1: c.InitState.Theta1, Theta2: c.InitState.Theta2,
		Omega1: c.InitState.Omega1, Omega2: c.InitState.Omega2,
	}
}

// Keys lists the names accepted by Set.
var Keys = []string{"m1", "m2", "l1", "l2", "g", "theta1", "theta2", "omega1", "omega2", "dt", "duration"}

// Set assigns one numeric field by its short name. Sweeps and scenarios use
// it to vary a single quantity. The result is not validated.
func (c *Config) Set(key string, v float64) error {
	switch key {
	case "m1":
		c.Physics.M1 = v
	case "m2":
		c.Physics.M2 = v
	case "l1":
		c.Physics.L1 = v
	case "l2":
		c.Physics.L2 = v
	case "g":
		c.Physics.G = v
	case "theta1":
		c.InitState.Theta1 = v
	case "theta2":
		c.InitState.Theta2 = v
	case "omega1":
		c.InitState.Omega1 = v
	case "omega2":
		c.InitState.Omega2 = v
	case "dt":
		c.Dt = v
	case "duration":
		c.Duration = v
	default:
		return fmt.Errorf("%w: unknown key %q (available: %v)", ErrInvalidConfig, key, Keys)
	}
	return nil
}

// RunConfig is the headless batch configuration. Runs stop at the first
// non-finite state.
func (c *Config) RunConfig() dynamo.Config {
	return dynamo.Config{Dt: c.Dt, Duration: c.Duration, StopOnNonFinite: true}
}

// Validate checks everything needed to build and run a simulator and reports
// all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.InitialState().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.RunConfig().Validate(); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains(integrators.Names(), c.Integrator) {
		errs = append(errs, fmt.Errorf("%w: %q", integrators.ErrUnknown, c.Integrator))
	}
	if c.Trail < 0 {
		errs = append(errs, fmt.Errorf("trail length must not be negative, got %d", c.Trail))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
