// Package automation runs batches of simulations: scripted scenarios,
// parameter sweeps and Monte Carlo trials.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/san-kum/dpend/internal/config"
	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/integrators"
	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. It starts from a preset, or from the caller's
// base configuration when Preset is empty, and overrides what it names.
type ScenarioStep struct {
	Preset     string             `yaml:"preset"`
	Integrator string             `yaml:"integrator"`
	Dt         float64            `yaml:"dt"`
	Duration   float64            `yaml:"duration"`
	Set        map[string]float64 `yaml:"set"`
	// Label names the step in progress reports.
	Label string `yaml:"label"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Label    string
	Config   *config.Config
	Result   *dynamo.Result
	Final    pendulum.State
	Diverged bool
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Config builds and validates the configuration of the step.
func (st ScenarioStep) Config(base *config.Config) (*config.Config, error) {
	var c *config.Config
	if st.Preset != "" {
		c = config.GetPreset(st.Preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset %q", st.Preset)
		}
	} else {
		cp := *base
		c = &cp
	}

	if st.Integrator != "" {
		c.Integrator = st.Integrator
	}
	if st.Dt != 0 {
		c.Dt = st.Dt
	}
	if st.Duration != 0 {
		c.Duration = st.Duration
	}
	if err := apply(c, st.Set); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// apply sets values in key order so errors are reported deterministically.
func apply(c *config.Config, values map[string]float64) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.Set(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// RunScenario executes all steps in order. onStep, if set, is called after
// every step.
func RunScenario(
	ctx context.Context,
	scenario *Scenario,
	base *config.Config,
	onStep func(i int, r StepResult),
) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		c, err := step.Config(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		s, result, diverged, err := simulate(ctx, c)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		label := step.Label
		if label == "" {
			label = step.Preset
		}
		if label == "" {
			label = fmt.Sprintf("step%d", i+1)
		}
		sr := StepResult{
			Label:    label,
			Config:   c,
			Result:   result,
			Final:    s.State(),
			Diverged: diverged,
		}

		results = append(results, sr)
		if onStep != nil {
			onStep(i, sr)
		}
	}

	return results, nil
}

// simulate runs c headless. A run stopped by a non-finite state is reported
// as diverged, not as an error.
func simulate(ctx context.Context, c *config.Config) (*sim.Simulator, *dynamo.Result, bool, error) {
	integ, err := integrators.New(c.Integrator)
	if err != nil {
		return nil, nil, false, err
	}
	s, err := sim.New(c.Params(), c.InitialState(), integ)
	if err != nil {
		return nil, nil, false, err
	}

	result, err := s.Run(ctx, c.RunConfig())
	var simErr *dynamo.SimulationError
	if errors.As(err, &simErr) {
		return s, result, true, nil
	}
	if err != nil {
		return nil, nil, false, err
	}
	return s, result, false, nil
}
