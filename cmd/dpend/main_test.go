package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/dpend/internal/config"
	"github.com/san-kum/dpend/internal/dynamo"
	"github.com/san-kum/dpend/internal/integrators"
)

func resolve(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	root := newRootCmd()
	if err := root.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return resolveConfig(root)
}

func TestResolveDefaults(t *testing.T) {
	c, err := resolve(t)
	if err != nil {
		t.Fatal(err)
	}
	if *c != *config.DefaultConfig() {
		t.Errorf("expected defaults, got %+v", c)
	}
}

func TestResolvePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	body := "duration: 7\ninit_state:\n  theta1: 0.5\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := resolve(t, "--preset", "heavy-lower", "--config", path, "--theta1", "0.25", "--integrator", "euler")
	if err != nil {
		t.Fatal(err)
	}
	if c.Physics.M2 != 3 {
		t.Errorf("preset value lost: m2=%g", c.Physics.M2)
	}
	if c.Duration != 7 {
		t.Errorf("config file must override preset: duration=%g", c.Duration)
	}
	if c.InitState.Theta1 != 0.25 {
		t.Errorf("flag must override config file: theta1=%g", c.InitState.Theta1)
	}
	if c.InitState.Theta2 != -0.6 {
		t.Errorf("file without theta2 must keep the preset's: theta2=%g", c.InitState.Theta2)
	}
	if c.Integrator != "euler" {
		t.Errorf("expected euler, got %s", c.Integrator)
	}
}

func TestResolveUnchangedFlagsKeepPreset(t *testing.T) {
	c, err := resolve(t, "--preset", "chaos")
	if err != nil {
		t.Fatal(err)
	}
	if c.Dt != 1.0/480 || c.InitState.Theta1 != 3 {
		t.Errorf("flag defaults overrode the preset: %+v", c)
	}
}

func TestResolveErrors(t *testing.T) {
	if _, err := resolve(t, "--preset", "nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := resolve(t, "--l1", "-1"); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := resolve(t, "--integrator", "verlet"); !errors.Is(err, integrators.ErrUnknown) {
		t.Errorf("expected ErrUnknown, got %v", err)
	}
	if _, err := resolve(t, "--time", "1e6", "--dt", "1e-6"); !errors.Is(err, dynamo.ErrTooManySteps) {
		t.Errorf("expected ErrTooManySteps, got %v", err)
	}
	if _, err := resolve(t, "--config", filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestParseAxis(t *testing.T) {
	key, values, err := parseAxis("theta2=0:3:4")
	if err != nil {
		t.Fatal(err)
	}
	if key != "theta2" || len(values) != 4 || values[0] != 0 || values[3] != 3 {
		t.Errorf("got %s %v", key, values)
	}

	for _, bad := range []string{"theta2", "theta2=0:3", "theta2=a:3:4", "theta2=0:b:4", "theta2=0:3:0", "theta2=0:3:x"} {
		if _, _, err := parseAxis(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
