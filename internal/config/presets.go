package config

import "sort"

var Presets = map[string]*Config{
	"classic": preset(func(c *Config) {
		c.Physics.G = 10
		c.InitState = InitStateConfig{Theta1: 0, Theta2: 2}
	}),
	"gentle": preset(func(c *Config) {
		c.Duration = 30
		c.InitState = InitStateConfig{Theta1: 0.3, Theta2: 0.3}
	}),
	"symmetric": preset(func(c *Config) {
		c.Duration = 30
		c.InitState = InitStateConfig{Theta1: 1.5, Theta2: 1.5}
	}),
	"chaos": preset(func(c *Config) {
		c.Dt = 1.0 / 480.0
		c.Duration = 60
		c.InitState = InitStateConfig{Theta1: 3.0, Theta2: 3.0}
	}),
	"heavy-lower": preset(func(c *Config) {
		c.Duration = 30
		c.Physics.M2 = 3
		c.InitState = InitStateConfig{Theta1: 1.2, Theta2: -0.6}
	}),
}

func preset(apply func(*Config)) *Config {
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Descriptions are one-line summaries for listings.
var Descriptions = map[string]string{
	"classic":     "first arm down, second raised to 2 rad, g = 10",
	"gentle":      "small swing, quasi-periodic",
	"symmetric":   "both arms at 1.5 rad",
	"chaos":       "both arms nearly inverted",
	"heavy-lower": "second bob three times heavier",
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
