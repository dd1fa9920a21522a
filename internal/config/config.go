package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultEquation = "cubic_sine"
	DefaultMethod   = "rk4"
	DefaultT0       = 0.0
	DefaultT1       = 10.0
	DefaultPoints   = 20
	DefaultX0       = 0.0
)

type Config struct {
	Equation string             `yaml:"equation"`
	Method   string             `yaml:"method"`
	X0       float64            `yaml:"x0"`
	T0       float64            `yaml:"t0"`
	T1       float64            `yaml:"t1"`
	Points   int                `yaml:"points"`
	Params   map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Equation: DefaultEquation,
		Method:   DefaultMethod,
		X0:       DefaultX0,
		T0:       DefaultT0,
		T1:       DefaultT1,
		Points:   DefaultPoints,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the grid settings. Equation and method names are resolved
// later by the registry.
func (c *Config) Validate() error {
	if c.Equation == "" {
		return fmt.Errorf("equation is required")
	}
	if c.Method == "" {
		return fmt.Errorf("method is required")
	}
	if c.Points < 2 {
		return fmt.Errorf("points must be at least 2, got %d", c.Points)
	}
	if c.T1 == c.T0 {
		return fmt.Errorf("t1 must differ from t0 (both %g)", c.T0)
	}
	return nil
}

// Step is the grid spacing implied by the config.
func (c *Config) Step() float64 {
	if c.Points < 2 {
		return 0
	}
	return (c.T1 - c.T0) / float64(c.Points-1)
}

// Clone returns a deep copy so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	out := *c
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}
