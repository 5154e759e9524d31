package solver

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the caller-facing evolution configuration: population size,
// seed, termination budgets, and operator tuning knobs, loadable from a
// YAML file via LoadConfig or constructed directly for programmatic use.
type Config struct {
	Seed                int64         `yaml:"seed"`
	PopulationSize      int           `yaml:"population_size"`
	InitialSize         int           `yaml:"initial_size"`
	MaxGenerations      int           `yaml:"max_generations"`
	MaxElapsed          time.Duration `yaml:"max_elapsed"`
	StagnationWindow    int           `yaml:"stagnation_window"`
	StagnationThreshold float64       `yaml:"stagnation_threshold"`
	NoiseAmplitude      float64       `yaml:"noise_amplitude"`
}

// DefaultConfig returns sane defaults matching the reference
// implementation's evolution defaults: a moderate population, a generous
// generation cap, and a stagnation window/threshold that trips only after
// real convergence.
func DefaultConfig() Config {
	return Config{
		Seed:                0,
		PopulationSize:      4,
		InitialSize:         1,
		MaxGenerations:      2000,
		MaxElapsed:          10 * time.Minute,
		StagnationWindow:    200,
		StagnationThreshold: 0.001,
		NoiseAmplitude:      0.05,
	}
}

// LoadConfig reads and parses a YAML evolution config from path, starting
// from DefaultConfig so a partial file only overrides the fields it sets.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Termination builds the composite Termination this config describes:
// max generations OR max elapsed OR stagnation OR external quota.
func (c Config) Termination() Termination {
	return Any{
		MaxGenerations{Max: c.MaxGenerations},
		MaxElapsed{Duration: c.MaxElapsed},
		VariationCoefficient{WindowSize: c.StagnationWindow, Threshold: c.StagnationThreshold},
		QuotaExhausted{},
	}
}
