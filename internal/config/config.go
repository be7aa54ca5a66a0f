package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBodies      = 256
	DefaultDt          = 0.001
	DefaultDuration    = 10.0
	DefaultG           = 1.0
	DefaultSoftening   = 0.1
	DefaultCentralMass = 100.0
	DefaultScale       = 10.0
	DefaultBodyMass    = 0.01
)

type Config struct {
	Bodies      int     `yaml:"bodies"`
	Seed        int64   `yaml:"seed"`
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	G           float64 `yaml:"g"`
	Softening   float64 `yaml:"softening"`
	CentralMass float64 `yaml:"central_mass"`
	Scale       float64 `yaml:"scale"`
	BodyMass    float64 `yaml:"body_mass"`
	Workers     int     `yaml:"workers"`
	SampleEvery int     `yaml:"sample_every"`
	Validate    bool    `yaml:"validate_state"`
}

func DefaultConfig() *Config {
	return &Config{
		Bodies:      DefaultBodies,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		G:           DefaultG,
		Softening:   DefaultSoftening,
		CentralMass: DefaultCentralMass,
		Scale:       DefaultScale,
		BodyMass:    DefaultBodyMass,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
