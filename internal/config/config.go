package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxAmplitude = 0.02
	DefaultAlpha        = 0.62
	DefaultPoints       = 2000
	DefaultFy           = 420.0
	DefaultE            = 200000.0
	DefaultB            = 0.01
	DefaultFpc          = -30.0
	DefaultEpsc0        = -0.002
)

type Config struct {
	Material       string             `yaml:"material"`
	MaterialParams map[string]float64 `yaml:"material_params"`
	Protocol       string             `yaml:"protocol"`
	MaxAmplitude   float64            `yaml:"max_amplitude"`
	Alpha          float64            `yaml:"alpha"`
	Points         int                `yaml:"points"`
	DataDir        string             `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Material: "steel01",
		MaterialParams: map[string]float64{
			"fy": DefaultFy,
			"e":  DefaultE,
			"b":  DefaultB,
		},
		Protocol:     "asce41",
		MaxAmplitude: DefaultMaxAmplitude,
		Alpha:        DefaultAlpha,
		Points:       DefaultPoints,
		DataDir:      "runs",
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
