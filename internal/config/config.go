package config

import (
	"os"

	"github.com/san-kum/dragsim/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHeight        = 10.0
	DefaultSpeed         = 20.0
	DefaultAngle         = 45.0
	DefaultDrag          = 0.1
	DefaultSurfaceWidth  = 800.0
	DefaultSurfaceHeight = 600.0
	DefaultAddr          = ":8080"
	DefaultLogLevel      = "info"
)

type Config struct {
	Params      sim.Params   `yaml:"params"`
	Surface     sim.Surface  `yaml:"surface"`
	MaxDuration float64      `yaml:"max_duration"`
	Server      ServerConfig `yaml:"server"`
	LogLevel    string       `yaml:"log_level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Params: sim.Params{
			Height: DefaultHeight,
			Speed:  DefaultSpeed,
			Angle:  DefaultAngle,
			Drag:   DefaultDrag,
		},
		Surface: sim.Surface{
			Width:  DefaultSurfaceWidth,
			Height: DefaultSurfaceHeight,
		},
		MaxDuration: sim.DefaultMaxDuration,
		Server:      ServerConfig{Addr: DefaultAddr},
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads a YAML file over the defaults, so partial files are fine.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base. Keys missing from the file
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
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

// RunConfig returns the headless run settings.
func (c *Config) RunConfig() sim.RunConfig {
	rc := sim.DefaultRunConfig()
	if c.MaxDuration > 0 {
		rc.MaxDuration = c.MaxDuration
	}
	return rc
}
