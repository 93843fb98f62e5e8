package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/randwalk/internal/walker"
)

const (
	DefaultPopulation = 100
	DefaultHop        = 0.5
	DefaultBoundary   = "Periodic"
	DefaultIterations = 100
	DefaultSpeed      = 0.75
	DefaultLogLevel   = "info"

	// Range offered by the interactive controls. Values outside it are
	// accepted as long as the model accepts them.
	MinPopulation = 5
	MaxPopulation = 500
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Population     int              `yaml:"population"`
	HopProbability float64          `yaml:"hop_probability"`
	Boundary       string           `yaml:"boundary"`
	Iterations     int              `yaml:"iterations"`
	Speed          float64          `yaml:"speed"`
	Seed           int64            `yaml:"seed"`
	Start          *walker.Position `yaml:"start,omitempty"`
	LogLevel       string           `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Population:     DefaultPopulation,
		HopProbability: DefaultHop,
		Boundary:       DefaultBoundary,
		Iterations:     DefaultIterations,
		Speed:          DefaultSpeed,
		LogLevel:       DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Fields the file leaves out
// keep base's values; base itself is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if base.Start != nil {
		start := *base.Start
		cfg.Start = &start
	}
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

// Validate checks every field the simulation consumes.
func (c *Config) Validate() error {
	if c.Population < 1 {
		return fmt.Errorf("%w: population %d must be at least 1", ErrInvalidConfig, c.Population)
	}
	if math.IsNaN(c.HopProbability) || c.HopProbability < 0 || c.HopProbability > 1 {
		return fmt.Errorf("%w: hop_probability %v outside [0,1]", ErrInvalidConfig, c.HopProbability)
	}
	if _, err := walker.ParseBoundary(c.Boundary); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations %d must be non-negative", ErrInvalidConfig, c.Iterations)
	}
	if math.IsNaN(c.Speed) || c.Speed < 0 || c.Speed > 1 {
		return fmt.Errorf("%w: speed %v outside [0,1]", ErrInvalidConfig, c.Speed)
	}
	return nil
}

// BoundaryPolicy parses the configured boundary name.
func (c *Config) BoundaryPolicy() (walker.Boundary, error) {
	return walker.ParseBoundary(c.Boundary)
}

// Delay is the pause between steps: one second at speed 0, none at speed 1.
func (c *Config) Delay() time.Duration {
	speed := math.Min(math.Max(c.Speed, 0), 1)
	return time.Duration((1 - speed) * float64(time.Second))
}

// Side is the grid side the configured population produces.
func (c *Config) Side() int {
	return walker.SideFor(c.Population)
}
