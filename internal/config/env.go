package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envPrefix = "RANDWALK_"

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv overlays RANDWALK_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	if v, ok := lookup("POPULATION"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("POPULATION", err)
		}
		c.Population = n
	}
	if v, ok := lookup("HOP_PROBABILITY"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError("HOP_PROBABILITY", err)
		}
		c.HopProbability = f
	}
	if v, ok := lookup("BOUNDARY"); ok {
		c.Boundary = v
	}
	if v, ok := lookup("ITERATIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("ITERATIONS", err)
		}
		c.Iterations = n
	}
	if v, ok := lookup("SPEED"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError("SPEED", err)
		}
		c.Speed = f
	}
	if v, ok := lookup("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError("SEED", err)
		}
		c.Seed = n
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

func lookup(name string) (string, bool) {
	return os.LookupEnv(envPrefix + name)
}

func envError(name string, err error) error {
	return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, envPrefix, name, err)
}
