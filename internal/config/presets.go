package config

import "sort"

var Presets = map[string]*Config{
	"diffusion": {
		Population: 400, HopProbability: 1.0, Boundary: "Periodic", Iterations: 500, Speed: 0.95,
	},
	"lazy": {
		Population: 100, HopProbability: 0.2, Boundary: "Periodic", Iterations: 300, Speed: 0.9,
	},
	"box": {
		Population: 64, HopProbability: 0.8, Boundary: "Mirror", Iterations: 300, Speed: 0.9,
	},
	"corridor": {
		Population: 4, HopProbability: 1.0, Boundary: "Mirror", Iterations: 50, Speed: 0.5,
	},
	"escape": {
		Population: 25, HopProbability: 1.0, Boundary: "Absorbing", Iterations: 1000, Speed: 0.8,
	},
	"trap": {
		Population: 500, HopProbability: 0.5, Boundary: "Absorbing", Iterations: 5000, Speed: 0.98,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.LogLevel = DefaultLogLevel
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
