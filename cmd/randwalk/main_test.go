package main

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/randwalk/internal/config"
	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/walker"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func resetFlags() {
	population, hop, boundary = config.DefaultPopulation, config.DefaultHop, config.DefaultBoundary
	iterations, speed, seed = config.DefaultIterations, config.DefaultSpeed, 0
	start, configFile, preset = "", "", ""
	logLevel, envFile = "error", ".env"
	watch, metrics = false, nil
	plotHeight, plotWidth = 10, 80
	hopMin, hopMax, sweepPoints, numTrials = 0, 1, 11, 100
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "-n", "25", "--boundary", "absorbing", "--hop", "1", "--iterations", "10000", "--seed", "3", "--log-level", "error")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, out)
	}
	for _, want := range []string{"5x5", "Absorbing", "absorbed at step", "hop_rate", "coverage"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRunCommandIsReproducible(t *testing.T) {
	args := []string{"run", "-n", "64", "--iterations", "200", "--seed", "17", "--log-level", "error"}
	a, err := execute(t, args...)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	b, err := execute(t, args...)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if a != b {
		t.Errorf("same seed produced different output:\n%s\n---\n%s", a, b)
	}
}

func TestRunCommandRejectsBadInput(t *testing.T) {
	tests := [][]string{
		{"run", "-n", "0"},
		{"run", "--hop", "1.5"},
		{"run", "--boundary", "sticky"},
		{"run", "--preset", "nope"},
		{"run", "--start", "1"},
		{"run", "-n", "9", "--start", "5,5"},
		{"run", "-n", "2", "--boundary", "mirror"},
	}
	for _, args := range tests {
		if _, err := execute(t, append(args, "--log-level", "error")...); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestPlotCommand(t *testing.T) {
	out, err := execute(t, "plot", "-n", "16", "--iterations", "50", "--seed", "1", "--log-level", "error")
	if err != nil {
		t.Fatalf("plot failed: %v", err)
	}
	if !strings.Contains(out, "distance from start vs step") {
		t.Errorf("expected displacement plot:\n%s", out)
	}
}

func TestPresetsAndBoundaries(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(out, name) {
			t.Errorf("preset %s missing from:\n%s", name, out)
		}
	}

	out, err = execute(t, "boundaries")
	if err != nil {
		t.Fatalf("boundaries failed: %v", err)
	}
	if out != "Periodic\nMirror\nAbsorbing\n" {
		t.Errorf("unexpected boundaries output %q", out)
	}
}

func TestConfigInitAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "walk.yaml")

	if _, err := execute(t, "config", "init", path, "-n", "49", "--boundary", "mirror", "--seed", "5"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Population != 49 || cfg.Boundary != "Mirror" || cfg.Seed != 5 {
		t.Errorf("unexpected config %+v", cfg)
	}

	out, err := execute(t, "run", "--config", path, "--iterations", "5", "--log-level", "error")
	if err != nil {
		t.Fatalf("run with config failed: %v", err)
	}
	if !strings.Contains(out, "7x7") || !strings.Contains(out, "Mirror") {
		t.Errorf("config file not applied:\n%s", out)
	}
}

func TestConfigFileStacksOnPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("boundary: Mirror\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "run", "--preset", "escape", "--config", path, "--iterations", "3", "--seed", "1", "--log-level", "error")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "5x5") || !strings.Contains(out, "Mirror") {
		t.Errorf("expected preset grid with file boundary:\n%s", out)
	}
}

func TestHugePopulationIsRejected(t *testing.T) {
	if _, err := execute(t, "run", "-n", "9223372036854775807", "--log-level", "error"); err == nil {
		t.Error("expected error for a grid too large to allocate")
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	t.Setenv("RANDWALK_POPULATION", "36")

	out, err := execute(t, "run", "--iterations", "1", "--seed", "1", "--log-level", "error")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "6x6") {
		t.Errorf("expected env population to apply:\n%s", out)
	}
}

func TestParseStart(t *testing.T) {
	pos, err := parseStart(" 2, 3")
	if err != nil || pos != (walker.Position{X: 2, Y: 3}) {
		t.Errorf("expected (2,3), got %v (%v)", pos, err)
	}
	if _, err := parseStart("a,b"); err == nil {
		t.Error("expected error for non-numeric start")
	}
}

func TestTrace(t *testing.T) {
	m, err := walker.NewAt(9, 1, walker.Absorbing, rand.New(rand.NewSource(1)), walker.Position{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	tr := &trace{last: walker.Position{X: 1, Y: 1}}
	tr.OnStep(sim.Sample{Step: 1, Pos: walker.Position{X: 2, Y: 1}, Inside: true, Start: walker.Position{X: 1, Y: 1}}, m.Grid())
	tr.OnStep(sim.Sample{Step: 2, Outcome: walker.Outcome{Kind: walker.Absorbed}, Start: walker.Position{X: 1, Y: 1}}, m.Grid())

	if len(tr.xs) != 2 || tr.xs[1] != 2 || tr.dist[1] != 1 {
		t.Errorf("unexpected trace xs=%v dist=%v", tr.xs, tr.dist)
	}
}

func TestSweepCommand(t *testing.T) {
	out, err := execute(t, "sweep", "-n", "25", "--points", "3", "--iterations", "20", "--seed", "2", "--log-level", "error")
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	for _, want := range []string{"0.000", "0.500", "1.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected hop %s in output:\n%s", want, out)
		}
	}
}

func TestTrialsCommand(t *testing.T) {
	out, err := execute(t, "trials", "-n", "9", "--boundary", "absorbing", "--hop", "1", "--iterations", "1000", "--trials", "10", "--seed", "4", "--log-level", "error")
	if err != nil {
		t.Fatalf("trials failed: %v", err)
	}
	if !strings.Contains(out, "mean absorption step") {
		t.Errorf("expected absorption summary:\n%s", out)
	}
}

func TestScenarioCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	body := "name: pair\nsteps:\n  - {population: 16, hop_probability: 1, boundary: Mirror, iterations: 5, seed: 1}\n  - {population: 16, hop_probability: 0, boundary: Periodic, iterations: 5, seed: 1}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "scenario", path, "--log-level", "error")
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if !strings.Contains(out, "scenario pair") || !strings.Contains(out, "Mirror") {
		t.Errorf("unexpected scenario output:\n%s", out)
	}
}
