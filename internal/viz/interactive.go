package viz

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/randwalk/internal/config"
	"github.com/san-kum/randwalk/internal/experiment"
	"github.com/san-kum/randwalk/internal/walker"
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

const (
	stateConfig = iota
	stateSim
)

var paramNames = []string{"population", "hop", "boundary", "iterations", "speed", "seed"}

// App is the parameter screen in front of a live run.
type App struct {
	state   int
	cfg     config.Config
	cursor  int
	editing bool
	editBuf string
	err     string
	live    Model
}

func NewApp(cfg *config.Config) *App {
	return &App{state: stateConfig, cfg: *cfg}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if a.state == stateConfig {
			return a.configKey(key)
		}
		if key.String() == "esc" {
			a.state = stateConfig
			return a, nil
		}
	}
	if a.state == stateSim {
		next, cmd := a.live.Update(msg)
		a.live = next.(Model)
		return a, cmd
	}
	return a, nil
}

func (a App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			a.err = ""
			if err := a.set(paramNames[a.cursor], a.editBuf); err != nil {
				a.err = err.Error()
			}
			a.editing, a.editBuf = false, ""
		case "esc":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					a.editBuf += s
				}
			}
		}
		return a, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(paramNames)-1 {
			a.cursor++
		}
	case "left", "h":
		a.adjust(paramNames[a.cursor], -1)
	case "right", "l":
		a.adjust(paramNames[a.cursor], 1)
	case "enter", " ":
		if paramNames[a.cursor] == "boundary" {
			a.adjust("boundary", 1)
		} else {
			a.editing, a.editBuf = true, a.value(paramNames[a.cursor])
		}
	case "s":
		return a.start()
	}
	return a, nil
}

func (a App) start() (App, tea.Cmd) {
	cfg, err := experiment.FromConfig(&a.cfg)
	if err != nil {
		a.err = err.Error()
		return a, nil
	}
	live, err := NewModel(cfg)
	if err != nil {
		a.err = err.Error()
		return a, nil
	}
	live.embedded = true
	a.err = ""
	a.live = live
	a.state = stateSim
	return a, live.Init()
}

func (a *App) adjust(name string, dir int) {
	c := &a.cfg
	switch name {
	case "population":
		c.Population = clampInt(c.Population+dir, config.MinPopulation, config.MaxPopulation)
	case "hop":
		c.HopProbability = clampFloat(round2(c.HopProbability+0.05*float64(dir)), 0, 1)
	case "boundary":
		bs := walker.Boundaries()
		cur, err := walker.ParseBoundary(c.Boundary)
		if err != nil {
			cur = bs[0]
		}
		c.Boundary = bs[(int(cur)+dir+len(bs))%len(bs)].String()
	case "iterations":
		c.Iterations = max(c.Iterations+10*dir, 1)
	case "speed":
		c.Speed = clampFloat(round2(c.Speed+0.05*float64(dir)), 0, 1)
	case "seed":
		c.Seed += int64(dir)
	}
}

// set applies an edited value. A value that fails validation is rolled
// back so the screen keeps showing a runnable configuration.
func (a *App) set(name, raw string) error {
	prev := a.cfg
	if err := a.apply(name, raw); err != nil {
		return err
	}
	if err := a.cfg.Validate(); err != nil {
		a.cfg = prev
		return err
	}
	return nil
}

func (a *App) apply(name, raw string) error {
	c := &a.cfg
	switch name {
	case "population", "iterations":
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %q is not a whole number", name, raw)
		}
		if name == "population" {
			c.Population = n
		} else {
			c.Iterations = n
		}
	case "hop", "speed":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", name, raw)
		}
		if name == "hop" {
			c.HopProbability = f
		} else {
			c.Speed = f
		}
	case "seed":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("seed: %q is not a whole number", raw)
		}
		c.Seed = n
	}
	return nil
}

func (a App) value(name string) string {
	c := a.cfg
	switch name {
	case "population":
		return strconv.Itoa(c.Population)
	case "hop":
		return fmt.Sprintf("%.2f", c.HopProbability)
	case "boundary":
		return c.Boundary
	case "iterations":
		return strconv.Itoa(c.Iterations)
	case "speed":
		return fmt.Sprintf("%.2f", c.Speed)
	case "seed":
		return strconv.FormatInt(c.Seed, 10)
	}
	return ""
}

// Config returns the parameters as currently edited.
func (a App) Config() config.Config { return a.cfg }

func (a App) View() string {
	if a.state == stateSim {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + GradientText("RANDOM WALK", CurrentTheme.Title, CurrentTheme.Walker) + "\n")
	b.WriteString("    " + Subtle.Render(fmt.Sprintf("grid %dx%d", a.cfg.Side(), a.cfg.Side())) + "\n")
	b.WriteString("    " + Separator(26) + "\n\n")

	for i, name := range paramNames {
		val := a.value(name)
		if a.editing && i == a.cursor {
			val = a.editBuf + "_"
		}
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), nameStyle.Render(fmt.Sprintf("%-12s", name)), valueStyle.Render(fmt.Sprintf("%10s", val))))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", idleStyle.Render(fmt.Sprintf("%-12s", name)), idleStyle.Render(fmt.Sprintf("%10s", val))))
		}
	}

	if a.err != "" {
		b.WriteString("\n    " + errStyle.Render(a.err) + "\n")
	}

	hints := []string{
		keyStyle.Render("j/k") + idleStyle.Render(" select"),
		keyStyle.Render("h/l") + idleStyle.Render(" adjust"),
		keyStyle.Render("enter") + idleStyle.Render(" edit"),
		keyStyle.Render("s") + idleStyle.Render(" run"),
		keyStyle.Render("q") + idleStyle.Render(" quit"),
	}
	b.WriteString("\n    " + strings.Join(hints, "  ") + "\n")
	return b.String()
}

// RunInteractive opens the parameter screen seeded with cfg.
func RunInteractive(cfg *config.Config) error {
	_, err := tea.NewProgram(NewApp(cfg), tea.WithAltScreen()).Run()
	return err
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
