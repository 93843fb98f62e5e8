package viz

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/randwalk/internal/experiment"
	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/walker"
)

const (
	barWidth = 40
	minFrame = time.Second / 120
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	paneStyle   = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(36)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// TickMsg paces a live run. gen ties it to the Model that scheduled it, so
// ticks still in flight from an earlier run are dropped.
type TickMsg struct {
	Time time.Time
	gen  uint64
}

var runGen atomic.Uint64

// Model is a live run: it steps the walker once per tick and redraws.
type Model struct {
	cfg      experiment.Config
	walker   *walker.Model
	metrics  []sim.Metric
	start    walker.Position
	step     int
	last     walker.Outcome
	moves    int
	running  bool
	done     bool
	absorbed bool
	showHelp bool
	embedded bool
	gen      uint64
}

// NewModel builds the walker for cfg. The run starts unpaused.
func NewModel(cfg experiment.Config) (Model, error) {
	m := Model{cfg: cfg, running: true, gen: runGen.Add(1)}
	if err := m.build(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) build() error {
	reg := experiment.NewRegistry()
	exp := experiment.New(m.cfg)
	if err := exp.Setup(reg); err != nil {
		return err
	}

	m.walker = exp.Model()
	m.metrics = reg.DefaultMetrics()
	m.start, _ = m.walker.Position()
	m.step = 0
	m.moves = 0
	m.last = walker.Outcome{}
	m.absorbed = false
	m.done = m.cfg.Iterations == 0
	return nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	d := m.cfg.Delay
	if d < minFrame {
		d = minFrame
	}
	gen := m.gen
	return tea.Tick(d, func(t time.Time) tea.Msg { return TickMsg{Time: t, gen: gen} })
}

// Update handles keys and advances the run on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			wasDone := m.done
			if err := m.build(); err != nil {
				return m, tea.Quit
			}
			if wasDone && !m.done {
				return m, m.tick()
			}
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if msg.gen != m.gen || m.done {
			return m, nil
		}
		if m.running {
			m.advance()
		}
		if m.done {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance() {
	out := m.walker.Step()
	m.step++
	m.last = out
	if out.Kind == walker.Moved {
		m.moves++
	}

	pos, inside := m.walker.Position()
	s := sim.Sample{Step: m.step, Outcome: out, Pos: pos, Inside: inside, Start: m.start, Side: m.walker.Side()}
	for _, mt := range m.metrics {
		mt.Observe(s)
	}

	if out.Kind == walker.Absorbed {
		m.absorbed = true
		m.done = true
	}
	if m.step >= m.cfg.Iterations {
		m.done = true
	}
}

func (m Model) Step() int      { return m.step }
func (m Model) Done() bool     { return m.done }
func (m Model) Absorbed() bool { return m.absorbed }

func (m Model) View() string {
	theme := CurrentTheme
	title := headerStyle.Render(GradientText("RANDOM WALK", theme.Title, theme.Walker))

	left := lipgloss.JoinVertical(lipgloss.Left,
		title,
		StepLabel(m.step),
		RenderGrid(m.walker.Grid(), theme),
		"",
		ProgressBar(Percent(m.step, m.cfg.Iterations), barWidth)+fmt.Sprintf(" %d/%d", m.step, m.cfg.Iterations),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, paneStyle.Render(left), statsStyle.Render(m.stats()))
	return body + "\n" + m.help()
}

func (m Model) stats() string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}

	b.WriteString(m.status() + "\n\n")
	row("grid", fmt.Sprintf("%dx%d", m.walker.Side(), m.walker.Side()))
	row("boundary", m.cfg.Boundary.String())
	row("hop", fmt.Sprintf("%.2f", m.cfg.HopProbability))
	row("seed", fmt.Sprintf("%d", m.cfg.Seed))
	row("start", m.start.String())
	if pos, ok := m.walker.Position(); ok {
		row("position", pos.String())
	} else {
		row("position", "gone")
	}
	row("moves", fmt.Sprintf("%d", m.moves))
	row("last", m.last.Kind.String())

	b.WriteString("\n" + Separator(30) + "\n\n")
	values := make(map[string]float64, len(m.metrics))
	names := make([]string, 0, len(m.metrics))
	for _, mt := range m.metrics {
		values[mt.Name()] = mt.Value()
		names = append(names, mt.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		row(name, fmt.Sprintf("%.3f", values[name]))
	}
	return b.String()
}

func (m Model) status() string {
	switch {
	case m.absorbed:
		return StatusAbsorbed.Render(fmt.Sprintf("● absorbed at step %d", m.step))
	case m.done:
		return StatusRunning.Render("● finished")
	case m.running:
		return StatusRunning.Render("● running")
	default:
		return StatusPaused.Render("● paused")
	}
}

func (m Model) help() string {
	if !m.showHelp {
		return helpStyle.Render("space pause · r restart · t theme · ? help · q quit")
	}
	lines := []string{
		"space  pause / resume",
		"r      restart with the same seed",
		"t      cycle theme (" + CurrentTheme.Name + ")",
		"?      hide help",
		"q      quit",
	}
	if m.embedded {
		lines = append(lines, "esc    back to parameters")
	}
	return helpStyle.Render(KeyHint.Render(strings.Join(lines, "\n")))
}

// RunLive runs cfg in a full-screen live view.
func RunLive(cfg experiment.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
