package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/walker"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws the grid on every step. It is a sim.Observer for
// headless runs that still want to watch the walker.
type LiveRenderer struct {
	out        io.Writer
	title      string
	iterations int
	frameRate  int
	lastFrame  time.Time
}

// NewLiveRenderer writes frames to out. A frameRate of 0 draws every step.
func NewLiveRenderer(out io.Writer, title string, iterations, frameRate int) *LiveRenderer {
	return &LiveRenderer{
		out:        out,
		title:      title,
		iterations: iterations,
		frameRate:  frameRate,
	}
}

func (r *LiveRenderer) OnStep(s sim.Sample, g walker.Grid) {
	final := s.Outcome.Kind == walker.Absorbed || s.Step >= r.iterations
	if r.frameRate > 0 && !final {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
	}
	r.lastFrame = time.Now()
	fmt.Fprint(r.out, clearScreen+Frame(r.title, s, g, r.iterations))
}

// Frame renders one step as text: a header, the grid with north at the
// top, and a progress line.
func Frame(title string, s sim.Sample, g walker.Grid, iterations int) string {
	var b strings.Builder
	side := g.Side()

	b.WriteString(fmt.Sprintf("  %s  Step %d\n", title, s.Step))
	b.WriteString("  +" + strings.Repeat("-", side*2) + "+\n")

	rows := g.Rows()
	for y := len(rows) - 1; y >= 0; y-- {
		b.WriteString("  |")
		for _, c := range rows[y] {
			if c != 0 {
				b.WriteString("[]")
			} else {
				b.WriteString(" .")
			}
		}
		b.WriteString("|\n")
	}

	b.WriteString("  +" + strings.Repeat("-", side*2) + "+\n")
	b.WriteString("  " + progress(s.Step, iterations, 30) + "  " + s.Outcome.String() + "\n")

	return b.String()
}

func progress(done, total, width int) string {
	filled := width
	if total > 0 {
		filled = done * width / total
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
