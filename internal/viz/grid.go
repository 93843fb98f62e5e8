package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/randwalk/internal/walker"
)

const (
	walkerCell = "██"
	emptyCell  = "··"
)

// RenderGrid draws g with north at the top: the last row of g.Rows() is
// printed first.
func RenderGrid(g walker.Grid, theme Theme) string {
	on := lipgloss.NewStyle().Foreground(theme.Walker)
	off := lipgloss.NewStyle().Foreground(theme.Cell)

	rows := g.Rows()
	lines := make([]string, 0, len(rows))
	for y := len(rows) - 1; y >= 0; y-- {
		var b strings.Builder
		for _, c := range rows[y] {
			if c != 0 {
				b.WriteString(on.Render(walkerCell))
			} else {
				b.WriteString(off.Render(emptyCell))
			}
		}
		lines = append(lines, b.String())
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
	return box.Render(strings.Join(lines, "\n"))
}
