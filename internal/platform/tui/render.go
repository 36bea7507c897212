package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Palette holds the cell styles for one output. SSH sessions each get their
// own renderer so color detection follows the remote terminal.
type Palette struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
}

// NewPalette builds styles for r. A nil renderer uses lipgloss' default.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	colors := core.Colors()
	p := &Palette{
		styles: make(map[core.Color]lipgloss.Style, len(colors)),
		plain:  r.NewStyle(),
	}
	for _, c := range colors {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(c.ANSI()))
	}
	return p
}

// Style returns the style used for color c.
func (p *Palette) Style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.plain
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(p.Style(color).Render(run.String()))
		}
	}
	return sb.String()
}
