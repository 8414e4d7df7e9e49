package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-escape/internal/core"
)

// styleFor returns the lipgloss style of a screen color.
func styleFor(c core.Color) lipgloss.Style {
	code := c.ANSI()
	if code < 0 {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(code)))
}

// colorStyles caches one style per color.
var colorStyles = func() map[core.Color]lipgloss.Style {
	m := make(map[core.Color]lipgloss.Style)
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		m[c] = styleFor(c)
	}
	return m
}()

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, span := range s.Spans(y) {
			style, ok := colorStyles[span.Color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(span.Text))
		}
	}
	return sb.String()
}
