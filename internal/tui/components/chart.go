package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Bar is one row of a horizontal bar chart.
type Bar struct {
	Label string
	Value float64
	Note  string // rendered after the bar, e.g. a formatted amount
}

// HBarChart renders labeled horizontal bars scaled to the largest value.
func HBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	noteW := 0
	peak := 0.0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		noteW = max(noteW, lipgloss.Width(b.Note))
		peak = max(peak, b.Value)
	}
	if peak == 0 {
		peak = 1
	}
	barW := width - labelW - noteW - 3
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)
	palette := t.Palette()

	lines := make([]string, 0, len(bars))
	for i, b := range bars {
		n := int(b.Value / peak * float64(barW))
		if b.Value > 0 && n == 0 {
			n = 1
		}
		barStyle := lipgloss.NewStyle().Foreground(palette[i%len(palette)]).Background(t.Surface)
		lines = append(lines,
			labelStyle.Render(fmt.Sprintf("%-*s", labelW, b.Label))+
				spaceStyle.Render(" ")+
				barStyle.Render(strings.Repeat("█", n))+
				spaceStyle.Render(strings.Repeat(" ", barW-n+1))+
				noteStyle.Render(fmt.Sprintf("%*s", noteW, b.Note)))
	}
	return strings.Join(lines, "\n")
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// ScoreGauge renders a 0-100 score as a large number over a colored bar.
func ScoreGauge(score, width int) string {
	t := theme.Active
	pct := clamp01(float64(score) / 100)
	color := ColorForProgress(pct)

	big := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).
		Render(fmt.Sprintf("%d", score))
	of := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(" / 100")

	barW := width - 5
	if barW < 10 {
		barW = 10
	}
	return big + of + "\n" + ProgressBar(pct, barW)
}
