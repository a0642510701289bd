package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

func clamp01(pct float64) float64 {
	return min(max(pct, 0), 1)
}

// ColorForProgress grades a 0-1 fraction from red through orange and
// yellow to green.
func ColorForProgress(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 0.75:
		return t.Green
	case pct >= 0.5:
		return t.Yellow
	case pct >= 0.25:
		return t.Orange
	default:
		return t.Red
	}
}

// ProgressBar renders a block progress bar followed by its percentage,
// colored by how far along it is.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clamp01(pct)
	filled := min(int(pct*float64(width)), width)
	color := ColorForProgress(pct)

	on := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	off := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return on.Render(strings.Repeat("█", filled)) +
		off.Render(strings.Repeat("░", width-filled)) +
		surface(" ") +
		on.Bold(true).Render(fmt.Sprintf("%.0f%%", pct*100))
}

// meter draws a bubbles progress bar of the given fill color followed by a
// right-aligned percentage.
func meter(pct float64, width int, fill lipgloss.Color) string {
	t := theme.Active
	bar := progress.New(
		progress.WithSolidFill(string(fill)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)
	pctStyle := lipgloss.NewStyle().Foreground(fill).Background(t.Surface).Bold(true)
	return bar.ViewAs(pct) + surface(" ") + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

// GoalBar renders a labeled progress meter with a trailing note, such as
// the amount saved so far.
func GoalBar(label string, pct float64, note string, labelW, barWidth int) string {
	t := theme.Active
	pct = clamp01(pct)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	out := labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		surface(" ") + meter(pct, barWidth, ColorForProgress(pct))
	if note != "" {
		out += surface("  ") + noteStyle.Render(note)
	}
	return out
}

// CompactProgressBar renders a status-bar-sized progress indicator.
func CompactProgressBar(label string, pct float64, width int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barW := max(width-lipgloss.Width(label)-6, 4)
	return labelStyle.Render(label) + surface(" ") + meter(clamp01(pct), barW, t.Accent)
}

func surface(s string) string {
	return lipgloss.NewStyle().Background(theme.Active.Surface).Render(s)
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
