// Package components provides reusable TUI widgets for the finbuddy interface.
package components

import (
	"strings"

	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// LayoutRow splits totalWidth into n column widths that sum to totalWidth,
// giving the leftover columns to the leftmost cards.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = totalWidth / n
		if i < totalWidth%n {
			widths[i]++
		}
	}
	return widths
}

// Metric is one small card in a metric row.
type Metric struct {
	Label string
	Value string
	Delta string
	// Color overrides the value color when set.
	Color lipgloss.Color
}

// panel is the bordered surface shared by every card. outerWidth includes
// the border.
func panel(outerWidth int) lipgloss.Style {
	t := theme.Active
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)
}

// MetricCard renders a small card with a label, a bold value and an
// optional delta line.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active
	valueColor := m.Color
	if valueColor == "" {
		valueColor = t.TextPrimary
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(m.Label),
		lipgloss.NewStyle().Foreground(valueColor).Background(t.Surface).Bold(true).Render(m.Value),
	}
	if m.Delta != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(m.Delta))
	}
	return panel(outerWidth).Render(strings.Join(lines, "\n"))
}

// MetricCardRow renders a row of metric cards whose widths sum to totalWidth.
func MetricCardRow(cards []Metric, totalWidth int) string {
	if len(cards) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(cards))
	rendered := make([]string, 0, len(cards))
	for i, c := range cards {
		rendered = append(rendered, MetricCard(c, widths[i]))
	}
	return CardRow(rendered)
}

// ContentCard renders a bordered card with an optional accent title.
func ContentCard(title, body string, outerWidth int) string {
	if title != "" {
		t := theme.Active
		body = lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).
			Render(title) + "\n" + body
	}
	return panel(outerWidth).Render(body)
}

// CardRow joins pre-rendered cards horizontally. Shorter cards are padded
// with the theme background so the row has no unstyled gaps.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	t := theme.Active
	tallest := 0
	for _, c := range cards {
		tallest = max(tallest, lipgloss.Height(c))
	}
	padded := make([]string, len(cards))
	for i, c := range cards {
		padded[i] = lipgloss.PlaceVertical(tallest, lipgloss.Top, c,
			lipgloss.WithWhitespaceBackground(t.Background))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}
