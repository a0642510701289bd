package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// SeparatorRow is a table row that renders as a horizontal rule.
const SeparatorRow = "---"

// Table is a bordered text table for command output. The first column is
// left-aligned and every other column right-aligned, which suits label and
// amount layouts.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// styles are rebuilt on each call so output follows the configured theme.
type styles struct {
	title, header, value, muted, rule, bar, warn lipgloss.Style
}

func currentStyles() styles {
	t := theme.Active
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return styles{
		title:  fg(t.TextPrimary).Bold(true),
		header: fg(t.Accent).Bold(true),
		value:  fg(t.TextPrimary),
		muted:  fg(t.TextMuted),
		rule:   fg(t.TextDim),
		bar:    fg(t.Savings),
		warn:   fg(t.Orange),
	}
}

// RenderTitle renders a title centered in a rounded box.
func RenderTitle(title string) string {
	st := currentStyles()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(60).
		Align(lipgloss.Center).
		Padding(0, 1)
	return box.Render(st.title.Render(title))
}

// RenderTable renders t with box-drawing borders. Column widths fit the
// widest cell by display width.
func RenderTable(t Table) string {
	cols := len(t.Headers)
	for _, row := range t.Rows {
		if cols == 0 && !isSeparator(row) {
			cols = len(row)
		}
	}
	if cols == 0 {
		return ""
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		if !isSeparator(row) {
			measure(row)
		}
	}

	st := currentStyles()
	rule := func(left, mid, right string) string {
		segs := make([]string, cols)
		for i, w := range widths {
			segs[i] = strings.Repeat("─", w+2)
		}
		return st.rule.Render(left+strings.Join(segs, mid)+right) + "\n"
	}
	line := func(row []string, cell lipgloss.Style) string {
		bar := st.rule.Render("│")
		var b strings.Builder
		b.WriteString(bar)
		for i, w := range widths {
			s := ""
			if i < len(row) {
				s = row[i]
			}
			if i == 0 {
				s = padRight(s, w)
			} else {
				s = padLeft(s, w)
			}
			b.WriteString(cell.Render(" " + s + " "))
			b.WriteString(bar)
		}
		return b.String() + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + st.header.Render(t.Title) + "\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, st.header))
		b.WriteString(rule("├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, st.value))
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == SeparatorRow
}

// padRight and padLeft pad by display width, so currency symbols and emoji
// keep columns aligned.
func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
}

func padLeft(s string, w int) string {
	return strings.Repeat(" ", max(0, w-lipgloss.Width(s))) + s
}

// RenderProgressBar renders a text bar for a 0-1 fraction followed by the
// percentage. Values outside the range are clamped.
func RenderProgressBar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac = math.Max(0, math.Min(1, frac))
	filled := int(frac * float64(width))

	st := currentStyles()
	return st.bar.Render(strings.Repeat("█", filled)) +
		st.rule.Render(strings.Repeat("░", width-filled)) + " " +
		st.muted.Render(FormatPercent(frac))
}

// RenderHorizontalBar renders one labelled bar of a bar chart, scaled to
// maxValue, with the formatted value after it.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int, formatted string) string {
	n := 0
	if maxValue > 0 {
		n = int(value / maxValue * float64(maxWidth))
	}
	n = max(0, min(n, maxWidth))

	st := currentStyles()
	return fmt.Sprintf("  %-14s %s%s %s", label,
		lipgloss.NewStyle().Foreground(theme.Active.Expense).Render(strings.Repeat("█", n)),
		strings.Repeat(" ", maxWidth-n),
		st.value.Render(formatted))
}

// RenderWarning renders a highlighted single-line notice.
func RenderWarning(msg string) string {
	return currentStyles().warn.Render("  ! " + msg)
}

// RenderMuted renders secondary text.
func RenderMuted(msg string) string {
	return currentStyles().muted.Render(msg)
}

// RenderHeader renders a section heading.
func RenderHeader(msg string) string {
	return currentStyles().header.Render(msg)
}

// RenderParagraph word-wraps text to width and indents it for CLI output.
func RenderParagraph(text string, width int) string {
	return lipgloss.NewStyle().Width(width).PaddingLeft(2).Render(strings.TrimSpace(text))
}
