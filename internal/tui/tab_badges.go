package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/tui/components"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBadgesTab(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	earned := 0
	for _, s := range a.snap.Achievements {
		if s.Unlocked() {
			earned++
		}
	}

	var parts []string
	parts = append(parts, components.MetricCardRow([]components.Metric{
		{Label: "Level", Value: fmt.Sprintf("%d / %d", a.snap.Level, gamify.MaxLevel)},
		{Label: "Progress", Value: cli.FormatPercent(a.snap.Progress)},
		{Label: "Badges", Value: fmt.Sprintf("%d / %d", earned, len(a.snap.Achievements))},
	}, cw))

	var prog strings.Builder
	prog.WriteString(components.ProgressBar(a.snap.Progress, max(inner-6, 10)))
	if len(a.trail) > 1 {
		// Keep the most recent events that fit the card.
		trail := a.trail
		if len(trail) > inner {
			trail = trail[len(trail)-inner:]
		}
		prog.WriteString("\n\n")
		prog.WriteString(components.Sparkline(trail, t.Accent))
		prog.WriteString("\n")
		prog.WriteString(mutedText(fmt.Sprintf("progress over the last %d events", len(trail))))
	}
	parts = append(parts, components.ContentCard("Progress", prog.String(), cw))

	nameW := 0
	for _, s := range a.snap.Achievements {
		nameW = max(nameW, lipgloss.Width(s.Name))
	}
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	lockedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	dateStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var list strings.Builder
	for i, s := range a.snap.Achievements {
		if i > 0 {
			list.WriteString("\n")
		}
		name := fmt.Sprintf("%-*s", nameW, s.Name)
		if s.Unlocked() {
			list.WriteString(spaceStyle.Render(s.Emoji+" ") + nameStyle.Render(name) +
				spaceStyle.Render("  ") + dateStyle.Render(cli.FormatDate(s.Earned.DateEarned)))
		} else {
			list.WriteString(lockedStyle.Render("🔒 " + name))
		}
		list.WriteString("\n")
		list.WriteString(spaceStyle.Render("   ") + mutedText(s.Description))
	}
	parts = append(parts, components.ContentCard("Achievements", list.String(), cw))

	return strings.Join(parts, "\n")
}
