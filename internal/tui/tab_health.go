package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/health"
	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/tui/components"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateHealthKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "s", "enter":
		var rep session.HealthReport
		cmd := a.mutate(func(s *session.Session) error {
			rep = s.CalculateHealth()
			return nil
		})
		a.healthRep = &rep
		a.healthPlan = nil
		return a, cmd
	case "p":
		if a.snap.Health == nil {
			return a, a.setFlash("Calculate your score first (press s).", true)
		}
		return a, a.runAction("Writing your plan", func(ctx context.Context, s *session.Session) (func(*App), error) {
			reply, err := s.ImprovementPlan(ctx)
			if err != nil {
				return nil, err
			}
			return func(a *App) { a.healthPlan = &reply }, nil
		})
	}
	return a, nil
}

func (a App) renderHealthTab(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	rep := a.healthRep
	if rep == nil {
		var b strings.Builder
		b.WriteString(mutedText("Press s to calculate your financial health score."))
		if a.snap.Health != nil {
			b.WriteString("\n\n" + mutedText(fmt.Sprintf("Last score: %d / 100", a.snap.Health.Score)))
		}
		return components.ContentCard("Financial Health", b.String(), cw)
	}

	var parts []string

	// Headline
	var head strings.Builder
	head.WriteString(components.ScoreGauge(rep.Score, inner))
	head.WriteString("\n\n")
	head.WriteString(lipgloss.NewStyle().Foreground(bandColor(rep.Band)).Background(t.Surface).Bold(true).
		Width(inner).Render(rep.Interpretation))
	if rep.Previous != nil {
		delta := rep.Score - *rep.Previous
		head.WriteString("\n")
		head.WriteString(lipgloss.NewStyle().Foreground(t.Signed(delta < 0)).Background(t.Surface).
			Render(fmt.Sprintf("%+d since last check", delta)))
	}
	if len(rep.Missing) > 0 {
		head.WriteString("\n\n" + mutedText("For a complete assessment:"))
		for _, m := range rep.Missing {
			head.WriteString("\n" + mutedText("  • "+m))
		}
	}
	parts = append(parts, components.ContentCard("Financial Health", head.String(), cw))

	// Score buckets and display areas
	bars := []components.Bar{
		{Label: "Budget balance", Value: rep.Buckets.Balance, Note: points(rep.Buckets.Balance, health.MaxBalancePoints)},
		{Label: "Savings goals", Value: rep.Buckets.Goals, Note: points(rep.Buckets.Goals, health.MaxGoalPoints)},
		{Label: "Spending spread", Value: rep.Buckets.Diversity, Note: points(rep.Buckets.Diversity, health.MaxDiversityPoints)},
		{Label: "Investing", Value: rep.Buckets.Investment, Note: points(rep.Buckets.Investment, health.MaxInvestmentPoints)},
	}
	areaBars := func(width int) string {
		labelW := 0
		for _, c := range rep.Components {
			labelW = max(labelW, lipgloss.Width(string(c.Area)))
		}
		// label, bar and percentage, each separated by a space, plus the note gap
		barW := max(width-labelW-8, 8)
		lines := make([]string, 0, len(rep.Components))
		for _, c := range rep.Components {
			lines = append(lines, components.GoalBar(string(c.Area), c.Score/100, "", labelW, barW))
		}
		return strings.Join(lines, "\n")
	}

	if a.isCompactLayout() {
		parts = append(parts,
			components.ContentCard("Score breakdown", components.HBarChart(bars, inner), cw),
			components.ContentCard("Areas", areaBars(inner), cw))
	} else {
		half := cw / 2
		parts = append(parts, components.CardRow([]string{
			components.ContentCard("Score breakdown", components.HBarChart(bars, components.CardInnerWidth(half)), half),
			components.ContentCard("Areas", areaBars(components.CardInnerWidth(cw-half)), cw-half),
		}))
	}

	// Focus area and recommendations
	var focus strings.Builder
	focus.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).
		Render(fmt.Sprintf("Focus on %s", rep.Focus.Area)))
	for _, tip := range rep.FocusTips {
		focus.WriteString("\n" + wrapped("• "+tip, inner))
	}
	if len(rep.Recommendations) > 0 {
		focus.WriteString("\n\n")
		focus.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("Recommendations"))
		for _, r := range rep.Recommendations {
			focus.WriteString("\n" + wrapped("• "+r, inner))
		}
	}
	parts = append(parts, components.ContentCard("Next steps", focus.String(), cw))

	if a.healthPlan != nil {
		parts = append(parts, components.ContentCard("Improvement plan", replyBody(*a.healthPlan, inner), cw))
	} else {
		parts = append(parts, mutedText("  Press p for a personalized improvement plan."))
	}
	return strings.Join(parts, "\n")
}

func bandColor(b health.Band) lipgloss.Color {
	t := theme.Active
	switch b {
	case health.BandExcellent:
		return t.Green
	case health.BandGood:
		return t.Blue
	case health.BandAttention:
		return t.Yellow
	default:
		return t.Red
	}
}

func points(got float64, of int) string {
	return fmt.Sprintf("%.1f/%d", got, of)
}

func wrapped(s string, width int) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(width).Render(s)
}
