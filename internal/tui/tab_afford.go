package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/afford"
	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/tui/components"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) updateAffordKey(key string) (tea.Model, tea.Cmd) {
	if key != "n" && key != "enter" {
		return a, nil
	}
	names := make([]string, 0, len(a.snap.Goals))
	for _, g := range a.snap.Goals {
		if !g.Completed {
			names = append(names, g.Name)
		}
	}
	v := &formValues{}
	return a, a.openForm("Can I afford it?", affordForm(v, names), v, submitAfford)
}

func submitAfford(a *App, v *formValues) tea.Cmd {
	cost, err := parseAmount(v.Amount)
	if err != nil {
		return a.setFlash(err.Error(), true)
	}
	kind, err := afford.ParseKind(v.Kind)
	if err != nil {
		return a.setFlash(err.Error(), true)
	}
	req := session.AffordRequest{
		Item:        v.Name,
		Cost:        cost,
		Kind:        kind,
		Necessity:   v.Necessity,
		Urgency:     v.Urgency,
		RelatedGoal: v.Goal,
	}
	return a.runAction("Checking your budget", func(ctx context.Context, s *session.Session) (func(*App), error) {
		res, err := s.Afford(ctx, req)
		if err != nil {
			return nil, err
		}
		return func(a *App) {
			a.affordItem = req.Item
			a.affordRes = &res
		}, nil
	})
}

func (a App) renderAffordTab(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)

	if a.affordRes == nil {
		body := mutedText("Thinking about a purchase? Press n to check it against your budget.")
		if a.snap.Budget == nil {
			body += "\n\n" + mutedText("Add income and expenses on the Budget tab for a full analysis.")
		}
		return components.ContentCard("Affordability Calculator", body, cw)
	}

	res := a.affordRes
	money := func(d decimal.Decimal) string {
		return cli.FormatMoney(a.snap.Currency, d)
	}

	metrics := []components.Metric{{Label: "Cost", Value: money(res.Cost)}}
	switch {
	case !res.HasBudget:
		metrics = append(metrics, components.Metric{Label: "Yearly cost", Value: money(res.YearlyCost)})
	case res.Kind == afford.Monthly:
		metrics = append(metrics,
			components.Metric{Label: "Surplus now", Value: money(res.Surplus)},
			components.Metric{Label: "Surplus after", Value: money(res.NewSurplus),
				Color: t.Signed(res.NewSurplus.IsNegative())},
			components.Metric{Label: "Uses", Value: cli.FormatPct(res.ImpactPercent) + " of surplus"},
		)
	default:
		metrics = append(metrics,
			components.Metric{Label: "Monthly surplus", Value: money(res.Surplus),
				Color: t.Signed(!res.Surplus.IsPositive())},
			components.Metric{Label: "Months to save", Value: cli.FormatMonths(res.MonthsToSave)},
			components.Metric{Label: "Share of income", Value: cli.FormatPct(res.PercentOfIncome)},
		)
	}

	verdictColor := t.Green
	switch res.Verdict {
	case afford.VerdictDeficit, afford.VerdictNoSurplus:
		verdictColor = t.Red
	case afford.VerdictHeavy, afford.VerdictSaveUp:
		verdictColor = t.Yellow
	case afford.VerdictUnknown:
		verdictColor = t.TextMuted
	}
	verdict := lipgloss.NewStyle().Foreground(verdictColor).Background(t.Surface).Width(inner).Render(res.Message)

	var parts []string
	parts = append(parts, components.MetricCardRow(metrics, cw))
	parts = append(parts, components.ContentCard(
		fmt.Sprintf("%s · %s", a.affordItem, strings.ToLower(res.Kind.Label())), verdict, cw))
	parts = append(parts, components.ContentCard("Advice", replyBody(res.Advice, inner), cw))
	return strings.Join(parts, "\n")
}
