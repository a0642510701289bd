package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/budget"
	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/model"
	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/tui/components"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateBudgetKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n":
		v := &formValues{}
		return a, a.openForm("Add income", incomeForm(v), v, submitIncome)
	case "e":
		v := &formValues{}
		return a, a.openForm("Add expense", expenseForm(v), v, submitExpense)
	case "v":
		return a, a.runAction("Reviewing your budget", func(ctx context.Context, s *session.Session) (func(*App), error) {
			reply, err := s.BudgetAdvice(ctx)
			if err != nil {
				return nil, err
			}
			return func(a *App) { a.budgetAdvice = &reply }, nil
		})
	}
	return a, nil
}

func submitIncome(a *App, v *formValues) tea.Cmd {
	amount, err := parseAmount(v.Amount)
	if err != nil {
		return a.setFlash(err.Error(), true)
	}
	return a.mutate(func(s *session.Session) error {
		_, err := s.AddIncome(v.Name, amount)
		return err
	})
}

func submitExpense(a *App, v *formValues) tea.Cmd {
	amount, err := parseAmount(v.Amount)
	if err != nil {
		return a.setFlash(err.Error(), true)
	}
	cat, err := model.ParseCategory(v.Category)
	if err != nil {
		return a.setFlash(err.Error(), true)
	}
	return a.mutate(func(s *session.Session) error {
		_, err := s.AddExpense(v.Name, cat, amount)
		return err
	})
}

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	cur := a.snap.Currency

	var parts []string

	if sum := a.snap.Budget; sum != nil {
		parts = append(parts, components.MetricCardRow([]components.Metric{
			{Label: "Income", Value: cli.FormatMoney(cur, sum.TotalIncome), Delta: "per month", Color: t.Income},
			{Label: "Expenses", Value: cli.FormatMoney(cur, sum.TotalExpenses), Delta: "per month", Color: t.Expense},
			{Label: "Balance", Value: cli.FormatSignedMoney(cur, sum.Balance), Color: t.Signed(sum.Balance.IsNegative())},
			{Label: "Saving rate", Value: cli.FormatPct(sum.SavingRate)},
		}, cw))
	} else {
		parts = append(parts, components.ContentCard("Budget",
			mutedText("Add at least one income source [n] and one expense [e] to see your budget."), cw))
	}

	// Income and expense lists side by side, stacked when narrow
	incomeBody := a.renderIncomeList(cur)
	expenseBody := a.renderExpenseList(cur)
	if a.isCompactLayout() {
		parts = append(parts,
			components.ContentCard("Income", incomeBody, cw),
			components.ContentCard("Expenses", expenseBody, cw))
	} else {
		widths := components.LayoutRow(cw, 2)
		parts = append(parts, components.CardRow([]string{
			components.ContentCard("Income", incomeBody, widths[0]),
			components.ContentCard("Expenses", expenseBody, widths[1]),
		}))
	}

	if sum := a.snap.Budget; sum != nil && sum.TotalExpenses.IsPositive() {
		rows := budget.SortedCategories(*sum)
		bars := make([]components.Bar, 0, len(rows))
		for _, r := range rows {
			bars = append(bars, components.Bar{
				Label: r.Category.String(),
				Value: r.Amount.InexactFloat64(),
				Note:  fmt.Sprintf("%s  %s", cli.FormatMoney(cur, r.Amount), cli.FormatPercent(r.Share)),
			})
		}
		parts = append(parts, components.ContentCard("Spending by category",
			components.HBarChart(bars, components.CardInnerWidth(cw)), cw))
	}

	if a.budgetAdvice != nil {
		parts = append(parts, components.ContentCard("Budget advice",
			replyBody(*a.budgetAdvice, components.CardInnerWidth(cw)), cw))
	}

	return strings.Join(parts, "\n")
}

func (a App) renderIncomeList(cur string) string {
	if len(a.snap.Income) == 0 {
		return mutedText("No income yet. Press [n] to add one.")
	}
	lines := make([]string, 0, len(a.snap.Income))
	for _, in := range a.snap.Income {
		lines = append(lines, lineItem(in.Name, "", cli.FormatMoney(cur, in.Amount), theme.Active.Income))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderExpenseList(cur string) string {
	if len(a.snap.Expenses) == 0 {
		return mutedText("No expenses yet. Press [e] to add one.")
	}
	lines := make([]string, 0, len(a.snap.Expenses))
	for _, ex := range a.snap.Expenses {
		lines = append(lines, lineItem(ex.Name, ex.Category.String(), cli.FormatMoney(cur, ex.Amount), theme.Active.Expense))
	}
	return strings.Join(lines, "\n")
}

func lineItem(name, tag, amount string, color lipgloss.Color) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	tagStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	amtStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	out := nameStyle.Render(fmt.Sprintf("%-22s", name))
	if tag != "" {
		out += tagStyle.Render(fmt.Sprintf(" %-14s", tag))
	}
	return out + amtStyle.Render(fmt.Sprintf(" %12s", amount))
}
