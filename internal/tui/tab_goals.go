package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/goals"
	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/tui/components"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) selectedGoal() (session.GoalView, bool) {
	if a.goalCursor < 0 || a.goalCursor >= len(a.snap.Goals) {
		return session.GoalView{}, false
	}
	return a.snap.Goals[a.goalCursor], true
}

func (a App) updateGoalsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.goalCursor < len(a.snap.Goals)-1 {
			a.goalCursor++
		}
		return a, nil
	case "k", "up":
		if a.goalCursor > 0 {
			a.goalCursor--
		}
		return a, nil
	case "n":
		v := &formValues{}
		return a, a.openForm("New savings goal", goalForm(v, time.Now()), v, submitGoal)
	}

	g, ok := a.selectedGoal()
	if !ok {
		return a, nil
	}
	id := g.ID
	switch key {
	case "f":
		v := &formValues{}
		return a, a.openForm("Add funds", fundsForm(v, g.Name), v, func(a *App, v *formValues) tea.Cmd {
			amount, err := parseAmount(v.Amount)
			if err != nil {
				return a.setFlash(err.Error(), true)
			}
			return a.mutate(func(s *session.Session) error {
				_, err := s.FundGoal(id, amount)
				return err
			})
		})
	case "d":
		v := &formValues{}
		return a, a.openForm("Delete goal", deleteForm(v, g.Name), v, func(a *App, v *formValues) tea.Cmd {
			if !v.Confirmed {
				return nil
			}
			if a.goalTips != nil && a.goalTips.goal == g.Name {
				a.goalTips = nil
			}
			return a.mutate(func(s *session.Session) error {
				return s.DeleteGoal(id)
			})
		})
	case "p":
		name := g.Name
		return a, a.runAction("Finding tips for "+name, func(ctx context.Context, s *session.Session) (func(*App), error) {
			reply, err := s.GoalTips(ctx, id)
			if err != nil {
				return nil, err
			}
			return func(a *App) { a.goalTips = &goalTips{goal: name, reply: reply} }, nil
		})
	}
	return a, nil
}

func submitGoal(a *App, v *formValues) tea.Cmd {
	target, err := parseAmount(v.Amount)
	if err != nil {
		return a.setFlash(err.Error(), true)
	}
	initial, err := parseAmount(v.Initial)
	if err != nil {
		return a.setFlash(err.Error(), true)
	}
	date, err := parseDate(v.Date)
	if err != nil {
		return a.setFlash(err.Error(), true)
	}
	return a.mutate(func(s *session.Session) error {
		_, err := s.CreateGoal(v.Name, target, date, initial)
		return err
	})
}

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	cur := a.snap.Currency
	inner := components.CardInnerWidth(cw)

	if len(a.snap.Goals) == 0 {
		return components.ContentCard("Savings goals",
			mutedText("No goals yet. Press [n] to set your first savings goal."), cw)
	}

	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	savedStyle := lipgloss.NewStyle().Foreground(t.Savings).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	labelW := 20
	barW := max(inner-labelW-30, 10)

	var b strings.Builder
	for i, g := range a.snap.Goals {
		marker := "  "
		if i == a.goalCursor {
			marker = cursorStyle.Render("▸ ")
		}
		note := savedStyle.Render(cli.FormatMoney(cur, g.CurrentAmount)) + detailStyle.Render(" of "+cli.FormatMoney(cur, g.TargetAmount))
		b.WriteString(marker + components.GoalBar(g.Name, g.ProgressPercent/100, note, labelW, barW))
		b.WriteString("\n")

		left := cli.FormatMoney(cur, goals.Remaining(g.SavingsGoal))
		var detail string
		switch {
		case g.Completed:
			detail = doneStyle.Render("✓ Goal reached!")
		case g.Overdue:
			detail = warnStyle.Render(g.Message)
		case g.Pace != nil:
			detail = detailStyle.Render(fmt.Sprintf("%s to go · %s · %s/month needed",
				left, cli.FormatDays(g.Pace.DaysRemaining), cli.FormatMoney(cur, g.Pace.MonthlyNeeded)))
		default:
			detail = detailStyle.Render(left + " to go")
		}
		b.WriteString("    " + detail + "  " + detailStyle.Render("by "+cli.FormatDate(g.TargetDate)))
		if i < len(a.snap.Goals)-1 {
			b.WriteString("\n")
		}
	}

	out := components.ContentCard("Savings goals", b.String(), cw)
	if a.goalTips != nil {
		out += "\n" + components.ContentCard("Tips for "+a.goalTips.goal,
			replyBody(a.goalTips.reply, inner), cw)
	}
	return out
}
