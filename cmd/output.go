package cmd

import (
	"fmt"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/budget"
	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/model"
	"github.com/theirongolddev/finbuddy/internal/session"
)

const replyWidth = 76

// printReply prints a model or fallback answer, with its warning first.
func printReply(r advisor.Reply) {
	if r.Warning != "" && !flagQuiet {
		fmt.Println(cli.RenderWarning(r.Warning))
		fmt.Println()
	}
	fmt.Println(cli.RenderParagraph(r.Text, replyWidth))
	if r.Source == advisor.SourceCache && !flagQuiet {
		fmt.Println(cli.RenderMuted("  (cached answer)"))
	}
}

// printBudget renders the budget summary table and category breakdown.
func printBudget(cur string, sum model.BudgetSummary) {
	fmt.Print(cli.RenderTable(cli.Table{
		Title: "Budget",
		Rows: [][]string{
			{"Total income", cli.FormatMoney(cur, sum.TotalIncome)},
			{"Total expenses", cli.FormatMoney(cur, sum.TotalExpenses)},
			{cli.SeparatorRow},
			{"Balance", cli.FormatSignedMoney(cur, sum.Balance)},
			{"Saving rate", cli.FormatPct(sum.SavingRate)},
		},
	}))

	cats := budget.SortedCategories(sum)
	if len(cats) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("  " + cli.RenderHeader("Expenses by category"))
	top := cats[0].Amount.InexactFloat64()
	for _, c := range cats {
		fmt.Println(cli.RenderHorizontalBar(c.Category.String(), c.Amount.InexactFloat64(), top, 30,
			cli.FormatMoney(cur, c.Amount)))
	}
}

// printGoals renders the goal table.
func printGoals(cur string, views []session.GoalView) {
	if len(views) == 0 {
		fmt.Println("  No savings goals yet.")
		return
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		status := "active"
		switch {
		case v.Completed:
			status = "achieved"
		case v.Overdue:
			status = "overdue"
		}
		monthly := "-"
		if v.Pace != nil {
			monthly = cli.FormatMoney(cur, v.Pace.MonthlyNeeded) + "/mo"
		}
		rows = append(rows, []string{
			v.Name,
			cli.FormatMoney(cur, v.CurrentAmount),
			cli.FormatMoney(cur, v.TargetAmount),
			cli.FormatPct(v.ProgressPercent),
			cli.FormatDate(v.TargetDate),
			monthly,
			status,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Savings goals",
		Headers: []string{"Goal", "Saved", "Target", "Progress", "Due", "Needed", "Status"},
		Rows:    rows,
	}))
}

// printProgress renders level, progress bar and earned badges.
func printProgress(eng *gamify.Engine) {
	fmt.Printf("  Level %d/%d  %s\n", eng.Level(), gamify.MaxLevel, cli.RenderProgressBar(eng.Progress(), 30))
	badges := eng.Badges()
	if len(badges) == 0 {
		return
	}
	line := "  "
	for _, b := range badges {
		line += b.Emoji + " " + b.Name + "  "
	}
	fmt.Println(line)
}
