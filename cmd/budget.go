package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/session"

	"github.com/spf13/cobra"
)

var flagBudgetAdvice bool

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget summary with category breakdown",
	RunE:  runBudget,
}

func init() {
	budgetCmd.Flags().BoolVarP(&flagBudgetAdvice, "advice", "a", false, "Ask for budget recommendations")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	sess := rt.sess
	cur := sess.Currency()

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET PLANNER"))
	fmt.Println()

	if len(sess.Income()) == 0 && len(sess.Expenses()) == 0 {
		fmt.Println("  No income or expenses yet. Add them to a scenario file and pass --file.")
		return nil
	}

	incomeRows := make([][]string, 0, len(sess.Income()))
	for _, in := range sess.Income() {
		incomeRows = append(incomeRows, []string{in.Name, cli.FormatMoney(cur, in.Amount)})
	}
	expenseRows := make([][]string, 0, len(sess.Expenses()))
	for _, ex := range sess.Expenses() {
		expenseRows = append(expenseRows, []string{ex.Name, ex.Category.String(), cli.FormatMoney(cur, ex.Amount)})
	}
	if len(incomeRows) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{Title: "Income", Headers: []string{"Source", "Amount"}, Rows: incomeRows}))
		fmt.Println()
	}
	if len(expenseRows) > 0 {
		fmt.Print(cli.RenderTable(cli.Table{Title: "Expenses", Headers: []string{"Expense", "Category", "Amount"}, Rows: expenseRows}))
		fmt.Println()
	}

	printBudget(cur, sess.Budget())
	fmt.Println()

	if !flagBudgetAdvice {
		return nil
	}

	reply, err := sess.BudgetAdvice(cmd.Context())
	if errors.Is(err, session.ErrNoBudget) {
		fmt.Println(cli.RenderWarning(err.Error()))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("  " + cli.RenderHeader("Recommendations"))
	printReply(reply)
	fmt.Println()
	return nil
}
