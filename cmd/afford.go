package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/afford"
	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/session"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagAffordMonthly   bool
	flagAffordNecessity int
	flagAffordUrgency   string
	flagAffordGoal      string
)

var affordCmd = &cobra.Command{
	Use:   "afford <item> <cost>",
	Short: "Check whether a purchase fits your budget",
	Args:  cobra.ExactArgs(2),
	RunE:  runAfford,
}

func init() {
	affordCmd.Flags().BoolVarP(&flagAffordMonthly, "monthly", "m", false, "Cost is a recurring monthly expense")
	affordCmd.Flags().IntVar(&flagAffordNecessity, "necessity", 5, "How necessary it is, 1-10")
	affordCmd.Flags().StringVar(&flagAffordUrgency, "urgency", "", "can-wait, soon or urgent")
	affordCmd.Flags().StringVar(&flagAffordGoal, "goal", "", "Savings goal this purchase relates to")
	rootCmd.AddCommand(affordCmd)
}

func urgencyLabel(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "soon":
		return afford.UrgencySoon
	case "urgent":
		return afford.UrgencyUrgent
	default:
		return afford.UrgencyCanWait
	}
}

func runAfford(cmd *cobra.Command, args []string) error {
	cost, err := decimal.NewFromString(strings.TrimPrefix(args[1], "$"))
	if err != nil {
		return fmt.Errorf("cost %q: %w", args[1], afford.ErrInvalidCost)
	}
	kind := afford.OneTime
	if flagAffordMonthly {
		kind = afford.Monthly
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	res, err := rt.sess.Afford(cmd.Context(), session.AffordRequest{
		Item:        args[0],
		Cost:        cost,
		Kind:        kind,
		Necessity:   flagAffordNecessity,
		Urgency:     urgencyLabel(flagAffordUrgency),
		RelatedGoal: flagAffordGoal,
	})
	if err != nil {
		return err
	}

	cur := rt.sess.Currency()
	fmt.Println()
	fmt.Println(cli.RenderTitle("CAN I AFFORD " + strings.ToUpper(args[0]) + "?"))
	fmt.Println()

	rows := [][]string{{"Cost", cli.FormatMoney(cur, res.Cost) + " " + kind.Label()}}
	switch {
	case !res.HasBudget:
		rows = append(rows, []string{"Yearly cost", cli.FormatMoney(cur, res.YearlyCost)})
	case kind == afford.Monthly:
		rows = append(rows,
			[]string{"Current surplus", cli.FormatSignedMoney(cur, res.Surplus)},
			[]string{"New surplus", cli.FormatSignedMoney(cur, res.NewSurplus)},
			[]string{"Share of surplus", cli.FormatPct(res.ImpactPercent)},
			[]string{"Yearly cost", cli.FormatMoney(cur, res.YearlyCost)},
		)
	default:
		rows = append(rows,
			[]string{"Monthly surplus", cli.FormatSignedMoney(cur, res.Surplus)},
			[]string{"Months to save", cli.FormatMonths(res.MonthsToSave)},
			[]string{"Share of income", cli.FormatPct(res.PercentOfIncome)},
		)
	}
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
	fmt.Println()
	fmt.Println("  " + res.Message)
	fmt.Println()
	printReply(res.Advice)
	fmt.Println()
	return nil
}
