package cmd

import (
	"fmt"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/health"

	"github.com/spf13/cobra"
)

var flagHealthPlan bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Financial health score and breakdown",
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().BoolVarP(&flagHealthPlan, "plan", "p", false, "Ask for a personalized improvement plan")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	rep := rt.sess.CalculateHealth()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FINANCIAL HEALTH  %d/100", rep.Score)))
	fmt.Println()
	fmt.Println("  " + rep.Interpretation)
	fmt.Println()

	if len(rep.Missing) > 0 {
		fmt.Println("  " + cli.RenderHeader("For a complete assessment"))
		for _, m := range rep.Missing {
			fmt.Println("  - " + m)
		}
		fmt.Println()
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Score breakdown",
		Headers: []string{"Bucket", "Points", "Max"},
		Rows: [][]string{
			{"Budget balance", points(rep.Buckets.Balance), points(health.MaxBalancePoints)},
			{"Savings goals", points(rep.Buckets.Goals), points(health.MaxGoalPoints)},
			{"Expense diversity", points(rep.Buckets.Diversity), points(health.MaxDiversityPoints)},
			{"Investment knowledge", points(rep.Buckets.Investment), points(health.MaxInvestmentPoints)},
		},
	}))
	fmt.Println()

	fmt.Println("  " + cli.RenderHeader("Areas"))
	for _, c := range rep.Components {
		fmt.Println(cli.RenderHorizontalBar(string(c.Area), c.Score, 100, 30, fmt.Sprintf("%.0f", c.Score)))
	}
	fmt.Println()

	fmt.Printf("  %s %s\n", cli.RenderHeader("Focus:"), rep.Focus.Area)
	for _, tip := range rep.FocusTips {
		fmt.Println("  - " + tip)
	}
	fmt.Println()

	fmt.Println("  " + cli.RenderHeader("Recommendations"))
	for _, r := range rep.Recommendations {
		fmt.Println("  - " + r)
	}
	fmt.Println()

	if !flagHealthPlan {
		return nil
	}
	reply, err := rt.sess.ImprovementPlan(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println("  " + cli.RenderHeader("Improvement plan"))
	printReply(reply)
	fmt.Println()
	return nil
}

func points(p float64) string {
	return fmt.Sprintf("%.1f", p)
}
