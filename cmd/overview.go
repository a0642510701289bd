package cmd

import (
	"fmt"

	"github.com/theirongolddev/finbuddy/internal/cli"

	"github.com/spf13/cobra"
)

func runOverview(_ *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	sess := rt.sess
	cur := sess.Currency()

	fmt.Println()
	fmt.Println(cli.RenderTitle("FINBUDDY"))
	fmt.Println()

	if !sess.HasBudget() && len(sess.Goals()) == 0 {
		fmt.Println("  Nothing to show yet.")
		fmt.Println("  Pass a scenario with --file, or run `finbuddy tui` to enter your budget.")
		fmt.Println()
		printProgress(sess.Engine())
		fmt.Println()
		return nil
	}

	if sess.HasBudget() {
		printBudget(cur, sess.Budget())
		fmt.Println()
	}
	printGoals(cur, sess.Goals())
	fmt.Println()

	rep := sess.CalculateHealth()
	fmt.Printf("  Financial health: %d/100  %s\n", rep.Score, rep.Interpretation)
	fmt.Println()
	printProgress(sess.Engine())
	fmt.Println()
	return nil
}
