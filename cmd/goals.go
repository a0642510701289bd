package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/goals"

	"github.com/spf13/cobra"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Savings goals with progress and monthly pace",
	RunE:  runGoals,
}

var goalsTipsCmd = &cobra.Command{
	Use:   "tips <goal name>",
	Short: "Saving tips for one goal",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runGoalsTips,
}

func init() {
	goalsCmd.AddCommand(goalsTipsCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(_ *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	views := rt.sess.Goals()
	cur := rt.sess.Currency()

	fmt.Println()
	fmt.Println(cli.RenderTitle("SAVINGS COACH"))
	fmt.Println()
	printGoals(cur, views)
	fmt.Println()

	for _, v := range views {
		if v.Message == "" {
			continue
		}
		fmt.Printf("  %s: %s\n", v.Name, v.Message)
	}
	fmt.Println()
	return nil
}

func runGoalsTips(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	name := strings.Join(args, " ")
	for _, v := range rt.sess.Goals() {
		if !strings.EqualFold(v.Name, name) {
			continue
		}
		reply, err := rt.sess.GoalTips(cmd.Context(), v.ID)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("  " + cli.RenderHeader("Tips for "+v.Name))
		printReply(reply)
		fmt.Println()
		return nil
	}
	return fmt.Errorf("%q: %w", name, goals.ErrNotFound)
}
