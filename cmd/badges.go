package cmd

import (
	"fmt"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/gamify"

	"github.com/spf13/cobra"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Achievements earned by the current scenario",
	RunE:  runBadges,
}

func init() {
	rootCmd.AddCommand(badgesCmd)
}

func runBadges(_ *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	eng := rt.sess.Engine()

	rows := make([][]string, 0, len(gamify.Catalog()))
	for _, a := range gamify.Achievements(eng.Badges()) {
		earned := "locked"
		if a.Unlocked() {
			earned = cli.FormatDate(a.Earned.DateEarned)
		}
		rows = append(rows, []string{a.Emoji + " " + a.Name, a.Description, earned})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ACHIEVEMENTS"))
	fmt.Println()
	printProgress(eng)
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Badge", "How to earn", "Earned"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
