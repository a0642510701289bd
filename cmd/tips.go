package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/tips"

	"github.com/spf13/cobra"
)

var tipsCmd = &cobra.Command{
	Use:   "tips [category]",
	Short: "Money tips, the weekly challenge and financial wisdom",
	RunE:  runTips,
}

var tipsChallengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Show this week's savings challenge",
	RunE:  runTipsChallenge,
}

var tipsWisdomCmd = &cobra.Command{
	Use:   "wisdom",
	Short: "Classic money sayings",
	RunE:  runTipsWisdom,
}

var flagChallengeDone bool

func init() {
	tipsChallengeCmd.Flags().BoolVar(&flagChallengeDone, "done", false, "Mark this week's challenge as completed")
	tipsCmd.AddCommand(tipsChallengeCmd)
	tipsCmd.AddCommand(tipsWisdomCmd)
	rootCmd.AddCommand(tipsCmd)
}

func runTips(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println()
		fmt.Println("  " + cli.RenderHeader("Tip categories"))
		for _, c := range tips.Categories() {
			fmt.Println("  - " + c)
		}
		fmt.Println()
		fmt.Println(cli.RenderMuted(`  finbuddy tips "Saving Strategies"`))
		fmt.Println()
		return nil
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	res, err := rt.sess.Tip(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("  " + cli.RenderHeader(res.Category))
	printReply(res.Reply)
	fmt.Println()
	return nil
}

func runTipsChallenge(_ *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Println()
	fmt.Println("  " + cli.RenderHeader("This week's challenge"))
	fmt.Println("  " + rt.sess.Challenge())
	fmt.Println()
	if flagChallengeDone {
		fmt.Println("  " + rt.sess.CompleteChallenge())
		printProgress(rt.sess.Engine())
	}
	return nil
}

func runTipsWisdom(_ *cobra.Command, _ []string) error {
	fmt.Println()
	for _, w := range tips.WisdomCollections() {
		fmt.Println("  " + cli.RenderHeader(w.Title))
		for _, s := range w.Sayings {
			fmt.Println("  - " + s)
		}
		fmt.Println()
	}
	return nil
}
