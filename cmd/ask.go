package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/session"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one financial question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat with FinBuddy (type 'exit' to quit)",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	reply, err := rt.sess.Ask(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println()
	printReply(reply.Reply)
	fmt.Println()
	return nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println(cli.RenderParagraph(session.Greeting, replyWidth))
	for {
		fmt.Println()
		fmt.Print("  > ")
		line, readErr := reader.ReadString('\n')
		line = strings.TrimSpace(line)

		if line == "exit" || line == "quit" {
			break
		}
		if line != "" {
			reply, err := rt.sess.Ask(cmd.Context(), line)
			if err != nil {
				return err
			}
			fmt.Println()
			printReply(reply.Reply)
		}
		if readErr != nil {
			break
		}
	}

	fmt.Println()
	printProgress(rt.sess.Engine())
	fmt.Println()
	return nil
}
