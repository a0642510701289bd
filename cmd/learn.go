package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/learn"

	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Investment 101 lessons and quizzes",
	RunE:  runLearn,
}

var learnLessonCmd = &cobra.Command{
	Use:   "lesson <number>",
	Short: "Read a lesson (1-5)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLearnLesson,
}

var learnQuizCmd = &cobra.Command{
	Use:   "quiz <number|title>",
	Short: "Take a quiz interactively",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLearnQuiz,
}

func init() {
	learnCmd.AddCommand(learnLessonCmd)
	learnCmd.AddCommand(learnQuizCmd)
	rootCmd.AddCommand(learnCmd)
}

func runLearn(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Println(cli.RenderTitle("INVESTMENT 101"))
	fmt.Println()

	rows := make([][]string, 0, len(learn.Topics()))
	for i, t := range learn.Topics() {
		rows = append(rows, []string{strconv.Itoa(i + 1), t.Title, string(t.Difficulty)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Lessons",
		Headers: []string{"#", "Topic", "Level"},
		Rows:    rows,
	}))
	fmt.Println()

	fmt.Println("  " + cli.RenderHeader("Quizzes"))
	for i, q := range learn.QuizTitles() {
		fmt.Printf("  %d. %s\n", i+1, q)
	}
	fmt.Println()
	fmt.Println(cli.RenderMuted("  finbuddy learn lesson 1    finbuddy learn quiz 1"))
	fmt.Println()
	return nil
}

func runLearnLesson(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("lesson %q: %w", args[0], learn.ErrUnknownLesson)
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	lesson, err := rt.sess.CompleteLesson(cmd.Context(), n)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(lesson.Topic.Title)))
	fmt.Println()
	fmt.Println(cli.RenderMuted("  " + lesson.Topic.Description))
	fmt.Println()
	printReply(lesson.Reply)
	fmt.Println()
	return nil
}

// quizTitle resolves a 1-based quiz number or a title.
func quizTitle(arg string) string {
	titles := learn.QuizTitles()
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(titles) {
		return titles[n-1]
	}
	for _, t := range titles {
		if strings.EqualFold(t, arg) || strings.EqualFold(strings.TrimSuffix(t, " Quiz"), arg) {
			return t
		}
	}
	return arg
}

func runLearnQuiz(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	quiz, err := rt.sess.StartQuiz(cmd.Context(), quizTitle(strings.Join(args, " ")))
	var parseErr *learn.QuizParseError
	if errors.As(err, &parseErr) {
		fmt.Println(cli.RenderWarning("Could not parse the generated quiz. Raw reply:"))
		fmt.Println(cli.RenderParagraph(parseErr.Raw, replyWidth))
		return err
	}
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	answers := make([]int, len(quiz.Questions))

	fmt.Println()
	fmt.Println(cli.RenderTitle(strings.ToUpper(quiz.Title)))
	for i, q := range quiz.Questions {
		fmt.Println()
		fmt.Printf("  %d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Printf("     (%c) %s\n", 'a'+rune(j), opt)
		}
		answers[i] = readChoice(reader, len(q.Options))
	}

	res, err := rt.sess.SubmitQuiz(answers)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("  " + cli.RenderHeader(res.Message))
	fmt.Println()
	for i, q := range quiz.Questions {
		mark := "✓"
		if answers[i] != q.CorrectAnswer {
			mark = "✗"
		}
		fmt.Printf("  %s %d. %s\n", mark, i+1, q.Options[q.CorrectAnswer])
		if q.Explanation != "" {
			fmt.Println(cli.RenderMuted("      " + q.Explanation))
		}
	}
	fmt.Println()
	printProgress(rt.sess.Engine())
	fmt.Println()
	return nil
}

// readChoice prompts until a letter in range is entered. EOF picks the
// first option so piped input cannot loop forever.
func readChoice(r *bufio.Reader, n int) int {
	for {
		fmt.Print("     > ")
		line, err := r.ReadString('\n')
		line = strings.ToLower(strings.TrimSpace(line))
		if len(line) == 1 && line[0] >= 'a' && int(line[0]-'a') < n {
			return int(line[0] - 'a')
		}
		if err != nil {
			return 0
		}
		fmt.Printf("     Enter a letter a-%c\n", 'a'+rune(n-1))
	}
}
