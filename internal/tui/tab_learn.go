package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/learn"
	"github.com/theirongolddev/finbuddy/internal/session"
	"github.com/theirongolddev/finbuddy/internal/tui/components"
	"github.com/theirongolddev/finbuddy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateLearnKey(key string) (tea.Model, tea.Cmd) {
	topics := learn.Topics()
	switch key {
	case "j", "down":
		if a.lessonCursor < len(topics)-1 {
			a.lessonCursor++
		}
		return a, nil
	case "k", "up":
		if a.lessonCursor > 0 {
			a.lessonCursor--
		}
		return a, nil
	case "enter":
		n := a.lessonCursor + 1
		return a, a.runAction("Preparing lesson", func(ctx context.Context, s *session.Session) (func(*App), error) {
			lesson, err := s.CompleteLesson(ctx, n)
			if err != nil {
				return nil, err
			}
			return func(a *App) {
				a.lesson = &lesson
				a.quizResult = nil
				a.quizRaw = ""
			}, nil
		})
	case "z":
		titles := learn.QuizTitles()
		if a.lessonCursor >= len(titles) {
			return a, nil
		}
		title := titles[a.lessonCursor]
		return a, a.runAction("Writing quiz", func(ctx context.Context, s *session.Session) (func(*App), error) {
			quiz, err := s.StartQuiz(ctx, title)
			var qe *learn.QuizParseError
			if errors.As(err, &qe) {
				return func(a *App) { a.quizRaw = qe.Raw }, err
			}
			if err != nil {
				return nil, err
			}
			return func(a *App) { a.startQuiz(quiz) }, nil
		})
	}
	return a, nil
}

// startQuiz opens the answer form for a started quiz. Submitting grades it.
func (a *App) startQuiz(quiz learn.Quiz) {
	a.quizRaw = ""
	a.quizResult = nil
	v := &formValues{}
	// Update runs the form's Init once the action completes.
	a.openForm(quiz.Title, quizForm(v, quiz), v, func(a *App, v *formValues) tea.Cmd {
		var (
			res session.QuizResult
			err error
		)
		a.guard.do(func(s *session.Session) {
			res, err = s.SubmitQuiz(v.Answers)
		})
		if err != nil {
			return a.setFlash(errorText(err), true)
		}
		a.quizResult = &res
		a.refresh()
		return nil
	})
}

func (a App) renderLearnTab(cw int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)
	inv := a.snap.Investment

	var parts []string
	parts = append(parts, components.MetricCardRow([]components.Metric{
		{Label: "Lessons completed", Value: fmt.Sprintf("%d", inv.LessonsCompleted)},
		{Label: "Quizzes taken", Value: fmt.Sprintf("%d", inv.QuizzesTaken)},
		{Label: "Average score", Value: fmt.Sprintf("%.0f%%", inv.AverageScore()*100)},
		{Label: "Knowledge", Value: fmt.Sprintf("%.0f%%", a.snap.KnowledgeProgress*100)},
	}, cw))

	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	levelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	titles := learn.QuizTitles()
	for i, topic := range learn.Topics() {
		marker := "  "
		if i == a.lessonCursor {
			marker = cursorStyle.Render("▸ ")
		}
		b.WriteString(marker + titleStyle.Render(fmt.Sprintf("%d. %s", i+1, topic.Title)) +
			levelStyle.Render(fmt.Sprintf("  %s", topic.Difficulty)))
		b.WriteString("\n")
		if i == a.lessonCursor {
			b.WriteString("     " + mutedText(topic.Description) + "\n")
			if i < len(titles) {
				b.WriteString("     " + levelStyle.Render("Quiz: "+titles[i]) + "\n")
			}
		}
	}
	b.WriteString("\n" + mutedText("Next step: "+a.snap.NextStep))
	parts = append(parts, components.ContentCard("Investment 101", b.String(), cw))

	if r := a.quizResult; r != nil {
		parts = append(parts, components.ContentCard(r.Quiz.Title, renderQuizResult(*r, inner), cw))
	}
	if a.quizRaw != "" {
		parts = append(parts, components.ContentCard("Quiz reply (could not be read)",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(inner).Render(a.quizRaw), cw))
	}
	if a.lesson != nil {
		parts = append(parts, components.ContentCard(
			fmt.Sprintf("Lesson %d: %s", a.lesson.Number, a.lesson.Topic.Title),
			replyBody(a.lesson.Reply, inner), cw))
	}
	return strings.Join(parts, "\n")
}

func renderQuizResult(r session.QuizResult, width int) string {
	t := theme.Active
	right := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	wrong := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	body := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(width)

	var b strings.Builder
	b.WriteString(body.Render(fmt.Sprintf("%s  %d/%d (%.0f%%)", r.Message, r.Correct, r.Total, r.Percentage)))
	for i, q := range r.Quiz.Questions {
		b.WriteString("\n\n")
		b.WriteString(body.Render(fmt.Sprintf("%d. %s", i+1, q.Question)))
		b.WriteString("\n")
		chosen := -1
		if i < len(r.Answers) {
			chosen = r.Answers[i]
		}
		if chosen == q.CorrectAnswer {
			b.WriteString(right.Render("✓ " + optionText(q, chosen)))
		} else {
			b.WriteString(wrong.Render("✗ " + optionText(q, chosen)))
			b.WriteString("\n")
			b.WriteString(right.Render("  Correct: " + optionText(q, q.CorrectAnswer)))
		}
		if q.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(mutedText(q.Explanation))
		}
	}
	return b.String()
}

func optionText(q learn.Question, i int) string {
	if i < 0 || i >= len(q.Options) {
		return "(no answer)"
	}
	return q.Options[i]
}
