// Package learn holds the investment lessons and quizzes, quiz parsing
// and grading, and knowledge progress.
package learn

import (
	"fmt"

	"github.com/theirongolddev/finbuddy/internal/model"
)

// Difficulty labels a lesson.
type Difficulty string

// Difficulty levels.
const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Topic is one lesson.
type Topic struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
}

var topics = []Topic{
	{"Introduction to Investing", "Learn the basics of investing and why it's important.", Beginner},
	{"Understanding Stocks", "Learn how stocks work, how to read stock charts, and basic stock terminology.", Beginner},
	{"Mutual Funds Explained", "Understand how mutual funds work and their benefits for beginners.", Intermediate},
	{"Introduction to Cryptocurrencies", "Learn the basics of blockchain technology and popular cryptocurrencies.", Intermediate},
	{"Risk and Diversification", "Understand investment risk and how to build a diversified portfolio.", Advanced},
}

var quizTitles = []string{
	"Investing Basics Quiz",
	"Stock Market Quiz",
	"Mutual Funds Quiz",
	"Cryptocurrency Quiz",
	"Risk and Portfolio Quiz",
}

// Topics returns the lessons in display order.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// TopicByNumber returns the 1-based lesson n.
func TopicByNumber(n int) (Topic, error) {
	if n < 1 || n > len(topics) {
		return Topic{}, fmt.Errorf("lesson %d: %w", n, ErrUnknownLesson)
	}
	return topics[n-1], nil
}

// QuizTitles returns the available quizzes in display order.
func QuizTitles() []string {
	out := make([]string, len(quizTitles))
	copy(out, quizTitles)
	return out
}

// ValidQuiz reports whether title names a known quiz.
func ValidQuiz(title string) bool {
	for _, q := range quizTitles {
		if q == title {
			return true
		}
	}
	return false
}

// KnowledgeProgress returns completed lessons and quizzes over the total
// available, capped at 1.
func KnowledgeProgress(p model.InvestmentProgress) float64 {
	done := float64(p.LessonsCompleted + p.QuizzesTaken)
	total := float64(len(topics) + len(quizTitles))
	return min(1, done/total)
}

// NextStep suggests what to study next.
func NextStep(p model.InvestmentProgress) string {
	switch {
	case p.LessonsCompleted == 0:
		return "Start with the 'Introduction to Investing' lesson to build a foundation."
	case p.QuizzesTaken == 0:
		return "Take your first quiz to test what you've learned!"
	case p.LessonsCompleted < 3:
		return "Continue working through the lessons to expand your knowledge."
	default:
		return "Great progress! Challenge yourself with the advanced topics and quizzes."
	}
}
