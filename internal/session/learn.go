package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/learn"
	"github.com/theirongolddev/finbuddy/internal/model"
)

// Lesson is a generated lesson for one topic.
type Lesson struct {
	Number int           `json:"number"`
	Topic  learn.Topic   `json:"topic"`
	Reply  advisor.Reply `json:"reply"`
}

type activeQuiz struct {
	quiz   learn.Quiz
	source advisor.Source
}

// QuizResult is a graded quiz with its headline message.
type QuizResult struct {
	learn.Result
	Message string         `json:"message"`
	Quiz    learn.Quiz     `json:"quiz"`
	Source  advisor.Source `json:"source"`
}

// Investment returns the lesson and quiz counters.
func (s *Session) Investment() model.InvestmentProgress {
	return s.investment
}

// CompleteLesson generates lesson n (1-based) and counts it as completed.
func (s *Session) CompleteLesson(ctx context.Context, n int) (Lesson, error) {
	topic, err := learn.TopicByNumber(n)
	if err != nil {
		return Lesson{}, invalid(err)
	}

	reply := s.advisor.Ask(ctx, s.prompts.Lesson(topic.Title), "")
	s.investment.LessonsCompleted++

	switch lessons := s.investment.LessonsCompleted; {
	case lessons == 1:
		s.reward(gamify.BadgeInvestmentStudent, 0.1)
	case lessons >= 3:
		s.reward(gamify.BadgeInvestmentExplorer, 0.1)
	}
	return Lesson{Number: n, Topic: topic, Reply: reply}, nil
}

// StartQuiz prepares a quiz. A model reply that does not parse returns a
// *learn.QuizParseError and no quiz starts. Offline and fallback replies use
// the built-in question bank.
func (s *Session) StartQuiz(ctx context.Context, title string) (learn.Quiz, error) {
	if !learn.ValidQuiz(title) {
		return learn.Quiz{}, invalid(fmt.Errorf("%q: %w", title, learn.ErrUnknownQuiz))
	}

	reply := s.advisor.AskValid(ctx, s.prompts.Quiz(title), "", func(text string) error {
		_, err := learn.ParseQuiz(text)
		return err
	})

	var (
		quiz learn.Quiz
		err  error
	)
	if reply.Source == advisor.SourceFallback {
		quiz, err = learn.BuiltinQuiz(title)
	} else {
		quiz, err = learn.ParseQuiz(reply.Text)
	}
	if err != nil {
		s.activeQuiz = nil
		return learn.Quiz{}, err
	}

	quiz.Title = title
	s.activeQuiz = &activeQuiz{quiz: quiz, source: reply.Source}
	return quiz, nil
}

// ActiveQuiz returns the quiz in progress, if any.
func (s *Session) ActiveQuiz() (learn.Quiz, bool) {
	if s.activeQuiz == nil {
		return learn.Quiz{}, false
	}
	return s.activeQuiz.quiz, true
}

// SubmitQuiz grades the active quiz and records the result.
func (s *Session) SubmitQuiz(answers []int) (QuizResult, error) {
	if s.activeQuiz == nil {
		return QuizResult{}, ErrNoActiveQuiz
	}

	res, err := learn.Grade(s.activeQuiz.quiz, answers)
	if err != nil {
		if errors.Is(err, learn.ErrAnswerCount) || errors.Is(err, learn.ErrAnswerRange) {
			return QuizResult{}, invalid(err)
		}
		return QuizResult{}, err
	}

	active := s.activeQuiz
	s.activeQuiz = nil

	s.investment.QuizzesTaken++
	s.investment.Score += res.Percentage / 100

	switch {
	case s.investment.QuizzesTaken == 1:
		s.reward(gamify.BadgeQuizTaker, 0.1)
	case res.Percentage >= 80:
		s.reward(gamify.BadgeInvestmentGuru, 0.15)
	}

	return QuizResult{Result: res, Message: res.Message(), Quiz: active.quiz, Source: active.source}, nil
}

// KnowledgeProgress returns the share of lessons and quizzes completed.
func (s *Session) KnowledgeProgress() float64 {
	return learn.KnowledgeProgress(s.investment)
}

// NextStep suggests the next learning action.
func (s *Session) NextStep() string {
	return learn.NextStep(s.investment)
}
