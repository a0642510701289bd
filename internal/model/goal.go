package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoal is a savings target with soft-delete support.
// CurrentAmount only grows; Completed flips to true once and stays there.
type SavingsGoal struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    time.Time       `json:"target_date"`
	StartDate     time.Time       `json:"start_date"`
	Active        bool            `json:"active"`
	Completed     bool            `json:"completed"`
	Deleted       bool            `json:"deleted"`
}

// InvestmentProgress counts lessons and quizzes. Score is the sum of
// per-quiz fractions, not an average.
type InvestmentProgress struct {
	LessonsCompleted int     `json:"lessons_completed"`
	QuizzesTaken     int     `json:"quizzes_taken"`
	Score            float64 `json:"score"`
}

// AverageScore returns the mean quiz fraction in [0,1], or 0 before any quiz.
func (p InvestmentProgress) AverageScore() float64 {
	if p.QuizzesTaken == 0 {
		return 0
	}
	return p.Score / float64(p.QuizzesTaken)
}

// HealthScore is one financial health calculation.
type HealthScore struct {
	Score           int      `json:"score"`
	Recommendations []string `json:"recommendations"`
}

// Badge is a non-revocable achievement keyed by Name.
type Badge struct {
	Name       string    `json:"name"`
	Emoji      string    `json:"emoji"`
	DateEarned time.Time `json:"date_earned"`
}
