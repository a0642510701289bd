// Package health computes the composite 0-100 financial health score.
package health

import (
	"math"

	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/shopspring/decimal"
)

// Recommendation texts emitted by the scorer.
const (
	RecNoBudget        = "Please complete your budget to get a financial health score."
	RecDeficit         = "Your expenses exceed your income. Try to reduce expenses or increase income."
	RecNoGoals         = "Set up savings goals to improve your financial health."
	RecNoInvestment    = "Learn about investing to boost your financial literacy."
	RecTierFoundation  = "Focus on building an emergency fund and tracking expenses."
	RecTierDebtSavings = "Consider paying down high-interest debt and increasing your savings rate."
	RecTierDiversify   = "Look into diversifying your investments and optimizing your budget."
	RecTierAdvanced    = "Great job! Consider increasing retirement contributions or exploring advanced investment strategies."
)

// Bucket maxima.
const (
	MaxBalancePoints    = 30
	MaxGoalPoints       = 25
	MaxDiversityPoints  = 15
	MaxInvestmentPoints = 30

	activeGoalPoints    = 15
	completedGoalPoints = 10
	pointsPerCategory   = 3
	pointsPerLesson     = 5
	pointsPerQuiz       = 5
	lessonCap           = 15
	quizCap             = 15
	targetBalanceRatio  = 0.2
)

// Buckets holds the points awarded by each scoring bucket.
type Buckets struct {
	Balance    float64 `json:"balance"`
	Goals      float64 `json:"goals"`
	Diversity  float64 `json:"diversity"`
	Investment float64 `json:"investment"`

	recommendations []string
}

// Total is the unrounded sum of all buckets.
func (b Buckets) Total() float64 {
	return b.Balance + b.Goals + b.Diversity + b.Investment
}

// Breakdown evaluates every bucket. A nil budget yields zero buckets and
// only the missing-budget recommendation.
func Breakdown(budget *model.BudgetSummary, goals []model.SavingsGoal, inv *model.InvestmentProgress) Buckets {
	var b Buckets
	if budget == nil {
		b.recommendations = []string{RecNoBudget}
		return b
	}

	b.Balance = balancePoints(budget.Balance, budget.TotalIncome)
	if b.Balance == 0 {
		b.recommendations = append(b.recommendations, RecDeficit)
	}

	if len(goals) == 0 {
		b.recommendations = append(b.recommendations, RecNoGoals)
	} else {
		b.Goals = goalPoints(goals)
	}

	b.Diversity = math.Min(MaxDiversityPoints, float64(len(budget.ExpenseByCategory)*pointsPerCategory))

	if inv == nil {
		b.recommendations = append(b.recommendations, RecNoInvestment)
	} else {
		b.Investment = investmentPoints(*inv)
	}

	return b
}

// Score combines the budget summary, savings goals and investment progress
// into a HealthScore. A nil budget short-circuits to a zero score.
func Score(budget *model.BudgetSummary, goals []model.SavingsGoal, inv *model.InvestmentProgress) model.HealthScore {
	b := Breakdown(budget, goals, inv)
	if budget == nil {
		return model.HealthScore{Score: 0, Recommendations: b.recommendations}
	}

	final := int(math.RoundToEven(b.Total()))

	recs := b.recommendations
	if len(recs) == 0 {
		recs = []string{TierRecommendation(final)}
	}

	return model.HealthScore{Score: final, Recommendations: recs}
}

// TierRecommendation picks the single general recommendation for a score.
func TierRecommendation(score int) string {
	switch {
	case score < 30:
		return RecTierFoundation
	case score < 60:
		return RecTierDebtSavings
	case score < 90:
		return RecTierDiversify
	default:
		return RecTierAdvanced
	}
}

func balancePoints(balance, income decimal.Decimal) float64 {
	denom := decimal.Max(income, decimal.NewFromInt(1))
	r := balance.Div(denom).InexactFloat64()

	switch {
	case r >= targetBalanceRatio:
		return MaxBalancePoints
	case r > 0:
		return 15 + (r/targetBalanceRatio)*15
	default:
		return 0
	}
}

// goalPoints counts active and completed goals independently, so a goal
// that is both contributes to both.
func goalPoints(goals []model.SavingsGoal) float64 {
	var active, completed bool
	for _, g := range goals {
		active = active || g.Active
		completed = completed || g.Completed
	}

	var pts float64
	if active {
		pts += activeGoalPoints
	}
	if completed {
		pts += completedGoalPoints
	}
	return pts
}

func investmentPoints(inv model.InvestmentProgress) float64 {
	lessons := math.Min(lessonCap, float64(max(inv.LessonsCompleted, 0)*pointsPerLesson))
	quizzes := math.Min(quizCap, float64(max(inv.QuizzesTaken, 0)*pointsPerQuiz))
	return lessons + quizzes
}
