package health

import (
	"math"

	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/shopspring/decimal"
)

// Area names one displayed component of financial health.
type Area string

// Displayed areas, in breakdown order.
const (
	AreaBudgetBalance       Area = "Budget Balance"
	AreaSavingsGoals        Area = "Savings Goals"
	AreaInvestmentKnowledge Area = "Investment Knowledge"
	AreaDebtManagement      Area = "Debt Management"
)

// Component is one 0-100 area score shown next to the headline score.
type Component struct {
	Area  Area    `json:"area"`
	Score float64 `json:"score"`
}

var focusTips = map[Area][]string{
	AreaBudgetBalance: {
		"Review your expenses to find areas to cut back",
		"Look for ways to increase your income (side hustles, negotiating salary)",
		"Apply the 50/30/20 rule for better expense allocation",
	},
	AreaSavingsGoals: {
		"Set up at least one emergency fund goal",
		"Create specific savings goals with clear timelines",
		"Automate transfers to your savings accounts",
	},
	AreaInvestmentKnowledge: {
		"Complete more lessons in the Investment 101 section",
		"Take quizzes to test your understanding",
		"Start with learning about index funds and compound interest",
	},
	AreaDebtManagement: {
		"Focus on paying off high-interest debt first",
		"Consider consolidating debt if interest rates are high",
		"Create a debt payoff plan with specific monthly targets",
	},
}

// Components returns the four display areas. They are independent of the
// headline score and use their own 0-100 scales.
func Components(budget *model.BudgetSummary, goals []model.SavingsGoal, inv *model.InvestmentProgress) []Component {
	out := []Component{
		{Area: AreaBudgetBalance},
		{Area: AreaSavingsGoals},
		{Area: AreaInvestmentKnowledge},
		{Area: AreaDebtManagement, Score: 50},
	}

	if budget != nil {
		if budget.Balance.IsPositive() {
			ratio := budget.Balance.Div(decimal.Max(budget.TotalIncome, decimal.NewFromInt(1))).InexactFloat64()
			out[0].Score = math.Min(100, ratio*100*5)
		}

		debt := budget.ExpenseByCategory[model.CategoryDebt]
		if debt.IsPositive() {
			ratio := debt.Div(decimal.Max(budget.TotalIncome, decimal.NewFromInt(1))).InexactFloat64()
			out[3].Score = math.Max(0, 100-ratio*200)
		} else {
			out[3].Score = 90
		}
	}

	if len(goals) > 0 {
		out[1].Score = math.Min(100, float64(len(goals)*25))
	}

	if inv != nil {
		out[2].Score = math.Min(100, float64(inv.LessonsCompleted*15+inv.QuizzesTaken*10))
	}

	return out
}

// FocusArea returns the lowest-scoring component (first on ties) and its tips.
func FocusArea(components []Component) (Component, []string) {
	if len(components) == 0 {
		return Component{}, nil
	}
	lowest := components[0]
	for _, c := range components[1:] {
		if c.Score < lowest.Score {
			lowest = c
		}
	}
	return lowest, focusTips[lowest.Area]
}

// Band is the qualitative reading of a headline score.
type Band int

// Score bands, lowest first.
const (
	BandCritical Band = iota
	BandAttention
	BandGood
	BandExcellent
)

// Interpret maps a score to its band and display message.
func Interpret(score int) (Band, string) {
	switch {
	case score >= 80:
		return BandExcellent, "Excellent! Your financial health is strong."
	case score >= 60:
		return BandGood, "Good job! Your financial health is on the right track."
	case score >= 40:
		return BandAttention, "Your financial health needs some attention."
	default:
		return BandCritical, "Your financial health needs significant improvement."
	}
}
