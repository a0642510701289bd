package health

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/finbuddy/internal/budget"
	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/shopspring/decimal"
)

func scenarioBudget() *model.BudgetSummary {
	s := budget.Summarize(
		[]model.IncomeItem{{Name: "Salary", Amount: decimal.NewFromInt(3000)}},
		[]model.ExpenseItem{
			{Name: "Rent", Category: model.CategoryHousing, Amount: decimal.NewFromInt(1000)},
			{Name: "Food", Category: model.CategoryFood, Amount: decimal.NewFromInt(400)},
		},
	)
	return &s
}

func TestScore_NilBudgetShortCircuits(t *testing.T) {
	inv := &model.InvestmentProgress{LessonsCompleted: 3, QuizzesTaken: 3}
	got := Score(nil, []model.SavingsGoal{{Active: true}}, inv)

	if got.Score != 0 {
		t.Fatalf("Score = %d, want 0", got.Score)
	}
	if len(got.Recommendations) != 1 || got.Recommendations[0] != RecNoBudget {
		t.Fatalf("Recommendations = %v, want [%q]", got.Recommendations, RecNoBudget)
	}
}

func TestScore_Scenario(t *testing.T) {
	b := Breakdown(scenarioBudget(), nil, nil)
	if b.Balance != 30 {
		t.Fatalf("balance bucket = %v, want 30", b.Balance)
	}
	if b.Diversity != 6 {
		t.Fatalf("diversity bucket = %v, want 6", b.Diversity)
	}

	got := Score(scenarioBudget(), nil, nil)
	if got.Score != 36 {
		t.Fatalf("Score = %d, want 36", got.Score)
	}
	want := []string{RecNoGoals, RecNoInvestment}
	if len(got.Recommendations) != len(want) {
		t.Fatalf("Recommendations = %v, want %v", got.Recommendations, want)
	}
	for i := range want {
		if got.Recommendations[i] != want[i] {
			t.Fatalf("Recommendations[%d] = %q, want %q", i, got.Recommendations[i], want[i])
		}
	}
	if TierRecommendation(got.Score) != RecTierDebtSavings {
		t.Fatalf("score %d should fall in the 30-59 tier", got.Score)
	}
}

func TestScore_BalanceInterpolation(t *testing.T) {
	tests := []struct {
		name     string
		income   int64
		expenses int64
		want     float64
	}{
		{"twenty percent", 1000, 800, 30},
		{"ten percent", 1000, 900, 22.5},
		{"break even", 1000, 1000, 0},
		{"deficit", 1000, 1200, 0},
		{"no income", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := budget.Summarize(
				[]model.IncomeItem{{Name: "job", Amount: decimal.NewFromInt(tt.income)}},
				[]model.ExpenseItem{{Name: "x", Category: model.CategoryFood, Amount: decimal.NewFromInt(tt.expenses)}},
			)
			b := Breakdown(&s, nil, nil)
			if math.Abs(b.Balance-tt.want) > 1e-9 {
				t.Fatalf("balance bucket = %v, want %v", b.Balance, tt.want)
			}
		})
	}
}

func TestScore_DeficitRecommendation(t *testing.T) {
	s := budget.Summarize(
		[]model.IncomeItem{{Name: "job", Amount: decimal.NewFromInt(100)}},
		[]model.ExpenseItem{{Name: "rent", Category: model.CategoryHousing, Amount: decimal.NewFromInt(200)}},
	)
	got := Score(&s, []model.SavingsGoal{{Active: true}}, &model.InvestmentProgress{LessonsCompleted: 1})
	if len(got.Recommendations) != 1 || got.Recommendations[0] != RecDeficit {
		t.Fatalf("Recommendations = %v, want [%q]", got.Recommendations, RecDeficit)
	}
}

func TestScore_GoalsDoubleCount(t *testing.T) {
	goals := []model.SavingsGoal{{Active: true, Completed: true}}
	b := Breakdown(scenarioBudget(), goals, nil)
	if b.Goals != 25 {
		t.Fatalf("goals bucket = %v, want 25 (active and completed both count)", b.Goals)
	}

	b = Breakdown(scenarioBudget(), []model.SavingsGoal{{Active: false}}, nil)
	if b.Goals != 0 {
		t.Fatalf("inactive goal bucket = %v, want 0", b.Goals)
	}
}

func TestScore_InvestmentMonotonic(t *testing.T) {
	prev := -1.0
	for n := 0; n <= 6; n++ {
		b := Breakdown(scenarioBudget(), nil, &model.InvestmentProgress{LessonsCompleted: n, QuizzesTaken: n})
		if b.Investment < prev {
			t.Fatalf("investment bucket decreased at n=%d: %v < %v", n, b.Investment, prev)
		}
		if b.Investment > MaxInvestmentPoints {
			t.Fatalf("investment bucket = %v exceeds cap", b.Investment)
		}
		prev = b.Investment
	}
	if prev != MaxInvestmentPoints {
		t.Fatalf("investment bucket at n=6 = %v, want %d", prev, MaxInvestmentPoints)
	}
}

func TestScore_Bounded(t *testing.T) {
	incomes := []int64{0, 1, 500, 3000}
	expenseSets := [][]model.ExpenseItem{
		nil,
		{{Name: "a", Category: model.CategoryFood, Amount: decimal.NewFromInt(100)}},
	}
	for _, c := range model.Categories() {
		expenseSets[0] = append(expenseSets[0], model.ExpenseItem{Name: c.String(), Category: c, Amount: decimal.NewFromInt(1)})
	}
	goalSets := [][]model.SavingsGoal{nil, {{Active: true, Completed: true}}}
	invs := []*model.InvestmentProgress{nil, {LessonsCompleted: 10, QuizzesTaken: 10}}

	for _, inc := range incomes {
		for _, ex := range expenseSets {
			for _, gs := range goalSets {
				for _, inv := range invs {
					s := budget.Summarize([]model.IncomeItem{{Name: "i", Amount: decimal.NewFromInt(inc)}}, ex)
					got := Score(&s, gs, inv)
					if got.Score < 0 || got.Score > 100 {
						t.Fatalf("Score = %d out of range (income=%d)", got.Score, inc)
					}
					if len(got.Recommendations) == 0 {
						t.Fatal("Score returned no recommendations")
					}
				}
			}
		}
	}
}

func TestScore_PerfectGetsAdvancedTier(t *testing.T) {
	var expenses []model.ExpenseItem
	for _, c := range model.Categories()[:5] {
		expenses = append(expenses, model.ExpenseItem{Name: c.String(), Category: c, Amount: decimal.NewFromInt(10)})
	}
	s := budget.Summarize([]model.IncomeItem{{Name: "job", Amount: decimal.NewFromInt(1000)}}, expenses)
	goals := []model.SavingsGoal{{Active: true, Completed: true, TargetDate: time.Now()}}
	inv := &model.InvestmentProgress{LessonsCompleted: 3, QuizzesTaken: 3}

	got := Score(&s, goals, inv)
	if got.Score != 100 {
		t.Fatalf("Score = %d, want 100", got.Score)
	}
	if len(got.Recommendations) != 1 || got.Recommendations[0] != RecTierAdvanced {
		t.Fatalf("Recommendations = %v, want [%q]", got.Recommendations, RecTierAdvanced)
	}
}

func TestTierRecommendationBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, RecTierFoundation},
		{29, RecTierFoundation},
		{30, RecTierDebtSavings},
		{59, RecTierDebtSavings},
		{60, RecTierDiversify},
		{89, RecTierDiversify},
		{90, RecTierAdvanced},
		{100, RecTierAdvanced},
	}
	for _, tt := range tests {
		if got := TierRecommendation(tt.score); got != tt.want {
			t.Fatalf("TierRecommendation(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestComponentsAndFocus(t *testing.T) {
	s := budget.Summarize(
		[]model.IncomeItem{{Name: "job", Amount: decimal.NewFromInt(1000)}},
		[]model.ExpenseItem{
			{Name: "loan", Category: model.CategoryDebt, Amount: decimal.NewFromInt(250)},
			{Name: "rent", Category: model.CategoryHousing, Amount: decimal.NewFromInt(650)},
		},
	)
	comps := Components(&s, []model.SavingsGoal{{Active: true}}, nil)

	want := map[Area]float64{
		AreaBudgetBalance:       50, // 100/1000 * 100 * 5
		AreaSavingsGoals:        25,
		AreaInvestmentKnowledge: 0,
		AreaDebtManagement:      50, // 100 - 0.25*200
	}
	for _, c := range comps {
		if math.Abs(c.Score-want[c.Area]) > 1e-9 {
			t.Fatalf("%s = %v, want %v", c.Area, c.Score, want[c.Area])
		}
	}

	focus, tips := FocusArea(comps)
	if focus.Area != AreaInvestmentKnowledge {
		t.Fatalf("focus = %s, want %s", focus.Area, AreaInvestmentKnowledge)
	}
	if len(tips) != 3 {
		t.Fatalf("tips = %d, want 3", len(tips))
	}
}

func TestComponentsWithoutBudget(t *testing.T) {
	comps := Components(nil, nil, nil)
	if comps[3].Score != 50 {
		t.Fatalf("debt management without budget = %v, want 50", comps[3].Score)
	}
	focus, _ := FocusArea(comps)
	if focus.Area != AreaBudgetBalance {
		t.Fatalf("focus = %s, want first zero area %s", focus.Area, AreaBudgetBalance)
	}
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		score int
		want  Band
	}{
		{95, BandExcellent},
		{80, BandExcellent},
		{79, BandGood},
		{60, BandGood},
		{40, BandAttention},
		{39, BandCritical},
	}
	for _, tt := range tests {
		if got, _ := Interpret(tt.score); got != tt.want {
			t.Fatalf("Interpret(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
