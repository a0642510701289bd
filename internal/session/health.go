package session

import (
	"context"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/health"
	"github.com/theirongolddev/finbuddy/internal/model"
)

// Missing-data hints shown before a health check.
const (
	MissingBudget     = "Add your income and expenses in the Budget Planner"
	MissingGoals      = "Set up at least one savings goal in the Savings Coach"
	MissingInvestment = "Complete at least one lesson in Investment 101"
)

// HealthReport is the result of a health calculation.
type HealthReport struct {
	model.HealthScore
	Previous       *int               `json:"previous,omitempty"`
	Improved       bool               `json:"improved"`
	Band           health.Band        `json:"band"`
	Interpretation string             `json:"interpretation"`
	Buckets        health.Buckets     `json:"buckets"`
	Components     []health.Component `json:"components"`
	Focus          health.Component   `json:"focus"`
	FocusTips      []string           `json:"focus_tips"`
	Missing        []string           `json:"missing,omitempty"`
}

// healthInputs returns the scorer inputs: the budget only when both lists
// are non-empty, visible goals, and investment progress only after a lesson.
func (s *Session) healthInputs() (*model.BudgetSummary, []model.SavingsGoal, *model.InvestmentProgress) {
	var inv *model.InvestmentProgress
	if s.investment.LessonsCompleted > 0 {
		p := s.investment
		inv = &p
	}
	return s.budgetOrNil(), s.visibleGoals(), inv
}

// MissingData lists what is needed for a complete assessment.
func (s *Session) MissingData() []string {
	b, g, inv := s.healthInputs()
	var out []string
	if b == nil {
		out = append(out, MissingBudget)
	}
	if len(g) == 0 {
		out = append(out, MissingGoals)
	}
	if inv == nil {
		out = append(out, MissingInvestment)
	}
	return out
}

// CalculateHealth scores the session and stores the result.
func (s *Session) CalculateHealth() HealthReport {
	s.refreshGoals()
	b, g, inv := s.healthInputs()

	score := health.Score(b, g, inv)
	comps := health.Components(b, g, inv)
	focus, tips := health.FocusArea(comps)
	band, msg := health.Interpret(score.Score)

	r := HealthReport{
		HealthScore:    score,
		Band:           band,
		Interpretation: msg,
		Buckets:        health.Breakdown(b, g, inv),
		Components:     comps,
		Focus:          focus,
		FocusTips:      tips,
		Missing:        s.MissingData(),
	}

	prev := s.health
	s.health = &score

	if prev == nil {
		s.reward(gamify.BadgeHealthChecker, 0.1)
		return r
	}

	old := prev.Score
	r.Previous = &old
	if score.Score > old {
		r.Improved = true
		s.reward(gamify.BadgeFinancialImprover, 0.15)
	}
	return r
}

// Health returns the last stored score, if any.
func (s *Session) Health() (model.HealthScore, bool) {
	if s.health == nil {
		return model.HealthScore{}, false
	}
	return *s.health, true
}

// ImprovementPlan asks for a plan for the last stored score.
func (s *Session) ImprovementPlan(ctx context.Context) (advisor.Reply, error) {
	if s.health == nil {
		return advisor.Reply{}, ErrNoHealthScore
	}
	b, g, inv := s.healthInputs()
	prompt := s.prompts.ImprovementPlan(s.health.Score, advisor.HealthFacts{Budget: b, Goals: g, Investment: inv})
	return s.advisor.Ask(ctx, prompt, ""), nil
}
