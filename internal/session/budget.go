package session

import (
	"context"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/budget"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/shopspring/decimal"
)

// AddIncome appends an income source.
func (s *Session) AddIncome(name string, amount decimal.Decimal) (model.IncomeItem, error) {
	item := model.IncomeItem{Name: strings.TrimSpace(name), Amount: amount}
	if err := item.Validate(); err != nil {
		return model.IncomeItem{}, invalid(err)
	}

	s.income = append(s.income, item)
	if len(s.income) == 1 {
		s.reward(gamify.BadgeIncomeTracker, 0.1)
	}
	return item, nil
}

// AddExpense appends an expense. The zero category is stored as Other.
func (s *Session) AddExpense(name string, category model.Category, amount decimal.Decimal) (model.ExpenseItem, error) {
	item := model.ExpenseItem{Name: strings.TrimSpace(name), Category: category.OrOther(), Amount: amount}
	if err := item.Validate(); err != nil {
		return model.ExpenseItem{}, invalid(err)
	}

	s.expenses = append(s.expenses, item)
	if len(s.expenses) == 1 {
		s.reward(gamify.BadgeExpenseTracker, 0.1)
	}
	return item, nil
}

// Income returns a copy of the income list.
func (s *Session) Income() []model.IncomeItem {
	return append([]model.IncomeItem(nil), s.income...)
}

// Expenses returns a copy of the expense list.
func (s *Session) Expenses() []model.ExpenseItem {
	return append([]model.ExpenseItem(nil), s.expenses...)
}

// Budget summarizes the current lists.
func (s *Session) Budget() model.BudgetSummary {
	return budget.Summarize(s.income, s.expenses)
}

// HasBudget reports whether both lists are non-empty.
func (s *Session) HasBudget() bool {
	return len(s.income) > 0 && len(s.expenses) > 0
}

// budgetOrNil returns the summary only when a full budget exists.
func (s *Session) budgetOrNil() *model.BudgetSummary {
	if !s.HasBudget() {
		return nil
	}
	b := s.Budget()
	return &b
}

// BudgetAdvice asks for recommendations on the current budget.
func (s *Session) BudgetAdvice(ctx context.Context) (advisor.Reply, error) {
	if !s.HasBudget() {
		return advisor.Reply{}, ErrNoBudget
	}
	reply := s.advisor.Ask(ctx, s.prompts.Budget(s.Budget()), "")
	s.reward(gamify.BadgeBudgetMaster, 0.15)
	return reply, nil
}
