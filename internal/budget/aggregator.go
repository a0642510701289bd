// Package budget reduces income and expense line items into a summary.
package budget

import (
	"sort"

	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize computes totals, balance, per-category sums and the saving rate.
// Safe to call with empty lists.
func Summarize(income []model.IncomeItem, expenses []model.ExpenseItem) model.BudgetSummary {
	summary := model.BudgetSummary{
		TotalIncome:       decimal.Zero,
		TotalExpenses:     decimal.Zero,
		ExpenseByCategory: make(map[model.Category]decimal.Decimal),
	}

	for _, it := range income {
		summary.TotalIncome = summary.TotalIncome.Add(it.Amount)
	}

	for _, e := range expenses {
		summary.TotalExpenses = summary.TotalExpenses.Add(e.Amount)
		cat := e.Category.OrOther()
		summary.ExpenseByCategory[cat] = summary.ExpenseByCategory[cat].Add(e.Amount)
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)
	summary.SavingRate = SavingRate(summary.Balance, summary.TotalIncome)

	return summary
}

// SavingRate returns max(balance, 0) / income * 100, or 0 when income is not positive.
func SavingRate(balance, income decimal.Decimal) float64 {
	if !income.IsPositive() {
		return 0
	}
	if balance.IsNegative() {
		return 0
	}
	return balance.Div(income).Mul(hundred).InexactFloat64()
}

// CategoryAmount is one row of the expense breakdown.
type CategoryAmount struct {
	Category model.Category
	Amount   decimal.Decimal
	Share    float64 // fraction of total expenses, 0-1
}

// SortedCategories returns the expense breakdown sorted by amount descending,
// ties broken by category display order.
func SortedCategories(summary model.BudgetSummary) []CategoryAmount {
	rows := make([]CategoryAmount, 0, len(summary.ExpenseByCategory))
	for cat, amt := range summary.ExpenseByCategory {
		row := CategoryAmount{Category: cat, Amount: amt}
		if summary.TotalExpenses.IsPositive() {
			row.Share = amt.Div(summary.TotalExpenses).InexactFloat64()
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Amount.Cmp(rows[j].Amount); c != 0 {
			return c > 0
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// CategoryTotal returns the summed amount for one category, zero when absent.
func CategoryTotal(summary model.BudgetSummary, cat model.Category) decimal.Decimal {
	if amt, ok := summary.ExpenseByCategory[cat]; ok {
		return amt
	}
	return decimal.Zero
}
