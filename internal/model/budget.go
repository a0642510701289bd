// Package model defines the domain records shared across finbuddy.
package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyName is returned when a line item or goal has a blank name.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrNegativeAmount is returned when an amount is below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrUnknownCategory is returned for a category outside the fixed set.
	ErrUnknownCategory = errors.New("unknown expense category")
)

// IncomeItem is one monthly income source. Items are append-only.
type IncomeItem struct {
	Name   string          `json:"name" toml:"name"`
	Amount decimal.Decimal `json:"amount" toml:"amount"`
}

// Validate checks the item against the input preconditions.
func (i IncomeItem) Validate() error {
	return validateLine(i.Name, i.Amount)
}

// ExpenseItem is one monthly expense. Items are append-only.
type ExpenseItem struct {
	Name     string          `json:"name" toml:"name"`
	Category Category        `json:"category" toml:"category"`
	Amount   decimal.Decimal `json:"amount" toml:"amount"`
}

// Validate checks the item against the input preconditions.
func (e ExpenseItem) Validate() error {
	return validateLine(e.Name, e.Amount)
}

func validateLine(name string, amount decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// BudgetSummary is the derived projection of the income and expense lists.
// It is recomputed on every read and never stored.
type BudgetSummary struct {
	TotalIncome       decimal.Decimal              `json:"total_income"`
	TotalExpenses     decimal.Decimal              `json:"total_expenses"`
	Balance           decimal.Decimal              `json:"balance"`
	ExpenseByCategory map[Category]decimal.Decimal `json:"expense_by_category"`
	SavingRate        float64                      `json:"saving_rate"` // percent, floored at 0
}
