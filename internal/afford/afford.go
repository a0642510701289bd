// Package afford checks whether a purchase fits the current budget.
package afford

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/shopspring/decimal"
)

// Kind is a purchase type.
type Kind string

// Purchase kinds.
const (
	OneTime Kind = "one-time"
	Monthly Kind = "monthly"
)

// Urgency options offered to the user.
const (
	UrgencyCanWait = "Can wait (not time-sensitive)"
	UrgencySoon    = "Soon (within a few months)"
	UrgencyUrgent  = "Urgent (needed immediately)"
)

var (
	// ErrInvalidCost is returned for a cost that is not positive.
	ErrInvalidCost = errors.New("cost must be greater than zero")
	// ErrInvalidNecessity is returned for a necessity outside 1-10.
	ErrInvalidNecessity = errors.New("necessity must be between 1 and 10")
	// ErrUnknownKind is returned for an unrecognized purchase kind.
	ErrUnknownKind = errors.New("unknown purchase kind")
)

// ParseKind accepts "one-time", "onetime", "once", "monthly" or "subscription".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "one-time", "onetime", "once", "one-time purchase":
		return OneTime, nil
	case "monthly", "subscription", "monthly subscription/payment":
		return Monthly, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Label is the human description used in prompts.
func (k Kind) Label() string {
	if k == Monthly {
		return "Monthly subscription/payment"
	}
	return "One-time purchase"
}

// Verdict classifies an analysis.
type Verdict string

// Verdicts.
const (
	VerdictUnknown     Verdict = "unknown"
	VerdictNoSurplus   Verdict = "no_surplus"
	VerdictSingleMonth Verdict = "single_month"
	VerdictSaveUp      Verdict = "save_up"
	VerdictDeficit     Verdict = "deficit"
	VerdictHeavy       Verdict = "heavy"
	VerdictAffordable  Verdict = "affordable"
)

// Analysis is the numeric affordability result. Ratio fields may be +Inf
// when the surplus is not positive.
type Analysis struct {
	Kind    Kind            `json:"kind"`
	Cost    decimal.Decimal `json:"cost"`
	Verdict Verdict         `json:"verdict"`
	Message string          `json:"message"`

	HasBudget bool            `json:"has_budget"`
	Surplus   decimal.Decimal `json:"surplus"`

	MonthsToSave    float64 `json:"-"`
	PercentOfIncome float64 `json:"-"`

	NewSurplus    decimal.Decimal `json:"new_surplus"`
	ImpactPercent float64         `json:"-"`

	YearlyCost decimal.Decimal `json:"yearly_cost"`
}

var hundred = decimal.NewFromInt(100)

// Analyze evaluates cost against the budget. summary is nil when no budget
// exists, which yields only general figures.
func Analyze(summary *model.BudgetSummary, cost decimal.Decimal, kind Kind) (Analysis, error) {
	if !cost.IsPositive() {
		return Analysis{}, ErrInvalidCost
	}
	if kind != OneTime && kind != Monthly {
		return Analysis{}, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}

	a := Analysis{Kind: kind, Cost: cost, YearlyCost: cost.Mul(decimal.NewFromInt(12))}

	if summary == nil {
		a.Verdict = VerdictUnknown
		a.Message = "Without your full budget information, we can only provide general guidance."
		a.MonthsToSave = math.Inf(1)
		a.PercentOfIncome = math.Inf(1)
		a.ImpactPercent = math.Inf(1)
		return a, nil
	}

	a.HasBudget = true
	a.Surplus = summary.Balance

	switch kind {
	case OneTime:
		analyzeOneTime(&a, summary.TotalIncome)
	case Monthly:
		analyzeMonthly(&a)
	}
	return a, nil
}

func analyzeOneTime(a *Analysis, income decimal.Decimal) {
	a.MonthsToSave = ratio(a.Cost, a.Surplus)
	a.PercentOfIncome = math.Inf(1)
	if income.IsPositive() {
		a.PercentOfIncome = a.Cost.Div(income).Mul(hundred).InexactFloat64()
	}

	switch {
	case !a.Surplus.IsPositive():
		a.Verdict = VerdictNoSurplus
		a.Message = "You currently have no surplus in your budget to save for this purchase."
	case a.Cost.LessThanOrEqual(a.Surplus):
		a.Verdict = VerdictSingleMonth
		a.Message = "You could afford this purchase from a single month's surplus!"
	default:
		a.Verdict = VerdictSaveUp
		a.Message = fmt.Sprintf("At your current savings rate, it would take approximately %.1f months to save for this purchase.", a.MonthsToSave)
	}
}

func analyzeMonthly(a *Analysis) {
	a.NewSurplus = a.Surplus.Sub(a.Cost)
	a.ImpactPercent = math.Inf(1)
	if a.Surplus.IsPositive() {
		a.ImpactPercent = a.Cost.Div(a.Surplus).Mul(hundred).InexactFloat64()
	}

	switch {
	case a.NewSurplus.IsNegative():
		a.Verdict = VerdictDeficit
		a.Message = "This subscription would put your budget into deficit."
	case a.ImpactPercent > 50:
		a.Verdict = VerdictHeavy
		a.Message = fmt.Sprintf("This subscription would use %.1f%% of your monthly surplus.", a.ImpactPercent)
	default:
		a.Verdict = VerdictAffordable
		a.Message = fmt.Sprintf("This subscription appears affordable, using %.1f%% of your monthly surplus.", a.ImpactPercent)
	}
}

// ratio returns num/den, or +Inf when den is not positive.
func ratio(num, den decimal.Decimal) float64 {
	if !den.IsPositive() {
		return math.Inf(1)
	}
	return num.Div(den).InexactFloat64()
}

// ValidateNecessity checks the 1-10 necessity scale.
func ValidateNecessity(n int) error {
	if n < 1 || n > 10 {
		return ErrInvalidNecessity
	}
	return nil
}
