// Package goals manages savings goals: creation, funding, soft deletion,
// progress, pace-to-target and the one-shot completion transition.
package goals

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTarget is returned when a goal target is not positive.
	ErrInvalidTarget = errors.New("target amount must be greater than zero")
	// ErrOverdue is returned by PaceAt when the target date has passed and the
	// goal is not yet reached.
	ErrOverdue = errors.New("goal date has passed")
	// ErrNotFound is returned when no visible goal has the given ID.
	ErrNotFound = errors.New("goal not found")
	// ErrDeleted is returned when funding a soft-deleted goal.
	ErrDeleted = errors.New("goal is deleted")
)

const (
	daysPerMonth = 30
	day          = 24 * time.Hour
)

var hundred = decimal.NewFromInt(100)

// Create builds a new active goal. now becomes the start date.
func Create(name string, target decimal.Decimal, targetDate time.Time, initial decimal.Decimal, now time.Time) (model.SavingsGoal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SavingsGoal{}, model.ErrEmptyName
	}
	if !target.IsPositive() {
		return model.SavingsGoal{}, ErrInvalidTarget
	}
	if initial.IsNegative() {
		return model.SavingsGoal{}, fmt.Errorf("initial amount: %w", model.ErrNegativeAmount)
	}

	return model.SavingsGoal{
		ID:            uuid.New(),
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: initial,
		TargetDate:    targetDate,
		StartDate:     now,
		Active:        true,
	}, nil
}

// AddFunds returns g with amount added. Over-funding is allowed.
func AddFunds(g model.SavingsGoal, amount decimal.Decimal) (model.SavingsGoal, error) {
	if amount.IsNegative() {
		return g, model.ErrNegativeAmount
	}
	if g.Deleted {
		return g, ErrDeleted
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	return g, nil
}

// SoftDelete marks g deleted. There is no undelete.
func SoftDelete(g model.SavingsGoal) model.SavingsGoal {
	g.Deleted = true
	return g
}

// ProgressPercent returns current/target*100 clamped to 100 for display.
func ProgressPercent(g model.SavingsGoal) float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred).InexactFloat64()
	return math.Min(100, pct)
}

// Reached reports whether the goal has hit its target.
func Reached(g model.SavingsGoal) bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Remaining returns the amount still needed, floored at zero.
func Remaining(g model.SavingsGoal) decimal.Decimal {
	return decimal.Max(decimal.Zero, g.TargetAmount.Sub(g.CurrentAmount))
}

// Pace is the time left and monthly amount needed to hit a goal.
type Pace struct {
	DaysRemaining int             `json:"days_remaining"`
	MonthlyNeeded decimal.Decimal `json:"monthly_amount_needed"`
}

// DaysRemaining returns whole days from now to the target date, floored, so
// a date earlier today is already -1.
func DaysRemaining(g model.SavingsGoal, now time.Time) int {
	return int(math.Floor(float64(g.TargetDate.Sub(now)) / float64(day)))
}

// PaceAt computes the monthly amount needed from now until the target date.
// When no days remain an unreached goal is reported with ErrOverdue instead
// of a number; a reached goal needs nothing more.
func PaceAt(g model.SavingsGoal, now time.Time) (Pace, error) {
	days := DaysRemaining(g, now)
	p := Pace{DaysRemaining: days, MonthlyNeeded: decimal.Zero}

	if days <= 0 {
		if !Reached(g) {
			return p, ErrOverdue
		}
		return p, nil
	}

	months := decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(daysPerMonth))
	p.MonthlyNeeded = g.TargetAmount.Sub(g.CurrentAmount).Div(months)
	return p, nil
}

// CheckCompletion flips Completed when the goal is reached for the first
// time. The bool is true only on that transition.
func CheckCompletion(g model.SavingsGoal) (model.SavingsGoal, bool) {
	if g.Completed || g.Deleted {
		return g, false
	}
	if ProgressPercent(g) >= 100 {
		g.Completed = true
		return g, true
	}
	return g, false
}

// Tracker owns the append-only goal list for one session.
type Tracker struct {
	goals []model.SavingsGoal
}

// Add appends a goal and returns how many goals have ever been created.
func (t *Tracker) Add(g model.SavingsGoal) int {
	t.goals = append(t.goals, g)
	return len(t.goals)
}

// Get returns the goal with id, including deleted ones.
func (t *Tracker) Get(id uuid.UUID) (model.SavingsGoal, bool) {
	for _, g := range t.goals {
		if g.ID == id {
			return g, true
		}
	}
	return model.SavingsGoal{}, false
}

// Replace overwrites the stored goal with the same ID.
func (t *Tracker) Replace(g model.SavingsGoal) error {
	for i := range t.goals {
		if t.goals[i].ID == g.ID {
			t.goals[i] = g
			return nil
		}
	}
	return ErrNotFound
}

// Visible returns non-deleted goals in creation order.
func (t *Tracker) Visible() []model.SavingsGoal {
	out := make([]model.SavingsGoal, 0, len(t.goals))
	for _, g := range t.goals {
		if !g.Deleted {
			out = append(out, g)
		}
	}
	return out
}

// Len returns the number of goals ever created, deleted ones included.
func (t *Tracker) Len() int {
	return len(t.goals)
}

// Refresh re-evaluates completion on every visible goal and returns the
// goals that completed during this call.
func (t *Tracker) Refresh() []model.SavingsGoal {
	var done []model.SavingsGoal
	for i := range t.goals {
		g, completed := CheckCompletion(t.goals[i])
		if completed {
			t.goals[i] = g
			done = append(done, g)
		}
	}
	return done
}
