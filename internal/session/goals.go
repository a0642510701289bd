package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/goals"
	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OverdueMessage is shown for an unreached goal past its date.
const OverdueMessage = "Goal date has passed. Consider adjusting your timeline."

// GoalView is a goal with its derived display figures.
type GoalView struct {
	model.SavingsGoal
	ProgressPercent float64     `json:"progress_percent"`
	Remaining       string      `json:"remaining"`
	Pace            *goals.Pace `json:"pace,omitempty"`
	Overdue         bool        `json:"overdue"`
	Message         string      `json:"message,omitempty"`
}

// CreateGoal adds a new active goal.
func (s *Session) CreateGoal(name string, target decimal.Decimal, targetDate time.Time, initial decimal.Decimal) (model.SavingsGoal, error) {
	g, err := goals.Create(name, target, targetDate, initial, s.now())
	if err != nil {
		return model.SavingsGoal{}, invalid(err)
	}

	if s.goals.Add(g) == 1 {
		s.reward(gamify.BadgeGoalSetter, 0.1)
	}
	s.refreshGoals()
	got, _ := s.goals.Get(g.ID)
	return got, nil
}

// FundGoal adds amount to a goal and re-checks completion.
func (s *Session) FundGoal(id uuid.UUID, amount decimal.Decimal) (model.SavingsGoal, error) {
	g, ok := s.goals.Get(id)
	if !ok {
		return model.SavingsGoal{}, goals.ErrNotFound
	}

	funded, err := goals.AddFunds(g, amount)
	if err != nil {
		if errors.Is(err, goals.ErrDeleted) {
			return model.SavingsGoal{}, goals.ErrNotFound
		}
		return model.SavingsGoal{}, invalid(err)
	}
	if err := s.goals.Replace(funded); err != nil {
		return model.SavingsGoal{}, err
	}

	s.refreshGoals()
	got, _ := s.goals.Get(id)
	return got, nil
}

// DeleteGoal soft-deletes a goal.
func (s *Session) DeleteGoal(id uuid.UUID) error {
	g, ok := s.goals.Get(id)
	if !ok || g.Deleted {
		return goals.ErrNotFound
	}
	return s.goals.Replace(goals.SoftDelete(g))
}

// Goals returns visible goals with derived figures. Completion is
// re-evaluated on every call.
func (s *Session) Goals() []GoalView {
	s.refreshGoals()
	now := s.now()

	visible := s.goals.Visible()
	out := make([]GoalView, 0, len(visible))
	for _, g := range visible {
		out = append(out, s.view(g, now))
	}
	return out
}

// Goal returns one visible goal view.
func (s *Session) Goal(id uuid.UUID) (GoalView, error) {
	s.refreshGoals()
	g, ok := s.goals.Get(id)
	if !ok || g.Deleted {
		return GoalView{}, goals.ErrNotFound
	}
	return s.view(g, s.now()), nil
}

// GoalPace returns the monthly amount needed for a goal.
func (s *Session) GoalPace(id uuid.UUID) (goals.Pace, error) {
	g, ok := s.goals.Get(id)
	if !ok || g.Deleted {
		return goals.Pace{}, goals.ErrNotFound
	}
	return goals.PaceAt(g, s.now())
}

// GoalTips asks for saving tips toward one goal.
func (s *Session) GoalTips(ctx context.Context, id uuid.UUID) (advisor.Reply, error) {
	g, ok := s.goals.Get(id)
	if !ok || g.Deleted {
		return advisor.Reply{}, goals.ErrNotFound
	}
	prompt := s.prompts.GoalTips(g, goals.ProgressPercent(g), goals.DaysRemaining(g, s.now()))
	return s.advisor.Ask(ctx, prompt, ""), nil
}

// visibleGoals returns non-deleted goals for scoring.
func (s *Session) visibleGoals() []model.SavingsGoal {
	return s.goals.Visible()
}

func (s *Session) refreshGoals() {
	for _, g := range s.goals.Refresh() {
		s.log.WithField("goal", g.Name).Info("goal achieved")
		// Guarded by the goal's one-shot flag, so every completion counts.
		s.engine.Award(gamify.BadgeGoalAchiever, gamify.EmojiFor(gamify.BadgeGoalAchiever))
		s.bump(0.2)
	}
}

func (s *Session) view(g model.SavingsGoal, now time.Time) GoalView {
	v := GoalView{
		SavingsGoal:     g,
		ProgressPercent: goals.ProgressPercent(g),
		Remaining:       goals.Remaining(g).StringFixed(2),
	}

	pace, err := goals.PaceAt(g, now)
	switch {
	case errors.Is(err, goals.ErrOverdue):
		v.Overdue = true
		v.Message = OverdueMessage
	case err == nil && pace.DaysRemaining > 0:
		v.Pace = &pace
		v.Message = fmt.Sprintf("To reach your goal, save approximately %s per month", s.money(pace.MonthlyNeeded))
	}
	if g.Completed {
		v.Message = "🎉 Goal achieved!"
	}
	return v
}
