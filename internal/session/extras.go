package session

import (
	"context"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/afford"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/tips"

	"github.com/shopspring/decimal"
)

// ChallengeDone is shown when the weekly challenge is marked complete.
const ChallengeDone = "🎉 Challenge completed! You're building great financial habits."

// AffordRequest describes a purchase to check.
type AffordRequest struct {
	Item        string          `json:"item"`
	Cost        decimal.Decimal `json:"cost"`
	Kind        afford.Kind     `json:"kind"`
	Necessity   int             `json:"necessity"`
	Urgency     string          `json:"urgency"`
	RelatedGoal string          `json:"related_goal"`
}

// AffordResult pairs the numeric analysis with model advice.
type AffordResult struct {
	afford.Analysis
	Advice advisor.Reply `json:"advice"`
}

// Afford analyzes a purchase against the budget and asks for advice.
func (s *Session) Afford(ctx context.Context, req AffordRequest) (AffordResult, error) {
	req.Item = strings.TrimSpace(req.Item)
	if req.Item == "" {
		return AffordResult{}, invalid(errEmptyItem)
	}
	if req.Kind == "" {
		req.Kind = afford.OneTime
	}
	if req.Necessity == 0 {
		req.Necessity = 5
	}
	if err := afford.ValidateNecessity(req.Necessity); err != nil {
		return AffordResult{}, invalid(err)
	}
	if req.Urgency == "" {
		req.Urgency = afford.UrgencyCanWait
	}

	a, err := afford.Analyze(s.budgetOrNil(), req.Cost, req.Kind)
	if err != nil {
		return AffordResult{}, invalid(err)
	}

	var surplus *decimal.Decimal
	if a.HasBudget {
		surplus = &a.Surplus
	}
	prompt := s.prompts.Afford(advisor.Purchase{
		Item:        req.Item,
		Cost:        req.Cost,
		Kind:        req.Kind.Label(),
		Necessity:   req.Necessity,
		Urgency:     req.Urgency,
		RelatedGoal: req.RelatedGoal,
	}, surplus)

	res := AffordResult{Analysis: a, Advice: s.advisor.Ask(ctx, prompt, "")}
	s.reward(gamify.BadgeSmartShopper, 0.1)
	return res, nil
}

// TipResult is one generated tip.
type TipResult struct {
	Category string        `json:"category"`
	Reply    advisor.Reply `json:"reply"`
	Viewed   int           `json:"viewed"`
}

// Tip generates a tip in category and counts it as viewed.
func (s *Session) Tip(ctx context.Context, category string) (TipResult, error) {
	cat, err := tips.ParseCategory(category)
	if err != nil {
		return TipResult{}, invalid(err)
	}

	reply := s.advisor.Ask(ctx, s.prompts.Tip(cat), "")
	s.tipsViewed++

	switch {
	case s.tipsViewed == 1:
		s.reward(gamify.BadgeTipSeeker, 0.05)
	case s.tipsViewed >= 5:
		s.reward(gamify.BadgeFinanceGuru, 0.1)
	}
	return TipResult{Category: cat, Reply: reply, Viewed: s.tipsViewed}, nil
}

// TipsViewed returns how many tips were generated.
func (s *Session) TipsViewed() int {
	return s.tipsViewed
}

// Challenge returns this week's challenge.
func (s *Session) Challenge() string {
	return tips.ChallengeFor(s.now())
}

// CompleteChallenge marks the weekly challenge done.
func (s *Session) CompleteChallenge() string {
	s.reward(gamify.BadgeChallengeCompleter, 0.15)
	return ChallengeDone
}
