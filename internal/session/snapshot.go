package session

import (
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/model"
)

// Snapshot is a read-only, JSON-friendly view of the whole session.
type Snapshot struct {
	Currency          string                     `json:"currency"`
	Online            bool                       `json:"online"`
	Income            []model.IncomeItem         `json:"income"`
	Expenses          []model.ExpenseItem        `json:"expenses"`
	Budget            *model.BudgetSummary       `json:"budget,omitempty"`
	Goals             []GoalView                 `json:"goals"`
	Investment        model.InvestmentProgress   `json:"investment"`
	KnowledgeProgress float64                    `json:"knowledge_progress"`
	NextStep          string                     `json:"next_step"`
	Health            *model.HealthScore         `json:"health,omitempty"`
	Badges            []model.Badge              `json:"badges"`
	Achievements      []gamify.AchievementStatus `json:"achievements"`
	Progress          float64                    `json:"progress"`
	Level             int                        `json:"level"`
	TipsViewed        int                        `json:"tips_viewed"`
	Challenge         string                     `json:"challenge"`
	Chat              []ChatMessage              `json:"chat"`
}

// Snapshot captures the current state. Goal completion is re-checked first.
func (s *Session) Snapshot() Snapshot {
	goals := s.Goals()
	badges := s.engine.Badges()

	snap := Snapshot{
		Currency:          s.prompts.Currency,
		Online:            s.Online(),
		Income:            s.Income(),
		Expenses:          s.Expenses(),
		Budget:            s.budgetOrNil(),
		Goals:             goals,
		Investment:        s.investment,
		KnowledgeProgress: s.KnowledgeProgress(),
		NextStep:          s.NextStep(),
		Badges:            badges,
		Achievements:      gamify.Achievements(badges),
		Progress:          s.engine.Progress(),
		Level:             s.engine.Level(),
		TipsViewed:        s.tipsViewed,
		Challenge:         s.Challenge(),
		Chat:              s.History(),
	}
	if h, ok := s.Health(); ok {
		snap.Health = &h
	}
	return snap
}
