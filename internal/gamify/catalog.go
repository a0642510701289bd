package gamify

import "github.com/theirongolddev/finbuddy/internal/model"

// Achievement is a catalog entry shown as locked or unlocked.
type Achievement struct {
	Name        string `json:"name"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
}

// Badge names awarded by finbuddy. Award accepts any name; these exist so
// callers do not repeat string literals.
const (
	BadgeBudgetExplorer       = "Budget Explorer"
	BadgeIncomeTracker        = "Income Tracker"
	BadgeExpenseTracker       = "Expense Tracker"
	BadgeBudgetMaster         = "Budget Master"
	BadgeGoalSetter           = "Goal Setter"
	BadgeGoalAchiever         = "Goal Achiever"
	BadgeInvestmentStudent    = "Investment Student"
	BadgeInvestmentExplorer   = "Investment Explorer"
	BadgeQuizTaker            = "Quiz Taker"
	BadgeInvestmentGuru       = "Investment Guru"
	BadgeSmartShopper         = "Smart Shopper"
	BadgeTipSeeker            = "Tip Seeker"
	BadgeFinanceGuru          = "Finance Guru"
	BadgeChallengeCompleter   = "Challenge Completer"
	BadgeHealthChecker        = "Health Checker"
	BadgeFinancialImprover    = "Financial Improver"
	BadgeHalfwayHero          = "Halfway Hero"
	BadgeFinanceMaster        = "Finance Master"
	BadgeSavingsGuru          = "Savings Guru"
	BadgeInvestmentApprentice = "Investment Apprentice"
)

var catalog = []Achievement{
	{BadgeBudgetExplorer, "🧮", "Create your first budget"},
	{BadgeIncomeTracker, "💵", "Add your first income source"},
	{BadgeExpenseTracker, "📝", "Add your first expense"},
	{BadgeBudgetMaster, "🏆", "Get budget recommendations"},
	{BadgeGoalSetter, "🎯", "Create your first savings goal"},
	{BadgeGoalAchiever, "🎯", "Complete a savings goal"},
	{BadgeInvestmentStudent, "📊", "Complete your first investment lesson"},
	{BadgeInvestmentExplorer, "🔍", "Complete 3+ investment lessons"},
	{BadgeQuizTaker, "❓", "Take your first investment quiz"},
	{BadgeInvestmentGuru, "🧠", "Score 80%+ on an investment quiz"},
	{BadgeSmartShopper, "🛒", "Use the affordability calculator"},
	{BadgeTipSeeker, "💡", "View your first financial tip"},
	{BadgeFinanceGuru, "🧠", "View 5+ financial tips"},
	{BadgeChallengeCompleter, "🏆", "Complete a weekly money challenge"},
	{BadgeHealthChecker, "🩺", "Check your financial health score"},
	{BadgeFinancialImprover, "📈", "Improve your financial health score"},
	{BadgeHalfwayHero, "🌟", "Reach level 5"},
	{BadgeFinanceMaster, "👑", "Reach level 10"},
}

// Emoji for badges earned outside the catalog (chat topics).
var extraEmoji = map[string]string{
	BadgeSavingsGuru:          "💰",
	BadgeInvestmentApprentice: "📈",
}

// Catalog returns the fixed, ordered achievement list.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// EmojiFor returns the emoji registered for a badge name, or "🏅".
func EmojiFor(name string) string {
	for _, a := range catalog {
		if a.Name == name {
			return a.Emoji
		}
	}
	if e, ok := extraEmoji[name]; ok {
		return e
	}
	return "🏅"
}

// AchievementStatus pairs a catalog entry with its earned badge, if any.
type AchievementStatus struct {
	Achievement
	Earned *model.Badge `json:"earned,omitempty"`
}

// Unlocked reports whether the achievement has been earned.
func (s AchievementStatus) Unlocked() bool {
	return s.Earned != nil
}

// Achievements joins the catalog with the earned badges, in catalog order.
func Achievements(earned []model.Badge) []AchievementStatus {
	byName := make(map[string]model.Badge, len(earned))
	for _, b := range earned {
		byName[b.Name] = b
	}

	out := make([]AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		st := AchievementStatus{Achievement: a}
		if b, ok := byName[a.Name]; ok {
			b := b
			st.Earned = &b
		}
		out = append(out, st)
	}
	return out
}
