package advisor

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finbuddy/internal/budget"
	"github.com/theirongolddev/finbuddy/internal/cli"
	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultSystemPrompt is used for every request without its own system prompt.
const DefaultSystemPrompt = "You are FinBuddy, an AI assistant that helps users learn about personal finance, budgeting, saving, and investing. Your responses should be friendly, informative, and geared toward financial education for beginners."

// ChatSystemPrompt is used for free-form chat.
const ChatSystemPrompt = "You are FinBuddy, an AI assistant specialized in financial education for beginners and students. " +
	"You excel at explaining concepts like budgeting, saving, and investing in simple, engaging terms. " +
	"Keep your responses concise but informative, and adopt a friendly, encouraging tone suitable for GenZ users. " +
	"When appropriate, include practical examples or analogies to illustrate financial concepts. " +
	"If asked about specific investment advice, clarify that you provide educational content only, not financial advice."

// Prompts renders the templated prompts sent to the model.
type Prompts struct {
	Currency string
}

func (p Prompts) money(d decimal.Decimal) string {
	return cli.FormatMoney(p.Currency, d)
}

// Budget asks for 3-5 recommendations on a budget summary.
func (p Prompts) Budget(s model.BudgetSummary) string {
	var cats strings.Builder
	for _, c := range budget.SortedCategories(s) {
		fmt.Fprintf(&cats, "- %s: %s\n", c.Category, p.money(c.Amount))
	}
	if cats.Len() == 0 {
		cats.WriteString("- none\n")
	}

	return fmt.Sprintf(`Based on the following budget information, provide 3-5 specific recommendations
to improve this person's financial situation:

Income: %s/month
Expenses: %s/month
Balance: %s/month
Saving rate: %.1f%%

Expense categories:
%s
Provide practical, actionable advice for a student or beginner in personal finance.
Format each recommendation as a separate bullet point.`,
		p.money(s.TotalIncome), p.money(s.TotalExpenses), p.money(s.Balance), s.SavingRate, cats.String())
}

// GoalTips asks for saving tips toward one goal.
func (p Prompts) GoalTips(g model.SavingsGoal, progressPct float64, daysRemaining int) string {
	return fmt.Sprintf(`Provide 3 specific, actionable tips for saving money for this goal:

Goal: %s
Target amount: %s
Current progress: %.1f%%
Time remaining: %d days

Focus on practical methods for a student/young adult to save money.
Format as bullet points.`,
		g.Name, p.money(g.TargetAmount), progressPct, daysRemaining)
}

// Lesson asks for a beginner lesson on a topic title.
func (p Prompts) Lesson(title string) string {
	return fmt.Sprintf(`Create an educational lesson on %s for a complete beginner.
The lesson should be structured with:
1. An introduction to the concept
2. 3-4 key points with simple explanations
3. A real-world example that illustrates the concept
4. A conclusion summarizing what was learned

Keep explanations simple and jargon-free. Use analogies when possible.
Format with markdown headings and bullet points for readability.`, title)
}

// Quiz asks for a five question multiple-choice quiz as JSON.
func (p Prompts) Quiz(title string) string {
	subject := strings.TrimSpace(strings.Replace(title, "Quiz", "", 1))
	return fmt.Sprintf(`Create a 5-question multiple-choice quiz about %s.
Each question should have 4 options (A, B, C, D) with only one correct answer.

Format your response as a JSON object with this structure:
{
    "questions": [
        {
            "question": "Question text here?",
            "options": ["Option A", "Option B", "Option C", "Option D"],
            "correct_answer": 0,
            "explanation": "Brief explanation of the answer"
        },
        ...additional questions...
    ]
}

Make sure the questions are appropriate for beginners learning about investment concepts.
The correct_answer field should be the index (0-3) of the correct option.`, subject)
}

// HealthFacts are the data points included in an improvement plan prompt.
type HealthFacts struct {
	Budget     *model.BudgetSummary
	Goals      []model.SavingsGoal
	Investment *model.InvestmentProgress
}

// ImprovementPlan asks for a three horizon plan for a health score.
func (p Prompts) ImprovementPlan(score int, f HealthFacts) string {
	var data strings.Builder
	fmt.Fprintf(&data, "- score: %d\n", score)
	fmt.Fprintf(&data, "- has_budget: %t\n", f.Budget != nil)
	fmt.Fprintf(&data, "- has_savings_goals: %t\n", len(f.Goals) > 0)
	fmt.Fprintf(&data, "- has_investment_knowledge: %t\n", f.Investment != nil)
	if f.Budget != nil {
		fmt.Fprintf(&data, "- income: %s\n", p.money(f.Budget.TotalIncome))
		fmt.Fprintf(&data, "- expenses: %s\n", p.money(f.Budget.TotalExpenses))
		fmt.Fprintf(&data, "- balance: %s\n", p.money(f.Budget.Balance))
		fmt.Fprintf(&data, "- saving_rate: %.1f%%\n", f.Budget.SavingRate)
	}
	if len(f.Goals) > 0 {
		completed := 0
		for _, g := range f.Goals {
			if g.Completed {
				completed++
			}
		}
		fmt.Fprintf(&data, "- active_goals: %d\n", len(f.Goals))
		fmt.Fprintf(&data, "- completed_goals: %d\n", completed)
	}
	if f.Investment != nil {
		fmt.Fprintf(&data, "- investment_lessons: %d\n", f.Investment.LessonsCompleted)
		fmt.Fprintf(&data, "- investment_quizzes: %d\n", f.Investment.QuizzesTaken)
	}

	return fmt.Sprintf(`Create a detailed financial improvement plan for someone with these financial metrics:

Financial Health Score: %d/100

Data points:
%s
Create a 3-step action plan with:
1. Short-term actions (next 30 days)
2. Medium-term goals (next 3-6 months)
3. Long-term financial strategies (next 1-2 years)

For each timeframe, provide 2-3 specific, actionable recommendations
that will help improve their financial health score. Focus on the areas
where they seem to be lacking based on the data.

Format with clear headings and bullet points for readability.`, score, data.String())
}

// Purchase describes an item checked for affordability.
type Purchase struct {
	Item        string
	Cost        decimal.Decimal
	Kind        string
	Necessity   int
	Urgency     string
	RelatedGoal string
}

// Afford asks for purchase advice. surplus is nil without budget data.
func (p Prompts) Afford(pu Purchase, surplus *decimal.Decimal) string {
	budgetLine := "No budget information available."
	if surplus != nil {
		budgetLine = "Monthly budget surplus: " + p.money(*surplus)
	}
	related := pu.RelatedGoal
	if related == "" {
		related = "None"
	}

	return fmt.Sprintf(`Analyze this potential purchase and provide personalized advice:

Item: %s
Cost: %s
Purchase type: %s
Necessity level (1-10): %d
Urgency: %s
Related to savings goal: %s

%s

Provide 3 specific recommendations about:
1. Whether this purchase seems affordable based on the information
2. Alternative approaches to making this purchase more affordable
3. How this purchase might impact their overall financial health

Format as bullet points. Be specific and practical in your advice.`,
		pu.Item, p.money(pu.Cost), pu.Kind, pu.Necessity, pu.Urgency, related, budgetLine)
}

// Tip asks for one short GenZ-style tip in a category.
func (p Prompts) Tip(category string) string {
	return fmt.Sprintf(`Create a financial tip about %s in a GenZ-friendly style.
The tip should be:
1. Practical and actionable
2. Written in a casual, conversational tone with occasional slang
3. Brief (2-3 sentences maximum)
4. Presented like a social media post with an emoji
5. Educational but not condescending

Example format:
"💸 [Brief, catchy financial tip in GenZ language]"

Just provide the tip itself, no additional text.`, category)
}
