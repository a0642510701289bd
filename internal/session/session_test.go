package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finbuddy/internal/advisor"
	"github.com/theirongolddev/finbuddy/internal/afford"
	"github.com/theirongolddev/finbuddy/internal/gamify"
	"github.com/theirongolddev/finbuddy/internal/goals"
	"github.com/theirongolddev/finbuddy/internal/learn"
	"github.com/theirongolddev/finbuddy/internal/model"

	"github.com/shopspring/decimal"
)

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) // a Monday

func newTestSession(t *testing.T, gen advisor.Generator) *Session {
	t.Helper()
	return New(Config{
		Advisor:  advisor.New(gen),
		Currency: "$",
		Clock:    func() time.Time { return now },
	})
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

type replyGen string

func (r replyGen) Generate(context.Context, string, string) (string, error) {
	return string(r), nil
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, nil)
	if s.Engine().Progress() != InitialProgress {
		t.Fatalf("progress = %v, want %v", s.Engine().Progress(), InitialProgress)
	}
	h := s.History()
	if len(h) != 1 || h[0].Content != Greeting {
		t.Fatalf("history = %+v, want greeting", h)
	}
}

func TestAddIncomeAwardsOnce(t *testing.T) {
	s := newTestSession(t, nil)

	if _, err := s.AddIncome("Salary", dec(3000)); err != nil {
		t.Fatalf("AddIncome: %v", err)
	}
	if _, err := s.AddIncome("Tutoring", dec(200)); err != nil {
		t.Fatalf("AddIncome: %v", err)
	}

	if !s.Engine().Has(gamify.BadgeIncomeTracker) {
		t.Fatal("Income Tracker not awarded")
	}
	if got := s.Engine().Progress(); got != 0.2 {
		t.Fatalf("progress = %v, want 0.2", got)
	}
}

func TestValidationErrors(t *testing.T) {
	s := newTestSession(t, nil)

	_, err := s.AddIncome(" ", dec(1))
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, model.ErrEmptyName) {
		t.Fatalf("blank name err = %v", err)
	}
	_, err = s.AddExpense("Rent", model.CategoryHousing, dec(-1))
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, model.ErrNegativeAmount) {
		t.Fatalf("negative amount err = %v", err)
	}
	_, err = s.CreateGoal("Car", dec(0), now.AddDate(1, 0, 0), dec(0))
	if !errors.Is(err, goals.ErrInvalidTarget) {
		t.Fatalf("zero target err = %v", err)
	}
	if len(s.Income()) != 0 || len(s.Expenses()) != 0 {
		t.Fatal("invalid items were stored")
	}
}

func TestZeroCategoryStoredAsOther(t *testing.T) {
	s := newTestSession(t, nil)
	item, err := s.AddExpense("misc", 0, dec(5))
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if item.Category != model.CategoryOther {
		t.Fatalf("category = %v, want Other", item.Category)
	}
}

func TestBudgetAdvice(t *testing.T) {
	s := newTestSession(t, nil)
	if _, err := s.BudgetAdvice(context.Background()); !errors.Is(err, ErrNoBudget) {
		t.Fatalf("err = %v, want ErrNoBudget", err)
	}

	_, _ = s.AddIncome("Salary", dec(3000))
	_, _ = s.AddExpense("Rent", model.CategoryHousing, dec(1000))
	_, _ = s.AddExpense("Food", model.CategoryFood, dec(400))

	b := s.Budget()
	if !b.Balance.Equal(dec(1600)) {
		t.Fatalf("balance = %s, want 1600", b.Balance)
	}

	reply, err := s.BudgetAdvice(context.Background())
	if err != nil {
		t.Fatalf("BudgetAdvice: %v", err)
	}
	if reply.Source != advisor.SourceFallback || !strings.HasPrefix(reply.Text, "Creating a budget") {
		t.Fatalf("reply = %+v", reply)
	}
	if !s.Engine().Has(gamify.BadgeBudgetMaster) {
		t.Fatal("Budget Master not awarded")
	}
	// 0.1 start + income 0.1 + expense 0.1 + advice 0.15
	if got := s.Engine().Progress(); got != 0.45 {
		t.Fatalf("progress = %v, want 0.45", got)
	}
}

func TestGoalCompletionFiresOnce(t *testing.T) {
	s := newTestSession(t, nil)

	g, err := s.CreateGoal("Laptop", dec(1000), now.AddDate(0, 3, 0), dec(900))
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	before := s.Engine().Progress()

	if _, err := s.FundGoal(g.ID, dec(600)); err != nil {
		t.Fatalf("FundGoal: %v", err)
	}
	for i := 0; i < 5; i++ {
		_ = s.Goals()
	}

	if !s.Engine().Has(gamify.BadgeGoalAchiever) {
		t.Fatal("Goal Achiever not awarded")
	}
	if got := s.Engine().Progress(); got != before+0.2 {
		t.Fatalf("progress = %v, want %v (one completion bump)", got, before+0.2)
	}

	views := s.Goals()
	if len(views) != 1 || views[0].ProgressPercent != 100 || !views[0].Completed {
		t.Fatalf("views = %+v", views)
	}
	if !views[0].CurrentAmount.Equal(dec(1500)) {
		t.Fatalf("stored amount = %s, want unclamped 1500", views[0].CurrentAmount)
	}
}

func TestDeleteGoal(t *testing.T) {
	s := newTestSession(t, nil)
	g, _ := s.CreateGoal("Trip", dec(500), now.AddDate(0, 2, 0), dec(0))

	if err := s.DeleteGoal(g.ID); err != nil {
		t.Fatalf("DeleteGoal: %v", err)
	}
	if len(s.Goals()) != 0 {
		t.Fatal("deleted goal still visible")
	}
	if err := s.DeleteGoal(g.ID); !errors.Is(err, goals.ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	if _, err := s.FundGoal(g.ID, dec(1)); !errors.Is(err, goals.ErrNotFound) {
		t.Fatalf("fund deleted err = %v", err)
	}
}

func TestGoalOverdueView(t *testing.T) {
	s := newTestSession(t, nil)
	g, _ := s.CreateGoal("Late", dec(500), now.AddDate(0, 0, -1), dec(0))

	v, err := s.Goal(g.ID)
	if err != nil {
		t.Fatalf("Goal: %v", err)
	}
	if !v.Overdue || v.Message != OverdueMessage || v.Pace != nil {
		t.Fatalf("view = %+v, want overdue without pace", v)
	}
	if _, err := s.GoalPace(g.ID); !errors.Is(err, goals.ErrOverdue) {
		t.Fatalf("GoalPace err = %v, want ErrOverdue", err)
	}
}

func TestHealthBadges(t *testing.T) {
	s := newTestSession(t, nil)

	r := s.CalculateHealth()
	if r.Score != 0 || len(r.Missing) != 3 {
		t.Fatalf("empty report = %+v", r)
	}
	if !s.Engine().Has(gamify.BadgeHealthChecker) {
		t.Fatal("Health Checker not awarded")
	}

	r = s.CalculateHealth()
	if r.Improved || s.Engine().Has(gamify.BadgeFinancialImprover) {
		t.Fatal("unchanged score counted as improvement")
	}

	_, _ = s.AddIncome("Salary", dec(3000))
	_, _ = s.AddExpense("Rent", model.CategoryHousing, dec(1000))
	r = s.CalculateHealth()
	if !r.Improved || r.Previous == nil || *r.Previous != 0 {
		t.Fatalf("report = %+v, want improvement from 0", r)
	}
	if !s.Engine().Has(gamify.BadgeFinancialImprover) {
		t.Fatal("Financial Improver not awarded")
	}
}

func TestImprovementPlanNeedsScore(t *testing.T) {
	s := newTestSession(t, nil)
	if _, err := s.ImprovementPlan(context.Background()); !errors.Is(err, ErrNoHealthScore) {
		t.Fatalf("err = %v", err)
	}
	s.CalculateHealth()
	if _, err := s.ImprovementPlan(context.Background()); err != nil {
		t.Fatalf("ImprovementPlan: %v", err)
	}
}

func TestHealthIgnoresInvestmentWithoutLessons(t *testing.T) {
	s := newTestSession(t, nil)
	_, _ = s.AddIncome("Salary", dec(1000))
	_, _ = s.AddExpense("Rent", model.CategoryHousing, dec(500))

	if _, err := s.StartQuiz(context.Background(), "Stock Market Quiz"); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	q, _ := s.ActiveQuiz()
	answers := make([]int, len(q.Questions))
	for i, qu := range q.Questions {
		answers[i] = qu.CorrectAnswer
	}
	if _, err := s.SubmitQuiz(answers); err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}

	r := s.CalculateHealth()
	if r.Buckets.Investment != 0 {
		t.Fatalf("investment bucket = %v, want 0 before any lesson", r.Buckets.Investment)
	}
}

func TestOfflineQuizFlow(t *testing.T) {
	s := newTestSession(t, nil)
	ctx := context.Background()

	if _, err := s.SubmitQuiz(nil); !errors.Is(err, ErrNoActiveQuiz) {
		t.Fatalf("submit without quiz err = %v", err)
	}

	perfect := func() []int {
		q, ok := s.ActiveQuiz()
		if !ok {
			t.Fatal("no active quiz")
		}
		out := make([]int, len(q.Questions))
		for i, qu := range q.Questions {
			out[i] = qu.CorrectAnswer
		}
		return out
	}

	if _, err := s.StartQuiz(ctx, "Investing Basics Quiz"); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	res, err := s.SubmitQuiz(perfect())
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if res.Percentage != 100 || res.Source != advisor.SourceFallback {
		t.Fatalf("result = %+v", res)
	}
	if !s.Engine().Has(gamify.BadgeQuizTaker) || s.Engine().Has(gamify.BadgeInvestmentGuru) {
		t.Fatal("first quiz should award only Quiz Taker")
	}

	if _, err := s.StartQuiz(ctx, "Mutual Funds Quiz"); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if _, err := s.SubmitQuiz(perfect()); err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if !s.Engine().Has(gamify.BadgeInvestmentGuru) {
		t.Fatal("Investment Guru not awarded on second high score")
	}

	inv := s.Investment()
	if inv.QuizzesTaken != 2 || inv.Score != 2 || inv.AverageScore() != 1 {
		t.Fatalf("investment = %+v", inv)
	}
}

func TestQuizParseFailure(t *testing.T) {
	s := newTestSession(t, replyGen("Sure! Here is a quiz about stocks, no JSON though."))

	_, err := s.StartQuiz(context.Background(), "Stock Market Quiz")
	var pe *learn.QuizParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *learn.QuizParseError", err)
	}
	if !strings.Contains(pe.Raw, "no JSON") {
		t.Fatalf("Raw = %q", pe.Raw)
	}
	if _, ok := s.ActiveQuiz(); ok {
		t.Fatal("quiz started despite parse failure")
	}
}

func TestQuizFromModel(t *testing.T) {
	raw := "```json\n{\"questions\":[{\"question\":\"Q?\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correct_answer\":2,\"explanation\":\"x\"}]}\n```"
	s := newTestSession(t, replyGen(raw))

	q, err := s.StartQuiz(context.Background(), "Cryptocurrency Quiz")
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	if len(q.Questions) != 1 || q.Title != "Cryptocurrency Quiz" {
		t.Fatalf("quiz = %+v", q)
	}
	res, err := s.SubmitQuiz([]int{0})
	if err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	if res.Correct != 0 || !strings.HasPrefix(res.Message, "📚 Keep learning!") {
		t.Fatalf("result = %+v", res)
	}
}

func TestLessonBadges(t *testing.T) {
	s := newTestSession(t, nil)
	ctx := context.Background()

	for n := 1; n <= 3; n++ {
		if _, err := s.CompleteLesson(ctx, n); err != nil {
			t.Fatalf("CompleteLesson(%d): %v", n, err)
		}
	}
	if !s.Engine().Has(gamify.BadgeInvestmentStudent) || !s.Engine().Has(gamify.BadgeInvestmentExplorer) {
		t.Fatalf("badges = %+v", s.Engine().Badges())
	}
	if _, err := s.CompleteLesson(ctx, 9); !errors.Is(err, learn.ErrUnknownLesson) {
		t.Fatalf("bad lesson err = %v", err)
	}
}

func TestChatTopics(t *testing.T) {
	s := newTestSession(t, nil)

	reply, err := s.Ask(context.Background(), "How do I save money and start investing?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(reply.Topics) != 2 || reply.Topics[0] != TopicSaving || reply.Topics[1] != TopicInvesting {
		t.Fatalf("topics = %v", reply.Topics)
	}
	if !s.Engine().Has(gamify.BadgeSavingsGuru) || !s.Engine().Has(gamify.BadgeInvestmentApprentice) {
		t.Fatal("topic badges missing")
	}
	if got := s.Engine().Progress(); got != 0.15 {
		t.Fatalf("progress = %v, want 0.15", got)
	}

	if _, err := s.Ask(context.Background(), "thanks!"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if got := s.Engine().Progress(); got != 0.15 {
		t.Fatalf("progress after topic-free message = %v, want 0.15", got)
	}
	if len(s.History()) != 5 {
		t.Fatalf("history = %d messages, want 5", len(s.History()))
	}

	if _, err := s.Ask(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty message err = %v", err)
	}
}

func TestTipsBadges(t *testing.T) {
	s := newTestSession(t, nil)
	for i := 0; i < 5; i++ {
		if _, err := s.Tip(context.Background(), "Saving Strategies"); err != nil {
			t.Fatalf("Tip: %v", err)
		}
		if i < 4 && s.Engine().Has(gamify.BadgeFinanceGuru) {
			t.Fatalf("Finance Guru awarded after %d tips", i+1)
		}
	}
	if !s.Engine().Has(gamify.BadgeTipSeeker) || !s.Engine().Has(gamify.BadgeFinanceGuru) {
		t.Fatal("tip badges missing")
	}
	if _, err := s.Tip(context.Background(), "Lottery Strategies"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown category err = %v", err)
	}
}

func TestChallenge(t *testing.T) {
	s := newTestSession(t, nil)
	if got := s.Challenge(); got != "Track every expense for 7 days straight 📝" {
		t.Fatalf("Monday challenge = %q", got)
	}
	s.CompleteChallenge()
	s.CompleteChallenge()
	if got := s.Engine().Progress(); got != 0.25 {
		t.Fatalf("progress = %v, want 0.25 (bump only on first completion)", got)
	}
}

func TestAfford(t *testing.T) {
	s := newTestSession(t, nil)
	_, _ = s.AddIncome("Salary", dec(3000))
	_, _ = s.AddExpense("Rent", model.CategoryHousing, dec(2000))

	res, err := s.Afford(context.Background(), AffordRequest{Item: "Bike", Cost: dec(400)})
	if err != nil {
		t.Fatalf("Afford: %v", err)
	}
	if !res.HasBudget || res.Verdict != afford.VerdictSingleMonth {
		t.Fatalf("analysis = %+v", res.Analysis)
	}
	if !s.Engine().Has(gamify.BadgeSmartShopper) {
		t.Fatal("Smart Shopper not awarded")
	}

	if _, err := s.Afford(context.Background(), AffordRequest{Item: "", Cost: dec(1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty item err = %v", err)
	}
}

func TestHalfwayHeroFromActivity(t *testing.T) {
	s := newTestSession(t, nil)
	// 0.1 start, +0.1 income, +0.1 expense, +0.1 goal, +0.15 challenge
	_, _ = s.AddIncome("Salary", dec(3000))
	_, _ = s.AddExpense("Rent", model.CategoryHousing, dec(900))
	_, _ = s.CreateGoal("Fund", dec(100), now.AddDate(0, 1, 0), dec(0))
	s.CompleteChallenge()

	if s.Engine().Level() != 5 || !s.Engine().Has(gamify.BadgeHalfwayHero) {
		t.Fatalf("level = %d badges = %v", s.Engine().Level(), s.Engine().Badges())
	}
}

func TestScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.toml")
	content := `
[[income]]
name = "Salary"
amount = 3000

[[expenses]]
name = "Rent"
category = "housing"
amount = "1000.50"

[[goals]]
name = "Laptop"
target = 1200
saved = 200
target_date = 2026-12-01
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	s := newTestSession(t, nil)
	if err := s.Apply(sc); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if !s.Budget().TotalExpenses.Equal(decimal.RequireFromString("1000.50")) {
		t.Fatalf("expenses = %s", s.Budget().TotalExpenses)
	}
	if s.Expenses()[0].Category != model.CategoryHousing {
		t.Fatalf("category = %v", s.Expenses()[0].Category)
	}
	gs := s.Goals()
	if len(gs) != 1 || gs[0].TargetDate.Year() != 2026 || gs[0].TargetDate.Month() != time.December {
		t.Fatalf("goals = %+v", gs)
	}
}

func TestScenarioUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[[income]]\nname = \"x\"\nammount = 3\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestSession(t, nil)
	_, _ = s.AddIncome("Salary", dec(100))
	snap := s.Snapshot()

	if snap.Budget != nil {
		t.Fatal("budget should be nil without expenses")
	}
	if len(snap.Achievements) != len(gamify.Catalog()) {
		t.Fatalf("achievements = %d", len(snap.Achievements))
	}
	if snap.Level != 2 || len(snap.Badges) != 1 {
		t.Fatalf("level = %d badges = %d", snap.Level, len(snap.Badges))
	}
}

func TestSubmitQuizRejectsUnknownOption(t *testing.T) {
	s := newTestSession(t, nil)
	if _, err := s.StartQuiz(context.Background(), "Investing Basics Quiz"); err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}
	q, _ := s.ActiveQuiz()
	answers := make([]int, len(q.Questions))
	answers[0] = -3

	_, err := s.SubmitQuiz(answers)
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, learn.ErrAnswerRange) {
		t.Fatalf("err = %v, want ErrInvalidInput wrapping ErrAnswerRange", err)
	}
	if _, ok := s.ActiveQuiz(); !ok {
		t.Fatal("rejected answers should leave the quiz open")
	}
	if s.Investment().QuizzesTaken != 0 {
		t.Fatal("rejected answers counted as a quiz")
	}
}
